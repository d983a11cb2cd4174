package service

import (
	"context"
	"testing"

	"putr/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestGetGame(t *testing.T) {
	env := newTestEnv(t, ResolverOptions{})
	ctx := context.Background()
	alice := env.register(t, "Alice", "ali")
	bob := env.register(t, "Bob", "bobby")

	env.importOK(t, "ledger23_09_26.csv", csvLedger("bobby,b1,-40", "ali,a1,40"))

	games, total, err := env.games.ListGames(ctx, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, games, 1)

	detail, err := env.games.GetGame(ctx, games[0].ID)
	require.NoError(t, err)
	require.Equal(t, "23_09_26", detail.Game.Key.String())
	require.Equal(t, "ledger23_09_26.csv", detail.Game.LedgerFilename)

	require.Len(t, detail.Entries, 2)
	require.Equal(t, "bobby", detail.Entries[0].PlayerNickname)
	require.Equal(t, "b1", detail.Entries[0].PlayerIDCSV)

	require.Equal(t, []domain.GameParticipant{
		{PlayerID: alice.ID, PlayerName: "Alice", Net: 40},
		{PlayerID: bob.ID, PlayerName: "Bob", Net: -40},
	}, detail.Participants)

	_, err = env.games.GetGame(ctx, 999)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListGamesChronological(t *testing.T) {
	env := newTestEnv(t, ResolverOptions{})
	ctx := context.Background()
	env.register(t, "Alice", "ali")

	for _, name := range []string{"ledger23_10_08.csv", "ledger23_10_07(1).csv", "ledger23_10_07.csv"} {
		env.importOK(t, name, csvLedger("ali,,0"))
	}

	games, _, err := env.games.ListGames(ctx, 0, 0)
	require.NoError(t, err)
	var keys []string
	for _, g := range games {
		keys = append(keys, g.Key.String())
	}
	require.Equal(t, []string{"23_10_07", "23_10_07(1)", "23_10_08"}, keys)
}
