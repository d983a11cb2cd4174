package service

import (
	"context"
	"fmt"
	"testing"

	"putr/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestRecalculateIsIdempotent(t *testing.T) {
	env := newTestEnv(t, ResolverOptions{})
	alice := env.register(t, "Alice", "ali")
	env.register(t, "Bob", "bobby")

	env.importOK(t, "ledger23_01_01.csv", csvLedger("ali,,100", "bobby,,-100"))
	env.importOK(t, "ledger23_01_02.csv", csvLedger("ali,,-50", "bobby,,50"))
	env.importOK(t, "ledger23_01_03.csv", csvLedger("ali,,200", "bobby,,-200"))
	env.importOK(t, "ledger23_01_04.csv", csvLedger("ali,,-75", "bobby,,75"))
	env.importOK(t, "ledger23_01_05.csv", csvLedger("ali,,25", "bobby,,-25"))

	first, err := env.stats.Recalculate(context.Background(), alice.ID)
	require.NoError(t, err)
	second, err := env.stats.Recalculate(context.Background(), alice.ID)
	require.NoError(t, err)

	if diff := cmp.Diff(first.Stats, second.Stats); diff != "" {
		t.Fatalf("second recalculation changed aggregates:\n%s", diff)
	}

	want := domain.Aggregates{
		Net: 200, GamesUp: 3, GamesDown: 2, AverageNet: 40,
		BiggestWin: 200, BiggestLoss: -75, HighestNet: 250, LowestNet: 0,
	}
	if diff := cmp.Diff(want, env.player(t, alice.ID).Stats); diff != "" {
		t.Fatalf("stored aggregates mismatch (-want +got):\n%s", diff)
	}
}

func TestRecalculateWithNoGamesResets(t *testing.T) {
	env := newTestEnv(t, ResolverOptions{})
	alice := env.register(t, "Alice", "ali")
	env.register(t, "Bob", "bobby")

	env.importOK(t, "ledger23_09_26.csv", csvLedger("ali,,150", "bobby,,-150"))
	require.NotZero(t, env.player(t, alice.ID).Stats.Net)

	_, err := env.db.Exec("DELETE FROM player_game_stats WHERE player_id = ?", alice.ID)
	require.NoError(t, err)

	got, err := env.stats.Recalculate(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Equal(t, domain.Aggregates{}, got.Stats)
	require.Equal(t, domain.Aggregates{}, env.player(t, alice.ID).Stats)
}

func TestRecalculateLeavesRatingAlone(t *testing.T) {
	env := newTestEnv(t, ResolverOptions{})
	alice := env.register(t, "Alice", "ali")

	_, err := env.players.SetRating(context.Background(), alice.ID, domain.Unrated())
	require.NoError(t, err)

	got, err := env.stats.Recalculate(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Equal(t, domain.UnratedCode, got.Rating.String())
	require.Equal(t, domain.UnratedCode, env.player(t, alice.ID).Rating.String())
}

func TestRecalculateUnknownPlayer(t *testing.T) {
	env := newTestEnv(t, ResolverOptions{})

	_, err := env.stats.Recalculate(context.Background(), 4242)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecalculateAllPagesThroughPlayers(t *testing.T) {
	env := newTestEnv(t, ResolverOptions{})

	const players = 130
	for i := 0; i < players; i++ {
		env.register(t, fmt.Sprintf("Player %03d", i))
	}
	alice := env.register(t, "Alice", "ali")
	env.register(t, "Bob", "bobby")
	env.importOK(t, "ledger23_09_26.csv", csvLedger("ali,,40", "bobby,,-40"))

	_, err := env.db.Exec("UPDATE players SET net = 999, games_up = 7, highest_net = 999")
	require.NoError(t, err)

	n, err := env.stats.RecalculateAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, players+2, n)

	require.Equal(t, 40.0, env.player(t, alice.ID).Stats.Net)

	var stale int
	require.NoError(t, env.db.QueryRow("SELECT COUNT(*) FROM players WHERE net = 999").Scan(&stale))
	require.Zero(t, stale)
}
