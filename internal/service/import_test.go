package service

import (
	"context"
	"fmt"
	"math"
	"testing"

	"putr/internal/domain"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestImportLedgerSuccess(t *testing.T) {
	env := newTestEnv(t, ResolverOptions{})
	alice := env.register(t, "Alice", "ali")
	bob := env.register(t, "Bob", "bobby")

	report := env.importOK(t, "ledger23_09_26.csv", csvLedger("ali,a1,150", "bobby,b1,-150"))
	require.Equal(t, "23_09_26", report.DateKey)
	require.Equal(t, "ledger23_09_26.csv", report.Filename)
	require.Equal(t, 2, report.Rows)
	require.Equal(t, 2, report.PlayersUpdated)
	require.Empty(t, report.MissingNicknames)

	require.Equal(t, 150.0, env.player(t, alice.ID).Stats.Net)
	require.Equal(t, 1, env.player(t, alice.ID).Stats.GamesUp)
	require.Equal(t, -150.0, env.player(t, bob.ID).Stats.Net)
	require.Equal(t, 1, env.player(t, bob.ID).Stats.GamesDown)

	require.Equal(t, 1, env.count(t, "games"))
	require.Equal(t, 2, env.count(t, "ledger_entries"))
	require.Equal(t, 2, env.count(t, "player_game_stats"))
}

func TestImportLedgerIsIdempotent(t *testing.T) {
	env := newTestEnv(t, ResolverOptions{})
	alice := env.register(t, "Alice", "ali")
	env.register(t, "Bob", "bobby")
	data := csvLedger("ali,a1,150", "bobby,b1,-150")

	env.importOK(t, "ledger23_09_26.csv", data)
	before := env.player(t, alice.ID)

	report, err := env.imports.ImportLedger(context.Background(), "ledger23_09_26.csv", data)
	require.NoError(t, err)
	require.Equal(t, domain.ImportGameExists, report.Result)

	require.Equal(t, 1, env.count(t, "games"))
	require.Equal(t, 2, env.count(t, "ledger_entries"))
	require.Equal(t, before.Stats, env.player(t, alice.ID).Stats)

	count, err := testutil.GatherAndCount(env.metrics.Registry(), "putr_ledger_imports_total")
	require.NoError(t, err)
	require.Equal(t, 2, count, "one series for success and one for game_exists")
}

func TestImportLedgerBareGameIsSkipMarker(t *testing.T) {
	env := newTestEnv(t, ResolverOptions{})
	alice := env.register(t, "Alice", "ali")
	env.register(t, "Bob", "bobby")

	key, err := domain.ParseGameKey("23_09_26")
	require.NoError(t, err)
	_, err = env.gameRepo.Create(context.Background(), key, "")
	require.NoError(t, err)

	report, err := env.imports.ImportLedger(context.Background(), "ledger23_09_26.csv",
		csvLedger("ali,a1,150", "bobby,b1,-150"))
	require.NoError(t, err)
	require.Equal(t, domain.ImportGameExists, report.Result)

	require.Equal(t, 1, env.count(t, "games"))
	require.Equal(t, 0, env.count(t, "ledger_entries"))
	require.Equal(t, 0, env.count(t, "player_game_stats"))
	require.Equal(t, domain.Aggregates{}, env.player(t, alice.ID).Stats)
}

func TestImportLedgerWithUnknownNicknameWritesNothing(t *testing.T) {
	env := newTestEnv(t, ResolverOptions{BackfillExternalID: true})
	alice := env.register(t, "Alice", "ali")

	report, err := env.imports.ImportLedger(context.Background(), "ledger23_09_26.csv",
		csvLedger("ali,a1,150", "stranger,s1,-100", "ghost,g1,-50", "stranger,s1,0"))
	require.NoError(t, err)
	require.Equal(t, domain.ImportMissingNicknames, report.Result)
	require.Equal(t, []string{"stranger", "ghost"}, report.MissingNicknames)

	require.Equal(t, 0, env.count(t, "games"))
	require.Equal(t, 0, env.count(t, "ledger_entries"))
	require.Equal(t, 0, env.count(t, "player_game_stats"))

	got := env.player(t, alice.ID)
	require.Equal(t, domain.Aggregates{}, got.Stats)
	require.Empty(t, got.ExternalID, "external id must not be backfilled by a rejected ledger")
}

func TestImportLedgerFatalErrors(t *testing.T) {
	env := newTestEnv(t, ResolverOptions{})
	env.register(t, "Alice", "ali")

	tests := []struct {
		name     string
		filename string
		data     []byte
	}{
		{name: "bad date key", filename: "ledgerinvalid.csv", data: csvLedger("ali,a1,10")},
		{name: "two part key", filename: "ledger23_09.csv", data: csvLedger("ali,a1,10")},
		{name: "malformed amount", filename: "ledger23_09_26.csv", data: csvLedger("ali,a1,ten")},
		{name: "infinite amount", filename: "ledger23_09_26.csv", data: csvLedger("ali,a1,inf")},
		{name: "negative infinite amount", filename: "ledger23_09_26.csv", data: csvLedger("ali,a1,-Infinity")},
		{name: "nan amount", filename: "ledger23_09_26.csv", data: csvLedger("ali,a1,NaN")},
		{name: "hex amount", filename: "ledger23_09_26.csv", data: csvLedger("ali,a1,0x1p4")},
		{name: "twentieth century key", filename: "ledger1999_01_01.csv", data: csvLedger("ali,a1,10")},
		{name: "no rows", filename: "ledger23_09_26.csv", data: csvLedger()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := env.imports.ImportLedger(context.Background(), tt.filename, tt.data)
			require.ErrorIs(t, err, domain.ErrValidation)
			require.Nil(t, report)
			require.Equal(t, 0, env.count(t, "games"))
		})
	}
}

func TestImportLedgerRollingExtrema(t *testing.T) {
	env := newTestEnv(t, ResolverOptions{})
	alice := env.register(t, "Alice", "ali")
	env.register(t, "Bob", "bobby")

	env.importOK(t, "ledger23_09_26.csv", csvLedger("ali,,-100", "bobby,,100"))
	env.importOK(t, "ledger23_09_27.csv", csvLedger("ali,,200", "bobby,,-200"))
	env.importOK(t, "ledger23_09_28.csv", csvLedger("ali,,-50", "bobby,,50"))

	got := env.player(t, alice.ID).Stats
	require.Equal(t, 50.0, got.Net)
	require.Equal(t, 100.0, got.HighestNet)
	require.Equal(t, -100.0, got.LowestNet)
	require.Equal(t, 200.0, got.BiggestWin)
	require.Equal(t, -100.0, got.BiggestLoss)
	require.Equal(t, 1, got.GamesUp)
	require.Equal(t, 2, got.GamesDown)
}

func TestImportLedgerSameDaySequencing(t *testing.T) {
	env := newTestEnv(t, ResolverOptions{})
	alice := env.register(t, "Alice", "ali")
	env.register(t, "Bob", "bobby")

	// Imported out of order on purpose.
	env.importOK(t, "ledger23_10_07(2).csv", csvLedger("ali,,-75", "bobby,,75"))
	env.importOK(t, "ledger23_10_07.csv", csvLedger("ali,,50", "bobby,,-50"))
	env.importOK(t, "ledger23_10_07(1).csv", csvLedger("ali,,100", "bobby,,-100"))

	got := env.player(t, alice.ID).Stats
	require.Equal(t, 75.0, got.Net)
	require.Equal(t, 150.0, got.HighestNet)
	require.Equal(t, 0.0, got.LowestNet)
	require.Equal(t, 2, got.GamesUp)
	require.Equal(t, 1, got.GamesDown)
}

func TestImportLedgerDuplicatePlayerRows(t *testing.T) {
	env := newTestEnv(t, ResolverOptions{})
	alice := env.register(t, "Alice", "ali", "alice2")
	env.register(t, "Bob", "bobby")

	report := env.importOK(t, "ledger23_09_26.csv", csvLedger("ali,a1,-20", "alice2,a2,50", "bobby,b1,-30"))
	require.Equal(t, 3, report.Rows)
	require.Equal(t, 2, report.PlayersUpdated)

	require.Equal(t, 3, env.count(t, "ledger_entries"))
	require.Equal(t, 2, env.count(t, "player_game_stats"))

	got := env.player(t, alice.ID).Stats
	require.Equal(t, 30.0, got.Net)
	require.Equal(t, 1, got.GamesUp)
}

func TestImportLedgerZeroSum(t *testing.T) {
	env := newTestEnv(t, ResolverOptions{})
	faker := gofakeit.New(42)

	var ids []int64
	var lines []string
	var sum float64
	n := faker.Number(3, 9)
	for i := 0; i < n; i++ {
		nickname := fmt.Sprintf("%s_%d", faker.Username(), i)
		ids = append(ids, env.register(t, fmt.Sprintf("Player %d", i), nickname).ID)

		net := math.Round(faker.Float64Range(-500, 500)*100) / 100
		if i == n-1 {
			net = -sum
		}
		sum += net
		lines = append(lines, fmt.Sprintf("%s,%s,%v", nickname, faker.UUID(), net))
	}

	env.importOK(t, "ledger24_01_05.csv", csvLedger(lines...))

	var total float64
	for _, id := range ids {
		total += env.player(t, id).Stats.Net
	}
	require.InDelta(t, 0, total, 1e-6)
}

func TestImportLedgerBackfillsExternalID(t *testing.T) {
	env := newTestEnv(t, ResolverOptions{BackfillExternalID: true})
	alice := env.register(t, "Alice", "ali")
	env.register(t, "Bob", "bobby")

	env.importOK(t, "ledger23_09_26.csv", csvLedger("ali,first-id,10", "bobby,,-10"))
	require.Equal(t, "first-id", env.player(t, alice.ID).ExternalID)

	env.importOK(t, "ledger23_09_27.csv", csvLedger("ali,second-id,10", "bobby,,-10"))
	require.Equal(t, "first-id", env.player(t, alice.ID).ExternalID)
}

func TestImportLedgerWithoutBackfill(t *testing.T) {
	env := newTestEnv(t, ResolverOptions{})
	alice := env.register(t, "Alice", "ali")

	env.importOK(t, "ledger23_09_26.csv", csvLedger("ali,first-id,0"))
	require.Empty(t, env.player(t, alice.ID).ExternalID)
}

func TestImportLedgerFallbackMatching(t *testing.T) {
	t.Run("strict by default", func(t *testing.T) {
		env := newTestEnv(t, ResolverOptions{})
		env.register(t, "Alice")

		report, err := env.imports.ImportLedger(context.Background(), "ledger23_09_26.csv", csvLedger("Alice,a1,0"))
		require.NoError(t, err)
		require.Equal(t, domain.ImportMissingNicknames, report.Result)
	})

	t.Run("canonical name", func(t *testing.T) {
		env := newTestEnv(t, ResolverOptions{MatchByName: true})
		env.register(t, "Alice")

		env.importOK(t, "ledger23_09_26.csv", csvLedger("Alice,a1,0"))
	})

	t.Run("external id", func(t *testing.T) {
		env := newTestEnv(t, ResolverOptions{MatchByExternalID: true, BackfillExternalID: true})
		alice := env.register(t, "Alice", "ali")
		env.register(t, "Bob", "bobby")

		env.importOK(t, "ledger23_09_26.csv", csvLedger("ali,a1,5", "bobby,,-5"))
		env.importOK(t, "ledger23_09_27.csv", csvLedger("new_alias,a1,7", "bobby,,-7"))

		require.Equal(t, 12.0, env.player(t, alice.ID).Stats.Net)
	})
}

func TestImportDirectoryIsolatesFailures(t *testing.T) {
	env := newTestEnv(t, ResolverOptions{})
	env.register(t, "Alice", "ali")
	env.register(t, "Bob", "bobby")

	dir := t.TempDir()
	writeFile(t, dir, "ledger23_09_26.csv", csvLedger("ali,,10", "bobby,,-10"))
	writeFile(t, dir, "ledger23_09_27.csv", csvLedger("ali,,10", "stranger,,-10"))
	writeFile(t, dir, "ledger23_09_28.csv", csvLedger("ali,,oops"))
	writeFile(t, dir, "ledger23_09_29.csv", csvLedger("ali,,-5", "bobby,,5"))
	writeFile(t, dir, "notes.txt", []byte("not a ledger"))
	writeFile(t, dir, "roster.csv", []byte("not a ledger either"))

	items, err := env.imports.ImportDirectory(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, items, 4)

	require.Equal(t, "ledger23_09_26.csv", items[0].Filename)
	require.NoError(t, items[0].Err)
	require.Equal(t, domain.ImportSuccess, items[0].Report.Result)

	require.NoError(t, items[1].Err)
	require.Equal(t, domain.ImportMissingNicknames, items[1].Report.Result)

	require.ErrorIs(t, items[2].Err, domain.ErrValidation)
	require.Nil(t, items[2].Report)

	require.NoError(t, items[3].Err)
	require.Equal(t, domain.ImportSuccess, items[3].Report.Result)

	require.Equal(t, 2, env.count(t, "games"))
	require.Equal(t, 4, env.count(t, "ledger_entries"))

	again, err := env.imports.ImportDirectory(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, domain.ImportGameExists, again[0].Report.Result)
	require.Equal(t, domain.ImportGameExists, again[3].Report.Result)
	require.Equal(t, 4, env.count(t, "ledger_entries"))
}

func TestImportFile(t *testing.T) {
	env := newTestEnv(t, ResolverOptions{})
	env.register(t, "Alice", "ali")

	path := writeFile(t, t.TempDir(), "ledger23_09_26.csv", csvLedger("ali,,0"))
	report, err := env.imports.ImportFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, domain.ImportSuccess, report.Result)

	_, err = env.imports.ImportFile(context.Background(), path+".missing")
	require.Error(t, err)
}
