package service

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"putr/internal/config"
	"putr/internal/database"
	"putr/internal/db"
	"putr/internal/domain"
	"putr/internal/metrics"
	"putr/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db       *sql.DB
	metrics  *metrics.Metrics
	repo     *repository.PlayerRepository
	gameRepo *repository.GameRepository
	players  *PlayerService
	games    *GameService
	stats    *StatsService
	imports  *ImportService
	seed     *SeedService
}

func newTestEnv(t *testing.T, opts ResolverOptions) *testEnv {
	t.Helper()

	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "putr.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	logger := zerolog.Nop()
	queries := db.New(sqlDB)
	m := metrics.New()
	cfg := &config.Config{LedgerPrefix: "ledger"}

	playerRepo := repository.NewPlayerRepository(sqlDB, queries, logger)
	gameRepo := repository.NewGameRepository(sqlDB, queries, logger)
	statsRepo := repository.NewStatsRepository(sqlDB, queries, logger)

	statsSvc := NewStatsService(sqlDB, playerRepo, statsRepo, m, logger)
	resolver := NewNicknameResolver(playerRepo, opts, logger)
	playerSvc := NewPlayerService(sqlDB, playerRepo, statsRepo, logger)

	return &testEnv{
		db:       sqlDB,
		metrics:  m,
		repo:     playerRepo,
		gameRepo: gameRepo,
		players:  playerSvc,
		games:    NewGameService(gameRepo, statsRepo, logger),
		stats:    statsSvc,
		imports:  NewImportService(sqlDB, playerRepo, gameRepo, statsRepo, resolver, statsSvc, m, cfg, logger),
		seed:     NewSeedService(playerSvc, playerRepo, logger),
	}
}

func (e *testEnv) register(t *testing.T, name string, nicknames ...string) *domain.Player {
	t.Helper()
	p, err := e.players.RegisterPlayer(context.Background(), RegisterPlayerInput{
		Name:      name,
		Rating:    domain.Rated(0),
		Nicknames: nicknames,
	})
	require.NoError(t, err)
	return p
}

func (e *testEnv) player(t *testing.T, id int64) *domain.Player {
	t.Helper()
	p, err := e.players.GetPlayer(context.Background(), id)
	require.NoError(t, err)
	return p
}

func (e *testEnv) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, e.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

// csvLedger builds a ledger from "nickname,player_id,net" lines.
func csvLedger(lines ...string) []byte {
	return []byte("player_nickname,player_id,net\n" + strings.Join(lines, "\n") + "\n")
}

func (e *testEnv) importOK(t *testing.T, filename string, data []byte) *domain.ImportReport {
	t.Helper()
	report, err := e.imports.ImportLedger(context.Background(), filename, data)
	require.NoError(t, err)
	require.Equal(t, domain.ImportSuccess, report.Result, "import %s", filename)
	return report
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
