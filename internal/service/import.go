package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"putr/internal/config"
	"putr/internal/constants"
	"putr/internal/database"
	"putr/internal/domain"
	"putr/internal/ledger"
	"putr/internal/metrics"
	"putr/internal/repository"

	"github.com/rs/zerolog"
)

// errNotCommitted rolls back a batch savepoint for a benign non-success result.
var errNotCommitted = errors.New("ledger not committed")

// BatchItem is the outcome of one file in a batch import. Exactly one of
// Report and Err is set.
type BatchItem struct {
	Filename string
	Report   *domain.ImportReport
	Err      error
}

type ImportService struct {
	db       *sql.DB
	players  *repository.PlayerRepository
	games    *repository.GameRepository
	stats    *repository.StatsRepository
	resolver *NicknameResolver
	recalc   *StatsService
	metrics  *metrics.Metrics
	prefix   string
	logger   zerolog.Logger
}

func NewImportService(
	sqlDB *sql.DB,
	players *repository.PlayerRepository,
	games *repository.GameRepository,
	stats *repository.StatsRepository,
	resolver *NicknameResolver,
	recalc *StatsService,
	m *metrics.Metrics,
	cfg *config.Config,
	logger zerolog.Logger,
) *ImportService {
	return &ImportService{
		db:       sqlDB,
		players:  players,
		games:    games,
		stats:    stats,
		resolver: resolver,
		recalc:   recalc,
		metrics:  m,
		prefix:   cfg.LedgerPrefix,
		logger:   logger,
	}
}

// ImportLedger imports one ledger file in a single transaction that is
// committed only on success. Parse failures and database errors are returned
// as errors; unknown nicknames and already imported games are results.
func (s *ImportService) ImportLedger(ctx context.Context, filename string, data []byte) (*domain.ImportReport, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ImportTimeout)
	defer cancel()

	start := time.Now()

	l, err := ledger.Parse(filename, data, s.prefix)
	if err != nil {
		s.observe(nil, err, start)
		return nil, err
	}

	var report *domain.ImportReport
	err = database.RunInTx(ctx, s.db, func(tx *sql.Tx) error {
		r, err := s.importTx(ctx, tx, l)
		if err != nil {
			return err
		}
		report = r
		if report.Result != domain.ImportSuccess {
			return errNotCommitted
		}
		return nil
	})
	if errors.Is(err, errNotCommitted) {
		err = nil
	}

	s.observe(report, err, start)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ImportService) ImportFile(ctx context.Context, path string) (*domain.ImportReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger %s: %w", path, err)
	}
	return s.ImportLedger(ctx, filepath.Base(path), data)
}

// ImportFiles imports the given files in filename order inside one outer
// transaction. Each file runs under its own savepoint, so a failing file
// rolls back only its own writes.
func (s *ImportService) ImportFiles(ctx context.Context, paths []string) ([]BatchItem, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(len(paths)+1)*constants.ImportTimeout)
	defer cancel()

	sorted := append([]string(nil), paths...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return filepath.Base(sorted[i]) < filepath.Base(sorted[j])
	})

	items := make([]BatchItem, 0, len(sorted))
	err := database.RunInTx(ctx, s.db, func(tx *sql.Tx) error {
		for i, path := range sorted {
			items = append(items, s.importBatchFile(ctx, tx, i, path))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to commit ledger batch: %w", err)
	}

	s.logger.Info().Int("files", len(items)).Msg("ledger batch imported")
	return items, nil
}

func (s *ImportService) importBatchFile(ctx context.Context, tx *sql.Tx, i int, path string) BatchItem {
	start := time.Now()
	item := BatchItem{Filename: filepath.Base(path)}

	data, err := os.ReadFile(path)
	if err != nil {
		item.Err = fmt.Errorf("failed to read ledger %s: %w", path, err)
		s.observe(nil, item.Err, start)
		return item
	}

	var report *domain.ImportReport
	err = database.Savepoint(ctx, tx, fmt.Sprintf("ledger_%d", i), func() error {
		l, err := ledger.Parse(item.Filename, data, s.prefix)
		if err != nil {
			return err
		}
		report, err = s.importTx(ctx, tx, l)
		if err != nil {
			return err
		}
		if report.Result != domain.ImportSuccess {
			return errNotCommitted
		}
		return nil
	})
	if errors.Is(err, errNotCommitted) {
		err = nil
	}

	s.observe(report, err, start)
	if err != nil {
		s.logger.Warn().Err(err).Str("filename", item.Filename).Msg("ledger import failed, continuing batch")
		item.Err = err
		return item
	}
	item.Report = report
	return item
}

// ImportDirectory imports every supported ledger file in dir whose name
// carries the configured prefix.
func (s *ImportService) ImportDirectory(ctx context.Context, dir string) ([]BatchItem, error) {
	paths, err := s.LedgerFiles(dir)
	if err != nil {
		return nil, err
	}
	return s.ImportFiles(ctx, paths)
}

// LedgerFiles lists the ledger files in dir, sorted by name.
func (s *ImportService) LedgerFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), s.prefix) || !ledger.Supported(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func (s *ImportService) importTx(ctx context.Context, tx *sql.Tx, l *ledger.Ledger) (*domain.ImportReport, error) {
	report := &domain.ImportReport{
		Filename: l.Filename,
		DateKey:  l.Key.String(),
		Rows:     len(l.Rows),
	}
	log := s.logger.With().Str("filename", l.Filename).Str("date_key", report.DateKey).Logger()

	resolver := s.resolver.WithTx(tx)
	games := s.games.WithTx(tx)
	stats := s.stats.WithTx(tx)

	// Validation pass: nothing is written unless every row resolves.
	resolved := make([]*domain.Player, len(l.Rows))
	seenMissing := make(map[string]bool)
	for i, row := range l.Rows {
		player, err := resolver.Resolve(ctx, row)
		if err != nil {
			return nil, err
		}
		if player == nil {
			if !seenMissing[row.Nickname] {
				seenMissing[row.Nickname] = true
				report.MissingNicknames = append(report.MissingNicknames, row.Nickname)
			}
			continue
		}
		resolved[i] = player
	}
	if len(report.MissingNicknames) > 0 {
		report.Result = domain.ImportMissingNicknames
		log.Warn().Strs("missing_nicknames", report.MissingNicknames).Msg("ledger has unknown nicknames")
		return report, nil
	}

	existing, err := games.GetByKey(ctx, l.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to look up game %s: %w", l.Key, err)
	}
	if existing != nil {
		report.Result = domain.ImportGameExists
		log.Info().Int64("game_id", existing.ID).Msg("game already exists, skipping")
		return report, nil
	}

	game, err := games.Create(ctx, l.Key, l.Filename)
	if errors.Is(err, domain.ErrConflict) {
		report.Result = domain.ImportGameExists
		return report, nil
	}
	if err != nil {
		return nil, err
	}

	hasEntries, err := games.HasLedgerEntries(ctx, game.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check ledger entries for game %d: %w", game.ID, err)
	}
	if hasEntries {
		report.Result = domain.ImportGameExists
		log.Info().Int64("game_id", game.ID).Msg("game already has ledger entries, skipping")
		return report, nil
	}

	// Commit pass. A player appearing on several rows gets one stats row
	// holding the sum of those rows, not just the first row's net, so the
	// game's stats still net to zero.
	var order []int64
	nets := make(map[int64]float64)
	for i, row := range l.Rows {
		player := resolved[i]
		if err := resolver.Backfill(ctx, player, row); err != nil {
			return nil, err
		}

		entry := &domain.LedgerEntry{
			GameID:         game.ID,
			PlayerID:       player.ID,
			PlayerNickname: row.Nickname,
			PlayerIDCSV:    row.ExternalID,
			SessionStartAt: row.SessionStartAt,
			SessionEndAt:   row.SessionEndAt,
			BuyIn:          row.BuyIn,
			BuyOut:         row.BuyOut,
			Stack:          row.Stack,
			Net:            row.Net,
		}
		if err := games.CreateLedgerEntry(ctx, entry); err != nil {
			return nil, err
		}

		if _, ok := nets[player.ID]; !ok {
			order = append(order, player.ID)
		}
		nets[player.ID] += row.Net
	}

	var affected []int64
	for _, playerID := range order {
		current, err := stats.Get(ctx, playerID, game.ID)
		if err != nil {
			return nil, err
		}
		if current != nil {
			continue
		}
		if _, err := stats.Create(ctx, playerID, game.ID, nets[playerID]); err != nil {
			return nil, err
		}
		affected = append(affected, playerID)
	}

	for _, playerID := range affected {
		if _, err := s.recalc.RecalculateTx(ctx, tx, playerID); err != nil {
			return nil, err
		}
	}

	report.Result = domain.ImportSuccess
	report.PlayersUpdated = len(affected)
	log.Info().
		Int64("game_id", game.ID).
		Int("rows", report.Rows).
		Int("players_updated", report.PlayersUpdated).
		Msg("ledger imported")
	return report, nil
}

func (s *ImportService) observe(report *domain.ImportReport, err error, start time.Time) {
	result := "error"
	if err == nil && report != nil {
		result = report.Result.String()
	}
	s.metrics.ObserveImport(result, time.Since(start))
}
