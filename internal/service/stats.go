package service

import (
	"context"
	"database/sql"
	"fmt"

	"putr/internal/constants"
	"putr/internal/database"
	"putr/internal/domain"
	"putr/internal/metrics"
	"putr/internal/repository"

	"github.com/rs/zerolog"
)

// StatsService rebuilds player aggregates from their stored game results.
type StatsService struct {
	db      *sql.DB
	players *repository.PlayerRepository
	stats   *repository.StatsRepository
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewStatsService(
	sqlDB *sql.DB,
	players *repository.PlayerRepository,
	stats *repository.StatsRepository,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *StatsService {
	return &StatsService{db: sqlDB, players: players, stats: stats, metrics: m, logger: logger}
}

// Recalculate rebuilds one player's aggregates in its own transaction.
func (s *StatsService) Recalculate(ctx context.Context, playerID int64) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var player *domain.Player
	err := database.RunInTx(ctx, s.db, func(tx *sql.Tx) error {
		p, err := s.players.WithTx(tx).Get(ctx, playerID)
		if err != nil {
			return err
		}
		if p == nil {
			return &domain.NotFoundError{Resource: "player", ID: playerID}
		}

		agg, err := s.RecalculateTx(ctx, tx, playerID)
		if err != nil {
			return err
		}
		p.Stats = agg
		player = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return player, nil
}

// RecalculateTx rebuilds one player's aggregates inside tx. Rating is never
// touched.
func (s *StatsService) RecalculateTx(ctx context.Context, tx *sql.Tx, playerID int64) (domain.Aggregates, error) {
	results, err := s.stats.WithTx(tx).PlayerResults(ctx, playerID)
	if err != nil {
		return domain.Aggregates{}, fmt.Errorf("failed to load results for player %d: %w", playerID, err)
	}

	agg := domain.ReplayAggregates(results)
	if err := s.players.WithTx(tx).UpdateAggregates(ctx, playerID, agg); err != nil {
		return domain.Aggregates{}, err
	}

	s.metrics.ObserveRecalculation()
	s.logger.Debug().
		Int64("player_id", playerID).
		Int("games", len(results)).
		Float64("net", agg.Net).
		Msg("player aggregates recalculated")
	return agg, nil
}

// RecalculateAll walks every player page by page and returns how many were
// recalculated.
func (s *StatsService) RecalculateAll(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RecalcTimeout)
	defer cancel()

	count := 0
	for offset := 0; ; offset += constants.DBBatchSize {
		page, err := s.players.List(ctx, offset, constants.DBBatchSize)
		if err != nil {
			return count, fmt.Errorf("failed to list players at offset %d: %w", offset, err)
		}

		for _, p := range page {
			if p.ID == 0 {
				s.logger.Warn().Str("name", p.Name).Msg("skipping player without id")
				continue
			}
			err := database.RunInTx(ctx, s.db, func(tx *sql.Tx) error {
				_, err := s.RecalculateTx(ctx, tx, p.ID)
				return err
			})
			if err != nil {
				return count, err
			}
			count++
		}

		if len(page) < constants.DBBatchSize {
			break
		}
	}

	s.logger.Info().Int("players", count).Msg("recalculated all players")
	return count, nil
}
