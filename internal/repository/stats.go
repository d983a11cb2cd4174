package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"putr/internal/db"
	"putr/internal/domain"

	"github.com/rs/zerolog"
)

// StatsRepository owns per-player per-game results.
type StatsRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewStatsRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *StatsRepository {
	return &StatsRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *StatsRepository) WithTx(tx *sql.Tx) *StatsRepository {
	return &StatsRepository{
		queries: r.queries.WithTx(tx),
		db:      r.db,
		logger:  r.logger,
	}
}

func (r *StatsRepository) Get(ctx context.Context, playerID, gameID int64) (*domain.PlayerGameStats, error) {
	row, err := r.queries.GetPlayerGameStats(ctx, db.GetPlayerGameStatsParams{
		PlayerID: playerID,
		GameID:   gameID,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.PlayerGameStats{ID: row.ID, PlayerID: row.PlayerID, GameID: row.GameID, Net: row.Net}, nil
}

func (r *StatsRepository) Create(ctx context.Context, playerID, gameID int64, net float64) (*domain.PlayerGameStats, error) {
	row, err := r.queries.CreatePlayerGameStats(ctx, db.CreatePlayerGameStatsParams{
		PlayerID: playerID,
		GameID:   gameID,
		Net:      net,
	})
	if isUniqueViolation(err) {
		return nil, &domain.ConflictError{
			Resource: "player game stats",
			Value:    fmt.Sprintf("player %d game %d", playerID, gameID),
			Err:      err,
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create stats for player %d game %d: %w", playerID, gameID, err)
	}
	return &domain.PlayerGameStats{ID: row.ID, PlayerID: row.PlayerID, GameID: row.GameID, Net: row.Net}, nil
}

// PlayerResults loads every game result of a player, unordered.
func (r *StatsRepository) PlayerResults(ctx context.Context, playerID int64) ([]domain.GameResult, error) {
	rows, err := r.queries.ListPlayerGameStatsWithGames(ctx, playerID)
	if err != nil {
		return nil, err
	}

	results := make([]domain.GameResult, 0, len(rows))
	for _, row := range rows {
		key, err := domain.ParseGameKey(row.DateKey)
		if err != nil {
			r.logger.Error().Err(err).Int64("game_id", row.GameID).Msg("stored game has an invalid date key")
			return nil, fmt.Errorf("game %d has a corrupt date key: %w", row.GameID, err)
		}
		results = append(results, domain.GameResult{GameID: row.GameID, Key: key, Net: row.Net})
	}
	return results, nil
}

// GameParticipants lists every player's result in a game, biggest winner first.
func (r *StatsRepository) GameParticipants(ctx context.Context, gameID int64) ([]domain.GameParticipant, error) {
	rows, err := r.queries.ListGameResults(ctx, gameID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.GameParticipant, len(rows))
	for i, row := range rows {
		result[i] = domain.GameParticipant{PlayerID: row.PlayerID, PlayerName: row.PlayerName, Net: row.Net}
	}
	return result, nil
}
