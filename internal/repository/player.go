package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"putr/internal/db"
	"putr/internal/domain"

	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// WithTx returns a copy of the repository bound to tx.
func (r *PlayerRepository) WithTx(tx *sql.Tx) *PlayerRepository {
	return &PlayerRepository{
		queries: r.queries.WithTx(tx),
		db:      r.db,
		logger:  r.logger,
	}
}

func (r *PlayerRepository) Get(ctx context.Context, id int64) (*domain.Player, error) {
	return r.one(r.queries.GetPlayer(ctx, id))
}

func (r *PlayerRepository) GetByName(ctx context.Context, name string) (*domain.Player, error) {
	return r.one(r.queries.GetPlayerByName(ctx, name))
}

func (r *PlayerRepository) GetByNickname(ctx context.Context, nickname string) (*domain.Player, error) {
	return r.one(r.queries.GetPlayerByNickname(ctx, nickname))
}

func (r *PlayerRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.Player, error) {
	if externalID == "" {
		return nil, nil
	}
	return r.one(r.queries.GetPlayerByExternalID(ctx, nullString(externalID)))
}

func (r *PlayerRepository) one(player db.Player, err error) (*domain.Player, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p := toDomainPlayer(player)
	return &p, nil
}

func (r *PlayerRepository) List(ctx context.Context, offset, limit int) ([]domain.Player, error) {
	players, err := r.queries.ListPlayers(ctx, db.ListPlayersParams{
		Limit:  int64(limit),
		Offset: int64(offset),
	})
	if err != nil {
		return nil, err
	}

	result := make([]domain.Player, len(players))
	for i, p := range players {
		result[i] = toDomainPlayer(p)
	}
	return result, nil
}

func (r *PlayerRepository) Count(ctx context.Context) (int64, error) {
	return r.queries.CountPlayers(ctx)
}

func (r *PlayerRepository) Create(ctx context.Context, name, flag string, rating domain.Rating) (*domain.Player, error) {
	id, err := r.queries.CreatePlayer(ctx, db.CreatePlayerParams{
		Name:   name,
		Flag:   flag,
		Rating: rating.String(),
	})
	if isUniqueViolation(err) {
		return nil, &domain.ConflictError{Resource: "player", Value: name, Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create player %s: %w", name, err)
	}

	r.logger.Debug().Int64("player_id", id).Str("name", name).Msg("player created")
	return r.Get(ctx, id)
}

func (r *PlayerRepository) AddNickname(ctx context.Context, player *domain.Player, nickname string) (*domain.PlayerNickname, error) {
	row, err := r.queries.CreateNickname(ctx, db.CreateNicknameParams{
		Nickname:   nickname,
		PlayerName: player.Name,
		PlayerID:   player.ID,
	})
	if isUniqueViolation(err) {
		return nil, &domain.ConflictError{Resource: "nickname", Value: nickname, Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add nickname %s: %w", nickname, err)
	}

	n := toDomainNickname(row)
	return &n, nil
}

func (r *PlayerRepository) ListNicknames(ctx context.Context, playerID int64) ([]domain.PlayerNickname, error) {
	rows, err := r.queries.ListNicknamesByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.PlayerNickname, len(rows))
	for i, n := range rows {
		result[i] = toDomainNickname(n)
	}
	return result, nil
}

func (r *PlayerRepository) UpdateAggregates(ctx context.Context, playerID int64, agg domain.Aggregates) error {
	err := r.queries.UpdatePlayerAggregates(ctx, db.UpdatePlayerAggregatesParams{
		Net:         agg.Net,
		GamesUp:     int64(agg.GamesUp),
		GamesDown:   int64(agg.GamesDown),
		AverageNet:  agg.AverageNet,
		BiggestWin:  agg.BiggestWin,
		BiggestLoss: agg.BiggestLoss,
		HighestNet:  agg.HighestNet,
		LowestNet:   agg.LowestNet,
		UpdatedAt:   time.Now().UTC(),
		ID:          playerID,
	})
	if err != nil {
		r.logger.Error().Err(err).Int64("player_id", playerID).Msg("failed to update player aggregates")
		return fmt.Errorf("failed to update aggregates for player %d: %w", playerID, err)
	}
	return nil
}

// UpdateRating reports false when no player has the given id.
func (r *PlayerRepository) UpdateRating(ctx context.Context, playerID int64, rating domain.Rating) (bool, error) {
	n, err := r.queries.UpdatePlayerRating(ctx, db.UpdatePlayerRatingParams{
		Rating:    rating.String(),
		UpdatedAt: time.Now().UTC(),
		ID:        playerID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to update rating for player %d: %w", playerID, err)
	}
	return n > 0, nil
}

// BackfillExternalID sets the player's external id only when it is still
// empty. It reports whether a write happened.
func (r *PlayerRepository) BackfillExternalID(ctx context.Context, playerID int64, externalID string) (bool, error) {
	if externalID == "" {
		return false, nil
	}
	n, err := r.queries.SetPlayerExternalIDIfEmpty(ctx, db.SetPlayerExternalIDIfEmptyParams{
		ExternalID: nullString(externalID),
		UpdatedAt:  time.Now().UTC(),
		ID:         playerID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to backfill external id for player %d: %w", playerID, err)
	}
	if n > 0 {
		r.logger.Debug().Int64("player_id", playerID).Str("external_id", externalID).Msg("external id backfilled")
	}
	return n > 0, nil
}

func toDomainPlayer(p db.Player) domain.Player {
	return domain.Player{
		ID:         p.ID,
		Name:       p.Name,
		ExternalID: p.ExternalID.String,
		Flag:       p.Flag,
		Rating:     domain.ParseRating(p.Rating),
		Stats: domain.Aggregates{
			Net:         p.Net,
			GamesUp:     int(p.GamesUp),
			GamesDown:   int(p.GamesDown),
			AverageNet:  p.AverageNet,
			BiggestWin:  p.BiggestWin,
			BiggestLoss: p.BiggestLoss,
			HighestNet:  p.HighestNet,
			LowestNet:   p.LowestNet,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toDomainNickname(n db.PlayerNickname) domain.PlayerNickname {
	return domain.PlayerNickname{
		ID:         n.ID,
		Nickname:   n.Nickname,
		PlayerName: n.PlayerName,
		PlayerID:   n.PlayerID,
	}
}
