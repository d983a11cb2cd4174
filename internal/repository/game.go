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

// GameRepository owns games and their raw ledger entries.
type GameRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewGameRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *GameRepository {
	return &GameRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *GameRepository) WithTx(tx *sql.Tx) *GameRepository {
	return &GameRepository{
		queries: r.queries.WithTx(tx),
		db:      r.db,
		logger:  r.logger,
	}
}

func (r *GameRepository) Get(ctx context.Context, id int64) (*domain.Game, error) {
	return r.one(r.queries.GetGame(ctx, id))
}

func (r *GameRepository) GetByKey(ctx context.Context, key domain.GameKey) (*domain.Game, error) {
	return r.one(r.queries.GetGameByDateKey(ctx, key.String()))
}

func (r *GameRepository) one(game db.Game, err error) (*domain.Game, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	g, err := toDomainGame(game)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GameRepository) Create(ctx context.Context, key domain.GameKey, ledgerFilename string) (*domain.Game, error) {
	id, err := r.queries.CreateGame(ctx, db.CreateGameParams{
		DateKey:        key.String(),
		PlayedOn:       key.Date().Format("2006-01-02"),
		Seq:            int64(key.Seq),
		LedgerFilename: nullString(ledgerFilename),
	})
	if isUniqueViolation(err) {
		return nil, &domain.ConflictError{Resource: "game", Value: key.String(), Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create game %s: %w", key, err)
	}

	r.logger.Debug().Int64("game_id", id).Str("date_key", key.String()).Msg("game created")
	return r.Get(ctx, id)
}

// List returns games in chronological order.
func (r *GameRepository) List(ctx context.Context, offset, limit int) ([]domain.Game, error) {
	games, err := r.queries.ListGames(ctx, db.ListGamesParams{
		Limit:  int64(limit),
		Offset: int64(offset),
	})
	if err != nil {
		return nil, err
	}

	result := make([]domain.Game, 0, len(games))
	for _, g := range games {
		game, err := toDomainGame(g)
		if err != nil {
			return nil, err
		}
		result = append(result, game)
	}
	return result, nil
}

func (r *GameRepository) Count(ctx context.Context) (int64, error) {
	return r.queries.CountGames(ctx)
}

func (r *GameRepository) HasLedgerEntries(ctx context.Context, gameID int64) (bool, error) {
	n, err := r.queries.CountLedgerEntriesByGame(ctx, gameID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GameRepository) CreateLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	row, err := r.queries.CreateLedgerEntry(ctx, db.CreateLedgerEntryParams{
		GameID:         entry.GameID,
		PlayerID:       entry.PlayerID,
		PlayerNickname: entry.PlayerNickname,
		PlayerIDCsv:    entry.PlayerIDCSV,
		SessionStartAt: nullStringPtr(entry.SessionStartAt),
		SessionEndAt:   nullStringPtr(entry.SessionEndAt),
		BuyIn:          entry.BuyIn,
		BuyOut:         entry.BuyOut,
		Stack:          entry.Stack,
		Net:            entry.Net,
	})
	if err != nil {
		return fmt.Errorf("failed to create ledger entry for %s: %w", entry.PlayerNickname, err)
	}
	entry.ID = row.ID
	return nil
}

func (r *GameRepository) ListLedgerEntries(ctx context.Context, gameID int64) ([]domain.LedgerEntry, error) {
	rows, err := r.queries.ListLedgerEntriesByGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.LedgerEntry, len(rows))
	for i, e := range rows {
		result[i] = domain.LedgerEntry{
			ID:             e.ID,
			GameID:         e.GameID,
			PlayerID:       e.PlayerID,
			PlayerNickname: e.PlayerNickname,
			PlayerIDCSV:    e.PlayerIDCsv,
			SessionStartAt: stringPtr(e.SessionStartAt),
			SessionEndAt:   stringPtr(e.SessionEndAt),
			BuyIn:          e.BuyIn,
			BuyOut:         e.BuyOut,
			Stack:          e.Stack,
			Net:            e.Net,
		}
	}
	return result, nil
}

func toDomainGame(g db.Game) (domain.Game, error) {
	key, err := domain.ParseGameKey(g.DateKey)
	if err != nil {
		return domain.Game{}, fmt.Errorf("game %d has a corrupt date key: %w", g.ID, err)
	}
	return domain.Game{
		ID:             g.ID,
		Key:            key,
		LedgerFilename: g.LedgerFilename.String,
		CreatedAt:      g.CreatedAt,
	}, nil
}
