package service

import (
	"context"
	"fmt"

	"putr/internal/constants"
	"putr/internal/domain"
	"putr/internal/repository"

	"github.com/rs/zerolog"
)

type GameService struct {
	games  *repository.GameRepository
	stats  *repository.StatsRepository
	logger zerolog.Logger
}

func NewGameService(games *repository.GameRepository, stats *repository.StatsRepository, logger zerolog.Logger) *GameService {
	return &GameService{games: games, stats: stats, logger: logger}
}

// GameDetail is a game with its raw ledger and per-player results.
type GameDetail struct {
	Game         domain.Game
	Entries      []domain.LedgerEntry
	Participants []domain.GameParticipant
}

// ListGames returns one page of games in chronological order and the total
// game count.
func (s *GameService) ListGames(ctx context.Context, offset, limit int) ([]domain.Game, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	offset, limit = clampPage(offset, limit)
	games, err := s.games.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list games: %w", err)
	}
	total, err := s.games.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count games: %w", err)
	}
	return games, total, nil
}

func (s *GameService) GetGame(ctx context.Context, id int64) (*GameDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	game, err := s.games.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game %d: %w", id, err)
	}
	if game == nil {
		return nil, &domain.NotFoundError{Resource: "game", ID: id}
	}

	entries, err := s.games.ListLedgerEntries(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger for game %d: %w", id, err)
	}
	participants, err := s.stats.GameParticipants(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load results for game %d: %w", id, err)
	}

	return &GameDetail{Game: *game, Entries: entries, Participants: participants}, nil
}
