package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"putr/internal/constants"
	"putr/internal/database"
	"putr/internal/domain"
	"putr/internal/repository"

	"github.com/rs/zerolog"
)

type PlayerService struct {
	db     *sql.DB
	repo   *repository.PlayerRepository
	stats  *repository.StatsRepository
	logger zerolog.Logger
}

func NewPlayerService(sqlDB *sql.DB, repo *repository.PlayerRepository, stats *repository.StatsRepository, logger zerolog.Logger) *PlayerService {
	return &PlayerService{db: sqlDB, repo: repo, stats: stats, logger: logger}
}

// RegisterPlayerInput describes a new canonical player and its aliases.
type RegisterPlayerInput struct {
	Name      string
	Flag      string
	Rating    domain.Rating
	Nicknames []string
}

func (s *PlayerService) GetPlayer(ctx context.Context, id int64) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	player, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	if player == nil {
		return nil, &domain.NotFoundError{Resource: "player", ID: id}
	}
	return player, nil
}

// ListPlayers returns one page of players and the total player count.
func (s *PlayerService) ListPlayers(ctx context.Context, offset, limit int) ([]domain.Player, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	offset, limit = clampPage(offset, limit)
	players, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list players: %w", err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count players: %w", err)
	}
	return players, total, nil
}

// RegisterPlayer creates a player and its nicknames atomically.
func (s *PlayerService) RegisterPlayer(ctx context.Context, in RegisterPlayerInput) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Value: in.Name, Err: errors.New("must not be empty")}
	}
	nicknames, err := cleanNicknames(in.Nicknames)
	if err != nil {
		return nil, err
	}

	var player *domain.Player
	err = database.RunInTx(ctx, s.db, func(tx *sql.Tx) error {
		repo := s.repo.WithTx(tx)
		p, err := repo.Create(ctx, name, strings.TrimSpace(in.Flag), in.Rating)
		if err != nil {
			return err
		}
		for _, nickname := range nicknames {
			if _, err := repo.AddNickname(ctx, p, nickname); err != nil {
				return err
			}
		}
		player = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("player_id", player.ID).Str("name", player.Name).Int("nicknames", len(nicknames)).Msg("player registered")
	return player, nil
}

func (s *PlayerService) AddNickname(ctx context.Context, playerID int64, nickname string) (*domain.PlayerNickname, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	clean := strings.TrimSpace(nickname)
	if clean == "" {
		return nil, &domain.ValidationError{Field: "nickname", Value: nickname, Err: errors.New("must not be empty")}
	}

	player, err := s.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	n, err := s.repo.AddNickname(ctx, player, clean)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("player_id", playerID).Str("nickname", clean).Msg("nickname added")
	return n, nil
}

func (s *PlayerService) ListNicknames(ctx context.Context, playerID int64) ([]domain.PlayerNickname, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if _, err := s.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}
	return s.repo.ListNicknames(ctx, playerID)
}

// SetRating replaces the manually curated rating. Aggregates are untouched.
func (s *PlayerService) SetRating(ctx context.Context, playerID int64, rating domain.Rating) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	ok, err := s.repo.UpdateRating(ctx, playerID, rating)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &domain.NotFoundError{Resource: "player", ID: playerID}
	}
	s.logger.Info().Int64("player_id", playerID).Str("rating", rating.String()).Msg("rating updated")
	return s.GetPlayer(ctx, playerID)
}

// GameHistory returns the player's games in chronological order with the
// running cumulative net after each one.
func (s *PlayerService) GameHistory(ctx context.Context, playerID int64) ([]domain.HistoryPoint, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if _, err := s.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}
	results, err := s.stats.PlayerResults(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history for player %d: %w", playerID, err)
	}
	return domain.Timeline(results), nil
}

func cleanNicknames(in []string) ([]string, error) {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, n := range in {
		clean := strings.TrimSpace(n)
		if clean == "" {
			return nil, &domain.ValidationError{Field: "nickname", Value: n, Err: errors.New("must not be empty")}
		}
		if seen[clean] {
			continue
		}
		seen[clean] = true
		out = append(out, clean)
	}
	return out, nil
}

func clampPage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	switch {
	case limit <= 0:
		limit = constants.DefaultPageSize
	case limit > constants.MaxPageSize:
		limit = constants.MaxPageSize
	}
	return offset, limit
}
