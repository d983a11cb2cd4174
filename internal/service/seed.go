package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"putr/internal/domain"
	"putr/internal/repository"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// seedPlayer is one entry of a roster backup. The older backup keys putr and
// player_nicknames are accepted alongside rating and nicknames.
type seedPlayer struct {
	Flag            string   `yaml:"flag"`
	Rating          string   `yaml:"rating"`
	PUTR            string   `yaml:"putr"`
	Nicknames       []string `yaml:"nicknames"`
	PlayerNicknames []string `yaml:"player_nicknames"`
}

type SeedResult struct {
	Added   int
	Skipped int
}

// SeedService loads a roster backup (YAML or JSON) of canonical players and
// their nicknames.
type SeedService struct {
	players *PlayerService
	repo    *repository.PlayerRepository
	logger  zerolog.Logger
}

func NewSeedService(players *PlayerService, repo *repository.PlayerRepository, logger zerolog.Logger) *SeedService {
	return &SeedService{players: players, repo: repo, logger: logger}
}

func (s *SeedService) LoadFile(ctx context.Context, path string) (SeedResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return SeedResult{}, fmt.Errorf("failed to open seed file %s: %w", path, err)
	}
	defer f.Close()
	return s.Load(ctx, f)
}

// Load adds every player in the backup that does not exist yet. Existing
// players are skipped and never modified.
func (s *SeedService) Load(ctx context.Context, r io.Reader) (SeedResult, error) {
	var roster map[string]seedPlayer
	if err := yaml.NewDecoder(r).Decode(&roster); err != nil && err != io.EOF {
		return SeedResult{}, &domain.ValidationError{Field: "seed", Value: "", Err: err}
	}

	names := make([]string, 0, len(roster))
	for name := range roster {
		names = append(names, name)
	}
	sort.Strings(names)

	var result SeedResult
	for _, name := range names {
		existing, err := s.repo.GetByName(ctx, name)
		if err != nil {
			return result, fmt.Errorf("failed to look up player %s: %w", name, err)
		}
		if existing != nil {
			result.Skipped++
			continue
		}

		entry := roster[name]
		rating := entry.Rating
		if rating == "" {
			rating = entry.PUTR
		}
		nicknames := append(append([]string(nil), entry.Nicknames...), entry.PlayerNicknames...)

		_, err = s.players.RegisterPlayer(ctx, RegisterPlayerInput{
			Name:      name,
			Flag:      entry.Flag,
			Rating:    domain.ParseRating(rating),
			Nicknames: nicknames,
		})
		if err != nil {
			return result, fmt.Errorf("failed to seed player %s: %w", name, err)
		}
		result.Added++
	}

	s.logger.Info().Int("added", result.Added).Int("skipped", result.Skipped).Msg("seed loaded")
	return result, nil
}
