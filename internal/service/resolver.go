package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"putr/internal/config"
	"putr/internal/domain"
	"putr/internal/ledger"
	"putr/internal/repository"

	"github.com/rs/zerolog"
)

// ResolverOptions toggles the optional matching rules layered on top of the
// exact alias lookup.
type ResolverOptions struct {
	MatchByName        bool
	MatchByExternalID  bool
	BackfillExternalID bool
}

func ResolverOptionsFromConfig(cfg *config.Config) ResolverOptions {
	return ResolverOptions{
		MatchByName:        cfg.MatchByName,
		MatchByExternalID:  cfg.MatchByExternalID,
		BackfillExternalID: cfg.BackfillExternalID,
	}
}

// NicknameResolver maps ledger rows to existing players. It never creates
// players.
type NicknameResolver struct {
	players *repository.PlayerRepository
	opts    ResolverOptions
	logger  zerolog.Logger
}

func NewNicknameResolver(players *repository.PlayerRepository, opts ResolverOptions, logger zerolog.Logger) *NicknameResolver {
	return &NicknameResolver{players: players, opts: opts, logger: logger}
}

func (r *NicknameResolver) WithTx(tx *sql.Tx) *NicknameResolver {
	return &NicknameResolver{players: r.players.WithTx(tx), opts: r.opts, logger: r.logger}
}

// Resolve returns the player a row belongs to, or nil when nothing matches.
func (r *NicknameResolver) Resolve(ctx context.Context, row ledger.Row) (*domain.Player, error) {
	nickname := strings.TrimSpace(row.Nickname)
	if nickname == "" {
		return nil, nil
	}

	player, err := r.players.GetByNickname(ctx, nickname)
	if err != nil {
		return nil, fmt.Errorf("failed to look up nickname %q: %w", nickname, err)
	}
	if player != nil {
		return player, nil
	}

	if r.opts.MatchByName {
		player, err = r.players.GetByName(ctx, nickname)
		if err != nil {
			return nil, fmt.Errorf("failed to look up player name %q: %w", nickname, err)
		}
		if player != nil {
			r.logger.Debug().Str("nickname", nickname).Int64("player_id", player.ID).Msg("resolved by player name")
			return player, nil
		}
	}

	if externalID := strings.TrimSpace(row.ExternalID); r.opts.MatchByExternalID && externalID != "" {
		player, err = r.players.GetByExternalID(ctx, externalID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up external id %q: %w", externalID, err)
		}
		if player != nil {
			r.logger.Debug().Str("nickname", nickname).Str("external_id", externalID).Int64("player_id", player.ID).Msg("resolved by external id")
			return player, nil
		}
	}

	return nil, nil
}

// Backfill records the row's player_id as the player's external id when the
// player has none yet. It only runs when enabled and never overwrites.
func (r *NicknameResolver) Backfill(ctx context.Context, player *domain.Player, row ledger.Row) error {
	externalID := strings.TrimSpace(row.ExternalID)
	if !r.opts.BackfillExternalID || externalID == "" || player.ExternalID != "" {
		return nil
	}

	wrote, err := r.players.BackfillExternalID(ctx, player.ID, externalID)
	if err != nil {
		return err
	}
	if wrote {
		player.ExternalID = externalID
	}
	return nil
}
