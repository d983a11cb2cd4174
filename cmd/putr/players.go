package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"putr/internal/constants"
	"putr/internal/domain"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newPlayersCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "players",
		Short: "List players with their rating and stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				var players []domain.Player
				for offset := 0; ; offset += constants.MaxPageSize {
					page, total, err := a.players.ListPlayers(ctx, offset, constants.MaxPageSize)
					if err != nil {
						return err
					}
					players = append(players, page...)
					if len(page) == 0 || int64(len(players)) >= total {
						break
					}
				}
				if len(players) == 0 {
					printWarn("No players registered.")
					return nil
				}
				return pterm.DefaultTable.WithHasHeader().WithData(playerTable(players)).Render()
			})
		},
	}
}

func playerTable(players []domain.Player) pterm.TableData {
	data := pterm.TableData{{"ID", "Name", "PUTR", "Net", "Up", "Down", "Avg", "Best", "Worst", "High", "Low"}}
	for _, p := range players {
		s := p.Stats
		data = append(data, []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Rating.String(),
			signed(s.Net),
			strconv.Itoa(s.GamesUp),
			strconv.Itoa(s.GamesDown),
			formatMoney(s.AverageNet),
			formatMoney(s.BiggestWin),
			formatMoney(s.BiggestLoss),
			formatMoney(s.HighestNet),
			formatMoney(s.LowestNet),
		})
	}
	return data
}

func newGamesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List imported games in chronological order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				var games []domain.Game
				for offset := 0; ; offset += constants.MaxPageSize {
					page, total, err := a.games.ListGames(ctx, offset, constants.MaxPageSize)
					if err != nil {
						return err
					}
					games = append(games, page...)
					if len(page) == 0 || int64(len(games)) >= total {
						break
					}
				}
				if len(games) == 0 {
					printWarn("No games imported.")
					return nil
				}

				data := pterm.TableData{{"ID", "Key", "Played on", "Ledger"}}
				for _, g := range games {
					data = append(data, []string{
						strconv.FormatInt(g.ID, 10),
						g.Key.String(),
						g.Key.Date().Format("2006-01-02"),
						g.LedgerFilename,
					})
				}
				return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
			})
		},
	}
}

func newLedgersCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ledgers",
		Short: "List ledger files kept in the ledgers directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				files, err := a.store.List()
				if err != nil {
					return err
				}
				if len(files) == 0 {
					printWarn(fmt.Sprintf("No ledgers in %s.", a.store.Dir()))
					return nil
				}
				for _, f := range files {
					printInfo(filepath.Base(f))
				}
				return nil
			})
		},
	}
}
