package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Load players and nicknames from a roster backup (YAML or JSON)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				res, err := a.seed.LoadFile(ctx, args[0])
				if err != nil {
					return err
				}
				printSuccess(fmt.Sprintf("%d players added, %d already present", res.Added, res.Skipped))
				return nil
			})
		},
	}
}

func newRecalcCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "recalc [player-id]",
		Short: "Recalculate stored aggregates for one player or everyone",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				if len(args) == 0 {
					n, err := a.stats.RecalculateAll(ctx)
					if err != nil {
						return err
					}
					printSuccess(fmt.Sprintf("Recalculated %d players", n))
					return nil
				}

				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				p, err := a.stats.Recalculate(ctx, id)
				if err != nil {
					return err
				}
				printSuccess(fmt.Sprintf("Recalculated %s", p.Name))
				printInfo(fmt.Sprintf("net %s, %d up / %d down, high %s, low %s",
					signed(p.Stats.Net), p.Stats.GamesUp, p.Stats.GamesDown,
					formatMoney(p.Stats.HighestNet), formatMoney(p.Stats.LowestNet)))
				return nil
			})
		},
	}
}
