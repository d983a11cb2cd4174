package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"putr/internal/config"
	fxmodules "putr/internal/fx"
	"putr/internal/logger"
	"putr/internal/service"
	"putr/internal/storage"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

type rootOptions struct {
	dbPath   string
	logLevel string
}

// app holds the services a command needs. It is filled by fx and closed by
// the command runner.
type app struct {
	cfg     *config.Config
	db      *sql.DB
	store   *storage.LedgerStore
	imports *service.ImportService
	seed    *service.SeedService
	stats   *service.StatsService
	players *service.PlayerService
	games   *service.GameService
}

func main() {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "putr",
		Short:        "Import poker ledgers and maintain player stats",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite database path (overrides DB_PATH)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")

	root.AddCommand(
		newImportCmd(opts),
		newSeedCmd(opts),
		newRecalcCmd(opts),
		newPlayersCmd(opts),
		newGamesCmd(opts),
		newLedgersCmd(opts),
	)

	if err := root.Execute(); err != nil {
		printError(fmt.Sprintf("error: %v", err))
		os.Exit(1)
	}
}

// run builds the service graph, hands it to fn and closes the database after.
func run(ctx context.Context, opts *rootOptions, fn func(context.Context, *app) error) error {
	level, err := zerolog.ParseLevel(strings.ToLower(opts.logLevel))
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", opts.logLevel, err)
	}

	var a app
	fxApp := fx.New(
		fxmodules.Core,
		fx.Replace(logger.NewWithWriter(zerolog.ConsoleWriter{Out: os.Stderr}, level)),
		fx.Decorate(func(cfg *config.Config) *config.Config {
			if opts.dbPath == "" {
				return cfg
			}
			out := *cfg
			out.DBPath = opts.dbPath
			return &out
		}),
		fx.NopLogger,
		fx.Populate(&a.cfg, &a.db, &a.store, &a.imports, &a.seed, &a.stats, &a.players, &a.games),
	)
	if err := fxApp.Err(); err != nil {
		return err
	}
	defer a.db.Close()

	return fn(ctx, &a)
}
