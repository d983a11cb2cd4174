package fx

import (
	"database/sql"

	"putr/internal/config"
	"putr/internal/database"
	"putr/internal/db"
	"putr/internal/logger"
	"putr/internal/metrics"
	"putr/internal/repository"
	"putr/internal/server"
	"putr/internal/service"
	"putr/internal/storage"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

// Core is everything except the HTTP boundary, shared by the server and the CLI.
var Core = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	fx.Provide(metrics.New),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewGameRepository),
	fx.Provide(repository.NewStatsRepository),
	// storage
	fx.Provide(storage.NewLedgerStore),
	// svc
	fx.Provide(service.ResolverOptionsFromConfig),
	fx.Provide(service.NewNicknameResolver),
	fx.Provide(service.NewStatsService),
	fx.Provide(service.NewImportService),
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewGameService),
	fx.Provide(service.NewSeedService),
)

var Module = fx.Options(
	Core,
	// server
	fx.Provide(server.NewServer),
)
