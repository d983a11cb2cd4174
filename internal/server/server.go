package server

import (
	"net/http"

	"putr/internal/config"
	"putr/internal/constants"
	"putr/internal/metrics"
	"putr/internal/middleware"
	"putr/internal/service"
	"putr/internal/storage"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type Server struct {
	cfg     *config.Config
	players *service.PlayerService
	games   *service.GameService
	stats   *service.StatsService
	imports *service.ImportService
	store   *storage.LedgerStore
	metrics *metrics.Metrics
	logger  zerolog.Logger
	mux     *chi.Mux
}

func NewServer(
	cfg *config.Config,
	players *service.PlayerService,
	games *service.GameService,
	stats *service.StatsService,
	imports *service.ImportService,
	store *storage.LedgerStore,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *Server {
	s := &Server{
		cfg:     cfg,
		players: players,
		games:   games,
		stats:   stats,
		imports: imports,
		store:   store,
		metrics: m,
		logger:  logger,
		mux:     chi.NewRouter(),
	}
	s.routes()
	return s
}

// Handler returns the router wrapped in CORS handling.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-ID"},
	})
	return c.Handler(s.mux)
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID(s.logger))
	r.Use(middleware.Metrics(s.metrics))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Uploads run imports and get their own deadline from the import service.
		r.Post("/games/upload", s.handleUpload)

		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(constants.RequestTimeout))

			r.Get("/games", s.handleListGames)
			r.Get("/games/{id}", s.handleGetGame)

			r.Get("/players", s.handleListPlayers)
			r.Post("/players", s.handleCreatePlayer)
			r.Get("/players/{id}", s.handleGetPlayer)
			r.Get("/players/{id}/games", s.handlePlayerGames)
			r.Post("/players/{id}/nicknames", s.handleAddNickname)
			r.Put("/players/{id}/rating", s.handleSetRating)
			r.Post("/players/{id}/recalculate", s.handleRecalculate)
		})

		r.Post("/players/recalculate", s.handleRecalculateAll)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}
