package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/pdfoutline/internal/config"
	"github.com/dgallion1/pdfoutline/internal/pathstore"
	"github.com/dgallion1/pdfoutline/internal/pipeline"
	"github.com/dgallion1/pdfoutline/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for the outline service.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	stats        *pipeline.Stats
	ps           *pathstore.Client
	repo         *store.OutlineRepo
	log          *slog.Logger
	cfg          config.Config
}

// Stores are the optional document backends behind /api/documents.
type Stores struct {
	Pathstore *pathstore.Client
	Postgres  *store.OutlineRepo
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, stats *pipeline.Stats, stores Stores, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		stats:        stats,
		ps:           stores.Pathstore,
		repo:         stores.Postgres,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.OutlinerAPIKey, s.log))

		r.Post("/api/outline", s.handleOutline)
		r.Post("/api/jobs", s.handleSubmitJob)
		r.Post("/api/jobs/batch", s.handleSubmitBatch)
		r.Get("/api/jobs/{jobID}", s.handleJobStatus)
		r.Get("/api/stats", s.handleStats)

		r.Get("/api/documents", s.handleListDocuments)
		r.Get("/api/documents/{docID}", s.handleGetDocument)
		r.Delete("/api/documents/{docID}", s.handleDeleteDocument)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
