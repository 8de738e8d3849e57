package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"docrank/internal/engine"
	"docrank/internal/extract"
)

// Server is the HTTP surface wrapping the ranking engine: clients upload a
// set of PDFs with a persona and job-to-be-done and get the ranked-section
// report back in one round trip.
type Server struct {
	router         chi.Router
	engine         *engine.Engine
	extractor      *extract.Extractor
	log            *slog.Logger
	maxUploadBytes int64
}

// NewServer creates and configures the HTTP server.
func NewServer(eng *engine.Engine, ext *extract.Extractor, log *slog.Logger, maxUploadBytes int64) *Server {
	s := &Server{
		engine:         eng,
		extractor:      ext,
		log:            log,
		maxUploadBytes: maxUploadBytes,
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
	r.Use(requestLogger(s.log))

	r.Get("/healthz", s.handleHealth)
	r.Post("/rank", s.handleRank)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
