// Package api exposes the translation pipeline over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/doctrans/internal/config"
	"github.com/dgallion1/doctrans/internal/pipeline"
)

// Server is the HTTP API server for the translation service.
type Server struct {
	router    chi.Router
	processor *pipeline.Processor
	results   *pipeline.ResultStore
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(proc *pipeline.Processor, results *pipeline.ResultStore, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		processor: proc,
		results:   results,
		log:       log,
		cfg:       cfg,
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

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.ServiceAPIKey != "" {
			r.Use(AuthMiddleware(s.cfg.ServiceAPIKey))
		}

		r.Post("/api/translate", s.handleTranslate)
		r.Get("/download/{jobID}/{format}", s.handleDownload)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
