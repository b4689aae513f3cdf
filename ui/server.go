package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"chartprep/app"
	"chartprep/internal"
	"chartprep/internal/errors"
)

// Server is the JSON API over the data-preparation pipeline
type Server struct {
	router   *chi.Mux
	analysis *app.AnalysisService
	logger   *internal.Logger
}

// Config holds server configuration
type Config struct {
	Port string
}

// NewServer creates the API server over an analysis service
func NewServer(analysis *app.AnalysisService) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		analysis: analysis,
		logger:   internal.DefaultLogger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures HTTP middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

// setupRoutes registers all API routes
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/reshape", s.handleReshape)
		r.Post("/trend", s.handleTrend)
		r.Post("/extrema", s.handleExtrema)
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/artifacts", s.handleListArtifacts)
		r.Get("/artifacts/{id}", s.handleGetArtifact)
	})
}

// Handler exposes the router for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server on the configured port
func (s *Server) Start(config Config) error {
	addr := ":" + config.Port
	s.logger.Info("API server listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// writeJSON writes a JSON response with the given status
func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response: %v", err)
	}
}

// errorResponse is the JSON error envelope
type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// writeError maps error codes onto HTTP statuses
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case errors.CodeEmptyDataset, errors.CodeEmptyInput, errors.CodeMissingField,
		errors.CodeInvalidFieldType, errors.CodeLengthMismatch,
		errors.CodeDivisionByZero, errors.CodeDegenerateFit,
		errors.CodeInvalidInput, errors.CodeIngestError:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed: %v", err)
	}
	s.writeJSON(w, status, errorResponse{Code: code, Error: err.Error()})
}
