package ui

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"chartprep/app"
	"chartprep/domain/core"
	"chartprep/domain/shape"
	"chartprep/domain/table"
	"chartprep/internal/errors"
	"chartprep/internal/extrema"
	"chartprep/internal/reshape"
	"chartprep/internal/trend"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// reshapeRequest carries an inline dataset plus the reshape config
type reshapeRequest struct {
	Records       []table.Record `json:"records"`
	CategoryField string         `json:"category_field"`
	SeriesFields  []string       `json:"series_fields,omitempty"`
	Options       shape.Options  `json:"options"`
}

func (s *Server) handleReshape(w http.ResponseWriter, r *http.Request) {
	var req reshapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.InvalidInput("request body is not valid JSON: "+err.Error()))
		return
	}

	records, err := reshape.New().Reshape(table.Dataset{Records: req.Records}, reshape.Config{
		CategoryField: req.CategoryField,
		SeriesFields:  req.SeriesFields,
		Options:       req.Options,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"records": records})
}

type trendRequest struct {
	Points []shape.Point `json:"points"`
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	var req trendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.InvalidInput("request body is not valid JSON: "+err.Error()))
		return
	}

	segments, err := trend.New().Fit(req.Points)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"trends": segments})
}

type extremaRequest struct {
	Values    []float64 `json:"values"`
	Positions []string  `json:"positions"`
}

func (s *Server) handleExtrema(w http.ResponseWriter, r *http.Request) {
	var req extremaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.InvalidInput("request body is not valid JSON: "+err.Error()))
		return
	}

	points, err := extrema.Extract(req.Values, req.Positions)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, points)
}

// analyzeRequest runs the full pipeline over an inline dataset
type analyzeRequest struct {
	Records []table.Record      `json:"records"`
	Request app.AnalysisRequest `json:"request"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.InvalidInput("request body is not valid JSON: "+err.Error()))
		return
	}

	dataset := table.New(req.Records)
	artifact, err := s.analysis.Analyze(r.Context(), dataset, req.Request)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, artifact)
}

func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseArtifactID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, errors.InvalidInput(err.Error()))
		return
	}

	artifact, err := s.analysis.GetArtifact(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, artifact)
}

func (s *Server) handleListArtifacts(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	artifacts, err := s.analysis.ListArtifacts(r.Context(), limit, offset)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"artifacts": artifacts})
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	if value := r.URL.Query().Get(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			return n
		}
	}
	return defaultValue
}
