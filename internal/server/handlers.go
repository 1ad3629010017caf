package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"tubelens/internal/analyze"
	"tubelens/internal/core"
	"tubelens/internal/logger"
)

// statusForKind maps a stage error kind onto an HTTP status. Upstream
// failures are gateway errors; an unparsable completion is a payload the
// server refuses to process further.
func statusForKind(kind core.ErrorKind) int {
	switch kind {
	case core.ErrKindUpstreamUnavailable, core.ErrKindCompletionUpstream:
		return http.StatusBadGateway
	case core.ErrKindCompletionTimeout:
		return http.StatusGatewayTimeout
	case core.ErrKindUnparsableCompletion:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// handleHealth responds to liveness probes.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleStatus reports service identity and configuration summary.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "tubelens",
		"status":  "ok",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleAnalyze runs one analysis request through the pipeline.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req core.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, core.ErrorEnvelope{
			Status:  "error",
			Message: "invalid JSON body",
		})
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if err := analyze.ValidateRequest(req); err != nil {
		writeJSON(w, http.StatusBadRequest, core.ErrorEnvelope{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	analysisID := uuid.New().String()
	w.Header().Set("X-Analysis-ID", analysisID)

	result, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		var stageErr *core.StageError
		if errors.As(err, &stageErr) {
			status = statusForKind(stageErr.Kind)
		}

		logger.Error("Analysis failed", err,
			"analysis_id", analysisID,
			"title", req.Title,
			"status", status)

		writeJSON(w, status, analyze.EnvelopeFor(err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", err)
	}
}
