package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/analysis"
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/domain"
)

// Exporter triggers one full export run of the configured watchlist.
type Exporter interface {
	RunOnce(ctx context.Context) error
}

// Handler provides HTTP endpoints for the REIT analysis API.
type Handler struct {
	analyses *analysis.Service
	exporter Exporter
}

// NewHandler creates a new API handler. The exporter may be nil when no export
// destination is configured.
func NewHandler(analyses *analysis.Service, exporter Exporter) *Handler {
	return &Handler{analyses: analyses, exporter: exporter}
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetAnalysis handles GET /api/v1/reits/{symbol}/analysis.
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	report, ok := h.analyze(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// GetQuality handles GET /api/v1/reits/{symbol}/quality.
func (h *Handler) GetQuality(w http.ResponseWriter, r *http.Request) {
	report, ok := h.analyze(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"symbol":           report.Symbol,
		"dataQualityScore": report.DataQualityScore,
	})
}

// GetScore handles GET /api/v1/reits/{symbol}/score.
func (h *Handler) GetScore(w http.ResponseWriter, r *http.Request) {
	report, ok := h.analyze(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"symbol":             report.Symbol,
		"sectorContextScore": report.SectorContextScore,
	})
}

// TriggerExport handles POST /api/v1/export.
func (h *Handler) TriggerExport(w http.ResponseWriter, r *http.Request) {
	if h.exporter == nil {
		writeError(w, http.StatusServiceUnavailable, "no export destination configured")
		return
	}
	if err := h.exporter.RunOnce(r.Context()); err != nil {
		slog.Error("export run failed", "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "exported"})
}

// analyze runs the shared symbol/composite parsing and the analysis itself,
// writing the error response when anything fails.
func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) (*analysis.AnalysisReport, bool) {
	symbol := strings.ToUpper(strings.TrimSpace(r.PathValue("symbol")))
	if symbol == "" || len(symbol) > 12 {
		writeError(w, http.StatusBadRequest, "invalid symbol")
		return nil, false
	}

	var opts analysis.Options
	if c := r.URL.Query().Get("composite"); c != "" {
		n, err := strconv.ParseFloat(c, 64)
		if err != nil || n < 0 || n > 100 {
			writeError(w, http.StatusBadRequest, "composite must be a number between 0 and 100")
			return nil, false
		}
		opts.CompositeScore = domain.Ptr(n)
	}

	report, err := h.analyses.Analyze(r.Context(), symbol, opts)
	if err != nil {
		if errors.Is(err, analysis.ErrNotFound) {
			writeError(w, http.StatusNotFound, "symbol not found")
			return nil, false
		}
		slog.Error("analysis failed", "symbol", symbol, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return nil, false
	}
	return report, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
