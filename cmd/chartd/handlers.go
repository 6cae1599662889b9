package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"symbol-charts-go/internal/chart"
	"symbol-charts-go/internal/config"

	"go.uber.org/zap"
)

// APIHandler holds dependencies for the API endpoints.
type APIHandler struct {
	log      *zap.Logger
	cfg      *config.Config
	pipeline *chart.Pipeline
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(log *zap.Logger, cfg *config.Config, pipeline *chart.Pipeline) *APIHandler {
	return &APIHandler{log: log, cfg: cfg, pipeline: pipeline}
}

// StatusHandler reports liveness.
func (h *APIHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// chartResponse wraps the chart payload so "no data" is distinguishable
// from both success and failure.
type chartResponse struct {
	Empty bool             `json:"empty"`
	Chart *chart.ChartData `json:"chart,omitempty"`
}

// ChartHandler computes and returns the chart for a symbol and date
// range. Query parameters and their defaults: symbol (configured
// default), start_date (first of current month), end_date (today),
// window_size (configured default).
func (h *APIHandler) ChartHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	symbol := q.Get("symbol")
	if symbol == "" {
		symbol = h.cfg.Chart.Symbol
	}

	now := time.Now().UTC()
	startDate := q.Get("start_date")
	if startDate == "" {
		startDate = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	}
	endDate := q.Get("end_date")
	if endDate == "" {
		endDate = now.Format("2006-01-02")
	}

	windowSize := h.cfg.Chart.WindowSize
	if v := q.Get("window_size"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "window_size must be an integer", http.StatusBadRequest)
			return
		}
		windowSize = parsed
	}

	start, end, err := chart.ParseDateRange(startDate, endDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := h.pipeline.Build(r.Context(), chart.Params{
		Symbol:     symbol,
		Start:      start,
		End:        end,
		WindowSize: windowSize,
	})

	w.Header().Set("Content-Type", "application/json")
	switch {
	case err == nil:
		json.NewEncoder(w).Encode(chartResponse{Chart: data})
	case errors.Is(err, chart.ErrEmptyResult):
		// Nothing to show is not a failure; the client renders a placeholder.
		json.NewEncoder(w).Encode(chartResponse{Empty: true})
	case errors.Is(err, chart.ErrInvalidParameter):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, chart.ErrFeedUnavailable):
		h.log.Error("Price feed unavailable", zap.Error(err))
		http.Error(w, "price feed unavailable", http.StatusBadGateway)
	default:
		h.log.Error("Chart computation failed", zap.Error(err))
		http.Error(w, "chart computation failed", http.StatusInternalServerError)
	}
}
