package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/inverness4444/stresssense4-sub001/internal/period"
	"github.com/inverness4444/stresssense4-sub001/internal/service"
)

// MetricsHandler handles dashboard metrics endpoints
type MetricsHandler struct {
	metricsSvc *service.MetricsService
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(metricsSvc *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsSvc: metricsSvc}
}

func requestParams(r *http.Request) (period.Period, string, error) {
	p := period.Month
	if raw := r.URL.Query().Get("period"); raw != "" {
		parsed, err := period.Parse(raw)
		if err != nil {
			return "", "", err
		}
		p = parsed
	}
	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = "en"
	}
	return p, locale, nil
}

// GetMetrics handles GET /v1/teams/{teamId}/metrics
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	teamID := mux.Vars(r)["teamId"]
	p, locale, err := requestParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	metrics, err := h.metricsSvc.GetTeamMetrics(r.Context(), teamID, p, locale, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

// GetTrends handles GET /v1/teams/{teamId}/trends
func (h *MetricsHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	teamID := mux.Vars(r)["teamId"]
	p, locale, err := requestParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.metricsSvc.GetTeamTrends(r.Context(), teamID, p, locale, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}
