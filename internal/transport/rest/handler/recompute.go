package handler

import (
	"net/http"

	"github.com/inverness4444/stresssense4-sub001/internal/service"
)

// RecomputeHandler exposes the batch recompute job over HTTP for
// operational use
type RecomputeHandler struct {
	recomputeSvc *service.RecomputeService
}

// NewRecomputeHandler creates a new recompute handler
func NewRecomputeHandler(recomputeSvc *service.RecomputeService) *RecomputeHandler {
	return &RecomputeHandler{recomputeSvc: recomputeSvc}
}

// Run handles POST /v1/recompute and returns the job summary
func (h *RecomputeHandler) Run(w http.ResponseWriter, r *http.Request) {
	summary, err := h.recomputeSvc.Run(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
