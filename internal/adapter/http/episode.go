package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"castads/internal/core/port"
)

// handleGenerateEpisode produces a new episode, with ads when the owner is
// monetized. A degraded result is still 201: the episode exists, only the
// ads were dropped.
func (h *Handler) handleGenerateEpisode(w http.ResponseWriter, r *http.Request) {
	var req generateEpisodeRequest
	if err := decode(w, r, &req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	res, err := h.svc.GenerateEpisode(r.Context(), port.GenerateRequest{
		OwnerID:           req.OwnerID,
		Title:             req.Title,
		Topic:             req.Topic,
		VerifyImmediately: req.VerifyImmediately,
	})
	if err != nil {
		h.writeError(w, r, "generate episode", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toGenerateResponse(*res))
}

func (h *Handler) handleGetEpisode(w http.ResponseWriter, r *http.Request) {
	ep, err := h.svc.GetEpisode(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, "get episode", err)
		return
	}
	if ep == nil {
		http.NotFound(w, r)
		return
	}
	h.writeJSON(w, http.StatusOK, toEpisode(*ep))
}
