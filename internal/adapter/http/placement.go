package httpadapter

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"castads/internal/core/domain"
)

// handleTrackExposure accepts a batch of raw listener events for a placement.
// Events that fail the authenticity filter are dropped silently; the
// response reports how many were accepted.
func (h *Handler) handleTrackExposure(w http.ResponseWriter, r *http.Request) {
	var req trackExposureRequest
	if err := decode(w, r, &req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	res, err := h.svc.TrackExposure(r.Context(), chi.URLParam(r, "id"), req.exposureEvents())
	if err != nil {
		h.writeError(w, r, "track exposure", err)
		return
	}
	h.writeJSON(w, http.StatusOK, exposureResponse{
		Received:  res.Received,
		Accepted:  res.Accepted,
		Views:     res.Applied.Views,
		Clicks:    res.Applied.Clicks,
		Placement: toPlacement(res.Placement),
	})
}

func (h *Handler) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := decode(w, r, &req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	fb := domain.Feedback{UserID: req.UserID, Rating: req.Rating, Comment: req.Comment}
	if err := h.svc.AddFeedback(r.Context(), chi.URLParam(r, "id"), fb); err != nil {
		h.writeError(w, r, "add feedback", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleVariations takes the count from ?n= or the JSON body, defaulting to 3.
func (h *Handler) handleVariations(w http.ResponseWriter, r *http.Request) {
	n := 3
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid 'n'", http.StatusBadRequest)
			return
		}
		n = v
	} else if r.ContentLength > 0 {
		var req variationsRequest
		if err := decode(w, r, &req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		if req.Count != 0 {
			n = req.Count
		}
	}

	out, err := h.svc.Variations(r.Context(), chi.URLParam(r, "id"), n)
	if err != nil {
		h.writeError(w, r, "variations", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"variations": out})
}
