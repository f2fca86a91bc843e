package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"castads/internal/adapter/scheduler"
	"castads/internal/core/domain"
)

type errorBody struct {
	Error string `json:"error"`
	Retry bool   `json:"retry,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// encoding should rarely fail; the status line is already out
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps err to a status and a generic message. Internal error
// codes are logged, never sent.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var (
		aiErr     *domain.AIServiceError
		ledgerErr *domain.LedgerError
	)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, scheduler.ErrUnknownJob):
		h.writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	case errors.Is(err, domain.ErrNotTrackable):
		h.writeJSON(w, http.StatusConflict, errorBody{Error: "placement is not accepting updates"})
	case errors.As(err, &aiErr), errors.As(err, &ledgerErr):
		h.logger.Warn(op+" failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		h.writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "try again later", Retry: true})
	default:
		h.logger.Error(op+" failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error", Retry: true})
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
