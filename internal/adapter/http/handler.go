package httpadapter

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"castads/internal/core/port"
)

// LedgerReader exposes the ledger's read accessors.
type LedgerReader interface {
	CampaignState(ctx context.Context, campaignID string) (port.CampaignState, error)
	OwnerState(ctx context.Context, ownerID string) (port.OwnerState, error)
	PlacementState(ctx context.Context, campaignID, ownerID string) (port.PlacementState, error)
}

// Handler contains dependencies and routes. It is an inbound adapter for HTTP.
type Handler struct {
	svc    port.AdUseCase
	sweeps port.SweepTrigger
	ledger LedgerReader
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured. sweeps and ledger
// may be nil, in which case their routes answer 404.
func NewHandler(svc port.AdUseCase, sweeps port.SweepTrigger, ledger LedgerReader, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{svc: svc, sweeps: sweeps, ledger: ledger, logger: logger}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/episodes", h.handleGenerateEpisode)
		r.Get("/episodes/{id}", h.handleGetEpisode)

		r.Route("/placements/{id}", func(r chi.Router) {
			r.Post("/exposures", h.handleTrackExposure)
			r.Post("/feedback", h.handleFeedback)
			r.Post("/variations", h.handleVariations)
		})

		r.Get("/stats/overview", h.handleStatsOverview)
		if sweeps != nil {
			r.Post("/sweeps/{job}", h.handleRunSweep)
		}
		if ledger != nil {
			r.Route("/ledger", func(r chi.Router) {
				r.Get("/campaigns/{campaignID}", h.handleCampaignState)
				r.Get("/campaigns/{campaignID}/owners/{ownerID}", h.handlePlacementState)
				r.Get("/owners/{ownerID}", h.handleOwnerState)
			})
		}
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
