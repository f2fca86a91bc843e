package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleRunSweep runs one scheduler job now and reports its summary. A job
// failure is reported like any other internal error.
func (h *Handler) handleRunSweep(w http.ResponseWriter, r *http.Request) {
	rep, err := h.sweeps.RunJob(r.Context(), chi.URLParam(r, "job"))
	if err == nil {
		err = rep.Err
	}
	if err != nil {
		h.writeError(w, r, "sweep", err)
		return
	}
	h.writeJSON(w, http.StatusOK, jobResponse{Job: rep.Name, Summary: rep.Summary, DurationMS: rep.Duration.Milliseconds()})
}

func (h *Handler) handleCampaignState(w http.ResponseWriter, r *http.Request) {
	st, err := h.ledger.CampaignState(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		h.writeError(w, r, "campaign state", err)
		return
	}
	h.writeJSON(w, http.StatusOK, campaignStateResponse{
		CampaignID: st.CampaignID, Budget: st.Budget, Spent: st.Spent, Remaining: st.Remaining(), Active: st.Active,
	})
}

func (h *Handler) handleOwnerState(w http.ResponseWriter, r *http.Request) {
	st, err := h.ledger.OwnerState(r.Context(), chi.URLParam(r, "ownerID"))
	if err != nil {
		h.writeError(w, r, "owner state", err)
		return
	}
	h.writeJSON(w, http.StatusOK, ownerStateResponse(st))
}

func (h *Handler) handlePlacementState(w http.ResponseWriter, r *http.Request) {
	st, err := h.ledger.PlacementState(r.Context(), chi.URLParam(r, "campaignID"), chi.URLParam(r, "ownerID"))
	if err != nil {
		h.writeError(w, r, "placement state", err)
		return
	}
	h.writeJSON(w, http.StatusOK, placementStateResponse(st))
}
