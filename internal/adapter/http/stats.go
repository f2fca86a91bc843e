package httpadapter

import (
	"net/http"
	"time"

	"castads/internal/core/port"
)

// handleStatsOverview returns daily campaign rollups for a period. It accepts
// optional `from`, `to` (RFC3339 timestamps or YYYY-MM-DD dates) and
// `campaign_id` query parameters. Without a period it covers the last seven
// days. Invalid parameters result in HTTP 400.
func (h *Handler) handleStatsOverview(w http.ResponseWriter, r *http.Request) {
	var (
		q   = r.URL.Query()
		now = time.Now().UTC()
		req = port.StatsReq{From: now.AddDate(0, 0, -7), To: now}
		err error
	)

	if s := q.Get("from"); s != "" {
		if req.From, err = parseTime(s); err != nil {
			http.Error(w, "invalid 'from' timestamp", http.StatusBadRequest)
			return
		}
	}
	if s := q.Get("to"); s != "" {
		if req.To, err = parseTime(s); err != nil {
			http.Error(w, "invalid 'to' timestamp", http.StatusBadRequest)
			return
		}
	}
	if req.To.Before(req.From) {
		http.Error(w, "'to' precedes 'from'", http.StatusBadRequest)
		return
	}
	if cid := q.Get("campaign_id"); cid != "" {
		req.CampaignID = &cid
	}

	stats, err := h.svc.GetStats(r.Context(), req)
	if err != nil {
		h.writeError(w, r, "stats", err)
		return
	}
	h.writeJSON(w, http.StatusOK, toStats(stats))
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}
