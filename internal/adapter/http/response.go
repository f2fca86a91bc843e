package httpadapter

import (
	"time"

	"castads/internal/core/domain"
	"castads/internal/core/port"
)

type episodeResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Topic     string    `json:"topic,omitempty"`
	Script    string    `json:"script"`
	ViewCount int64     `json:"view_count"`
	HasAds    bool      `json:"has_ads"`
	AdCount   int       `json:"ad_count"`
	Earnings  int64     `json:"earnings"`
	CreatedAt time.Time `json:"created_at"`
}

func toEpisode(e domain.Episode) episodeResponse {
	return episodeResponse{
		ID: e.ID, OwnerID: e.OwnerID, Title: e.Title, Topic: e.Topic, Script: e.Script,
		ViewCount: e.ViewCount, HasAds: e.HasAds, AdCount: e.AdCount, Earnings: e.Earnings, CreatedAt: e.CreatedAt,
	}
}

type placementResponse struct {
	ID           string                 `json:"id"`
	CampaignID   string                 `json:"campaign_id"`
	Status       domain.PlacementStatus `json:"status"`
	Content      domain.AdContent       `json:"content"`
	QualityScore float64                `json:"quality_score"`
	ViewCount    int64                  `json:"view_count"`
	Clicks       int64                  `json:"clicks"`
	TotalPayout  int64                  `json:"total_payout"`
	TotalPaidOut int64                  `json:"total_paid_out"`
	TxRef        string                 `json:"verification_tx_ref,omitempty"`
	RejectReason string                 `json:"reject_reason,omitempty"`
	MatchScore   float64                `json:"match_score,omitempty"`
	Suggested    int64                  `json:"suggested_budget,omitempty"`
}

func toPlacement(p domain.AdPlacement) placementResponse {
	return placementResponse{
		ID: p.ID, CampaignID: p.CampaignID, Status: p.Status, Content: p.Content, QualityScore: p.QualityScore,
		ViewCount: p.ViewCount, Clicks: p.Clicks, TotalPayout: p.TotalPayout, TotalPaidOut: p.TotalPaidOut,
		TxRef: p.VerificationTxRef, RejectReason: p.RejectReason,
		MatchScore: p.MatchScore, Suggested: p.SuggestedBudget,
	}
}

type generateEpisodeResponse struct {
	Episode    episodeResponse     `json:"episode"`
	Placements []placementResponse `json:"placements"`
	Degraded   bool                `json:"degraded,omitempty"`
}

func toGenerateResponse(res port.EpisodeResult) generateEpisodeResponse {
	out := generateEpisodeResponse{
		Episode:    toEpisode(res.Episode),
		Placements: make([]placementResponse, 0, len(res.Placements)),
		Degraded:   res.Degraded,
	}
	for _, p := range res.Placements {
		out.Placements = append(out.Placements, toPlacement(p))
	}
	return out
}

type exposureResponse struct {
	Received  int               `json:"received"`
	Accepted  int               `json:"accepted"`
	Views     int64             `json:"views"`
	Clicks    int64             `json:"clicks"`
	Placement placementResponse `json:"placement"`
}

type statsRow struct {
	CampaignID string  `json:"campaign_id"`
	Day        string  `json:"day"`
	Placements int64   `json:"placements"`
	Views      int64   `json:"views"`
	Clicks     int64   `json:"clicks"`
	Spend      int64   `json:"spend"`
	AvgQuality float64 `json:"avg_quality"`
}

type statsResponse struct {
	Rows       []statsRow `json:"rows"`
	Placements int64      `json:"placements"`
	Views      int64      `json:"views"`
	Clicks     int64      `json:"clicks"`
	Spend      int64      `json:"spend"`
}

func toStats(rows []domain.CampaignDailyStats) statsResponse {
	out := statsResponse{Rows: make([]statsRow, 0, len(rows))}
	for _, s := range rows {
		out.Rows = append(out.Rows, statsRow{
			CampaignID: s.CampaignID, Day: s.Day.Format(time.DateOnly), Placements: s.Placements,
			Views: s.Views, Clicks: s.Clicks, Spend: s.Spend, AvgQuality: s.AvgQuality,
		})
		out.Placements += s.Placements
		out.Views += s.Views
		out.Clicks += s.Clicks
		out.Spend += s.Spend
	}
	return out
}

type jobResponse struct {
	Job        string `json:"job"`
	Summary    string `json:"summary"`
	DurationMS int64  `json:"duration_ms"`
}

type campaignStateResponse struct {
	CampaignID string `json:"campaign_id"`
	Budget     int64  `json:"budget"`
	Spent      int64  `json:"spent"`
	Remaining  int64  `json:"remaining"`
	Active     bool   `json:"active"`
}

type ownerStateResponse struct {
	OwnerID     string `json:"owner_id"`
	Wallet      string `json:"wallet"`
	TotalEarned int64  `json:"total_earned"`
}

type placementStateResponse struct {
	CampaignID   string `json:"campaign_id"`
	OwnerID      string `json:"owner_id"`
	Verified     bool   `json:"verified"`
	SettledViews int64  `json:"settled_views"`
	TotalPaid    int64  `json:"total_paid"`
}
