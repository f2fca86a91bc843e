package domain

import "time"

// CampaignDailyStats is the per-campaign per-day analytics rollup.
type CampaignDailyStats struct {
	CampaignID string
	Day        time.Time
	Placements int64
	Views      int64
	Clicks     int64
	Spend      int64
	AvgQuality float64
}

// PlacementSettlement is one placement's share of a group settlement.
type PlacementSettlement struct {
	PlacementID string
	EpisodeID   string
	Views       int64
	Amount      int64
	Earnings    int64 // creator share credited to the episode
}

// Settlement is a ledger-confirmed payout for one (campaign, owner) group.
type Settlement struct {
	ID           string
	CampaignID   string
	OwnerID      string
	Exposures    int64
	Amount       int64
	CreatorShare int64
	PlatformFee  int64
	TxRef        string
	Placements   []PlacementSettlement
	SettledAt    time.Time
}
