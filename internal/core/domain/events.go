package domain

import "time"

// PlacementEventType names a lifecycle event published for a placement.
type PlacementEventType string

const (
	EventPlacementCreated  PlacementEventType = "placement.created"
	EventPlacementVerified PlacementEventType = "placement.verified"
	EventPlacementRejected PlacementEventType = "placement.rejected"
	EventPlacementPaid     PlacementEventType = "placement.paid"
)

// PlacementEvent is the payload published on placement lifecycle changes.
type PlacementEvent struct {
	Type        PlacementEventType `json:"type"`
	PlacementID string             `json:"placement_id"`
	CampaignID  string             `json:"campaign_id"`
	OwnerID     string             `json:"owner_id"`
	EpisodeID   string             `json:"episode_id"`
	Status      PlacementStatus    `json:"status"`
	Amount      int64              `json:"amount,omitempty"`
	Reason      string             `json:"reason,omitempty"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

// NewPlacementEvent builds an event from the placement's current state.
func NewPlacementEvent(t PlacementEventType, p AdPlacement, now time.Time) PlacementEvent {
	return PlacementEvent{
		Type:        t,
		PlacementID: p.ID,
		CampaignID:  p.CampaignID,
		OwnerID:     p.OwnerID,
		EpisodeID:   p.EpisodeID,
		Status:      p.Status,
		Reason:      p.RejectReason,
		OccurredAt:  now,
	}
}
