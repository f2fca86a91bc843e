package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PlacementStatus is the lifecycle state of an ad placement.
type PlacementStatus string

const (
	PlacementPending  PlacementStatus = "pending"
	PlacementVerified PlacementStatus = "verified"
	PlacementRejected PlacementStatus = "rejected"
	PlacementPaid     PlacementStatus = "paid"
)

// transitions lists every legal status move. Anything absent is rejected.
var transitions = map[PlacementStatus][]PlacementStatus{
	PlacementPending:  {PlacementVerified, PlacementRejected},
	PlacementVerified: {PlacementPaid},
}

// CanTransition reports whether a placement may move from s to next.
func (s PlacementStatus) CanTransition(next PlacementStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s PlacementStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

// Trackable reports whether exposure counters may advance in this status.
func (s PlacementStatus) Trackable() bool {
	return s == PlacementVerified || s == PlacementPaid
}

// AdContent is the generated ad fragment attached to a placement.
type AdContent struct {
	Script           string        `json:"script"`
	Placement        PlacementKind `json:"placement"`
	Duration         int           `json:"duration"` // seconds
	RequiredElements []string      `json:"required_elements"`
	StyleNotes       []string      `json:"style_notes"`
}

// Empty reports whether no ad copy has been generated yet.
func (a AdContent) Empty() bool {
	return a.Script == ""
}

// Feedback is a listener's rating of an ad placement.
type Feedback struct {
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"` // 1..5
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AdPlacement ties one campaign's ad inside one episode for one owner.
//
// TotalPayout is the gross amount earned by tracked views; TotalPaidOut is the
// gross amount already settled, and PaidViews the exposures it covered. After
// the placement reaches paid only exposure counters keep moving.
type AdPlacement struct {
	ID                  string
	CampaignID          string
	OwnerID             string
	EpisodeID           string
	Content             AdContent
	Status              PlacementStatus
	QualityScore        float64
	ViewCount           int64
	Impressions         int64
	Clicks              int64
	Conversions         int64
	PaidViews           int64
	TotalPayout         int64
	TotalPaidOut        int64
	Verification        *VerificationResult
	VerificationTxRef   string
	Feedback            []Feedback
	GenerationModelID   string
	VerificationModelID string
	RejectReason        string
	// MatchScore and SuggestedBudget record the compatibility score the
	// campaign was selected with and the budget allocation it suggested.
	MatchScore          float64
	SuggestedBudget     int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
	VerifiedAt          *time.Time
	RejectedAt          *time.Time
	PaidAt              *time.Time
}

// NewPlacement creates a pending placement with empty ad content.
func NewPlacement(campaignID, ownerID, episodeID string, now time.Time) AdPlacement {
	return AdPlacement{
		ID:         uuid.NewString(),
		CampaignID: campaignID,
		OwnerID:    ownerID,
		EpisodeID:  episodeID,
		Status:     PlacementPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Transition moves the placement to next, stamping the matching timestamp.
// Illegal moves return ErrIllegalTransition and leave p unchanged.
func (p *AdPlacement) Transition(next PlacementStatus, now time.Time) error {
	if !p.Status.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, p.Status, next)
	}
	p.Status = next
	p.UpdatedAt = now
	switch next {
	case PlacementVerified:
		p.VerifiedAt = &now
	case PlacementRejected:
		p.RejectedAt = &now
	case PlacementPaid:
		p.PaidAt = &now
	}
	return nil
}

// Reject moves the placement to rejected and records why.
func (p *AdPlacement) Reject(reason string, now time.Time) error {
	if err := p.Transition(PlacementRejected, now); err != nil {
		return err
	}
	p.RejectReason = reason
	return nil
}

// SuppressFraud forces a verified placement to rejected. It is the only path
// out of verified other than paid and is reserved for fraud suppression.
func (p *AdPlacement) SuppressFraud(reason string, now time.Time) error {
	if p.Status != PlacementVerified {
		return fmt.Errorf("%w: fraud suppression in status %s", ErrIllegalTransition, p.Status)
	}
	p.Status = PlacementRejected
	p.RejectReason = reason
	p.RejectedAt = &now
	p.UpdatedAt = now
	return nil
}

// UnpaidViews returns exposures not yet covered by a settlement.
func (p AdPlacement) UnpaidViews() int64 {
	if p.ViewCount <= p.PaidViews {
		return 0
	}
	return p.ViewCount - p.PaidViews
}

// ExposureDelta is a batch of counted exposures to apply to a placement.
type ExposureDelta struct {
	Views       int64
	Impressions int64
	Clicks      int64
	Conversions int64
}

// Zero reports whether the delta carries nothing.
func (d ExposureDelta) Zero() bool {
	return d.Views == 0 && d.Impressions == 0 && d.Clicks == 0 && d.Conversions == 0
}

// ApplyExposure advances counters and earned payout. It refuses placements
// that are not live.
func (p *AdPlacement) ApplyExposure(d ExposureDelta, payoutPerView int64, now time.Time) error {
	if !p.Status.Trackable() {
		return fmt.Errorf("%w: status %s", ErrNotTrackable, p.Status)
	}
	if d.Views < 0 || d.Impressions < 0 || d.Clicks < 0 || d.Conversions < 0 {
		return fmt.Errorf("%w: negative exposure delta", ErrInvalidInput)
	}
	p.ViewCount += d.Views
	p.Impressions += d.Impressions
	p.Clicks += d.Clicks
	p.Conversions += d.Conversions
	p.TotalPayout += d.Views * payoutPerView
	p.UpdatedAt = now
	return nil
}

// Settle records that views exposures worth amount were paid out. When every
// tracked exposure is covered the placement moves to paid.
func (p *AdPlacement) Settle(views, amount int64, now time.Time) error {
	if p.Status != PlacementVerified {
		return fmt.Errorf("%w: settle in status %s", ErrIllegalTransition, p.Status)
	}
	if views <= 0 || views > p.UnpaidViews() {
		return fmt.Errorf("%w: settle %d of %d unpaid views", ErrInvalidInput, views, p.UnpaidViews())
	}
	p.PaidViews += views
	p.TotalPaidOut += amount
	if p.TotalPaidOut > p.TotalPayout {
		p.TotalPayout = p.TotalPaidOut
	}
	p.UpdatedAt = now
	if p.UnpaidViews() == 0 {
		return p.Transition(PlacementPaid, now)
	}
	return nil
}

// Markers delimiting an embedded ad inside an episode script.
const (
	AdStartMarker = "[AD START]"
	AdEndMarker   = "[AD END]"
)
