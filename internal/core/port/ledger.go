package port

import (
	"context"

	"castads/internal/core/domain"
)

// SettlementResult is the ledger's answer to a settlement request.
type SettlementResult struct {
	CreatorShare int64
	PlatformFee  int64
	TxRef        string
	Success      bool
	Error        string
}

// CampaignState is the ledger's view of a campaign.
type CampaignState struct {
	CampaignID string
	Budget     int64
	Spent      int64
	Active     bool
}

// Remaining returns the unspent budget according to the ledger.
func (s CampaignState) Remaining() int64 {
	if s.Spent >= s.Budget {
		return 0
	}
	return s.Budget - s.Spent
}

// OwnerState is the ledger's view of a content owner.
type OwnerState struct {
	OwnerID     string
	Wallet      string
	TotalEarned int64
}

// PlacementState is the ledger's view of one (campaign, owner) pair.
type PlacementState struct {
	CampaignID   string
	OwnerID      string
	Verified     bool
	SettledViews int64
	TotalPaid    int64
}

// Ledger is the settlement collaborator. A single signing identity commits
// every transaction, so callers must not submit concurrently.
type Ledger interface {
	VerifyPlacement(ctx context.Context, campaignID, ownerID string) (string, error)
	SettleExposure(ctx context.Context, campaignID, ownerID string, exposures int64) (SettlementResult, error)
	CampaignState(ctx context.Context, campaignID string) (CampaignState, error)
	OwnerState(ctx context.Context, ownerID string) (OwnerState, error)
	PlacementState(ctx context.Context, campaignID, ownerID string) (PlacementState, error)
	ValidateExposureAuthenticity(ctx context.Context, events []domain.ExposureEvent) ([]domain.ExposureEvent, error)
}
