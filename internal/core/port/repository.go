package port

import (
	"context"
	"errors"
	"time"

	"castads/internal/core/domain"
)

// ErrStaleStatus is returned when a placement update finds the stored status
// differs from the one the caller read.
var ErrStaleStatus = errors.New("placement status changed concurrently")

// CampaignFilter narrows ListCampaigns. Zero fields match everything.
type CampaignFilter struct {
	Status   domain.CampaignStatus
	Category string
}

// PlacementFilter narrows ListPlacements. Zero fields match everything.
type PlacementFilter struct {
	Status     domain.PlacementStatus
	CampaignID string
	OwnerID    string
	EpisodeID  string
}

// StatsReq selects daily rollups for an optional campaign and period.
type StatsReq struct {
	From       time.Time
	To         time.Time
	CampaignID *string
}

// Repository defines the persistence layer. It is an outbound port in
// hexagonal architecture. Implementations must be concurrency-safe; status
// guarded updates and settlements must be atomic. Get methods return nil, nil
// when the record does not exist.
type Repository interface {
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
	ListCampaigns(ctx context.Context, f CampaignFilter) ([]domain.Campaign, error)
	SaveCampaign(ctx context.Context, c domain.Campaign) error

	GetOwner(ctx context.Context, id string) (*domain.ContentOwner, error)
	SaveOwner(ctx context.Context, o domain.ContentOwner) error

	GetEpisode(ctx context.Context, id string) (*domain.Episode, error)
	// ListEpisodesWithAds returns episodes that carry at least one placement.
	ListEpisodesWithAds(ctx context.Context) ([]domain.Episode, error)
	// SaveEpisode stores the episode together with its placements in one
	// transaction.
	SaveEpisode(ctx context.Context, e domain.Episode, placements []domain.AdPlacement) error

	GetPlacement(ctx context.Context, id string) (*domain.AdPlacement, error)
	ListPlacements(ctx context.Context, f PlacementFilter) ([]domain.AdPlacement, error)
	// UpdatePlacement writes p's lifecycle fields when the stored status
	// still equals expected, otherwise returns ErrStaleStatus. Exposure
	// counters, payouts and feedback keep their stored values.
	UpdatePlacement(ctx context.Context, p domain.AdPlacement, expected domain.PlacementStatus) error
	// RecordExposure atomically applies d to a trackable placement, raises the
	// episode's view count to at least the placement's, and returns the
	// updated placement.
	RecordExposure(ctx context.Context, placementID string, d domain.ExposureDelta, at time.Time) (*domain.AdPlacement, error)
	AppendFeedback(ctx context.Context, placementID string, fb domain.Feedback) error
	// DeleteRejectedBefore removes rejected placements older than cutoff.
	DeleteRejectedBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// ApplySettlement records a confirmed settlement: it increases campaign
	// spend, settles each placement and credits episode earnings. It fails
	// with domain.ErrInsufficientBudget when spend would exceed budget and
	// with ErrStaleStatus when a placement is no longer verified.
	ApplySettlement(ctx context.Context, s domain.Settlement) error

	// RollupDaily recomputes analytics for the given day and returns them.
	RollupDaily(ctx context.Context, day time.Time) ([]domain.CampaignDailyStats, error)
	ListDailyStats(ctx context.Context, req StatsReq) ([]domain.CampaignDailyStats, error)
}
