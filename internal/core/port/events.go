package port

import (
	"context"

	"castads/internal/core/domain"
)

// EventPublisher emits placement lifecycle events. Publishing is best effort;
// callers log failures and carry on.
type EventPublisher interface {
	Publish(ctx context.Context, ev domain.PlacementEvent) error
}

// ScoreCache memoises compatibility scores per (campaign, owner) pair.
type ScoreCache interface {
	GetScore(ctx context.Context, campaignID, ownerID string) (float64, bool, error)
	SetScore(ctx context.Context, campaignID, ownerID string, score float64) error
}
