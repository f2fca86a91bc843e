package port

import (
	"context"
	"time"

	"castads/internal/core/domain"
)

// AdUseCase defines the business operations exposed by the ad pipeline. This
// interface represents the primary port into the application domain.
type AdUseCase interface {
	// GenerateEpisode produces a new episode for the owner and, when the owner
	// is monetized, augments it with matched ads. Ad pipeline trouble never
	// fails the call: the episode is then returned without ads.
	GenerateEpisode(ctx context.Context, req GenerateRequest) (*EpisodeResult, error)

	// GetEpisode returns an episode by id, or nil when unknown.
	GetEpisode(ctx context.Context, id string) (*domain.Episode, error)

	// TrackExposure filters raw events through the ledger's authenticity
	// check and applies the survivors to a live placement.
	TrackExposure(ctx context.Context, placementID string, events []domain.ExposureEvent) (*ExposureResult, error)

	// AddFeedback appends a listener rating to a placement.
	AddFeedback(ctx context.Context, placementID string, fb domain.Feedback) error

	// Variations returns up to n rewrites of a placement's ad copy.
	Variations(ctx context.Context, placementID string, n int) ([]domain.AdContent, error)

	// GetStats returns daily campaign rollups for the period.
	GetStats(ctx context.Context, req StatsReq) ([]domain.CampaignDailyStats, error)
}

// SweepTrigger runs a named scheduler job on demand.
type SweepTrigger interface {
	RunJob(ctx context.Context, name string) (JobReport, error)
}

// GenerateRequest asks for one new episode.
type GenerateRequest struct {
	OwnerID string
	Title   string
	Topic   string
	// VerifyImmediately runs verification on new placements before they are
	// persisted instead of leaving them for the verification sweep.
	VerifyImmediately bool
}

// EpisodeResult is what the pipeline produced for a request.
type EpisodeResult struct {
	Episode    domain.Episode
	Placements []domain.AdPlacement
	// Degraded is set when ad augmentation was discarded.
	Degraded bool
}

// ExposureResult reports how many raw events survived filtering.
type ExposureResult struct {
	Received  int
	Accepted  int
	Applied   domain.ExposureDelta
	Placement domain.AdPlacement
}

// JobReport is the outcome of one scheduler job run.
type JobReport struct {
	Name     string
	Started  time.Time
	Duration time.Duration
	Summary  string
	Err      error
}

// TickReport aggregates every job of one scheduler tick.
type TickReport struct {
	Started time.Time
	Jobs    []JobReport
}

// Failed returns the reports of jobs that returned an error.
func (r TickReport) Failed() []JobReport {
	var out []JobReport
	for _, j := range r.Jobs {
		if j.Err != nil {
			out = append(out, j)
		}
	}
	return out
}
