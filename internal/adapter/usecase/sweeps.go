package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"castads/internal/adapter/scheduler"
	"castads/internal/core/domain"
	"castads/internal/core/port"
	"castads/internal/core/settlement"
	"castads/internal/core/verification"
)

// Job names understood by the scheduler and the manual trigger.
const (
	JobVerification = "verification"
	JobPayout       = "payout"
	JobFraud        = "fraud"
	JobAnalytics    = "analytics"
	JobCleanup      = "cleanup"
)

// Sweeps holds the periodic jobs that advance placements after an episode
// has been generated.
type Sweeps struct {
	repo      port.Repository
	ledger    port.Ledger
	events    port.EventPublisher
	verifier  *verification.Engine
	settler   *settlement.Engine
	retention time.Duration
	logger    *slog.Logger
	nowFn     func() time.Time
}

// NewSweeps returns the sweep jobs. Rejected placements older than retention
// are removed by the cleanup job.
func NewSweeps(repo port.Repository, ledger port.Ledger, events port.EventPublisher,
	verifier *verification.Engine, settler *settlement.Engine, retention time.Duration, logger *slog.Logger) *Sweeps {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeps{
		repo:      repo,
		ledger:    ledger,
		events:    events,
		verifier:  verifier,
		settler:   settler,
		retention: retention,
		logger:    logger,
		nowFn:     time.Now,
	}
}

// Jobs lists every sweep in the order the scheduler registers them.
func (s *Sweeps) Jobs() []scheduler.Job {
	return []scheduler.Job{
		{Name: JobVerification, Run: s.Verification},
		{Name: JobPayout, Run: s.Payout},
		{Name: JobFraud, Run: s.Fraud},
		{Name: JobAnalytics, Run: s.Analytics},
		{Name: JobCleanup, Run: s.Cleanup},
	}
}

// Verification judges every pending placement that carries ad copy.
func (s *Sweeps) Verification(ctx context.Context) (string, error) {
	pending, err := s.repo.ListPlacements(ctx, port.PlacementFilter{Status: domain.PlacementPending})
	if err != nil {
		return "", fmt.Errorf("list pending placements: %w", err)
	}

	var verified, rejected, skipped int
	var errs []error
	campaigns := make(map[string]*domain.Campaign)
	episodes := make(map[string]*domain.Episode)
	for _, p := range pending {
		if err = ctx.Err(); err != nil {
			return "", err
		}
		if p.Content.Empty() {
			skipped++
			continue
		}
		c, err := cached(ctx, campaigns, p.CampaignID, s.repo.GetCampaign)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ep, err := cached(ctx, episodes, p.EpisodeID, s.repo.GetEpisode)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if c == nil || ep == nil {
			skipped++
			s.logger.Warn("pending placement has no campaign or episode", slog.String("placement_id", p.ID))
			continue
		}

		if err = judgePlacement(ctx, s.verifier, s.ledger, s.logger, s.nowFn().UTC(), *c, &p, ep.Script); err != nil {
			errs = append(errs, err)
			continue
		}
		if err = s.repo.UpdatePlacement(ctx, p, domain.PlacementPending); err != nil {
			if !errors.Is(err, port.ErrStaleStatus) {
				errs = append(errs, fmt.Errorf("update placement %s: %w", p.ID, err))
			}
			continue
		}

		evType := domain.EventPlacementRejected
		if p.Status == domain.PlacementVerified {
			evType = domain.EventPlacementVerified
			verified++
		} else {
			rejected++
		}
		publishEvent(ctx, s.events, s.logger, domain.NewPlacementEvent(evType, p, s.nowFn().UTC()))
	}
	return fmt.Sprintf("verified=%d rejected=%d skipped=%d", verified, rejected, skipped), errors.Join(errs...)
}

// Payout settles eligible verified exposure.
func (s *Sweeps) Payout(ctx context.Context) (string, error) {
	results, err := s.settler.Sweep(ctx)
	if err != nil {
		return "", err
	}
	var amount int64
	for _, r := range results {
		amount += r.Amount
	}
	return fmt.Sprintf("groups=%d settled=%d failed=%d amount=%d",
		len(results), settlement.Succeeded(results), settlement.Failed(results), amount), nil
}

// Fraud suppresses placements of implausibly popular episodes.
func (s *Sweeps) Fraud(ctx context.Context) (string, error) {
	report, err := s.settler.SuppressFraud(ctx)
	return fmt.Sprintf("flagged=%d suppressed=%d", len(report.Flags), report.Suppressed), err
}

// Analytics recomputes today's rollup and finalises yesterday's.
func (s *Sweeps) Analytics(ctx context.Context) (string, error) {
	now := s.nowFn().UTC()
	rows := 0
	for _, day := range []time.Time{now.AddDate(0, 0, -1), now} {
		stats, err := s.repo.RollupDaily(ctx, day)
		if err != nil {
			return "", fmt.Errorf("rollup %s: %w", day.Format(time.DateOnly), err)
		}
		rows += len(stats)
	}
	return fmt.Sprintf("rows=%d", rows), nil
}

// Cleanup deletes rejected placements past the retention window.
func (s *Sweeps) Cleanup(ctx context.Context) (string, error) {
	n, err := s.repo.DeleteRejectedBefore(ctx, s.nowFn().UTC().Add(-s.retention))
	if err != nil {
		return "", fmt.Errorf("delete rejected placements: %w", err)
	}
	return fmt.Sprintf("deleted=%d", n), nil
}

func cached[T any](ctx context.Context, cache map[string]*T, id string, get func(context.Context, string) (*T, error)) (*T, error) {
	if v, ok := cache[id]; ok {
		return v, nil
	}
	v, err := get(ctx, id)
	if err != nil {
		return nil, err
	}
	cache[id] = v
	return v, nil
}
