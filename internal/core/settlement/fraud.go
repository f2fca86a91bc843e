package settlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"castads/internal/core/domain"
	"castads/internal/core/port"
)

// FraudReport summarises one fraud sweep.
type FraudReport struct {
	Flags      []domain.FraudFlag
	Suppressed int
}

// SuppressFraud flags every episode whose exposure exceeds the plausible
// ceiling and forces its verified placements to rejected.
func (e *Engine) SuppressFraud(ctx context.Context) (FraudReport, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, span := e.tracer.Start(ctx, "settlement.SuppressFraud")
	defer span.End()

	episodes, err := e.repo.ListEpisodesWithAds(ctx)
	if err != nil {
		return FraudReport{}, fmt.Errorf("list episodes: %w", err)
	}

	var report FraudReport
	now := e.nowFn().UTC()
	var errs []error
	for _, ep := range episodes {
		flag, bad := domain.CheckFraud(e.fraud, ep, now)
		if !bad {
			continue
		}
		report.Flags = append(report.Flags, flag)
		e.logger.Warn("episode flagged for fraud",
			slog.String("episode_id", ep.ID),
			slog.Int64("observed", flag.Observed),
			slog.Int64("ceiling", flag.Ceiling))

		placements, err := e.repo.ListPlacements(ctx, port.PlacementFilter{EpisodeID: ep.ID, Status: domain.PlacementVerified})
		if err != nil {
			errs = append(errs, fmt.Errorf("list placements of %s: %w", ep.ID, err))
			continue
		}
		reason := fmt.Sprintf("fraud: %d exposures exceed ceiling %d", flag.Observed, flag.Ceiling)
		for _, p := range placements {
			if err = p.SuppressFraud(reason, now); err != nil {
				continue
			}
			if err = e.repo.UpdatePlacement(ctx, p, domain.PlacementVerified); err != nil {
				if !errors.Is(err, port.ErrStaleStatus) {
					errs = append(errs, fmt.Errorf("reject placement %s: %w", p.ID, err))
				}
				continue
			}
			report.Suppressed++
			e.publish(ctx, domain.NewPlacementEvent(domain.EventPlacementRejected, p, now))
		}
	}

	span.SetAttributes(
		attribute.Int("fraud.flagged", len(report.Flags)),
		attribute.Int("fraud.suppressed", report.Suppressed),
	)
	return report, errors.Join(errs...)
}
