package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"castads/internal/core/adscript"
	"castads/internal/core/domain"
	"castads/internal/core/generation"
	"castads/internal/core/matching"
	"castads/internal/core/port"
	"castads/internal/core/verification"
)

const maxVariations = 10

// Deps are the collaborators of the ad pipeline. Events may be nil.
type Deps struct {
	Repo     port.Repository
	Ledger   port.Ledger
	Events   port.EventPublisher
	Matcher  *matching.Engine
	Writer   *generation.Engine
	Verifier *verification.Engine
	Logger   *slog.Logger
}

// AdUseCase orchestrates matching, generation and verification per episode
// request and serves exposure tracking. It implements port.AdUseCase.
type AdUseCase struct {
	repo     port.Repository
	ledger   port.Ledger
	events   port.EventPublisher
	matcher  *matching.Engine
	writer   *generation.Engine
	verifier *verification.Engine
	logger   *slog.Logger
	tracer   trace.Tracer
	nowFn    func() time.Time
}

var _ port.AdUseCase = (*AdUseCase)(nil)

// NewAdUseCase wires the pipeline.
func NewAdUseCase(d Deps) *AdUseCase {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AdUseCase{
		repo:     d.Repo,
		ledger:   d.Ledger,
		events:   d.Events,
		matcher:  d.Matcher,
		writer:   d.Writer,
		verifier: d.Verifier,
		logger:   logger,
		tracer:   otel.Tracer("castads/pipeline"),
		nowFn:    time.Now,
	}
}

// GenerateEpisode writes a new episode and, for monetized owners, weaves in
// matched ads. Any failure in ad augmentation discards every ad and the plain
// episode is returned with Degraded set.
func (u *AdUseCase) GenerateEpisode(ctx context.Context, req port.GenerateRequest) (*port.EpisodeResult, error) {
	if strings.TrimSpace(req.OwnerID) == "" || strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: owner id and title are required", domain.ErrInvalidInput)
	}
	ctx, span := u.tracer.Start(ctx, "pipeline.GenerateEpisode", trace.WithAttributes(attribute.String("owner.id", req.OwnerID)))
	defer span.End()

	owner, err := u.repo.GetOwner(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, fmt.Errorf("%w: owner %s", domain.ErrNotFound, req.OwnerID)
	}

	script, err := u.writer.WriteEpisode(ctx, *owner, req.Title, req.Topic)
	if err != nil {
		return nil, fmt.Errorf("generate episode: %w", err)
	}
	now := u.nowFn().UTC()
	plain := domain.Episode{
		ID:        uuid.NewString(),
		OwnerID:   owner.ID,
		Title:     req.Title,
		Topic:     req.Topic,
		Script:    script,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result := &port.EpisodeResult{Episode: plain}
	if domain.CanAcceptAds(*owner) {
		merged, placements, err := u.augment(ctx, *owner, plain, req.VerifyImmediately)
		if err != nil {
			u.logger.Error("ad augmentation discarded",
				slog.String("owner_id", owner.ID),
				slog.String("episode_id", plain.ID),
				slog.Any("error", err))
			span.RecordError(err)
			result.Degraded = true
		} else if len(placements) > 0 {
			live := 0
			for _, p := range placements {
				if p.Status != domain.PlacementRejected {
					live++
				}
			}
			ep := plain
			ep.Script = merged
			ep.HasAds = live > 0
			ep.AdCount = live
			result.Episode = ep
			result.Placements = placements
		}
	}

	if err = u.repo.SaveEpisode(ctx, result.Episode, result.Placements); err != nil {
		if len(result.Placements) == 0 {
			return nil, fmt.Errorf("save episode: %w", err)
		}
		u.logger.Error("saving episode with ads failed, saving plain episode",
			slog.String("episode_id", plain.ID), slog.Any("error", err))
		if err = u.repo.SaveEpisode(ctx, plain, nil); err != nil {
			return nil, fmt.Errorf("save episode: %w", err)
		}
		result = &port.EpisodeResult{Episode: plain, Degraded: true}
	}

	for _, p := range result.Placements {
		u.publish(ctx, domain.NewPlacementEvent(domain.EventPlacementCreated, p, now))
		switch p.Status {
		case domain.PlacementVerified:
			u.publish(ctx, domain.NewPlacementEvent(domain.EventPlacementVerified, p, now))
		case domain.PlacementRejected:
			u.publish(ctx, domain.NewPlacementEvent(domain.EventPlacementRejected, p, now))
		}
	}
	span.SetAttributes(
		attribute.Int("placements", len(result.Placements)),
		attribute.Bool("degraded", result.Degraded),
	)
	return result, nil
}

// augment runs matching, drafting and embedding for each selected campaign in
// turn. Per-campaign failures skip that campaign; anything else, including a
// panic, fails the whole augmentation.
func (u *AdUseCase) augment(ctx context.Context, owner domain.ContentOwner, ep domain.Episode, verify bool) (merged string, placements []domain.AdPlacement, err error) {
	defer func() {
		if r := recover(); r != nil {
			merged, placements, err = "", nil, fmt.Errorf("ad pipeline panic: %v", r)
		}
	}()

	campaigns, err := u.repo.ListCampaigns(ctx, port.CampaignFilter{Status: domain.CampaignActive})
	if err != nil {
		return "", nil, fmt.Errorf("list campaigns: %w", err)
	}
	matches := u.matcher.Select(ctx, owner, campaigns)

	merged = ep.Script
	for _, m := range matches {
		c := m.Campaign
		ad, err := u.writer.Draft(ctx, owner, c, ep.Topic)
		if err != nil {
			var violation *domain.ComplianceViolation
			level := slog.LevelWarn
			if errors.As(err, &violation) {
				level = slog.LevelInfo
			}
			u.logger.Log(ctx, level, "campaign skipped",
				slog.String("campaign_id", c.ID),
				slog.String("owner_id", owner.ID),
				slog.Any("error", err))
			continue
		}
		ad.Placement = choosePlacement(ad.Placement, owner.Preferences, c.ContentRules)

		var fallback bool
		merged, fallback = u.writer.Embed(ctx, merged, ad)
		if fallback {
			u.logger.Debug("ad inserted deterministically", slog.String("campaign_id", c.ID))
		}

		p := domain.NewPlacement(c.ID, owner.ID, ep.ID, u.nowFn().UTC())
		p.Content = ad
		p.GenerationModelID = u.writer.ModelID()
		p.MatchScore = m.Score
		p.SuggestedBudget = m.SuggestedBudget
		placements = append(placements, p)
	}

	if verify {
		byID := make(map[string]domain.Campaign, len(matches))
		for _, m := range matches {
			byID[m.Campaign.ID] = m.Campaign
		}
		judged := merged
		for i := range placements {
			if err = u.judge(ctx, byID[placements[i].CampaignID], &placements[i], judged); err != nil {
				return "", nil, err
			}
			// rejected copy never ships
			if placements[i].Status == domain.PlacementRejected {
				merged = adscript.Remove(merged, placements[i].Content)
			}
		}
	}
	return merged, placements, nil
}

// judge runs verification on a pending placement and moves it to verified or
// rejected. Verified placements are registered with the ledger; a ledger
// failure is logged and does not undo the verdict.
func (u *AdUseCase) judge(ctx context.Context, c domain.Campaign, p *domain.AdPlacement, merged string) error {
	return judgePlacement(ctx, u.verifier, u.ledger, u.logger, u.nowFn().UTC(), c, p, merged)
}

func judgePlacement(ctx context.Context, verifier *verification.Engine, ledger port.Ledger, logger *slog.Logger,
	now time.Time, c domain.Campaign, p *domain.AdPlacement, merged string) error {
	res := verifier.Verify(ctx, c, p.Content, merged)
	p.Verification = &res
	p.QualityScore = res.QualityScore
	p.VerificationModelID = verifier.ModelID()

	if !res.Verified {
		reason := "verification failed"
		if len(res.Feedback) > 0 {
			reason = strings.Join(res.Feedback, "; ")
		}
		return p.Reject(reason, now)
	}
	if err := p.Transition(domain.PlacementVerified, now); err != nil {
		return err
	}
	txRef, err := ledger.VerifyPlacement(ctx, p.CampaignID, p.OwnerID)
	if err != nil {
		logger.Warn("ledger placement registration failed",
			slog.String("placement_id", p.ID),
			slog.String("campaign_id", p.CampaignID),
			slog.Any("error", err))
		return nil
	}
	p.VerificationTxRef = txRef
	return nil
}

// choosePlacement keeps the drafted kind when the campaign allows it, then
// tries the owner's preference, then the campaign's first allowed kind.
func choosePlacement(drafted domain.PlacementKind, prefs domain.AdPreferences, rules domain.ContentRules) domain.PlacementKind {
	if len(rules.Placements) == 0 {
		return drafted
	}
	allowed := func(k domain.PlacementKind) bool {
		return slices.ContainsFunc(rules.Placements, func(s string) bool {
			kind, ok := domain.ParsePlacementKind(strings.ToLower(strings.TrimSpace(s)))
			return ok && kind == k
		})
	}
	if allowed(drafted) {
		return drafted
	}
	if prefs.PreferredPlacement != "" && allowed(prefs.PreferredPlacement) {
		return prefs.PreferredPlacement
	}
	for _, s := range rules.Placements {
		if kind, ok := domain.ParsePlacementKind(strings.ToLower(strings.TrimSpace(s))); ok {
			return kind
		}
	}
	return drafted
}

// GetEpisode returns an episode by id.
func (u *AdUseCase) GetEpisode(ctx context.Context, id string) (*domain.Episode, error) {
	return u.repo.GetEpisode(ctx, id)
}

// TrackExposure filters events through the ledger and applies the genuine
// ones to a verified or paid placement.
func (u *AdUseCase) TrackExposure(ctx context.Context, placementID string, events []domain.ExposureEvent) (*port.ExposureResult, error) {
	if placementID == "" || len(events) == 0 {
		return nil, fmt.Errorf("%w: placement id and events are required", domain.ErrInvalidInput)
	}
	p, err := u.repo.GetPlacement(ctx, placementID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: placement %s", domain.ErrNotFound, placementID)
	}
	if !p.Status.Trackable() {
		return nil, fmt.Errorf("%w: placement %s is %s", domain.ErrNotTrackable, p.ID, p.Status)
	}

	genuine, err := u.ledger.ValidateExposureAuthenticity(ctx, events)
	if err != nil {
		return nil, fmt.Errorf("validate exposure: %w", err)
	}
	res := &port.ExposureResult{Received: len(events), Accepted: len(genuine), Placement: *p}
	delta := domain.CountExposure(genuine)
	if delta.Zero() {
		return res, nil
	}

	updated, err := u.repo.RecordExposure(ctx, placementID, delta, u.nowFn().UTC())
	if err != nil {
		return nil, err
	}
	res.Applied = delta
	res.Placement = *updated
	return res, nil
}

// AddFeedback appends a listener rating. Rejected placements take no
// feedback.
func (u *AdUseCase) AddFeedback(ctx context.Context, placementID string, fb domain.Feedback) error {
	if fb.Rating < 1 || fb.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrInvalidInput)
	}
	p, err := u.repo.GetPlacement(ctx, placementID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: placement %s", domain.ErrNotFound, placementID)
	}
	if p.Status == domain.PlacementRejected {
		return fmt.Errorf("%w: placement %s is rejected", domain.ErrNotTrackable, p.ID)
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = u.nowFn().UTC()
	}
	return u.repo.AppendFeedback(ctx, placementID, fb)
}

// Variations returns up to n rewrites of the placement's ad copy.
func (u *AdUseCase) Variations(ctx context.Context, placementID string, n int) ([]domain.AdContent, error) {
	if n < 1 || n > maxVariations {
		return nil, fmt.Errorf("%w: count must be between 1 and %d", domain.ErrInvalidInput, maxVariations)
	}
	p, err := u.repo.GetPlacement(ctx, placementID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: placement %s", domain.ErrNotFound, placementID)
	}
	if p.Content.Empty() {
		return nil, fmt.Errorf("%w: placement %s has no ad copy", domain.ErrInvalidInput, p.ID)
	}
	c, err := u.repo.GetCampaign(ctx, p.CampaignID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: campaign %s", domain.ErrNotFound, p.CampaignID)
	}
	return u.writer.Variations(ctx, *c, p.Content, n), nil
}

// GetStats returns daily campaign rollups for a period.
func (u *AdUseCase) GetStats(ctx context.Context, req port.StatsReq) ([]domain.CampaignDailyStats, error) {
	return u.repo.ListDailyStats(ctx, req)
}

func (u *AdUseCase) publish(ctx context.Context, ev domain.PlacementEvent) {
	publishEvent(ctx, u.events, u.logger, ev)
}

func publishEvent(ctx context.Context, events port.EventPublisher, logger *slog.Logger, ev domain.PlacementEvent) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, ev); err != nil {
		logger.Warn("publish placement event",
			slog.String("type", string(ev.Type)),
			slog.String("placement_id", ev.PlacementID),
			slog.Any("error", err))
	}
}
