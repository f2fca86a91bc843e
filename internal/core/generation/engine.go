// Package generation drafts sponsored segments, weaves them into episode
// scripts and produces rewrites.
package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"castads/internal/core/domain"
	"castads/internal/core/invoke"
	"castads/internal/core/textkit"
)

// ComplianceChecker gates drafted ad copy.
type ComplianceChecker interface {
	CheckCompliance(ctx context.Context, adScript string) domain.ComplianceResult
}

// Engine drafts and embeds ad copy.
type Engine struct {
	inv        *invoke.Invoker
	compliance ComplianceChecker
	logger     *slog.Logger
}

// New returns a generation engine gated by compliance.
func New(inv *invoke.Invoker, compliance ComplianceChecker, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{inv: inv, compliance: compliance, logger: logger}
}

// ModelID names the model used for generation.
func (e *Engine) ModelID() string {
	return e.inv.Model()
}

// WriteEpisode generates the base script of a new episode.
func (e *Engine) WriteEpisode(ctx context.Context, owner domain.ContentOwner, title, topic string) (string, error) {
	res := e.inv.Generate(ctx, invoke.Request{Service: domain.ServiceContent, Prompt: episodePrompt(owner, title, topic)})
	if !res.OK() {
		return "", res.Err
	}
	return strings.TrimSpace(res.Value), nil
}

// Draft writes ad copy for the campaign in the owner's voice and runs the
// compliance gate on it. A non-compliant draft returns
// *domain.ComplianceViolation; callers skip the campaign.
func (e *Engine) Draft(ctx context.Context, owner domain.ContentOwner, c domain.Campaign, topic string) (domain.AdContent, error) {
	res := invoke.Call(ctx, e.inv, invoke.Request{Service: domain.ServiceGeneration, Prompt: draftPrompt(owner, c, topic)}, parseAdContent)
	if !res.OK() {
		return domain.AdContent{}, res.Err
	}
	ad := res.Value
	if len(ad.RequiredElements) == 0 {
		ad.RequiredElements = c.Requirements()
	}
	if max := c.ContentRules.MaxDuration; max > 0 && ad.Duration > max {
		ad.Duration = max
	}

	if err := e.gate(ctx, c, ad.Script); err != nil {
		return domain.AdContent{}, err
	}
	return ad, nil
}

func (e *Engine) gate(ctx context.Context, c domain.Campaign, script string) error {
	result := e.compliance.CheckCompliance(ctx, script)
	if forbidden := textkit.Matching(script, c.ContentRules.ForbiddenPhrases); len(forbidden) > 0 {
		for _, f := range forbidden {
			result.Violations = append(result.Violations, fmt.Sprintf("forbidden phrase: %q", f))
		}
		result.Compliant = false
		result.Severity = domain.SeverityFor(len(result.Violations))
	}
	if !result.Compliant {
		return &domain.ComplianceViolation{CampaignID: c.ID, Result: result}
	}
	return nil
}

// Embed merges the ad into the script. The merged script always carries the
// ad markers: when the model call fails or drops them the ad is inserted
// deterministically and fallback is reported true.
func (e *Engine) Embed(ctx context.Context, script string, ad domain.AdContent) (merged string, fallback bool) {
	if e.inv != nil {
		res := invoke.Call(ctx, e.inv, invoke.Request{Service: domain.ServiceEmbedding, Prompt: embedPrompt(script, ad)}, parseEmbedded)
		if res.OK() {
			return res.Value, false
		}
		e.logger.Warn("embedding fell back to deterministic insertion",
			slog.String("placement", string(ad.Placement)),
			slog.Any("error", res.Err))
	}
	return InsertAd(script, ad), true
}

// Variations returns up to n rewrites of ad. Each rewrite keeps placement,
// duration and required elements. Failed or non-compliant rewrites are
// skipped, so the result may be shorter than n or empty.
func (e *Engine) Variations(ctx context.Context, c domain.Campaign, ad domain.AdContent, n int) []domain.AdContent {
	out := make([]domain.AdContent, 0, n)
	for i := 0; i < n; i++ {
		res := invoke.Call(ctx, e.inv, invoke.Request{Service: domain.ServiceVariation, Prompt: variationPrompt(ad, i+1, n)}, parseVariation)
		if !res.OK() {
			e.logger.Debug("variation skipped", slog.Int("index", i), slog.Any("error", res.Err))
			continue
		}
		if err := e.gate(ctx, c, res.Value); err != nil {
			e.logger.Debug("variation skipped", slog.Int("index", i), slog.Any("error", err))
			continue
		}
		out = append(out, domain.AdContent{
			Script:           res.Value,
			Placement:        ad.Placement,
			Duration:         ad.Duration,
			RequiredElements: append([]string(nil), ad.RequiredElements...),
			StyleNotes:       append([]string(nil), ad.StyleNotes...),
		})
	}
	return out
}
