// Package matching scores campaign and owner compatibility and selects the
// campaigns allowed to advertise in a new episode.
package matching

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"castads/internal/core/domain"
	"castads/internal/core/invoke"
	"castads/internal/core/port"
	"castads/internal/core/textkit"
)

// Match is one accepted campaign for an episode.
type Match struct {
	Campaign        domain.Campaign
	Score           float64
	SuggestedBudget int64
}

// Engine scores and selects campaigns. The cache is optional.
type Engine struct {
	inv    *invoke.Invoker
	cache  port.ScoreCache
	params domain.MatchingParams
	logger *slog.Logger
	nowFn  func() time.Time
}

// New returns a matching engine. A nil invoker scores with the fallback
// formula only.
func New(inv *invoke.Invoker, cache port.ScoreCache, params domain.MatchingParams, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{inv: inv, cache: cache, params: params, logger: logger, nowFn: time.Now}
}

// Score returns the compatibility of c and o in [0,1]. Model scores are
// cached; a non-numeric or out-of-range reply falls back to FallbackScore.
func (e *Engine) Score(ctx context.Context, c domain.Campaign, o domain.ContentOwner) float64 {
	if e.cache != nil {
		score, ok, err := e.cache.GetScore(ctx, c.ID, o.ID)
		if err != nil {
			e.logger.Warn("score cache read failed", slog.String("campaign_id", c.ID), slog.Any("error", err))
		} else if ok && domain.InUnit(score) {
			return score
		}
	}

	if e.inv == nil || !c.AIMatching {
		return FallbackScore(e.params.Weights, c, o)
	}

	res := invoke.Call(ctx, e.inv, invoke.Request{Service: domain.ServiceMatching, Prompt: scorePrompt(c, o)}, invoke.ParseUnitFloat)
	if !res.OK() {
		e.logger.Debug("compatibility scoring fell back",
			slog.String("campaign_id", c.ID),
			slog.String("owner_id", o.ID),
			slog.Any("error", res.Err))
		return FallbackScore(e.params.Weights, c, o)
	}

	if e.cache != nil {
		if err := e.cache.SetScore(ctx, c.ID, o.ID, res.Value); err != nil {
			e.logger.Warn("score cache write failed", slog.String("campaign_id", c.ID), slog.Any("error", err))
		}
	}
	return res.Value
}

// Select walks campaigns in order and accepts those the owner's preferences
// admit and whose score clears the threshold, until the owner's per-episode
// cap is reached.
func (e *Engine) Select(ctx context.Context, o domain.ContentOwner, campaigns []domain.Campaign) []Match {
	if !domain.CanAcceptAds(o) {
		return nil
	}
	limit := domain.MaxAds(o)
	now := e.nowFn()

	var out []Match
	for _, c := range campaigns {
		if len(out) >= limit {
			break
		}
		if !domain.Advertisable(c, now) {
			continue
		}
		if ok, reason := domain.AcceptsCampaign(o.Preferences, c); !ok {
			e.logger.Debug("campaign rejected by owner preferences",
				slog.String("campaign_id", c.ID),
				slog.String("owner_id", o.ID),
				slog.String("reason", reason))
			continue
		}

		score := e.Score(ctx, c, o)
		threshold := math.Max(e.params.Threshold, c.QualityThreshold)
		if score < threshold {
			continue
		}
		out = append(out, Match{
			Campaign:        c,
			Score:           score,
			SuggestedBudget: SuggestedBudget(e.params, c, o, score),
		})
	}
	return out
}

// SuggestedBudget returns min(base*budget*score*reach, cap*budget) where reach
// is min(estimatedReach/divisor, reachCap).
func SuggestedBudget(p domain.MatchingParams, c domain.Campaign, o domain.ContentOwner, score float64) int64 {
	reach := 0.0
	if p.ReachDivisor > 0 {
		reach = math.Min(o.EstimatedReach()/p.ReachDivisor, p.ReachCap)
	}
	budget := float64(c.Budget)
	alloc := math.Min(p.AllocationBase*budget*score*reach, p.AllocationCap*budget)
	if alloc < 0 {
		return 0
	}
	return int64(math.Floor(alloc))
}

// FallbackScore is the deterministic compatibility blend of audience
// alignment, content relevance, brand fit and owner quality.
func FallbackScore(w domain.MatchWeights, c domain.Campaign, o domain.ContentOwner) float64 {
	score := w.Audience*AudienceAlignment(c, o) +
		w.Relevance*ContentRelevance(c, o) +
		w.BrandFit*BrandFit(c, o) +
		w.Quality*domain.Clamp01(o.QualityScore*o.Engagement.EngagementRate)
	return domain.Clamp01(score)
}

// AudienceAlignment is the share of the campaign's target tags the owner
// covers. Campaigns without tags score a neutral 0.5.
func AudienceAlignment(c domain.Campaign, o domain.ContentOwner) float64 {
	if len(c.TargetAudience) == 0 {
		return 0.5
	}
	return textkit.Overlap(c.TargetAudience, o.Themes)
}

// ContentRelevance is the Jaccard similarity of the campaign's category and
// description against the owner's description and themes, on words longer
// than three characters.
func ContentRelevance(c domain.Campaign, o domain.ContentOwner) float64 {
	campaign := textkit.WordSet(c.Category+" "+c.Description, 3)
	owner := textkit.WordSet(o.Description+" "+strings.Join(o.Themes, " "), 3)
	return textkit.Jaccard(campaign, owner)
}

// BrandFit scores the owner's brand and category preferences.
func BrandFit(c domain.Campaign, o domain.ContentOwner) float64 {
	switch {
	case domain.IsBrandBlocked(o.Preferences, c.BrandName):
		return 0
	case len(o.Preferences.AllowedCategories) == 0:
		return 0.7
	case domain.CategoryAllowed(o.Preferences, c.Category):
		return 1
	default:
		return 0.3
	}
}

func scorePrompt(c domain.Campaign, o domain.ContentOwner) string {
	var b strings.Builder
	b.WriteString("Rate how well this advertising campaign fits this podcast on a scale from 0 to 1.\n")
	fmt.Fprintf(&b, "Campaign: %s (%s), category %s. %s\n", c.BrandName, c.ProductName, c.Category, c.Description)
	if len(c.TargetAudience) > 0 {
		fmt.Fprintf(&b, "Target audience: %s.\n", strings.Join(c.TargetAudience, ", "))
	}
	fmt.Fprintf(&b, "Podcast: %s. %s\n", o.Name, o.Description)
	if len(o.Themes) > 0 {
		fmt.Fprintf(&b, "Topics: %s.\n", strings.Join(o.Themes, ", "))
	}
	fmt.Fprintf(&b, "Quality %.2f, engagement rate %.2f.\n", o.QualityScore, o.Engagement.EngagementRate)
	b.WriteString("Reply with a single decimal number only.")
	return b.String()
}
