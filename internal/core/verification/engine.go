// Package verification independently judges merged content: quality,
// compliance and explicit campaign requirements. Every model call has a
// deterministic fallback, so a verdict is always produced.
package verification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"castads/internal/core/adscript"
	"castads/internal/core/domain"
	"castads/internal/core/invoke"
)

// Engine scores placements. A nil invoker makes every check use its
// fallback.
type Engine struct {
	inv    *invoke.Invoker
	params domain.VerificationParams
	logger *slog.Logger
	nowFn  func() time.Time
}

// New returns a verification engine.
func New(inv *invoke.Invoker, params domain.VerificationParams, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{inv: inv, params: params, logger: logger, nowFn: time.Now}
}

// ModelID names the model used for verification, empty in fallback mode.
func (e *Engine) ModelID() string {
	return e.inv.Model()
}

type qualityReply struct {
	Overall     *float64           `json:"overall"`
	Naturalness *float64           `json:"naturalness"`
	Relevance   *float64           `json:"relevance"`
	Engagement  *float64           `json:"engagement"`
	Compliance  *float64           `json:"compliance"`
	Breakdown   map[string]float64 `json:"breakdown"`
}

func parseQuality(text string) (domain.QualityScore, error) {
	raw, err := invoke.ExtractJSON(text)
	if err != nil {
		return domain.QualityScore{}, err
	}
	var r qualityReply
	if err = json.Unmarshal([]byte(raw), &r); err != nil {
		return domain.QualityScore{}, err
	}
	if r.Overall == nil || r.Naturalness == nil || r.Relevance == nil || r.Engagement == nil || r.Compliance == nil {
		return domain.QualityScore{}, errors.New("quality reply is missing a score")
	}
	q := domain.QualityScore{
		Overall:     *r.Overall,
		Naturalness: *r.Naturalness,
		Relevance:   *r.Relevance,
		Engagement:  *r.Engagement,
		Compliance:  *r.Compliance,
		Breakdown:   r.Breakdown,
	}
	if !q.Valid() {
		return domain.QualityScore{}, errors.New("quality reply has a score outside [0,1]")
	}
	return q, nil
}

// ScoreQuality judges merged content. Malformed or out-of-range replies fall
// back to FallbackQuality.
func (e *Engine) ScoreQuality(ctx context.Context, script string, c domain.Campaign) domain.QualityScore {
	if e.inv == nil {
		return FallbackQuality(script)
	}
	res := invoke.Call(ctx, e.inv, invoke.Request{Service: domain.ServiceQuality, Prompt: qualityPrompt(script, c)}, parseQuality)
	if !res.OK() {
		e.logger.Warn("quality scoring fell back", slog.String("campaign_id", c.ID), slog.Any("error", res.Err))
		return FallbackQuality(script)
	}
	return res.Value
}

type complianceReply struct {
	Compliant   *bool    `json:"compliant"`
	Violations  []string `json:"violations"`
	Severity    string   `json:"severity"`
	Suggestions []string `json:"suggestions"`
}

func parseCompliance(text string) (domain.ComplianceResult, error) {
	raw, err := invoke.ExtractJSON(text)
	if err != nil {
		return domain.ComplianceResult{}, err
	}
	var r complianceReply
	if err = json.Unmarshal([]byte(raw), &r); err != nil {
		return domain.ComplianceResult{}, err
	}
	if r.Compliant == nil {
		return domain.ComplianceResult{}, errors.New("compliance reply is missing the verdict")
	}
	sev := domain.Severity(strings.ToLower(strings.TrimSpace(r.Severity)))
	switch {
	case sev == "":
		sev = domain.SeverityFor(len(r.Violations))
	case !sev.Valid():
		return domain.ComplianceResult{}, fmt.Errorf("unknown severity %q", r.Severity)
	}
	return domain.ComplianceResult{
		Compliant:   *r.Compliant && len(r.Violations) == 0,
		Violations:  r.Violations,
		Severity:    sev,
		Suggestions: r.Suggestions,
	}, nil
}

// CheckCompliance judges ad copy. Malformed replies fall back to
// FallbackCompliance.
func (e *Engine) CheckCompliance(ctx context.Context, adScript string) domain.ComplianceResult {
	if e.inv == nil {
		return FallbackCompliance(adScript)
	}
	res := invoke.Call(ctx, e.inv, invoke.Request{Service: domain.ServiceCompliance, Prompt: compliancePrompt(adScript)}, parseCompliance)
	if !res.OK() {
		e.logger.Warn("compliance check fell back", slog.Any("error", res.Err))
		return FallbackCompliance(adScript)
	}
	return res.Value
}

// CheckRequirements evaluates each requirement separately against script and
// returns one verdict per requirement, in order.
func (e *Engine) CheckRequirements(ctx context.Context, script string, requirements []string) []bool {
	out := make([]bool, len(requirements))
	for i, req := range requirements {
		if e.inv == nil {
			out[i] = FallbackRequirement(script, req, e.params.RequirementRatio)
			continue
		}
		res := invoke.Call(ctx, e.inv, invoke.Request{Service: domain.ServiceRequirements, Prompt: requirementPrompt(script, req)}, invoke.ParseYesNo)
		if !res.OK() {
			e.logger.Debug("requirement check fell back", slog.String("requirement", req), slog.Any("error", res.Err))
			out[i] = FallbackRequirement(script, req, e.params.RequirementRatio)
			continue
		}
		out[i] = res.Value
	}
	return out
}

// Verify produces the final verdict for an ad inside its merged episode
// script: overall quality at or above threshold, compliant copy and every
// requirement met. Requirements are checked against the ad's own block and
// its surrounding lines, never against other campaigns' ads.
func (e *Engine) Verify(ctx context.Context, c domain.Campaign, ad domain.AdContent, merged string) domain.VerificationResult {
	q := e.ScoreQuality(ctx, merged, c)
	comp := e.CheckCompliance(ctx, ad.Script)
	met := e.CheckRequirements(ctx, adscript.Context(merged, ad, adscript.ContextLines), c.Requirements())

	threshold := e.params.MinOverall
	if c.Verification.MinQualityScore > threshold {
		threshold = c.Verification.MinQualityScore
	}
	verified := q.Overall >= threshold && comp.Compliant && allTrue(met)
	if floor := c.Verification.NaturalnessFloor; floor > 0 && q.Naturalness < floor {
		verified = false
	}

	feedback, suggestions := e.feedback(q, comp, c.Requirements(), met, threshold)
	return domain.VerificationResult{
		Verified:        verified,
		QualityScore:    q.Overall,
		ComplianceScore: comp.Score(),
		RequirementsMet: met,
		Feedback:        feedback,
		Suggestions:     suggestions,
		VerifiedAt:      e.nowFn().UTC(),
	}
}

func (e *Engine) feedback(q domain.QualityScore, comp domain.ComplianceResult, reqs []string, met []bool, threshold float64) ([]string, []string) {
	var fb, sug []string
	if q.Overall < threshold {
		fb = append(fb, fmt.Sprintf("Overall quality %.2f is below the %.2f threshold", q.Overall, threshold))
	}
	if q.Naturalness < e.params.NaturalnessFloor {
		fb = append(fb, "Ad transition feels abrupt")
		sug = append(sug, `Lead into the ad with a natural bridge such as "speaking of..."`)
	}
	if q.Relevance < 0.5 {
		fb = append(fb, "Ad is weakly related to the episode topic")
		sug = append(sug, "Tie the product to the subject of the episode")
	}
	if q.Engagement < 0.5 {
		fb = append(fb, "Ad copy is unlikely to hold listener attention")
		sug = append(sug, "Add a concrete listener benefit or a short story")
	}
	if q.Breakdown["flow_disruption"] > e.params.FlowDisruption {
		fb = append(fb, "Ad disrupts the flow of the episode")
		sug = append(sug, "Move the ad to a natural pause in the conversation")
	}
	if !comp.Compliant {
		for _, v := range comp.Violations {
			fb = append(fb, "Compliance: "+v)
		}
		sug = append(sug, comp.Suggestions...)
	}
	for i, ok := range met {
		if !ok && i < len(reqs) {
			fb = append(fb, fmt.Sprintf("Missing required element: %q", reqs[i]))
			sug = append(sug, fmt.Sprintf("Include %q in the ad copy", reqs[i]))
		}
	}
	return fb, sug
}

func allTrue(vs []bool) bool {
	for _, v := range vs {
		if !v {
			return false
		}
	}
	return true
}
