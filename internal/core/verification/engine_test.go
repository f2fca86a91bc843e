package verification

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"castads/internal/core/domain"
	"castads/internal/core/invoke"
	"castads/internal/core/port/mocks"
)

const cleanScript = `Welcome back to the show. Today we talk about sourdough.
Speaking of good mornings,
[AD START]
This episode is sponsored by Bean Co. Use code BEANS10 for ten percent off your first bag of fresh roasted beans.
[AD END]
Now back to the starter. Feed it twice a day and keep it warm, and it will reward you with a lively rise.`

func newEngine(t *testing.T, route func(prompt string) (string, error)) *Engine {
	t.Helper()
	gen := mocks.NewMockTextGenerator(t)
	gen.EXPECT().Generate(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, prompt string) (string, error) {
		return route(prompt)
	}).Maybe()
	gen.EXPECT().Model().Return("judge-1").Maybe()
	inv := invoke.New(gen, invoke.RetryPolicy{MaxAttempts: 1}, nil)
	return New(inv, domain.DefaultVerificationParams(), nil)
}

func TestFallbackQualityIsBoundedAndDeterministic(t *testing.T) {
	for _, script := range []string{"", cleanScript, "BUY NOW! click here, act now, limited time, 100% risk-free!!!", strings.Repeat("x", 30000)} {
		a := FallbackQuality(script)
		b := FallbackQuality(script)
		assert.Equal(t, a, b)
		assert.True(t, a.Valid(), "fallback out of range for %q", script[:min(len(script), 20)])
	}
	clean := FallbackQuality(cleanScript)
	assert.GreaterOrEqual(t, clean.Overall, 0.7)
	assert.LessOrEqual(t, clean.Breakdown["flow_disruption"], 0.3)
}

func TestScoreQualityFallsBackOnMalformedReply(t *testing.T) {
	replies := []string{
		"not json at all",
		`{"overall": 0.9, "naturalness": 0.8}`,
		`{"overall": 1.4, "naturalness": 0.8, "relevance": 0.5, "engagement": 0.5, "compliance": 1}`,
		`{"overall": 0.9, "naturalness": 0.8, "relevance": 0.5, "engagement": 0.5, "compliance": 1, "breakdown": {"flow_disruption": -2}}`,
	}
	for _, reply := range replies {
		e := newEngine(t, func(string) (string, error) { return reply, nil })
		got := e.ScoreQuality(context.Background(), cleanScript, domain.Campaign{})
		assert.Equal(t, FallbackQuality(cleanScript), got, reply)
		assert.True(t, got.Valid())
	}
}

func TestScoreQualityUsesValidReply(t *testing.T) {
	e := newEngine(t, func(string) (string, error) {
		return "```json\n{\"overall\":0.81,\"naturalness\":0.7,\"relevance\":0.6,\"engagement\":0.5,\"compliance\":0.9,\"breakdown\":{\"flow_disruption\":0.1}}\n```", nil
	})
	got := e.ScoreQuality(context.Background(), cleanScript, domain.Campaign{})
	assert.InDelta(t, 0.81, got.Overall, 1e-9)
	assert.InDelta(t, 0.1, got.Breakdown["flow_disruption"], 1e-9)
}

func TestFallbackComplianceFlagsMisleadingUndisclosedCopy(t *testing.T) {
	res := FallbackCompliance("Our pills are guaranteed to work overnight.")
	assert.False(t, res.Compliant)
	assert.Contains(t, []domain.Severity{domain.SeverityMedium, domain.SeverityHigh}, res.Severity)
	assert.Len(t, res.Violations, 2)
	assert.NotEmpty(t, res.Suggestions)
}

func TestFallbackComplianceSeverityBands(t *testing.T) {
	ok := FallbackCompliance("This segment is sponsored by Bean Co.")
	assert.True(t, ok.Compliant)
	assert.Equal(t, domain.SeverityLow, ok.Severity)

	long := "Our ad partner says: " + strings.Repeat("great coffee ", 100)
	res := FallbackCompliance(long)
	assert.False(t, res.Compliant)
	assert.Equal(t, domain.SeverityMedium, res.Severity)

	worst := "A guaranteed miracle for instant results and get rich quick " + strings.Repeat("!", 1000)
	res = FallbackCompliance(worst)
	assert.Equal(t, domain.SeverityHigh, res.Severity)
}

func TestDisclosureTokens(t *testing.T) {
	assert.True(t, hasDisclosure("a word from our partners"))
	assert.True(t, hasDisclosure("This is an ad."))
	assert.True(t, hasDisclosure("Advertisement: coffee"))
	assert.False(t, hasDisclosure("we added a load of beans")) // "added" is not "ad"
}

func TestCheckComplianceFallsBackOnUnknownSeverity(t *testing.T) {
	e := newEngine(t, func(string) (string, error) {
		return `{"compliant": true, "violations": [], "severity": "catastrophic"}`, nil
	})
	got := e.CheckCompliance(context.Background(), "Guaranteed results!")
	assert.Equal(t, FallbackCompliance("Guaranteed results!"), got)
}

func TestFallbackRequirement(t *testing.T) {
	assert.False(t, FallbackRequirement("use the code today for a discount", "include code X", 0.6))
	assert.True(t, FallbackRequirement("use code X at checkout", "include code X", 0.6))
	assert.True(t, FallbackRequirement("Visit beanco.example for fresh roasted beans", "mention fresh roasted beans", 0.6))
	assert.False(t, FallbackRequirement("nothing relevant", "mention fresh roasted beans", 0.6))
	assert.True(t, FallbackRequirement("anything", "  ", 0.6))
}

func TestVerifyFailsOnUnmetRequirementDespiteHighQuality(t *testing.T) {
	e := newEngine(t, func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "Score the integration"):
			return `{"overall":0.9,"naturalness":0.9,"relevance":0.9,"engagement":0.9,"compliance":1,"breakdown":{"flow_disruption":0.05}}`, nil
		case strings.Contains(prompt, "advertising compliance"):
			return `{"compliant":true,"violations":[],"severity":"low","suggestions":[]}`, nil
		default:
			return "unsure", nil
		}
	})
	c := domain.Campaign{ID: "c1", RequiredContent: []string{"include code X"}}
	ad := domain.AdContent{Script: "This episode is sponsored by Bean Co."}

	res := e.Verify(context.Background(), c, ad, cleanScript)
	assert.Equal(t, []bool{false}, res.RequirementsMet)
	assert.InDelta(t, 0.9, res.QualityScore, 1e-9)
	assert.False(t, res.Verified)
	assert.Contains(t, res.Feedback, `Missing required element: "include code X"`)
}

func TestVerifyPassesCleanPlacement(t *testing.T) {
	e := New(nil, domain.DefaultVerificationParams(), nil)
	c := domain.Campaign{ID: "c1", RequiredContent: []string{"mention code BEANS10"}}
	ad := domain.AdContent{Script: "This episode is sponsored by Bean Co. Use code BEANS10 for ten percent off."}

	res := e.Verify(context.Background(), c, ad, cleanScript)
	require.True(t, res.Verified, "feedback: %v", res.Feedback)
	assert.Equal(t, 1.0, res.ComplianceScore)
	assert.Empty(t, res.Feedback)
	assert.Empty(t, e.ModelID())
}

func TestVerifyIgnoresOtherAdsForRequirements(t *testing.T) {
	e := New(nil, domain.DefaultVerificationParams(), nil)
	other := "Our partner ShieldNet keeps your browsing private. Use code CAST20 at checkout."
	merged := cleanScript + "\n[AD START]\n" + other + "\n[AD END]\nSee you next week."
	ad := domain.AdContent{Script: "This episode is sponsored by Bean Co. Use code BEANS10 for ten percent off."}

	res := e.Verify(context.Background(), domain.Campaign{ID: "c1", RequiredContent: []string{"mention code CAST20"}}, ad, merged)
	assert.Equal(t, []bool{false}, res.RequirementsMet)
	assert.False(t, res.Verified)

	res = e.Verify(context.Background(), domain.Campaign{ID: "c1", RequiredContent: []string{"mention code BEANS10"}}, ad, merged)
	assert.Equal(t, []bool{true}, res.RequirementsMet)
}

func TestVerifyHonoursCampaignFloors(t *testing.T) {
	e := New(nil, domain.DefaultVerificationParams(), nil)
	c := domain.Campaign{Verification: domain.VerificationCriteria{MinQualityScore: 0.99}}
	ad := domain.AdContent{Script: "Sponsored by Bean Co."}

	res := e.Verify(context.Background(), c, ad, cleanScript)
	assert.False(t, res.Verified)
	assert.NotEmpty(t, res.Feedback)
}
