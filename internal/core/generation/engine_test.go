package generation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"castads/internal/core/domain"
	"castads/internal/core/invoke"
	"castads/internal/core/port/mocks"
	"castads/internal/core/verification"
)

var (
	owner = domain.ContentOwner{
		ID:      "o1",
		Name:    "Morning Loaf",
		Voice:   "warm",
		Persona: "home baker",
		Themes:  []string{"bread", "mornings"},
	}
	campaign = domain.Campaign{
		ID:              "c1",
		BrandName:       "Bean Co",
		ProductName:     "Fresh Roast",
		RequiredContent: []string{"mention code BEANS10"},
		ContentRules:    domain.ContentRules{MaxDuration: 20, ForbiddenPhrases: []string{"cheapest"}},
	}
)

const baseScript = "line one\nline two\nline three\nline four\nline five\nline six\nline seven\nline eight\nline nine\nline ten"

func newEngine(t *testing.T, route func(prompt string) (string, error)) *Engine {
	t.Helper()
	gen := mocks.NewMockTextGenerator(t)
	gen.EXPECT().Generate(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, prompt string) (string, error) {
		return route(prompt)
	}).Maybe()
	gen.EXPECT().Model().Return("writer-1").Maybe()
	inv := invoke.New(gen, invoke.RetryPolicy{MaxAttempts: 1}, nil)
	return New(inv, verification.New(nil, domain.DefaultVerificationParams(), nil), nil)
}

func reply(s string) func(string) (string, error) {
	return func(string) (string, error) { return s, nil }
}

func TestDraftParsesAndDefaults(t *testing.T) {
	e := newEngine(t, reply("Sure!\n```json\n{\"script\":\"This episode is sponsored by Bean Co. Use code BEANS10.\",\"placement\":\"\",\"duration\":45}\n```"))

	ad, err := e.Draft(context.Background(), owner, campaign, "sourdough")
	require.NoError(t, err)
	assert.Equal(t, domain.PlacementMidRoll, ad.Placement)
	assert.Equal(t, 20, ad.Duration, "clamped to campaign max duration")
	assert.Equal(t, []string{"mention code BEANS10"}, ad.RequiredElements)
	assert.Equal(t, "writer-1", e.ModelID())
}

func TestDraftMissingFieldsAreParseFailures(t *testing.T) {
	for _, r := range []string{
		`{"placement":"intro","duration":30}`,
		`{"script":"   ","placement":"intro"}`,
		`{"script":"Sponsored by Bean Co."}`,
		`{"script":"Sponsored by Bean Co.","placement":"sideways"}`,
		"no json here",
	} {
		e := newEngine(t, reply(r))
		_, err := e.Draft(context.Background(), owner, campaign, "")
		var aiErr *domain.AIServiceError
		require.ErrorAs(t, err, &aiErr, r)
		assert.Equal(t, domain.CodeInvalidResponse, aiErr.Code, r)
	}
}

func TestParseAdContentDuration(t *testing.T) {
	ad, err := parseAdContent(`{"script":"x","placement":"outro","duration":"25s","styleNotes":"upbeat"}`)
	require.NoError(t, err)
	assert.Equal(t, 25, ad.Duration)
	assert.Equal(t, []string{"upbeat"}, ad.StyleNotes)

	ad, err = parseAdContent(`{"script":"x","placement":"midroll","duration":0}`)
	require.NoError(t, err)
	assert.Equal(t, defaultDuration, ad.Duration)
	assert.Equal(t, domain.PlacementMidRoll, ad.Placement)
}

func TestDraftAbortsOnComplianceViolation(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{name: "misleading undisclosed", script: "Guaranteed results with Fresh Roast."},
		{name: "forbidden phrase", script: "This episode is sponsored by Bean Co, the cheapest beans around."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, reply(`{"script":"`+tt.script+`","placement":"intro"}`))
			_, err := e.Draft(context.Background(), owner, campaign, "")
			var violation *domain.ComplianceViolation
			require.ErrorAs(t, err, &violation)
			assert.Equal(t, "c1", violation.CampaignID)
			assert.False(t, violation.Result.Compliant)
			assert.NotEmpty(t, violation.Result.Violations)
		})
	}
}

func TestEmbedUsesModelReply(t *testing.T) {
	merged := "line one\n[AD START]\nSponsored by Bean Co.\n[AD END]\nline two"
	e := newEngine(t, reply(merged))

	got, fallback := e.Embed(context.Background(), "line one\nline two", domain.AdContent{Script: "Sponsored by Bean Co."})
	assert.False(t, fallback)
	assert.Equal(t, merged, got)
}

func TestEmbedFallsBackOnFailure(t *testing.T) {
	ad := domain.AdContent{Script: "Sponsored by Bean Co.", Placement: domain.PlacementIntro}
	for name, route := range map[string]func(string) (string, error){
		"call error":      func(string) (string, error) { return "", errors.New("boom") },
		"markers missing": reply("line one\nSponsored by Bean Co.\nline two"),
	} {
		e := newEngine(t, route)
		got, fallback := e.Embed(context.Background(), baseScript, ad)
		assert.True(t, fallback, name)
		assert.True(t, HasMarkers(got), name)
		assert.Equal(t, baseScript, StripAds(got), name)
	}
}

func TestInsertionIndex(t *testing.T) {
	assert.Equal(t, 2, InsertionIndex(10, domain.PlacementIntro))
	assert.Equal(t, 5, InsertionIndex(10, domain.PlacementMidRoll))
	assert.Equal(t, 5, InsertionIndex(10, domain.PlacementNatural))
	assert.Equal(t, 8, InsertionIndex(10, domain.PlacementOutro))
	assert.Equal(t, 0, InsertionIndex(1, domain.PlacementIntro))
}

func TestInsertAdThenStripRoundTrip(t *testing.T) {
	for _, kind := range []domain.PlacementKind{domain.PlacementIntro, domain.PlacementMidRoll, domain.PlacementOutro, domain.PlacementNatural} {
		merged := InsertAd(baseScript, domain.AdContent{Script: "Sponsored by Bean Co.", Placement: kind})
		lines := strings.Split(merged, "\n")
		idx := InsertionIndex(10, kind)
		assert.Equal(t, domain.AdStartMarker, lines[idx], kind)
		assert.Equal(t, domain.AdEndMarker, lines[idx+2], kind)
		assert.Equal(t, baseScript, StripAds(merged), kind)
	}
}

func TestInsertAdSkipsExistingBlock(t *testing.T) {
	first := domain.AdContent{Script: "Sponsored by Bean Co.", Placement: domain.PlacementMidRoll}
	second := domain.AdContent{Script: "Our partner ShieldNet.", Placement: domain.PlacementMidRoll}

	merged := InsertAd(InsertAd(baseScript, first), second)
	lines := strings.Split(merged, "\n")
	assert.Equal(t, []string{domain.AdStartMarker, first.Script, domain.AdEndMarker}, lines[5:8])
	assert.Equal(t, []string{domain.AdStartMarker, second.Script, domain.AdEndMarker}, lines[8:11])
	assert.Equal(t, baseScript, StripAds(merged))
}

func TestVariationsReturnsSuccessfulSubset(t *testing.T) {
	calls := 0
	e := newEngine(t, func(string) (string, error) {
		calls++
		switch calls {
		case 1:
			return `{"script":"Sponsored by Bean Co. Use code BEANS10."}`, nil
		case 2:
			return "", errors.New("upstream down")
		case 3:
			return "A miracle in every cup, guaranteed.", nil
		default:
			return "Today's partner is Bean Co. Code BEANS10 saves you ten percent.", nil
		}
	})
	ad := domain.AdContent{
		Script:           "Sponsored by Bean Co.",
		Placement:        domain.PlacementOutro,
		Duration:         15,
		RequiredElements: []string{"mention code BEANS10"},
	}

	got := e.Variations(context.Background(), campaign, ad, 4)
	require.Len(t, got, 2)
	for _, v := range got {
		assert.Equal(t, domain.PlacementOutro, v.Placement)
		assert.Equal(t, 15, v.Duration)
		assert.Equal(t, []string{"mention code BEANS10"}, v.RequiredElements)
	}
	assert.Equal(t, "Sponsored by Bean Co. Use code BEANS10.", got[0].Script)
}

func TestVariationsAllFailingIsEmpty(t *testing.T) {
	e := newEngine(t, func(string) (string, error) { return "", errors.New("down") })
	got := e.Variations(context.Background(), campaign, domain.AdContent{Script: "Sponsored by Bean Co."}, 3)
	assert.Empty(t, got)
}

func TestWriteEpisode(t *testing.T) {
	var seen string
	e := newEngine(t, func(p string) (string, error) {
		seen = p
		return "  Hello listeners.\nToday: bread.  ", nil
	})
	script, err := e.WriteEpisode(context.Background(), owner, "Crumb", "sourdough")
	require.NoError(t, err)
	assert.Equal(t, "Hello listeners.\nToday: bread.", script)
	assert.Contains(t, seen, "sourdough")
	assert.Contains(t, seen, "home baker")
}
