package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAcceptsCampaign(t *testing.T) {
	c := Campaign{BrandName: "Bean Co", Category: "Coffee", PayoutPerView: 5}
	tests := []struct {
		name   string
		prefs  AdPreferences
		ok     bool
		reason string
	}{
		{name: "open", prefs: AdPreferences{}, ok: true},
		{name: "blocked brand ignores case", prefs: AdPreferences{BlockedBrands: []string{" bean co"}}, reason: ReasonBlockedBrand},
		{name: "category not allowed", prefs: AdPreferences{AllowedCategories: []string{"tech"}}, reason: ReasonCategoryNotAllowed},
		{name: "category allowed", prefs: AdPreferences{AllowedCategories: []string{"coffee"}}, ok: true},
		{name: "payout too low", prefs: AdPreferences{MinPayoutRate: 6}, reason: ReasonPayoutTooLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := AcceptsCampaign(tt.prefs, c)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestCanAcceptAds(t *testing.T) {
	o := ContentOwner{Monetization: true, Preferences: AdPreferences{MaxAdsPerEpisode: 2}}
	assert.True(t, CanAcceptAds(o))

	o.Preferences.MaxAdsPerEpisode = -1
	assert.Equal(t, 0, MaxAds(o))
	assert.False(t, CanAcceptAds(o))

	o.Preferences.MaxAdsPerEpisode = 1
	o.Monetization = false
	assert.False(t, CanAcceptAds(o))
}

func TestAdvertisable(t *testing.T) {
	c := Campaign{
		Status: CampaignActive, Budget: 100, Spent: 95, PayoutPerView: 5,
		StartDate: t0.Add(-time.Hour), EndDate: t0.Add(time.Hour),
	}
	assert.True(t, Advertisable(c, t0))
	assert.False(t, Advertisable(c, t0.Add(2*time.Hour)))
	assert.False(t, Advertisable(c, t0.Add(-2*time.Hour)))

	c.Spent = 96
	assert.False(t, Advertisable(c, t0), "cannot afford one payout")

	c.Spent = 0
	c.Status = CampaignPaused
	assert.False(t, Advertisable(c, t0))
}

func TestFraudCeiling(t *testing.T) {
	p := DefaultFraudParams()
	assert.Equal(t, int64(100), FraudCeiling(p, 0))
	assert.Equal(t, int64(100), FraudCeiling(p, 1))
	assert.Equal(t, int64(500), FraudCeiling(p, 10))
	assert.Equal(t, int64(125), FraudCeiling(p, 2.5))
}

func TestCheckFraud(t *testing.T) {
	p := DefaultFraudParams()
	e := Episode{ID: "e1", CreatedAt: t0, ViewCount: 100}
	_, flagged := CheckFraud(p, e, t0.Add(time.Hour))
	assert.False(t, flagged)

	e.ViewCount = 101
	flag, flagged := CheckFraud(p, e, t0.Add(time.Hour))
	assert.True(t, flagged)
	assert.Equal(t, FraudFlag{EpisodeID: "e1", Observed: 101, Ceiling: 100, FlaggedAt: t0.Add(time.Hour)}, flag)
}

func TestSplitPayout(t *testing.T) {
	tests := []struct {
		payout  int64
		share   float64
		creator int64
	}{
		{payout: 400, share: 0.95, creator: 380},
		{payout: 100, share: 0.95, creator: 95},
		{payout: 1, share: 0.95, creator: 0},
		{payout: 3, share: 1.0 / 3, creator: 1},
		{payout: 50, share: 1.5, creator: 50},
		{payout: 50, share: -1, creator: 0},
	}
	for _, tt := range tests {
		s := SplitPayout(tt.payout, tt.share)
		assert.Equal(t, tt.creator, s.CreatorShare, "payout %d share %v", tt.payout, tt.share)
		assert.Equal(t, tt.payout, s.CreatorShare+s.PlatformFee)
	}
}

func TestCampaignRequirementsDedup(t *testing.T) {
	c := Campaign{
		RequiredContent: []string{"promo code CAST20", "", "free shipping"},
		Verification:    VerificationCriteria{RequiredElements: []string{"free shipping", "brand name"}},
	}
	assert.Equal(t, []string{"promo code CAST20", "free shipping", "brand name"}, c.Requirements())
	assert.Equal(t, int64(0), Campaign{Budget: 10, Spent: 12}.Remaining())
}

func TestSeverityAndScores(t *testing.T) {
	assert.Equal(t, SeverityLow, SeverityFor(0))
	assert.Equal(t, SeverityMedium, SeverityFor(2))
	assert.Equal(t, SeverityHigh, SeverityFor(3))

	assert.Equal(t, 1.0, ComplianceResult{Compliant: true}.Score())
	assert.InDelta(t, 0.6, ComplianceResult{Violations: []string{"x"}}.Score(), 1e-9)
	assert.Equal(t, 0.0, ComplianceResult{Violations: []string{"a", "b", "c", "d"}}.Score())

	assert.False(t, QualityScore{Overall: 1.2}.Valid())
	assert.False(t, QualityScore{Breakdown: map[string]float64{"x": -0.1}}.Valid())
	assert.True(t, QualityScore{Overall: 0.5, Naturalness: 1}.Valid())
}

func TestParsePlacementKind(t *testing.T) {
	k, ok := ParsePlacementKind("midroll")
	assert.True(t, ok)
	assert.Equal(t, PlacementMidRoll, k)
	_, ok = ParsePlacementKind("banner")
	assert.False(t, ok)
}
