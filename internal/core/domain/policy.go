package domain

import (
	"math"
	"strings"
	"time"
)

// Rejection reasons returned by AcceptsCampaign.
const (
	ReasonBlockedBrand       = "blocked_brand"
	ReasonCategoryNotAllowed = "category_not_allowed"
	ReasonPayoutTooLow       = "payout_below_minimum"
)

// AcceptsCampaign reports whether the owner's preferences allow the campaign.
// The reason is empty when accepted.
func AcceptsCampaign(prefs AdPreferences, c Campaign) (bool, string) {
	if IsBrandBlocked(prefs, c.BrandName) {
		return false, ReasonBlockedBrand
	}
	if !CategoryAllowed(prefs, c.Category) {
		return false, ReasonCategoryNotAllowed
	}
	if prefs.MinPayoutRate > 0 && c.PayoutPerView < prefs.MinPayoutRate {
		return false, ReasonPayoutTooLow
	}
	return true, ""
}

// IsBrandBlocked reports whether brand is on the owner's block list.
func IsBrandBlocked(prefs AdPreferences, brand string) bool {
	for _, b := range prefs.BlockedBrands {
		if strings.EqualFold(strings.TrimSpace(b), strings.TrimSpace(brand)) {
			return true
		}
	}
	return false
}

// CategoryAllowed reports whether category passes the allow list. An empty
// allow list admits every category.
func CategoryAllowed(prefs AdPreferences, category string) bool {
	if len(prefs.AllowedCategories) == 0 {
		return true
	}
	for _, c := range prefs.AllowedCategories {
		if strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(category)) {
			return true
		}
	}
	return false
}

// MaxAds returns the owner's per-episode ad cap. Zero or negative caps mean
// the owner takes no ads.
func MaxAds(o ContentOwner) int {
	if o.Preferences.MaxAdsPerEpisode < 0 {
		return 0
	}
	return o.Preferences.MaxAdsPerEpisode
}

// CanAcceptAds reports whether the owner opted in and has room for one ad.
func CanAcceptAds(o ContentOwner) bool {
	return o.Monetization && MaxAds(o) > 0
}

// Advertisable reports whether a campaign may be matched at now: active,
// inside its date window and able to afford at least one payout.
func Advertisable(c Campaign, now time.Time) bool {
	if c.Status != CampaignActive {
		return false
	}
	if !c.StartDate.IsZero() && now.Before(c.StartDate) {
		return false
	}
	if !c.EndDate.IsZero() && now.After(c.EndDate) {
		return false
	}
	return c.PayoutPerView > 0 && c.Remaining() >= c.PayoutPerView
}

// FraudCeiling is the most exposure an episode of this age plausibly earns:
// max(floor, ageHours * perHour).
func FraudCeiling(p FraudParams, ageHours float64) int64 {
	byAge := int64(math.Floor(ageHours * float64(p.PerHour)))
	if byAge > p.Floor {
		return byAge
	}
	return p.Floor
}

// FraudFlag is a policy outcome that suppresses payout for an episode.
type FraudFlag struct {
	EpisodeID string
	Observed  int64
	Ceiling   int64
	FlaggedAt time.Time
}

// CheckFraud flags the episode when observed exposure exceeds the ceiling.
func CheckFraud(p FraudParams, e Episode, now time.Time) (FraudFlag, bool) {
	ceiling := FraudCeiling(p, e.AgeHours(now))
	if e.ViewCount <= ceiling {
		return FraudFlag{}, false
	}
	return FraudFlag{EpisodeID: e.ID, Observed: e.ViewCount, Ceiling: ceiling, FlaggedAt: now}, true
}
