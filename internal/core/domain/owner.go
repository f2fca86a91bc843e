package domain

import "time"

// PlacementKind is where an ad sits inside a content unit.
type PlacementKind string

const (
	PlacementIntro   PlacementKind = "intro"
	PlacementMidRoll PlacementKind = "mid-roll"
	PlacementOutro   PlacementKind = "outro"
	PlacementNatural PlacementKind = "natural"
)

// ParsePlacementKind maps free text to a known placement kind.
func ParsePlacementKind(s string) (PlacementKind, bool) {
	switch PlacementKind(s) {
	case PlacementIntro, PlacementMidRoll, PlacementOutro, PlacementNatural:
		return PlacementKind(s), true
	case "midroll", "mid_roll":
		return PlacementMidRoll, true
	}
	return "", false
}

// ContentOwner is a podcast: the entity that owns a stream of generated
// episodes and opts into monetization.
type ContentOwner struct {
	ID           string
	Name         string
	Description  string
	Voice        string
	Persona      string
	Themes       []string
	Wallet       string // on-chain payout address, hex encoded
	Monetization bool
	Preferences  AdPreferences
	QualityScore float64 // [0,1]
	Engagement   Engagement
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AdPreferences captures what the owner is willing to carry.
type AdPreferences struct {
	AllowedCategories  []string      `json:"allowed_categories,omitempty"`
	BlockedBrands      []string      `json:"blocked_brands,omitempty"`
	MaxAdsPerEpisode   int           `json:"max_ads_per_episode"`
	PreferredPlacement PlacementKind `json:"preferred_placement,omitempty"`
	MinPayoutRate      int64         `json:"min_payout_rate,omitempty"`
}

// Engagement aggregates audience metrics for an owner.
type Engagement struct {
	TotalViews      int64   `json:"total_views"`
	EngagementRate  float64 `json:"engagement_rate"` // [0,1]
	AvgListenSecond float64 `json:"avg_listen_seconds,omitempty"`
	Subscribers     int64   `json:"subscribers,omitempty"`
}

// EstimatedReach is the owner's expected audience for a new episode.
func (o ContentOwner) EstimatedReach() float64 {
	return float64(o.Engagement.TotalViews) * (1 + o.Engagement.EngagementRate)
}

// Episode is one generated content unit that may carry ads.
type Episode struct {
	ID        string
	OwnerID   string
	Title     string
	Topic     string
	Script    string
	ViewCount int64
	HasAds    bool
	AdCount   int
	Earnings  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AgeHours returns the episode age in whole and fractional hours at now.
func (e Episode) AgeHours(now time.Time) float64 {
	if now.Before(e.CreatedAt) {
		return 0
	}
	return now.Sub(e.CreatedAt).Hours()
}

// ObserveViews folds a placement's view count into the episode's audience.
// Every placement of an episode is heard by the same listeners, so the
// episode counts the largest placement figure, not their sum.
func (e *Episode) ObserveViews(placementViews int64, at time.Time) {
	if placementViews > e.ViewCount {
		e.ViewCount = placementViews
	}
	e.UpdatedAt = at
}
