package db

import (
	"context"
	"fmt"
	"time"

	"castads/internal/core/domain"
	"castads/internal/core/port"
)

// Seeder is the slice of port.Repository the demo seed writes through.
type Seeder interface {
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
	SaveCampaign(ctx context.Context, c domain.Campaign) error
	GetOwner(ctx context.Context, id string) (*domain.ContentOwner, error)
	SaveOwner(ctx context.Context, o domain.ContentOwner) error
}

var _ Seeder = port.Repository(nil)

// DemoCampaigns returns a fixed set of active campaigns running from a day
// before now to a month after.
func DemoCampaigns(now time.Time) []domain.Campaign {
	start, end := now.AddDate(0, 0, -1), now.AddDate(0, 1, 0)
	return []domain.Campaign{
		{
			ID:              "demo-campaign-beans",
			BrandName:       "Bean Co",
			ProductName:     "Single Origin Subscription",
			Description:     "Freshly roasted coffee delivered every week for home baristas.",
			Category:        "food",
			TargetAudience:  []string{"coffee", "mornings", "productivity"},
			RequiredContent: []string{"promo code BEANS10"},
			Budget:          500000,
			PayoutPerView:   5,
			StartDate:       start,
			EndDate:         end,
			Status:          domain.CampaignActive,
			AIMatching:      true,
			ContentRules: domain.ContentRules{
				Tone:             "warm",
				MaxDuration:      45,
				ForbiddenPhrases: []string{"guaranteed", "cure"},
				Placements:       []string{"intro", "mid-roll"},
			},
			Verification: domain.VerificationCriteria{MinQualityScore: 0.7},
		},
		{
			ID:               "demo-campaign-vpn",
			BrandName:        "Tunnel",
			ProductName:      "Tunnel VPN",
			Description:      "Private browsing for developers and remote teams.",
			Category:         "technology",
			TargetAudience:   []string{"developers", "privacy", "remote work"},
			RequiredContent:  []string{"visit tunnel.example"},
			Budget:           250000,
			PayoutPerView:    8,
			StartDate:        start,
			EndDate:          end,
			Status:           domain.CampaignActive,
			AIMatching:       true,
			QualityThreshold: 0.55,
			ContentRules: domain.ContentRules{
				Tone:             "matter-of-fact",
				MaxDuration:      60,
				ForbiddenPhrases: []string{"unhackable"},
			},
		},
		{
			ID:             "demo-campaign-shoes",
			BrandName:      "Stride",
			ProductName:    "Trail Runner 2",
			Description:    "Lightweight trail running shoes for long weekend runs.",
			Category:       "fitness",
			TargetAudience: []string{"running", "outdoors"},
			Budget:         120000,
			PayoutPerView:  3,
			StartDate:      start,
			EndDate:        end,
			Status:         domain.CampaignActive,
			ContentRules:   domain.ContentRules{Tone: "energetic", MaxDuration: 30, Placements: []string{"outro"}},
		},
	}
}

// DemoOwners returns monetized and unmonetized demo podcasts.
func DemoOwners(now time.Time) []domain.ContentOwner {
	return []domain.ContentOwner{
		{
			ID:           "demo-owner-devbrew",
			Name:         "Dev Brew",
			Description:  "Morning conversations about software, remote work and coffee.",
			Voice:        "friendly",
			Persona:      "a senior engineer with a grinder on the desk",
			Themes:       []string{"developers", "coffee", "remote work"},
			Wallet:       "0x52908400098527886E0F7030069857D2E4169EE7",
			Monetization: true,
			QualityScore: 0.85,
			Preferences: domain.AdPreferences{
				MaxAdsPerEpisode:   2,
				PreferredPlacement: domain.PlacementIntro,
				AllowedCategories:  []string{"food", "technology"},
			},
			Engagement: domain.Engagement{TotalViews: 12000, EngagementRate: 0.12, Subscribers: 3400},
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:           "demo-owner-trail",
			Name:         "Trail Notes",
			Description:  "Weekly stories from ultrarunners and the trails they love.",
			Voice:        "calm",
			Persona:      "a coach who runs before sunrise",
			Themes:       []string{"running", "outdoors", "mornings"},
			Wallet:       "0x8617E340B3D01FA5F11F306F4090FD50E238070D",
			Monetization: true,
			QualityScore: 0.75,
			Preferences:  domain.AdPreferences{MaxAdsPerEpisode: 1, BlockedBrands: []string{"Tunnel"}},
			Engagement:   domain.Engagement{TotalViews: 4000, EngagementRate: 0.2},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           "demo-owner-quiet",
			Name:         "Quiet Hours",
			Description:  "Ad-free ambient readings.",
			Themes:       []string{"sleep"},
			QualityScore: 0.9,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
}

// Seed inserts the demo records repo does not hold yet. Existing records,
// and the spend they carry, are left alone.
func Seed(ctx context.Context, repo Seeder, now time.Time) error {
	for _, c := range DemoCampaigns(now) {
		existing, err := repo.GetCampaign(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("seed campaign %s: %w", c.ID, err)
		}
		if existing != nil {
			continue
		}
		c.CreatedAt, c.UpdatedAt = now, now
		if err = repo.SaveCampaign(ctx, c); err != nil {
			return fmt.Errorf("seed campaign %s: %w", c.ID, err)
		}
	}
	for _, o := range DemoOwners(now) {
		existing, err := repo.GetOwner(ctx, o.ID)
		if err != nil {
			return fmt.Errorf("seed owner %s: %w", o.ID, err)
		}
		if existing != nil {
			continue
		}
		if err = repo.SaveOwner(ctx, o); err != nil {
			return fmt.Errorf("seed owner %s: %w", o.ID, err)
		}
	}
	return nil
}
