package postgres

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"

	"castads/internal/core/domain"
)

const campaignColumns = `id, brand_name, product_name, description, category, target_audience, required_content,
	budget, spent, payout_per_view, start_date, end_date, status, ai_matching, content_rules,
	verification_criteria, quality_threshold, created_at, updated_at`

const ownerColumns = `id, name, description, voice, persona, themes, wallet, monetization, preferences,
	quality_score, engagement, created_at, updated_at`

const episodeColumns = `id, owner_id, title, topic, script, view_count, has_ads, ad_count, earnings, created_at, updated_at`

const placementColumns = `id, campaign_id, owner_id, episode_id, content, status, quality_score, view_count,
	impressions, clicks, conversions, paid_views, total_payout, total_paid_out, verification,
	verification_tx_ref, feedback, generation_model_id, verification_model_id, reject_reason,
	created_at, updated_at, verified_at, rejected_at, paid_at, match_score, suggested_budget`

func scanCampaign(row pgx.Row) (domain.Campaign, error) {
	var c domain.Campaign
	var rules, criteria []byte
	err := row.Scan(&c.ID, &c.BrandName, &c.ProductName, &c.Description, &c.Category, &c.TargetAudience,
		&c.RequiredContent, &c.Budget, &c.Spent, &c.PayoutPerView, &c.StartDate, &c.EndDate, &c.Status,
		&c.AIMatching, &rules, &criteria, &c.QualityThreshold, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return c, err
	}
	if err = unmarshal(rules, &c.ContentRules); err != nil {
		return c, fmt.Errorf("campaign %s content rules: %w", c.ID, err)
	}
	if err = unmarshal(criteria, &c.Verification); err != nil {
		return c, fmt.Errorf("campaign %s verification criteria: %w", c.ID, err)
	}
	return c, nil
}

func campaignArgs(c domain.Campaign) ([]any, error) {
	rules, err := json.Marshal(c.ContentRules)
	if err != nil {
		return nil, err
	}
	criteria, err := json.Marshal(c.Verification)
	if err != nil {
		return nil, err
	}
	return []any{c.ID, c.BrandName, c.ProductName, c.Description, c.Category, c.TargetAudience,
		c.RequiredContent, c.Budget, c.Spent, c.PayoutPerView, c.StartDate, c.EndDate, c.Status,
		c.AIMatching, rules, criteria, c.QualityThreshold, c.CreatedAt, c.UpdatedAt}, nil
}

func scanOwner(row pgx.Row) (domain.ContentOwner, error) {
	var o domain.ContentOwner
	var prefs, engagement []byte
	err := row.Scan(&o.ID, &o.Name, &o.Description, &o.Voice, &o.Persona, &o.Themes, &o.Wallet,
		&o.Monetization, &prefs, &o.QualityScore, &engagement, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return o, err
	}
	if err = unmarshal(prefs, &o.Preferences); err != nil {
		return o, fmt.Errorf("owner %s preferences: %w", o.ID, err)
	}
	if err = unmarshal(engagement, &o.Engagement); err != nil {
		return o, fmt.Errorf("owner %s engagement: %w", o.ID, err)
	}
	return o, nil
}

func ownerArgs(o domain.ContentOwner) ([]any, error) {
	prefs, err := json.Marshal(o.Preferences)
	if err != nil {
		return nil, err
	}
	engagement, err := json.Marshal(o.Engagement)
	if err != nil {
		return nil, err
	}
	return []any{o.ID, o.Name, o.Description, o.Voice, o.Persona, o.Themes, o.Wallet, o.Monetization,
		prefs, o.QualityScore, engagement, o.CreatedAt, o.UpdatedAt}, nil
}

func scanEpisode(row pgx.Row) (domain.Episode, error) {
	var e domain.Episode
	err := row.Scan(&e.ID, &e.OwnerID, &e.Title, &e.Topic, &e.Script, &e.ViewCount, &e.HasAds,
		&e.AdCount, &e.Earnings, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func episodeArgs(e domain.Episode) []any {
	return []any{e.ID, e.OwnerID, e.Title, e.Topic, e.Script, e.ViewCount, e.HasAds, e.AdCount,
		e.Earnings, e.CreatedAt, e.UpdatedAt}
}

func scanPlacement(row pgx.Row) (domain.AdPlacement, error) {
	var p domain.AdPlacement
	var content, verification, feedback []byte
	err := row.Scan(&p.ID, &p.CampaignID, &p.OwnerID, &p.EpisodeID, &content, &p.Status, &p.QualityScore,
		&p.ViewCount, &p.Impressions, &p.Clicks, &p.Conversions, &p.PaidViews, &p.TotalPayout,
		&p.TotalPaidOut, &verification, &p.VerificationTxRef, &feedback, &p.GenerationModelID,
		&p.VerificationModelID, &p.RejectReason, &p.CreatedAt, &p.UpdatedAt, &p.VerifiedAt,
		&p.RejectedAt, &p.PaidAt, &p.MatchScore, &p.SuggestedBudget)
	if err != nil {
		return p, err
	}
	if err = unmarshal(content, &p.Content); err != nil {
		return p, fmt.Errorf("placement %s content: %w", p.ID, err)
	}
	if len(verification) > 0 && string(verification) != "null" {
		p.Verification = &domain.VerificationResult{}
		if err = json.Unmarshal(verification, p.Verification); err != nil {
			return p, fmt.Errorf("placement %s verification: %w", p.ID, err)
		}
	}
	if err = unmarshal(feedback, &p.Feedback); err != nil {
		return p, fmt.Errorf("placement %s feedback: %w", p.ID, err)
	}
	return p, nil
}

func placementArgs(p domain.AdPlacement) ([]any, error) {
	content, err := json.Marshal(p.Content)
	if err != nil {
		return nil, err
	}
	var verification []byte
	if p.Verification != nil {
		if verification, err = json.Marshal(p.Verification); err != nil {
			return nil, err
		}
	}
	feedback := p.Feedback
	if feedback == nil {
		feedback = []domain.Feedback{}
	}
	fb, err := json.Marshal(feedback)
	if err != nil {
		return nil, err
	}
	return []any{p.ID, p.CampaignID, p.OwnerID, p.EpisodeID, content, p.Status, p.QualityScore,
		p.ViewCount, p.Impressions, p.Clicks, p.Conversions, p.PaidViews, p.TotalPayout, p.TotalPaidOut,
		verification, p.VerificationTxRef, fb, p.GenerationModelID, p.VerificationModelID, p.RejectReason,
		p.CreatedAt, p.UpdatedAt, p.VerifiedAt, p.RejectedAt, p.PaidAt, p.MatchScore, p.SuggestedBudget}, nil
}

func scanStats(row pgx.Row) (domain.CampaignDailyStats, error) {
	var s domain.CampaignDailyStats
	err := row.Scan(&s.CampaignID, &s.Day, &s.Placements, &s.Views, &s.Clicks, &s.Spend, &s.AvgQuality)
	return s, err
}

// unmarshal leaves v untouched for empty or null documents.
func unmarshal(raw []byte, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// placeholders returns "$from, $from+1, ..." for n parameters.
func placeholders(from, n int) string {
	buf := make([]byte, 0, n*4)
	for i := 0; i < n; i++ {
		if i > 0 {
			buf = append(buf, ", "...)
		}
		buf = fmt.Appendf(buf, "$%d", from+i)
	}
	return string(buf)
}

// marshalFeedback encodes fb as a one-element JSON array for jsonb append.
func marshalFeedback(fb domain.Feedback) ([]byte, error) {
	return json.Marshal([]domain.Feedback{fb})
}

func sortStats(s []domain.CampaignDailyStats) {
	slices.SortFunc(s, func(a, b domain.CampaignDailyStats) int {
		return strings.Compare(a.CampaignID, b.CampaignID)
	})
}
