// Package postgres implements port.Repository on PostgreSQL through pgxpool.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"castads/internal/core/domain"
	"castads/internal/core/port"
)

// Repository implements port.Repository using pgxpool for PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

var _ port.Repository = (*Repository)(nil)

// NewRepository returns a new repository instance.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// inTx runs fn in a serializable transaction, committing when fn succeeds.
func (r *Repository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()
	return fn(tx)
}

func (r *Repository) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListCampaigns(ctx context.Context, f port.CampaignFilter) ([]domain.Campaign, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	query := `SELECT ` + campaignColumns + ` FROM campaigns` + whereClause(where) + ` ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		return scanCampaign(row)
	})
}

func (r *Repository) SaveCampaign(ctx context.Context, c domain.Campaign) error {
	if c.ID == "" {
		return fmt.Errorf("%w: campaign id", domain.ErrInvalidInput)
	}
	args, err := campaignArgs(c)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO campaigns (`+campaignColumns+`) VALUES (`+placeholders(1, len(args))+`)
ON CONFLICT (id) DO UPDATE SET
    brand_name = EXCLUDED.brand_name, product_name = EXCLUDED.product_name,
    description = EXCLUDED.description, category = EXCLUDED.category,
    target_audience = EXCLUDED.target_audience, required_content = EXCLUDED.required_content,
    budget = EXCLUDED.budget, spent = EXCLUDED.spent, payout_per_view = EXCLUDED.payout_per_view,
    start_date = EXCLUDED.start_date, end_date = EXCLUDED.end_date, status = EXCLUDED.status,
    ai_matching = EXCLUDED.ai_matching, content_rules = EXCLUDED.content_rules,
    verification_criteria = EXCLUDED.verification_criteria,
    quality_threshold = EXCLUDED.quality_threshold, updated_at = EXCLUDED.updated_at`, args...)
	return err
}

func (r *Repository) GetOwner(ctx context.Context, id string) (*domain.ContentOwner, error) {
	o, err := scanOwner(r.pool.QueryRow(ctx, `SELECT `+ownerColumns+` FROM content_owners WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repository) SaveOwner(ctx context.Context, o domain.ContentOwner) error {
	if o.ID == "" {
		return fmt.Errorf("%w: owner id", domain.ErrInvalidInput)
	}
	args, err := ownerArgs(o)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO content_owners (`+ownerColumns+`) VALUES (`+placeholders(1, len(args))+`)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name, description = EXCLUDED.description, voice = EXCLUDED.voice,
    persona = EXCLUDED.persona, themes = EXCLUDED.themes, wallet = EXCLUDED.wallet,
    monetization = EXCLUDED.monetization, preferences = EXCLUDED.preferences,
    quality_score = EXCLUDED.quality_score, engagement = EXCLUDED.engagement,
    updated_at = EXCLUDED.updated_at`, args...)
	return err
}

func (r *Repository) GetEpisode(ctx context.Context, id string) (*domain.Episode, error) {
	e, err := scanEpisode(r.pool.QueryRow(ctx, `SELECT `+episodeColumns+` FROM episodes WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) ListEpisodesWithAds(ctx context.Context) ([]domain.Episode, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+prefixed("e", episodeColumns)+` FROM episodes e
WHERE EXISTS (SELECT 1 FROM placements p WHERE p.episode_id = e.id)
ORDER BY e.id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Episode, error) {
		return scanEpisode(row)
	})
}

func (r *Repository) SaveEpisode(ctx context.Context, e domain.Episode, placements []domain.AdPlacement) error {
	if e.ID == "" {
		return fmt.Errorf("%w: episode id", domain.ErrInvalidInput)
	}
	for _, p := range placements {
		if p.ID == "" || p.EpisodeID != e.ID {
			return fmt.Errorf("%w: placement %q does not belong to episode %s", domain.ErrInvalidInput, p.ID, e.ID)
		}
	}
	return r.inTx(ctx, func(tx pgx.Tx) error {
		args := episodeArgs(e)
		_, err := tx.Exec(ctx, `INSERT INTO episodes (`+episodeColumns+`) VALUES (`+placeholders(1, len(args))+`)
ON CONFLICT (id) DO UPDATE SET
    title = EXCLUDED.title, topic = EXCLUDED.topic, script = EXCLUDED.script,
    view_count = EXCLUDED.view_count, has_ads = EXCLUDED.has_ads, ad_count = EXCLUDED.ad_count,
    earnings = EXCLUDED.earnings, updated_at = EXCLUDED.updated_at`, args...)
		if err != nil {
			return fmt.Errorf("save episode %s: %w", e.ID, err)
		}
		for _, p := range placements {
			if err = insertPlacement(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertPlacement(ctx context.Context, tx pgx.Tx, p domain.AdPlacement) error {
	args, err := placementArgs(p)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `INSERT INTO placements (`+placementColumns+`) VALUES (`+placeholders(1, len(args))+`)`, args...)
	if err != nil {
		return fmt.Errorf("insert placement %s: %w", p.ID, err)
	}
	return nil
}

func (r *Repository) GetPlacement(ctx context.Context, id string) (*domain.AdPlacement, error) {
	p, err := scanPlacement(r.pool.QueryRow(ctx, `SELECT `+placementColumns+` FROM placements WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) ListPlacements(ctx context.Context, f port.PlacementFilter) ([]domain.AdPlacement, error) {
	var (
		where []string
		args  []any
	)
	add := func(column string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if f.Status != "" {
		add("status", f.Status)
	}
	if f.CampaignID != "" {
		add("campaign_id", f.CampaignID)
	}
	if f.OwnerID != "" {
		add("owner_id", f.OwnerID)
	}
	if f.EpisodeID != "" {
		add("episode_id", f.EpisodeID)
	}
	query := `SELECT ` + placementColumns + ` FROM placements` + whereClause(where) + ` ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AdPlacement, error) {
		return scanPlacement(row)
	})
}

func (r *Repository) UpdatePlacement(ctx context.Context, p domain.AdPlacement, expected domain.PlacementStatus) error {
	content, err := json.Marshal(p.Content)
	if err != nil {
		return err
	}
	var verification []byte
	if p.Verification != nil {
		if verification, err = json.Marshal(p.Verification); err != nil {
			return err
		}
	}
	tag, err := r.pool.Exec(ctx, `UPDATE placements SET
    content = $2, status = $3, quality_score = $4, verification = $5, verification_tx_ref = $6,
    generation_model_id = $7, verification_model_id = $8, reject_reason = $9, updated_at = $10,
    verified_at = $11, rejected_at = $12, paid_at = $13
WHERE id = $1 AND status = $14`,
		p.ID, content, p.Status, p.QualityScore, verification, p.VerificationTxRef, p.GenerationModelID,
		p.VerificationModelID, p.RejectReason, p.UpdatedAt, p.VerifiedAt, p.RejectedAt, p.PaidAt, expected)
	if err != nil {
		return fmt.Errorf("update placement %s: %w", p.ID, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var status domain.PlacementStatus
	err = r.pool.QueryRow(ctx, `SELECT status FROM placements WHERE id = $1`, p.ID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: placement %s", domain.ErrNotFound, p.ID)
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: placement %s is %s, expected %s", port.ErrStaleStatus, p.ID, status, expected)
}

func (r *Repository) RecordExposure(ctx context.Context, placementID string, d domain.ExposureDelta, at time.Time) (*domain.AdPlacement, error) {
	var out domain.AdPlacement
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		p, err := scanPlacement(tx.QueryRow(ctx, `SELECT `+placementColumns+` FROM placements WHERE id = $1 FOR UPDATE`, placementID))
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: placement %s", domain.ErrNotFound, placementID)
		}
		if err != nil {
			return err
		}
		var rate int64
		err = tx.QueryRow(ctx, `SELECT payout_per_view FROM campaigns WHERE id = $1`, p.CampaignID).Scan(&rate)
		if err != nil {
			return fmt.Errorf("campaign %s rate: %w", p.CampaignID, err)
		}
		if err = p.ApplyExposure(d, rate, at); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `UPDATE placements SET view_count = $2, impressions = $3, clicks = $4,
    conversions = $5, total_payout = $6, updated_at = $7 WHERE id = $1`,
			p.ID, p.ViewCount, p.Impressions, p.Clicks, p.Conversions, p.TotalPayout, p.UpdatedAt)
		if err != nil {
			return err
		}
		// listeners hear every ad in the episode; count them once
		_, err = tx.Exec(ctx, `UPDATE episodes SET view_count = GREATEST(view_count, $2), updated_at = $3 WHERE id = $1`,
			p.EpisodeID, p.ViewCount, at)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `INSERT INTO placement_exposure_daily
    (placement_id, campaign_id, day, views, impressions, clicks, conversions)
VALUES ($1, $2, $3::date, $4, $5, $6, $7)
ON CONFLICT (placement_id, day) DO UPDATE SET
    views = placement_exposure_daily.views + EXCLUDED.views,
    impressions = placement_exposure_daily.impressions + EXCLUDED.impressions,
    clicks = placement_exposure_daily.clicks + EXCLUDED.clicks,
    conversions = placement_exposure_daily.conversions + EXCLUDED.conversions`,
			p.ID, p.CampaignID, utcDay(at), d.Views, d.Impressions, d.Clicks, d.Conversions)
		if err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repository) AppendFeedback(ctx context.Context, placementID string, fb domain.Feedback) error {
	raw, err := marshalFeedback(fb)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `UPDATE placements SET feedback = feedback || $2::jsonb WHERE id = $1`, placementID, raw)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: placement %s", domain.ErrNotFound, placementID)
	}
	return nil
}

func (r *Repository) DeleteRejectedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM placements
WHERE status = $1 AND COALESCE(rejected_at, updated_at) < $2`, domain.PlacementRejected, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ApplySettlement locks the campaign and every settled placement, re-checks
// budget and status under the lock, then writes spend, placement counters,
// episode earnings and the settlement record in one transaction.
func (r *Repository) ApplySettlement(ctx context.Context, s domain.Settlement) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		var budget, spent int64
		err := tx.QueryRow(ctx, `SELECT budget, spent FROM campaigns WHERE id = $1 FOR UPDATE`, s.CampaignID).Scan(&budget, &spent)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: campaign %s", domain.ErrNotFound, s.CampaignID)
		}
		if err != nil {
			return err
		}
		if spent+s.Amount > budget {
			return fmt.Errorf("%w: campaign %s spent %d + %d > budget %d",
				domain.ErrInsufficientBudget, s.CampaignID, spent, s.Amount, budget)
		}

		for _, ps := range s.Placements {
			p, err := scanPlacement(tx.QueryRow(ctx, `SELECT `+placementColumns+` FROM placements WHERE id = $1 FOR UPDATE`, ps.PlacementID))
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: placement %s", domain.ErrNotFound, ps.PlacementID)
			}
			if err != nil {
				return err
			}
			if p.Status != domain.PlacementVerified {
				return fmt.Errorf("%w: placement %s is %s", port.ErrStaleStatus, p.ID, p.Status)
			}
			if err = p.Settle(ps.Views, ps.Amount, s.SettledAt); err != nil {
				return err
			}
			_, err = tx.Exec(ctx, `UPDATE placements SET status = $2, paid_views = $3, total_payout = $4,
    total_paid_out = $5, updated_at = $6, paid_at = $7 WHERE id = $1`,
				p.ID, p.Status, p.PaidViews, p.TotalPayout, p.TotalPaidOut, p.UpdatedAt, p.PaidAt)
			if err != nil {
				return err
			}
			_, err = tx.Exec(ctx, `UPDATE episodes SET earnings = earnings + $2, updated_at = $3 WHERE id = $1`,
				ps.EpisodeID, ps.Earnings, s.SettledAt)
			if err != nil {
				return err
			}
		}

		_, err = tx.Exec(ctx, `UPDATE campaigns SET spent = spent + $2, updated_at = $3 WHERE id = $1`,
			s.CampaignID, s.Amount, s.SettledAt)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `INSERT INTO settlements
    (id, campaign_id, owner_id, exposures, amount, creator_share, platform_fee, tx_ref, settled_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			s.ID, s.CampaignID, s.OwnerID, s.Exposures, s.Amount, s.CreatorShare, s.PlatformFee, s.TxRef, s.SettledAt)
		if err != nil {
			return fmt.Errorf("insert settlement %s: %w", s.ID, err)
		}

		batch := &pgx.Batch{}
		for _, ps := range s.Placements {
			batch.Queue(`INSERT INTO settlement_lines (settlement_id, placement_id, episode_id, views, amount, earnings)
VALUES ($1, $2, $3, $4, $5, $6)`, s.ID, ps.PlacementID, ps.EpisodeID, ps.Views, ps.Amount, ps.Earnings)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}

// RollupDaily recomputes every campaign's row for day from placements,
// exposure and settlements and upserts it.
func (r *Repository) RollupDaily(ctx context.Context, day time.Time) ([]domain.CampaignDailyStats, error) {
	d := utcDay(day)
	var out []domain.CampaignDailyStats
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
WITH created AS (
    SELECT campaign_id,
           count(*) AS placements,
           COALESCE(avg(quality_score) FILTER (WHERE verification IS NOT NULL), 0) AS avg_quality
    FROM placements
    WHERE (created_at AT TIME ZONE 'UTC')::date = $1::date
    GROUP BY campaign_id
), exposure AS (
    SELECT campaign_id, sum(views) AS views, sum(clicks) AS clicks
    FROM placement_exposure_daily
    WHERE day = $1::date
    GROUP BY campaign_id
), spend AS (
    SELECT campaign_id, sum(amount) AS spend
    FROM settlements
    WHERE (settled_at AT TIME ZONE 'UTC')::date = $1::date
    GROUP BY campaign_id
), merged AS (
    SELECT ids.campaign_id,
           $1::date AS day,
           COALESCE(c.placements, 0) AS placements,
           COALESCE(x.views, 0)::bigint AS views,
           COALESCE(x.clicks, 0)::bigint AS clicks,
           COALESCE(s.spend, 0)::bigint AS spend,
           COALESCE(c.avg_quality, 0)::double precision AS avg_quality
    FROM (SELECT campaign_id FROM created
          UNION SELECT campaign_id FROM exposure
          UNION SELECT campaign_id FROM spend) ids
    LEFT JOIN created c ON c.campaign_id = ids.campaign_id
    LEFT JOIN exposure x ON x.campaign_id = ids.campaign_id
    LEFT JOIN spend s ON s.campaign_id = ids.campaign_id
)
INSERT INTO campaign_daily_stats (campaign_id, day, placements, views, clicks, spend, avg_quality)
SELECT campaign_id, day, placements, views, clicks, spend, avg_quality FROM merged
ON CONFLICT (campaign_id, day) DO UPDATE SET
    placements = EXCLUDED.placements, views = EXCLUDED.views, clicks = EXCLUDED.clicks,
    spend = EXCLUDED.spend, avg_quality = EXCLUDED.avg_quality
RETURNING campaign_id, day, placements, views, clicks, spend, avg_quality`, d)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CampaignDailyStats, error) {
			return scanStats(row)
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	sortStats(out)
	return out, nil
}

func (r *Repository) ListDailyStats(ctx context.Context, req port.StatsReq) ([]domain.CampaignDailyStats, error) {
	var (
		where []string
		args  []any
	)
	if !req.From.IsZero() {
		args = append(args, req.From)
		where = append(where, fmt.Sprintf("day >= $%d::date", len(args)))
	}
	if !req.To.IsZero() {
		args = append(args, req.To)
		where = append(where, fmt.Sprintf("day <= $%d::date", len(args)))
	}
	if req.CampaignID != nil {
		args = append(args, *req.CampaignID)
		where = append(where, fmt.Sprintf("campaign_id = $%d", len(args)))
	}
	rows, err := r.pool.Query(ctx, `SELECT campaign_id, day, placements, views, clicks, spend, avg_quality
FROM campaign_daily_stats`+whereClause(where)+` ORDER BY day, campaign_id`, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CampaignDailyStats, error) {
		return scanStats(row)
	})
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func prefixed(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, c := range parts {
		parts[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(parts, ", ")
}
