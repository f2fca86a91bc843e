package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"castads/internal/core/domain"
	"castads/internal/core/port"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T) (*Repository, domain.AdPlacement) {
	t.Helper()
	r := NewRepository()
	ctx := context.Background()
	require.NoError(t, r.SaveCampaign(ctx, domain.Campaign{ID: "c1", Budget: 100, PayoutPerView: 2, Status: domain.CampaignActive}))
	ep := domain.Episode{ID: "e1", OwnerID: "o1", CreatedAt: now}
	p := domain.NewPlacement("c1", "o1", "e1", now)
	require.NoError(t, r.SaveEpisode(ctx, ep, []domain.AdPlacement{p}))
	return r, p
}

func TestGetMissingReturnsNil(t *testing.T) {
	r := NewRepository()
	c, err := r.GetCampaign(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, c)
	p, err := r.GetPlacement(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestUpdatePlacementChecksExpectedStatus(t *testing.T) {
	r, p := seed(t)
	ctx := context.Background()

	require.NoError(t, p.Transition(domain.PlacementVerified, now))
	require.NoError(t, r.UpdatePlacement(ctx, p, domain.PlacementPending))

	err := r.UpdatePlacement(ctx, p, domain.PlacementPending)
	assert.ErrorIs(t, err, port.ErrStaleStatus)
}

func TestRecordExposureOnlyOnLivePlacements(t *testing.T) {
	r, p := seed(t)
	ctx := context.Background()

	_, err := r.RecordExposure(ctx, p.ID, domain.ExposureDelta{Views: 3}, now)
	assert.ErrorIs(t, err, domain.ErrNotTrackable)

	require.NoError(t, p.Transition(domain.PlacementVerified, now))
	require.NoError(t, r.UpdatePlacement(ctx, p, domain.PlacementPending))

	got, err := r.RecordExposure(ctx, p.ID, domain.ExposureDelta{Views: 3, Clicks: 1}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ViewCount)
	assert.Equal(t, int64(6), got.TotalPayout)

	ep, err := r.GetEpisode(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), ep.ViewCount)
}

func TestRecordExposureCountsListenersOncePerEpisode(t *testing.T) {
	r := NewRepository()
	ctx := context.Background()
	require.NoError(t, r.SaveCampaign(ctx, domain.Campaign{ID: "c1", Budget: 1000, PayoutPerView: 1, Status: domain.CampaignActive}))
	ep := domain.Episode{ID: "e1", OwnerID: "o1", CreatedAt: now.Add(-time.Hour)}
	var ps []domain.AdPlacement
	for range 3 {
		p := domain.NewPlacement("c1", "o1", "e1", now.Add(-time.Hour))
		require.NoError(t, p.Transition(domain.PlacementVerified, now.Add(-time.Hour)))
		ps = append(ps, p)
	}
	require.NoError(t, r.SaveEpisode(ctx, ep, ps))

	for _, p := range ps {
		_, err := r.RecordExposure(ctx, p.ID, domain.ExposureDelta{Views: 40}, now)
		require.NoError(t, err)
	}

	got, err := r.GetEpisode(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, int64(40), got.ViewCount)
	_, flagged := domain.CheckFraud(domain.DefaultFraudParams(), *got, now)
	assert.False(t, flagged)

	_, err = r.RecordExposure(ctx, ps[1].ID, domain.ExposureDelta{Views: 5}, now)
	require.NoError(t, err)
	got, err = r.GetEpisode(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, int64(45), got.ViewCount)
}

func TestApplySettlementIsAtomic(t *testing.T) {
	r, p := seed(t)
	ctx := context.Background()
	require.NoError(t, p.Transition(domain.PlacementVerified, now))
	require.NoError(t, r.UpdatePlacement(ctx, p, domain.PlacementPending))
	_, err := r.RecordExposure(ctx, p.ID, domain.ExposureDelta{Views: 60}, now)
	require.NoError(t, err)

	over := domain.Settlement{CampaignID: "c1", Amount: 120, SettledAt: now,
		Placements: []domain.PlacementSettlement{{PlacementID: p.ID, EpisodeID: "e1", Views: 60, Amount: 120}}}
	assert.ErrorIs(t, r.ApplySettlement(ctx, over), domain.ErrInsufficientBudget)

	bad := domain.Settlement{CampaignID: "c1", Amount: 20, SettledAt: now,
		Placements: []domain.PlacementSettlement{{PlacementID: p.ID, EpisodeID: "e1", Views: 61, Amount: 20}}}
	assert.ErrorIs(t, r.ApplySettlement(ctx, bad), domain.ErrInvalidInput)

	c, _ := r.GetCampaign(ctx, "c1")
	assert.Zero(t, c.Spent)

	good := domain.Settlement{CampaignID: "c1", Amount: 100, SettledAt: now,
		Placements: []domain.PlacementSettlement{{PlacementID: p.ID, EpisodeID: "e1", Views: 50, Amount: 100, Earnings: 95}}}
	require.NoError(t, r.ApplySettlement(ctx, good))
	c, _ = r.GetCampaign(ctx, "c1")
	assert.Equal(t, int64(100), c.Spent)
	ep, _ := r.GetEpisode(ctx, "e1")
	assert.Equal(t, int64(95), ep.Earnings)
	assert.Len(t, r.Settlements(), 1)
}

func TestDeleteRejectedBefore(t *testing.T) {
	r, p := seed(t)
	ctx := context.Background()
	old := now.Add(-31 * 24 * time.Hour)
	require.NoError(t, p.Reject("low quality", old))
	require.NoError(t, r.UpdatePlacement(ctx, p, domain.PlacementPending))

	n, err := r.DeleteRejectedBefore(ctx, now.Add(-30*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	got, _ := r.GetPlacement(ctx, p.ID)
	assert.Nil(t, got)
}

func TestRollupDaily(t *testing.T) {
	r, p := seed(t)
	ctx := context.Background()
	require.NoError(t, p.Transition(domain.PlacementVerified, now))
	p.QualityScore = 0.8
	p.Verification = &domain.VerificationResult{Verified: true, QualityScore: 0.8}
	require.NoError(t, r.UpdatePlacement(ctx, p, domain.PlacementPending))
	_, err := r.RecordExposure(ctx, p.ID, domain.ExposureDelta{Views: 12, Clicks: 2}, now)
	require.NoError(t, err)

	rows, err := r.RollupDaily(ctx, now)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].Placements)
	assert.Equal(t, int64(12), rows[0].Views)
	assert.Equal(t, int64(2), rows[0].Clicks)
	assert.InDelta(t, 0.8, rows[0].AvgQuality, 1e-9)

	id := "c1"
	stats, err := r.ListDailyStats(ctx, port.StatsReq{CampaignID: &id})
	require.NoError(t, err)
	assert.Len(t, stats, 1)
}

func TestReturnedValuesAreCopies(t *testing.T) {
	r, p := seed(t)
	got, _ := r.GetPlacement(context.Background(), p.ID)
	got.Feedback = append(got.Feedback, domain.Feedback{Rating: 5})
	again, _ := r.GetPlacement(context.Background(), p.ID)
	assert.Empty(t, again.Feedback)
}
