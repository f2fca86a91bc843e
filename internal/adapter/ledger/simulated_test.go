package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"castads/internal/adapter/memory"
	"castads/internal/core/domain"
)

const (
	listener = "0x52908400098527886E0F7030069857D2E4169EE7"
	player   = "Mozilla/5.0 (iPhone) Podcasts/1.0"
)

func newSimulated(t *testing.T, budget, spent int64) (*Simulated, time.Time) {
	t.Helper()
	repo := memory.NewRepository()
	ctx := context.Background()
	require.NoError(t, repo.SaveCampaign(ctx, domain.Campaign{
		ID: "c1", BrandName: "Bean Co", Budget: budget, Spent: spent, PayoutPerView: 2, Status: domain.CampaignActive,
	}))
	require.NoError(t, repo.SaveOwner(ctx, domain.ContentOwner{ID: "o1", Wallet: listener}))

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewSimulated(repo, 0.95)
	s.nowFn = func() time.Time { return now }
	return s, now
}

func TestSimulatedSettlesWithinBudget(t *testing.T) {
	s, _ := newSimulated(t, 1000, 100)
	ctx := context.Background()

	res, err := s.SettleExposure(ctx, "c1", "o1", 200)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, int64(380), res.CreatorShare)
	assert.Equal(t, int64(20), res.PlatformFee)
	assert.Len(t, res.TxRef, 66)

	st, err := s.CampaignState(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(500), st.Spent)
	assert.Equal(t, int64(500), st.Remaining())

	res, err = s.SettleExposure(ctx, "c1", "o1", 300)
	require.NoError(t, err)
	assert.False(t, res.Success, "600 exceeds the 500 left")

	ps, err := s.PlacementState(ctx, "c1", "o1")
	require.NoError(t, err)
	assert.Equal(t, int64(200), ps.SettledViews)
	assert.Equal(t, int64(400), ps.TotalPaid)

	os, err := s.OwnerState(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, int64(380), os.TotalEarned)
	assert.Equal(t, listener, os.Wallet)
}

func TestSimulatedUnknownCampaign(t *testing.T) {
	s, _ := newSimulated(t, 100, 0)
	_, err := s.VerifyPlacement(context.Background(), "missing", "o1")
	var lerr *domain.LedgerError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, domain.LedgerTransactionFailed, lerr.Code)
}

func TestSimulatedVerifyMarksPair(t *testing.T) {
	s, _ := newSimulated(t, 100, 0)
	ref, err := s.VerifyPlacement(context.Background(), "c1", "o1")
	require.NoError(t, err)
	assert.NotEmpty(t, ref)

	ps, err := s.PlacementState(context.Background(), "c1", "o1")
	require.NoError(t, err)
	assert.True(t, ps.Verified)
}

func TestValidateExposureAuthenticity(t *testing.T) {
	s, now := newSimulated(t, 100, 0)
	view := func(src, agent string, d time.Duration, at time.Time, subject string) domain.ExposureEvent {
		return domain.ExposureEvent{Kind: domain.ExposureView, Timestamp: at, Duration: d, SourceAddress: src, AgentString: agent, SubjectID: subject}
	}

	events := []domain.ExposureEvent{
		view(listener, player, time.Minute, now, "ep1"),
		view("not-an-address", player, time.Minute, now, "ep1"),
		view(listener, "Googlebot/2.1", time.Minute, now, "ep2"),
		view(listener, player, 2*time.Second, now, "ep3"),
		view(listener, player, time.Minute, now.Add(10*time.Minute), "ep1"),
		view(listener, player, time.Minute, now.Add(31*time.Minute), "ep1"),
		{Kind: domain.ExposureClick, Timestamp: now, SourceAddress: listener, AgentString: player, SubjectID: "ep1"},
	}

	got, err := s.ValidateExposureAuthenticity(context.Background(), events)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, now, got[0].Timestamp)
	assert.Equal(t, now.Add(31*time.Minute), got[1].Timestamp)
	assert.Equal(t, domain.ExposureClick, got[2].Kind)

	again, err := s.ValidateExposureAuthenticity(context.Background(), events[5:6])
	require.NoError(t, err)
	assert.Empty(t, again, "duplicate across calls")
}
