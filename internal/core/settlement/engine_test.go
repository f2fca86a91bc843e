package settlement

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"castads/internal/adapter/memory"
	"castads/internal/core/domain"
	"castads/internal/core/port"
	"castads/internal/core/port/mocks"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	repo   *memory.Repository
	ledger *mocks.MockLedger
	sleeps int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{repo: memory.NewRepository(), ledger: mocks.NewMockLedger(t)}
	f.ledger.EXPECT().CampaignState(mock.Anything, mock.Anything).
		Return(port.CampaignState{}, errors.New("no on-chain state")).Maybe()
	return f
}

func (f *fixture) engine(params domain.PayoutParams, events port.EventPublisher) *Engine {
	return New(f.repo, f.ledger, events, params, domain.DefaultFraudParams(), nil,
		WithClock(func() time.Time { return now }),
		WithSleeper(func(context.Context, time.Duration) error { f.sleeps++; return nil }))
}

func (f *fixture) campaign(t *testing.T, id string, budget, rate int64) {
	t.Helper()
	require.NoError(t, f.repo.SaveCampaign(context.Background(), domain.Campaign{
		ID: id, Budget: budget, PayoutPerView: rate, Status: domain.CampaignActive,
	}))
}

// placement stores a verified placement with views tracked exposure inside
// an episode old enough not to look fraudulent.
func (f *fixture) placement(t *testing.T, id, campaignID, ownerID string, views int64) domain.AdPlacement {
	t.Helper()
	ep := domain.Episode{ID: "ep-" + id, OwnerID: ownerID, ViewCount: views, CreatedAt: now.Add(-72 * time.Hour)}
	p := domain.NewPlacement(campaignID, ownerID, ep.ID, now.Add(-71*time.Hour))
	p.ID = id
	require.NoError(t, p.Transition(domain.PlacementVerified, now.Add(-70*time.Hour)))
	c, err := f.repo.GetCampaign(context.Background(), campaignID)
	require.NoError(t, err)
	require.NoError(t, p.ApplyExposure(domain.ExposureDelta{Views: views}, c.PayoutPerView, now))
	require.NoError(t, f.repo.SaveEpisode(context.Background(), ep, []domain.AdPlacement{p}))
	return p
}

func (f *fixture) get(t *testing.T, id string) domain.AdPlacement {
	t.Helper()
	p, err := f.repo.GetPlacement(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return *p
}

func (f *fixture) spent(t *testing.T, id string) int64 {
	t.Helper()
	c, err := f.repo.GetCampaign(context.Background(), id)
	require.NoError(t, err)
	return c.Spent
}

func ok(creator, fee int64, ref string) port.SettlementResult {
	return port.SettlementResult{CreatorShare: creator, PlatformFee: fee, TxRef: ref, Success: true}
}

func TestSweepRefusesPayoutAboveRemainingBudget(t *testing.T) {
	f := newFixture(t)
	f.campaign(t, "c1", 100, 1)
	f.placement(t, "p1", "c1", "o1", 150)

	results, err := f.engine(domain.DefaultPayoutParams(), nil).Sweep(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, ReasonInsufficientBudget, results[0].Reason)
	assert.ErrorIs(t, results[0].Err, domain.ErrInsufficientBudget)

	assert.Equal(t, domain.PlacementVerified, f.get(t, "p1").Status)
	assert.Zero(t, f.spent(t, "c1"))
	f.ledger.AssertNotCalled(t, "SettleExposure", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSweepPartialSettlementLeavesRemainderUnpaid(t *testing.T) {
	f := newFixture(t)
	f.campaign(t, "c1", 100, 1)
	f.placement(t, "p1", "c1", "o1", 150)
	f.ledger.EXPECT().SettleExposure(mock.Anything, "c1", "o1", int64(100)).Return(ok(95, 5, "tx-1"), nil).Once()

	params := domain.DefaultPayoutParams()
	params.PartialSettlement = true
	e := f.engine(params, nil)

	results, err := e.Sweep(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.True(t, results[0].Success)
	assert.Equal(t, int64(100), results[0].Settled)
	assert.Equal(t, int64(95), results[0].CreatorShare)
	assert.Equal(t, int64(5), results[0].PlatformFee)

	p := f.get(t, "p1")
	assert.Equal(t, domain.PlacementVerified, p.Status)
	assert.Equal(t, int64(50), p.UnpaidViews())
	assert.Equal(t, int64(100), p.TotalPaidOut)
	assert.LessOrEqual(t, p.TotalPaidOut, p.TotalPayout)
	assert.Equal(t, int64(100), f.spent(t, "c1"))

	// Budget exhausted: the remainder stays unpaid.
	results, err = e.Sweep(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, int64(100), f.spent(t, "c1"))
}

func TestSweepLedgerFailureIsRetried(t *testing.T) {
	f := newFixture(t)
	f.campaign(t, "c1", 1000, 2)
	f.placement(t, "p1", "c1", "o1", 40)
	f.ledger.EXPECT().SettleExposure(mock.Anything, "c1", "o1", int64(40)).
		Return(port.SettlementResult{}, errors.New("nonce too low")).Once()
	f.ledger.EXPECT().SettleExposure(mock.Anything, "c1", "o1", int64(40)).
		Return(port.SettlementResult{Success: false, Error: "reverted"}, nil).Once()

	e := f.engine(domain.DefaultPayoutParams(), nil)
	for i := 0; i < 2; i++ {
		results, err := e.Sweep(context.Background())
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.False(t, results[0].Success)
		assert.Equal(t, ReasonLedgerFailed, results[0].Reason)
		assert.Equal(t, domain.PlacementVerified, f.get(t, "p1").Status)
		assert.Zero(t, f.spent(t, "c1"))
	}

	f.ledger.EXPECT().SettleExposure(mock.Anything, "c1", "o1", int64(40)).Return(ok(76, 4, "tx-2"), nil).Once()
	results, err := e.Sweep(context.Background())
	require.NoError(t, err)
	require.True(t, results[0].Success)

	p := f.get(t, "p1")
	assert.Equal(t, domain.PlacementPaid, p.Status)
	assert.Equal(t, int64(80), p.TotalPaidOut)
	assert.Equal(t, int64(80), f.spent(t, "c1"))

	ep, err := f.repo.GetEpisode(context.Background(), "ep-p1")
	require.NoError(t, err)
	assert.Equal(t, int64(76), ep.Earnings)

	// Already-paid exposure is never counted again.
	results, err = e.Sweep(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSweepRereadsBudgetAcrossGroups(t *testing.T) {
	f := newFixture(t)
	f.campaign(t, "c1", 30, 1)
	f.placement(t, "pa", "c1", "oa", 20)
	f.placement(t, "pb", "c1", "ob", 20)
	f.ledger.EXPECT().SettleExposure(mock.Anything, "c1", "oa", int64(20)).Return(ok(19, 1, "tx-a"), nil).Once()

	results, err := f.engine(domain.DefaultPayoutParams(), nil).Sweep(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.Equal(t, "oa", results[0].OwnerID)
	assert.False(t, results[1].Success)
	assert.Equal(t, ReasonInsufficientBudget, results[1].Reason)

	assert.Equal(t, int64(20), f.spent(t, "c1"))
	var sum int64
	for _, s := range f.repo.Settlements() {
		sum += s.Amount
	}
	assert.Equal(t, f.spent(t, "c1"), sum)
	assert.Equal(t, 1, f.sleeps)
}

func TestSweepGroupsPlacementsOfOneOwner(t *testing.T) {
	f := newFixture(t)
	f.campaign(t, "c1", 1000, 1)
	f.placement(t, "p1", "c1", "o1", 6)
	f.placement(t, "p2", "c1", "o1", 6)
	f.ledger.EXPECT().SettleExposure(mock.Anything, "c1", "o1", int64(12)).Return(ok(11, 1, "tx"), nil).Once()

	results, err := f.engine(domain.DefaultPayoutParams(), nil).Sweep(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	assert.Equal(t, domain.PlacementPaid, f.get(t, "p1").Status)
	assert.Equal(t, domain.PlacementPaid, f.get(t, "p2").Status)
}

func TestSweepSkipsGroupsBelowMinimum(t *testing.T) {
	f := newFixture(t)
	f.campaign(t, "c1", 1000, 1)
	f.placement(t, "p1", "c1", "o1", 9)

	results, err := f.engine(domain.DefaultPayoutParams(), nil).Sweep(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, ReasonBelowMinimum, results[0].Reason)
	assert.NoError(t, results[0].Err)
	assert.Zero(t, Failed(results))
}

func TestSweepUsesTighterLedgerBudget(t *testing.T) {
	f := &fixture{repo: memory.NewRepository(), ledger: mocks.NewMockLedger(t)}
	f.campaign(t, "c1", 1000, 1)
	f.placement(t, "p1", "c1", "o1", 50)
	f.ledger.EXPECT().CampaignState(mock.Anything, "c1").
		Return(port.CampaignState{CampaignID: "c1", Budget: 1000, Spent: 980, Active: true}, nil)

	results, err := f.engine(domain.DefaultPayoutParams(), nil).Sweep(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, ReasonInsufficientBudget, results[0].Reason)
}

func TestFraudulentEpisodeIsRejectedNeverPaid(t *testing.T) {
	f := newFixture(t)
	f.campaign(t, "c1", 100000, 1)

	ep := domain.Episode{ID: "hot", OwnerID: "o1", ViewCount: 500, CreatedAt: now.Add(-time.Hour)}
	p := domain.NewPlacement("c1", "o1", ep.ID, now.Add(-time.Hour))
	require.NoError(t, p.Transition(domain.PlacementVerified, now.Add(-time.Hour)))
	require.NoError(t, p.ApplyExposure(domain.ExposureDelta{Views: 500}, 1, now))
	require.NoError(t, f.repo.SaveEpisode(context.Background(), ep, []domain.AdPlacement{p}))

	events := mocks.NewMockEventPublisher(t)
	events.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(ev domain.PlacementEvent) bool {
		return ev.Type == domain.EventPlacementRejected && ev.PlacementID == p.ID
	})).Return(nil).Once()
	e := f.engine(domain.DefaultPayoutParams(), events)

	results, err := e.Sweep(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
	f.ledger.AssertNotCalled(t, "SettleExposure", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	report, err := e.SuppressFraud(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Flags, 1)
	assert.Equal(t, int64(500), report.Flags[0].Observed)
	assert.Equal(t, int64(100), report.Flags[0].Ceiling)
	assert.Equal(t, 1, report.Suppressed)

	got := f.get(t, p.ID)
	assert.Equal(t, domain.PlacementRejected, got.Status)
	assert.Contains(t, got.RejectReason, "fraud")
}

func TestConcurrentSweepsSettleOnce(t *testing.T) {
	f := newFixture(t)
	f.campaign(t, "c1", 1000, 1)
	f.placement(t, "p1", "c1", "o1", 50)

	var calls atomic.Int32
	f.ledger.EXPECT().SettleExposure(mock.Anything, "c1", "o1", int64(50)).
		RunAndReturn(func(context.Context, string, string, int64) (port.SettlementResult, error) {
			calls.Add(1)
			time.Sleep(20 * time.Millisecond)
			return ok(47, 3, "tx-1"), nil
		})
	e := f.engine(domain.DefaultPayoutParams(), nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = e.Sweep(context.Background())
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int64(50), f.spent(t, "c1"))
	assert.Equal(t, domain.PlacementPaid, f.get(t, "p1").Status)
}

func TestAllocateOldestFirst(t *testing.T) {
	a := domain.AdPlacement{ID: "a", ViewCount: 30, CreatedAt: now}
	b := domain.AdPlacement{ID: "b", ViewCount: 30, CreatedAt: now.Add(-time.Hour)}

	got := allocate([]domain.AdPlacement{a, b}, 40, 2, 0.95)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].PlacementID)
	assert.Equal(t, int64(30), got[0].Views)
	assert.Equal(t, int64(60), got[0].Amount)
	assert.Equal(t, int64(57), got[0].Earnings)
	assert.Equal(t, "a", got[1].PlacementID)
	assert.Equal(t, int64(10), got[1].Views)
}
