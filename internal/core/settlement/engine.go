// Package settlement converts verified exposure into ledger payouts without
// overspending campaign budgets, and suppresses fraudulent episodes.
package settlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"castads/internal/core/domain"
	"castads/internal/core/port"
)

// Skip reasons reported on GroupResult.
const (
	ReasonBelowMinimum       = "below_minimum_exposures"
	ReasonInsufficientBudget = "insufficient_budget"
	ReasonCampaignMissing    = "campaign_missing"
	ReasonLedgerFailed       = "ledger_failed"
	ReasonApplyFailed        = "apply_failed"
)

// GroupResult is the outcome of settling one (campaign, owner) group.
type GroupResult struct {
	CampaignID   string
	OwnerID      string
	Unpaid       int64
	Settled      int64
	Amount       int64
	CreatorShare int64
	PlatformFee  int64
	TxRef        string
	Success      bool
	Reason       string
	Err          error
}

// Sleeper pauses for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Engine runs payout and fraud sweeps. Settlements are submitted one at a
// time because a single signing identity commits them; mu serializes whole
// sweeps so two callers never settle the same placements.
type Engine struct {
	mu sync.Mutex

	repo   port.Repository
	ledger port.Ledger
	events port.EventPublisher
	payout domain.PayoutParams
	fraud  domain.FraudParams
	logger *slog.Logger
	tracer trace.Tracer
	nowFn  func() time.Time
	sleep  Sleeper
}

// Option customises an Engine.
type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.nowFn = now }
}

// WithSleeper replaces the inter-transaction sleep.
func WithSleeper(s Sleeper) Option {
	return func(e *Engine) { e.sleep = s }
}

// New returns a settlement engine. events may be nil.
func New(repo port.Repository, ledger port.Ledger, events port.EventPublisher,
	payout domain.PayoutParams, fraud domain.FraudParams, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		repo:   repo,
		ledger: ledger,
		events: events,
		payout: payout,
		fraud:  fraud,
		logger: logger,
		tracer: otel.Tracer("castads/settlement"),
		nowFn:  time.Now,
		sleep:  sleepCtx,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type groupKey struct {
	campaignID string
	ownerID    string
}

// Sweep settles every eligible group of verified placements. Per-group
// failures are reported in the results, not returned; the error is only set
// when the placements could not be listed.
func (e *Engine) Sweep(ctx context.Context) ([]GroupResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, span := e.tracer.Start(ctx, "settlement.Sweep")
	defer span.End()

	verified, err := e.repo.ListPlacements(ctx, port.PlacementFilter{Status: domain.PlacementVerified})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list placements")
		return nil, fmt.Errorf("list verified placements: %w", err)
	}

	flagged, err := e.flaggedEpisodes(ctx, verified)
	if err != nil {
		return nil, err
	}

	groups := make(map[groupKey][]domain.AdPlacement)
	for _, p := range verified {
		if _, bad := flagged[p.EpisodeID]; bad {
			continue
		}
		k := groupKey{campaignID: p.CampaignID, ownerID: p.OwnerID}
		groups[k] = append(groups[k], p)
	}
	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].campaignID != keys[j].campaignID {
			return keys[i].campaignID < keys[j].campaignID
		}
		return keys[i].ownerID < keys[j].ownerID
	})

	results := make([]GroupResult, 0, len(keys))
	submitted := false
	for _, k := range keys {
		if err = ctx.Err(); err != nil {
			return results, err
		}
		placements := groups[k]
		unpaid := int64(0)
		for _, p := range placements {
			unpaid += p.UnpaidViews()
		}
		if unpaid < e.payout.MinExposures || unpaid == 0 {
			results = append(results, GroupResult{CampaignID: k.campaignID, OwnerID: k.ownerID, Unpaid: unpaid, Reason: ReasonBelowMinimum})
			continue
		}

		if submitted && e.payout.InterTxDelay > 0 {
			if err = e.sleep(ctx, e.payout.InterTxDelay); err != nil {
				return results, err
			}
		}
		res, didSubmit := e.settleGroup(ctx, k, placements, unpaid)
		submitted = submitted || didSubmit
		results = append(results, res)
	}

	span.SetAttributes(attribute.Int("settlement.groups", len(keys)))
	return results, nil
}

// flaggedEpisodes returns the episodes among placements whose exposure
// exceeds the plausible ceiling.
func (e *Engine) flaggedEpisodes(ctx context.Context, placements []domain.AdPlacement) (map[string]domain.FraudFlag, error) {
	now := e.nowFn()
	seen := make(map[string]struct{})
	flagged := make(map[string]domain.FraudFlag)
	for _, p := range placements {
		if _, ok := seen[p.EpisodeID]; ok {
			continue
		}
		seen[p.EpisodeID] = struct{}{}
		ep, err := e.repo.GetEpisode(ctx, p.EpisodeID)
		if err != nil {
			return nil, fmt.Errorf("get episode %s: %w", p.EpisodeID, err)
		}
		if ep == nil {
			continue
		}
		if flag, bad := domain.CheckFraud(e.fraud, *ep, now); bad {
			flagged[ep.ID] = flag
		}
	}
	return flagged, nil
}

func (e *Engine) settleGroup(ctx context.Context, k groupKey, placements []domain.AdPlacement, unpaid int64) (GroupResult, bool) {
	ctx, span := e.tracer.Start(ctx, "settlement.settleGroup", trace.WithAttributes(
		attribute.String("campaign.id", k.campaignID),
		attribute.String("owner.id", k.ownerID),
		attribute.Int64("exposures.unpaid", unpaid),
	))
	defer span.End()

	res := GroupResult{CampaignID: k.campaignID, OwnerID: k.ownerID, Unpaid: unpaid}
	fail := func(reason string, err error) GroupResult {
		res.Reason = reason
		res.Err = err
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)
		e.logger.Warn("settlement not committed",
			slog.String("campaign_id", k.campaignID),
			slog.String("owner_id", k.ownerID),
			slog.String("reason", reason),
			slog.Any("error", err))
		return res
	}

	// Budget is re-read right before every commit; several groups may draw
	// from the same campaign within one sweep.
	c, err := e.repo.GetCampaign(ctx, k.campaignID)
	if err != nil {
		return fail(ReasonCampaignMissing, fmt.Errorf("get campaign: %w", err)), false
	}
	if c == nil || c.PayoutPerView <= 0 {
		return fail(ReasonCampaignMissing, fmt.Errorf("%w: campaign %s", domain.ErrNotFound, k.campaignID)), false
	}
	remaining := e.remainingBudget(ctx, *c)

	exposures := unpaid
	amount := c.PayoutPerView * exposures
	if amount > remaining {
		if !e.payout.PartialSettlement {
			return fail(ReasonInsufficientBudget, &domain.LedgerError{
				Code:    domain.LedgerInsufficientBudget,
				Message: fmt.Sprintf("payout %d exceeds remaining budget %d", amount, remaining),
			}), false
		}
		exposures = remaining / c.PayoutPerView
		amount = c.PayoutPerView * exposures
		if exposures == 0 {
			return fail(ReasonInsufficientBudget, &domain.LedgerError{
				Code:    domain.LedgerInsufficientBudget,
				Message: fmt.Sprintf("remaining budget %d is below one payout", remaining),
			}), false
		}
	}

	ledgerRes, err := e.ledger.SettleExposure(ctx, k.campaignID, k.ownerID, exposures)
	if err == nil && !ledgerRes.Success {
		err = &domain.LedgerError{Code: domain.LedgerTransactionFailed, Message: ledgerRes.Error}
	}
	if err != nil {
		return fail(ReasonLedgerFailed, err), true
	}

	split := domain.Split{CreatorShare: ledgerRes.CreatorShare, PlatformFee: ledgerRes.PlatformFee}
	if split.CreatorShare+split.PlatformFee != amount {
		split = domain.SplitPayout(amount, e.payout.CreatorShare)
	}
	now := e.nowFn().UTC()
	s := domain.Settlement{
		ID:           uuid.NewString(),
		CampaignID:   k.campaignID,
		OwnerID:      k.ownerID,
		Exposures:    exposures,
		Amount:       amount,
		CreatorShare: split.CreatorShare,
		PlatformFee:  split.PlatformFee,
		TxRef:        ledgerRes.TxRef,
		Placements:   allocate(placements, exposures, c.PayoutPerView, e.payout.CreatorShare),
		SettledAt:    now,
	}
	if err = e.repo.ApplySettlement(ctx, s); err != nil {
		// The ledger already moved funds; this needs manual reconciliation
		// against the tx ref.
		e.logger.Error("ledger settlement committed but local apply failed",
			slog.String("campaign_id", k.campaignID),
			slog.String("owner_id", k.ownerID),
			slog.String("tx_ref", s.TxRef),
			slog.Int64("amount", amount),
			slog.Any("error", err))
		res.TxRef = s.TxRef
		return fail(ReasonApplyFailed, err), true
	}

	res.Settled = exposures
	res.Amount = amount
	res.CreatorShare = split.CreatorShare
	res.PlatformFee = split.PlatformFee
	res.TxRef = s.TxRef
	res.Success = true
	e.logger.Info("settlement committed",
		slog.String("campaign_id", k.campaignID),
		slog.String("owner_id", k.ownerID),
		slog.Int64("exposures", exposures),
		slog.Int64("amount", amount),
		slog.String("tx_ref", s.TxRef))
	e.publishPaid(ctx, placements, s, now)
	return res, true
}

// remainingBudget is the tighter of the stored and the ledger's view. A
// ledger read failure falls back to the stored figure.
func (e *Engine) remainingBudget(ctx context.Context, c domain.Campaign) int64 {
	remaining := c.Remaining()
	state, err := e.ledger.CampaignState(ctx, c.ID)
	if err != nil {
		e.logger.Debug("ledger campaign state unavailable", slog.String("campaign_id", c.ID), slog.Any("error", err))
		return remaining
	}
	if state.Budget > 0 && state.Remaining() < remaining {
		return state.Remaining()
	}
	return remaining
}

// allocate spreads exposures over placements, oldest first.
func allocate(placements []domain.AdPlacement, exposures, rate int64, share float64) []domain.PlacementSettlement {
	ordered := append([]domain.AdPlacement(nil), placements...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
		}
		return ordered[i].ID < ordered[j].ID
	})

	var out []domain.PlacementSettlement
	left := exposures
	for _, p := range ordered {
		if left == 0 {
			break
		}
		views := min(p.UnpaidViews(), left)
		if views == 0 {
			continue
		}
		left -= views
		amount := views * rate
		out = append(out, domain.PlacementSettlement{
			PlacementID: p.ID,
			EpisodeID:   p.EpisodeID,
			Views:       views,
			Amount:      amount,
			Earnings:    domain.SplitPayout(amount, share).CreatorShare,
		})
	}
	return out
}

func (e *Engine) publishPaid(ctx context.Context, placements []domain.AdPlacement, s domain.Settlement, now time.Time) {
	byID := make(map[string]domain.AdPlacement, len(placements))
	for _, p := range placements {
		byID[p.ID] = p
	}
	for _, ps := range s.Placements {
		p := byID[ps.PlacementID]
		if err := p.Settle(ps.Views, ps.Amount, now); err != nil || p.Status != domain.PlacementPaid {
			continue
		}
		ev := domain.NewPlacementEvent(domain.EventPlacementPaid, p, now)
		ev.Amount = p.TotalPaidOut
		e.publish(ctx, ev)
	}
}

func (e *Engine) publish(ctx context.Context, ev domain.PlacementEvent) {
	if e.events == nil {
		return
	}
	if err := e.events.Publish(ctx, ev); err != nil {
		e.logger.Warn("publish placement event", slog.String("type", string(ev.Type)),
			slog.String("placement_id", ev.PlacementID), slog.Any("error", err))
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Succeeded counts successful results.
func Succeeded(results []GroupResult) int {
	n := 0
	for _, r := range results {
		if r.Success {
			n++
		}
	}
	return n
}

// Failed counts results that attempted a settlement and did not commit.
func Failed(results []GroupResult) int {
	n := 0
	for _, r := range results {
		if !r.Success && r.Err != nil && !errors.Is(r.Err, domain.ErrInsufficientBudget) {
			n++
		}
	}
	return n
}
