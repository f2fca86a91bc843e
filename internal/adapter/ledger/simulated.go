// Package ledger implements port.Ledger: an HTTP gateway client for a real
// settlement service and an in-process simulation used in development.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"castads/internal/core/domain"
	"castads/internal/core/port"
)

const (
	minListenDuration = 5 * time.Second
	duplicateWindow   = 30 * time.Minute
)

var botMarkers = []string{"bot", "crawler", "spider", "curl", "wget", "python-requests", "headless", "scrapy"}

// Directory resolves campaigns and owners the simulation has not seen yet.
// port.Repository satisfies it.
type Directory interface {
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
	GetOwner(ctx context.Context, id string) (*domain.ContentOwner, error)
}

type pairKey struct{ campaignID, ownerID string }

type campaignBook struct {
	budget int64
	spent  int64
	rate   int64
	active bool
}

// Simulated keeps budgets, earnings and verification receipts in memory. The
// first touch of a campaign copies its budget and spend from the directory.
type Simulated struct {
	dir   Directory
	share float64
	nowFn func() time.Time

	mu         sync.Mutex
	campaigns  map[string]*campaignBook
	earned     map[string]int64
	placements map[pairKey]*port.PlacementState
	seen       map[string]time.Time
}

var _ port.Ledger = (*Simulated)(nil)

// NewSimulated returns a ledger paying creatorShare of every settlement to
// the owner.
func NewSimulated(dir Directory, creatorShare float64) *Simulated {
	return &Simulated{
		dir:        dir,
		share:      creatorShare,
		nowFn:      time.Now,
		campaigns:  make(map[string]*campaignBook),
		earned:     make(map[string]int64),
		placements: make(map[pairKey]*port.PlacementState),
		seen:       make(map[string]time.Time),
	}
}

func txRef() string {
	id := uuid.New()
	return common.BytesToHash(id[:]).Hex()
}

func (s *Simulated) book(ctx context.Context, campaignID string) (*campaignBook, error) {
	if b, ok := s.campaigns[campaignID]; ok {
		return b, nil
	}
	c, err := s.dir.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, &domain.LedgerError{Code: domain.LedgerUnavailable, Message: "campaign lookup failed", Err: err}
	}
	if c == nil {
		return nil, &domain.LedgerError{Code: domain.LedgerTransactionFailed, Message: fmt.Sprintf("campaign %s not registered", campaignID)}
	}
	b := &campaignBook{budget: c.Budget, spent: c.Spent, rate: c.PayoutPerView, active: c.Status == domain.CampaignActive}
	s.campaigns[campaignID] = b
	return b, nil
}

func (s *Simulated) pair(campaignID, ownerID string) *port.PlacementState {
	k := pairKey{campaignID, ownerID}
	st, ok := s.placements[k]
	if !ok {
		st = &port.PlacementState{CampaignID: campaignID, OwnerID: ownerID}
		s.placements[k] = st
	}
	return st
}

func (s *Simulated) VerifyPlacement(ctx context.Context, campaignID, ownerID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.book(ctx, campaignID); err != nil {
		return "", err
	}
	s.pair(campaignID, ownerID).Verified = true
	return txRef(), nil
}

// SettleExposure charges exposures × rate against the campaign. A charge the
// budget cannot cover is reported as an unsuccessful result, not an error.
func (s *Simulated) SettleExposure(ctx context.Context, campaignID, ownerID string, exposures int64) (port.SettlementResult, error) {
	if exposures <= 0 {
		return port.SettlementResult{}, &domain.LedgerError{Code: domain.LedgerTransactionFailed, Message: "exposure count must be positive"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.book(ctx, campaignID)
	if err != nil {
		return port.SettlementResult{}, err
	}
	amount := exposures * b.rate
	if amount > b.budget-b.spent {
		return port.SettlementResult{Error: "insufficient campaign budget"}, nil
	}

	split := domain.SplitPayout(amount, s.share)
	b.spent += amount
	s.earned[ownerID] += split.CreatorShare
	st := s.pair(campaignID, ownerID)
	st.SettledViews += exposures
	st.TotalPaid += amount

	return port.SettlementResult{
		CreatorShare: split.CreatorShare,
		PlatformFee:  split.PlatformFee,
		TxRef:        txRef(),
		Success:      true,
	}, nil
}

func (s *Simulated) CampaignState(ctx context.Context, campaignID string) (port.CampaignState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.book(ctx, campaignID)
	if err != nil {
		return port.CampaignState{}, err
	}
	return port.CampaignState{CampaignID: campaignID, Budget: b.budget, Spent: b.spent, Active: b.active}, nil
}

func (s *Simulated) OwnerState(ctx context.Context, ownerID string) (port.OwnerState, error) {
	o, err := s.dir.GetOwner(ctx, ownerID)
	if err != nil {
		return port.OwnerState{}, &domain.LedgerError{Code: domain.LedgerUnavailable, Message: "owner lookup failed", Err: err}
	}
	st := port.OwnerState{OwnerID: ownerID}
	if o != nil {
		st.Wallet = o.Wallet
	}
	s.mu.Lock()
	st.TotalEarned = s.earned[ownerID]
	s.mu.Unlock()
	return st, nil
}

func (s *Simulated) PlacementState(_ context.Context, campaignID, ownerID string) (port.PlacementState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.placements[pairKey{campaignID, ownerID}]; ok {
		return *st, nil
	}
	return port.PlacementState{CampaignID: campaignID, OwnerID: ownerID}, nil
}

// ValidateExposureAuthenticity drops events from malformed source addresses,
// automated agents, listens shorter than five seconds and repeats of the same
// source and subject within thirty minutes. The duration floor applies to
// views and impressions only; clicks and conversions are instantaneous.
func (s *Simulated) ValidateExposureAuthenticity(_ context.Context, events []domain.ExposureEvent) ([]domain.ExposureEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prune(s.nowFn())
	out := make([]domain.ExposureEvent, 0, len(events))
	for _, ev := range events {
		if !Authentic(ev) {
			continue
		}
		key := string(ev.Kind) + "|" + strings.ToLower(ev.SourceAddress) + "|" + ev.SubjectID
		if last, ok := s.seen[key]; ok && absDuration(ev.Timestamp.Sub(last)) < duplicateWindow {
			continue
		}
		s.seen[key] = ev.Timestamp
		out = append(out, ev)
	}
	return out, nil
}

func (s *Simulated) prune(now time.Time) {
	for k, t := range s.seen {
		if now.Sub(t) > 2*duplicateWindow {
			delete(s.seen, k)
		}
	}
}

// Authentic applies the stateless part of the exposure filter.
func Authentic(ev domain.ExposureEvent) bool {
	if !common.IsHexAddress(ev.SourceAddress) {
		return false
	}
	agent := strings.ToLower(strings.TrimSpace(ev.AgentString))
	if agent == "" {
		return false
	}
	for _, m := range botMarkers {
		if strings.Contains(agent, m) {
			return false
		}
	}
	switch ev.Kind {
	case domain.ExposureClick, domain.ExposureConversion:
		return true
	default:
		return ev.Duration >= minListenDuration
	}
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
