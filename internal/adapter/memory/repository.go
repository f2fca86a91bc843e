// Package memory is an in-process implementation of port.Repository used by
// STORE=memory and by tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"castads/internal/core/domain"
	"castads/internal/core/port"
)

type dayKey struct {
	day         string
	placementID string
}

type statsKey struct {
	campaignID string
	day        string
}

// Repository keeps every record in maps guarded by one mutex. Values are
// copied on the way in and out so callers never share memory with the store.
type Repository struct {
	mu          sync.RWMutex
	campaigns   map[string]domain.Campaign
	owners      map[string]domain.ContentOwner
	episodes    map[string]domain.Episode
	placements  map[string]domain.AdPlacement
	exposure    map[dayKey]domain.ExposureDelta
	settlements []domain.Settlement
	stats       map[statsKey]domain.CampaignDailyStats
}

// NewRepository returns an empty repository.
func NewRepository() *Repository {
	return &Repository{
		campaigns:  make(map[string]domain.Campaign),
		owners:     make(map[string]domain.ContentOwner),
		episodes:   make(map[string]domain.Episode),
		placements: make(map[string]domain.AdPlacement),
		exposure:   make(map[dayKey]domain.ExposureDelta),
		stats:      make(map[statsKey]domain.CampaignDailyStats),
	}
}

var _ port.Repository = (*Repository)(nil)

func dayOf(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

func (r *Repository) GetCampaign(_ context.Context, id string) (*domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.campaigns[id]
	if !ok {
		return nil, nil
	}
	c = cloneCampaign(c)
	return &c, nil
}

func (r *Repository) ListCampaigns(_ context.Context, f port.CampaignFilter) ([]domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Campaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.Category != "" && c.Category != f.Category {
			continue
		}
		out = append(out, cloneCampaign(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *Repository) SaveCampaign(_ context.Context, c domain.Campaign) error {
	if c.ID == "" {
		return fmt.Errorf("%w: campaign id", domain.ErrInvalidInput)
	}
	if c.Spent > c.Budget {
		return fmt.Errorf("%w: campaign %s", domain.ErrInsufficientBudget, c.ID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.campaigns[c.ID] = cloneCampaign(c)
	return nil
}

func (r *Repository) GetOwner(_ context.Context, id string) (*domain.ContentOwner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.owners[id]
	if !ok {
		return nil, nil
	}
	o = cloneOwner(o)
	return &o, nil
}

func (r *Repository) SaveOwner(_ context.Context, o domain.ContentOwner) error {
	if o.ID == "" {
		return fmt.Errorf("%w: owner id", domain.ErrInvalidInput)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.owners[o.ID] = cloneOwner(o)
	return nil
}

func (r *Repository) GetEpisode(_ context.Context, id string) (*domain.Episode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.episodes[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *Repository) ListEpisodesWithAds(_ context.Context) ([]domain.Episode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	withAds := make(map[string]struct{})
	for _, p := range r.placements {
		withAds[p.EpisodeID] = struct{}{}
	}
	out := make([]domain.Episode, 0, len(withAds))
	for id := range withAds {
		if e, ok := r.episodes[id]; ok {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repository) SaveEpisode(_ context.Context, e domain.Episode, placements []domain.AdPlacement) error {
	if e.ID == "" {
		return fmt.Errorf("%w: episode id", domain.ErrInvalidInput)
	}
	for _, p := range placements {
		if p.ID == "" || p.EpisodeID != e.ID {
			return fmt.Errorf("%w: placement %q does not belong to episode %s", domain.ErrInvalidInput, p.ID, e.ID)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.episodes[e.ID] = e
	for _, p := range placements {
		r.placements[p.ID] = clonePlacement(p)
	}
	return nil
}

func (r *Repository) GetPlacement(_ context.Context, id string) (*domain.AdPlacement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.placements[id]
	if !ok {
		return nil, nil
	}
	p = clonePlacement(p)
	return &p, nil
}

func (r *Repository) ListPlacements(_ context.Context, f port.PlacementFilter) ([]domain.AdPlacement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.AdPlacement
	for _, p := range r.placements {
		switch {
		case f.Status != "" && p.Status != f.Status,
			f.CampaignID != "" && p.CampaignID != f.CampaignID,
			f.OwnerID != "" && p.OwnerID != f.OwnerID,
			f.EpisodeID != "" && p.EpisodeID != f.EpisodeID:
			continue
		}
		out = append(out, clonePlacement(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *Repository) UpdatePlacement(_ context.Context, p domain.AdPlacement, expected domain.PlacementStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.placements[p.ID]
	if !ok {
		return fmt.Errorf("%w: placement %s", domain.ErrNotFound, p.ID)
	}
	if cur.Status != expected {
		return fmt.Errorf("%w: placement %s is %s, expected %s", port.ErrStaleStatus, p.ID, cur.Status, expected)
	}
	next := clonePlacement(p)
	keepCounters(&next, cur)
	r.placements[p.ID] = next
	return nil
}

// keepCounters carries the stored exposure, payout and feedback fields over
// to next; only RecordExposure, ApplySettlement and AppendFeedback move them.
func keepCounters(next *domain.AdPlacement, cur domain.AdPlacement) {
	next.ViewCount = cur.ViewCount
	next.Impressions = cur.Impressions
	next.Clicks = cur.Clicks
	next.Conversions = cur.Conversions
	next.PaidViews = cur.PaidViews
	next.TotalPayout = cur.TotalPayout
	next.TotalPaidOut = cur.TotalPaidOut
	next.Feedback = slices.Clone(cur.Feedback)
}

func (r *Repository) RecordExposure(_ context.Context, placementID string, d domain.ExposureDelta, at time.Time) (*domain.AdPlacement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.placements[placementID]
	if !ok {
		return nil, fmt.Errorf("%w: placement %s", domain.ErrNotFound, placementID)
	}
	c, ok := r.campaigns[p.CampaignID]
	if !ok {
		return nil, fmt.Errorf("%w: campaign %s", domain.ErrNotFound, p.CampaignID)
	}
	p = clonePlacement(p)
	if err := p.ApplyExposure(d, c.PayoutPerView, at); err != nil {
		return nil, err
	}
	r.placements[p.ID] = p

	if e, ok := r.episodes[p.EpisodeID]; ok {
		e.ObserveViews(p.ViewCount, at)
		r.episodes[e.ID] = e
	}
	k := dayKey{day: dayOf(at), placementID: p.ID}
	sum := r.exposure[k]
	sum.Views += d.Views
	sum.Impressions += d.Impressions
	sum.Clicks += d.Clicks
	sum.Conversions += d.Conversions
	r.exposure[k] = sum

	out := clonePlacement(p)
	return &out, nil
}

func (r *Repository) AppendFeedback(_ context.Context, placementID string, fb domain.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.placements[placementID]
	if !ok {
		return fmt.Errorf("%w: placement %s", domain.ErrNotFound, placementID)
	}
	p = clonePlacement(p)
	p.Feedback = append(p.Feedback, fb)
	r.placements[p.ID] = p
	return nil
}

func (r *Repository) DeleteRejectedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, p := range r.placements {
		if p.Status != domain.PlacementRejected {
			continue
		}
		at := p.UpdatedAt
		if p.RejectedAt != nil {
			at = *p.RejectedAt
		}
		if at.Before(cutoff) {
			delete(r.placements, id)
			n++
		}
	}
	return n, nil
}

func (r *Repository) ApplySettlement(_ context.Context, s domain.Settlement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[s.CampaignID]
	if !ok {
		return fmt.Errorf("%w: campaign %s", domain.ErrNotFound, s.CampaignID)
	}
	if c.Spent+s.Amount > c.Budget {
		return fmt.Errorf("%w: campaign %s spent %d + %d > budget %d",
			domain.ErrInsufficientBudget, c.ID, c.Spent, s.Amount, c.Budget)
	}

	updated := make([]domain.AdPlacement, 0, len(s.Placements))
	for _, ps := range s.Placements {
		p, ok := r.placements[ps.PlacementID]
		if !ok {
			return fmt.Errorf("%w: placement %s", domain.ErrNotFound, ps.PlacementID)
		}
		if p.Status != domain.PlacementVerified {
			return fmt.Errorf("%w: placement %s is %s", port.ErrStaleStatus, p.ID, p.Status)
		}
		p = clonePlacement(p)
		if err := p.Settle(ps.Views, ps.Amount, s.SettledAt); err != nil {
			return err
		}
		updated = append(updated, p)
	}

	c.Spent += s.Amount
	c.UpdatedAt = s.SettledAt
	r.campaigns[c.ID] = c
	for _, p := range updated {
		r.placements[p.ID] = p
	}
	for _, ps := range s.Placements {
		if e, ok := r.episodes[ps.EpisodeID]; ok {
			e.Earnings += ps.Earnings
			e.UpdatedAt = s.SettledAt
			r.episodes[e.ID] = e
		}
	}
	r.settlements = append(r.settlements, s)
	return nil
}

// Settlements returns every recorded settlement in commit order.
func (r *Repository) Settlements() []domain.Settlement {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.settlements)
}

func (r *Repository) RollupDaily(_ context.Context, day time.Time) ([]domain.CampaignDailyStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := dayOf(day)
	start, _ := time.Parse(time.DateOnly, d)

	type acc struct {
		stats    domain.CampaignDailyStats
		quality  float64
		verified int64
	}
	rows := make(map[string]*acc)
	get := func(campaignID string) *acc {
		a, ok := rows[campaignID]
		if !ok {
			a = &acc{stats: domain.CampaignDailyStats{CampaignID: campaignID, Day: start}}
			rows[campaignID] = a
		}
		return a
	}

	for _, p := range r.placements {
		if dayOf(p.CreatedAt) == d {
			a := get(p.CampaignID)
			a.stats.Placements++
			if p.Verification != nil {
				a.quality += p.QualityScore
				a.verified++
			}
		}
	}
	for k, delta := range r.exposure {
		if k.day != d {
			continue
		}
		p, ok := r.placements[k.placementID]
		if !ok {
			continue
		}
		a := get(p.CampaignID)
		a.stats.Views += delta.Views
		a.stats.Clicks += delta.Clicks
	}
	for _, s := range r.settlements {
		if dayOf(s.SettledAt) == d {
			get(s.CampaignID).stats.Spend += s.Amount
		}
	}

	out := make([]domain.CampaignDailyStats, 0, len(rows))
	for id, a := range rows {
		if a.verified > 0 {
			a.stats.AvgQuality = a.quality / float64(a.verified)
		}
		r.stats[statsKey{campaignID: id, day: d}] = a.stats
		out = append(out, a.stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CampaignID < out[j].CampaignID })
	return out, nil
}

func (r *Repository) ListDailyStats(_ context.Context, req port.StatsReq) ([]domain.CampaignDailyStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.CampaignDailyStats
	for _, s := range r.stats {
		if req.CampaignID != nil && s.CampaignID != *req.CampaignID {
			continue
		}
		if !req.From.IsZero() && s.Day.Before(req.From) {
			continue
		}
		if !req.To.IsZero() && s.Day.After(req.To) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Day.Equal(out[j].Day) {
			return out[i].Day.Before(out[j].Day)
		}
		return out[i].CampaignID < out[j].CampaignID
	})
	return out, nil
}

func cloneCampaign(c domain.Campaign) domain.Campaign {
	c.TargetAudience = slices.Clone(c.TargetAudience)
	c.RequiredContent = slices.Clone(c.RequiredContent)
	c.ContentRules.ForbiddenPhrases = slices.Clone(c.ContentRules.ForbiddenPhrases)
	c.ContentRules.Placements = slices.Clone(c.ContentRules.Placements)
	c.Verification.RequiredElements = slices.Clone(c.Verification.RequiredElements)
	c.Verification.ComplianceChecks = slices.Clone(c.Verification.ComplianceChecks)
	return c
}

func cloneOwner(o domain.ContentOwner) domain.ContentOwner {
	o.Themes = slices.Clone(o.Themes)
	o.Preferences.AllowedCategories = slices.Clone(o.Preferences.AllowedCategories)
	o.Preferences.BlockedBrands = slices.Clone(o.Preferences.BlockedBrands)
	return o
}

func clonePlacement(p domain.AdPlacement) domain.AdPlacement {
	p.Content.RequiredElements = slices.Clone(p.Content.RequiredElements)
	p.Content.StyleNotes = slices.Clone(p.Content.StyleNotes)
	p.Feedback = slices.Clone(p.Feedback)
	if p.Verification != nil {
		v := *p.Verification
		v.RequirementsMet = slices.Clone(v.RequirementsMet)
		v.Feedback = slices.Clone(v.Feedback)
		v.Suggestions = slices.Clone(v.Suggestions)
		p.Verification = &v
	}
	return p
}
