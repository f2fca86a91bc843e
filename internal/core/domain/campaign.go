package domain

import "time"

// CampaignStatus is the lifecycle state of a campaign.
type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
	CampaignCancelled CampaignStatus = "cancelled"
)

// Campaign represents a brand's paid request to have its product mentioned in
// generated content. Budgets are stored in integer units (e.g. cents) and
// Spent never exceeds Budget.
type Campaign struct {
	ID             string
	BrandName      string
	ProductName    string
	Description    string
	Category       string
	TargetAudience []string
	// RequiredContent lists statements every ad for this campaign must carry,
	// e.g. "mention promo code CAST20".
	RequiredContent []string
	Budget          int64
	Spent           int64
	PayoutPerView   int64 // cost per verified exposure
	StartDate       time.Time
	EndDate         time.Time
	Status          CampaignStatus
	AIMatching      bool
	ContentRules    ContentRules
	Verification    VerificationCriteria
	// QualityThreshold is the minimum compatibility score the campaign accepts
	// on top of the global matching threshold. Zero means no extra floor.
	QualityThreshold float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ContentRules constrain how ad copy may be written for a campaign.
type ContentRules struct {
	Tone             string   `json:"tone,omitempty"`
	ForbiddenPhrases []string `json:"forbidden_phrases,omitempty"`
	MaxDuration      int      `json:"max_duration,omitempty"` // seconds
	Placements       []string `json:"placements,omitempty"`
	Notes            string   `json:"notes,omitempty"`
}

// VerificationCriteria are the per-campaign knobs the verification engine
// applies on top of the platform defaults.
type VerificationCriteria struct {
	MinQualityScore  float64  `json:"min_quality_score,omitempty"`
	RequiredElements []string `json:"required_elements,omitempty"`
	ComplianceChecks []string `json:"compliance_checks,omitempty"`
	NaturalnessFloor float64  `json:"naturalness_floor,omitempty"`
}

// Remaining returns the unspent part of the budget.
func (c Campaign) Remaining() int64 {
	if c.Spent >= c.Budget {
		return 0
	}
	return c.Budget - c.Spent
}

// Requirements returns the deduplicated union of the campaign's required
// content and its verification required elements, in declaration order.
func (c Campaign) Requirements() []string {
	seen := make(map[string]struct{}, len(c.RequiredContent)+len(c.Verification.RequiredElements))
	out := make([]string, 0, len(c.RequiredContent)+len(c.Verification.RequiredElements))
	for _, list := range [][]string{c.RequiredContent, c.Verification.RequiredElements} {
		for _, r := range list {
			if r == "" {
				continue
			}
			if _, ok := seen[r]; ok {
				continue
			}
			seen[r] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}
