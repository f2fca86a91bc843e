package domain

import "time"

// Severity grades a compliance outcome.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityHigh
}

// SeverityFor grades a violation count: high above 2, medium above 0.
func SeverityFor(violations int) Severity {
	switch {
	case violations > 2:
		return SeverityHigh
	case violations > 0:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// QualityScore is a multi-dimensional judgement of merged content. Every
// field, including breakdown values, lies in [0,1].
type QualityScore struct {
	Overall     float64            `json:"overall"`
	Naturalness float64            `json:"naturalness"`
	Relevance   float64            `json:"relevance"`
	Engagement  float64            `json:"engagement"`
	Compliance  float64            `json:"compliance"`
	Breakdown   map[string]float64 `json:"breakdown,omitempty"`
}

// Valid reports whether every score lies in [0,1].
func (q QualityScore) Valid() bool {
	for _, v := range []float64{q.Overall, q.Naturalness, q.Relevance, q.Engagement, q.Compliance} {
		if !InUnit(v) {
			return false
		}
	}
	for _, v := range q.Breakdown {
		if !InUnit(v) {
			return false
		}
	}
	return true
}

// ComplianceResult is the outcome of a compliance check on ad copy.
type ComplianceResult struct {
	Compliant   bool     `json:"compliant"`
	Violations  []string `json:"violations"`
	Severity    Severity `json:"severity"`
	Suggestions []string `json:"suggestions"`
}

// Score condenses the result into [0,1].
func (c ComplianceResult) Score() float64 {
	if c.Compliant && len(c.Violations) == 0 {
		return 1
	}
	return Clamp01(1 - 0.3*float64(len(c.Violations)) - 0.1)
}

// VerificationResult is the persisted verdict on a placement.
type VerificationResult struct {
	Verified        bool      `json:"verified"`
	QualityScore    float64   `json:"quality_score"`
	ComplianceScore float64   `json:"compliance_score"`
	RequirementsMet []bool    `json:"requirements_met"`
	Feedback        []string  `json:"feedback"`
	Suggestions     []string  `json:"suggestions"`
	VerifiedAt      time.Time `json:"verified_at"`
}

// InUnit reports whether v lies in [0,1].
func InUnit(v float64) bool {
	return v >= 0 && v <= 1
}

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
