package domain

import (
	"math"
	"time"
)

// MatchWeights blend the four compatibility components. They are expected to
// sum to 1.
type MatchWeights struct {
	Audience  float64 `yaml:"audience"`
	Relevance float64 `yaml:"relevance"`
	BrandFit  float64 `yaml:"brand_fit"`
	Quality   float64 `yaml:"quality"`
}

// MatchingParams tune the matching engine.
type MatchingParams struct {
	Weights        MatchWeights `yaml:"weights"`
	Threshold      float64      `yaml:"threshold"`
	AllocationBase float64      `yaml:"allocation_base"`
	AllocationCap  float64      `yaml:"allocation_cap"`
	ReachDivisor   float64      `yaml:"reach_divisor"`
	ReachCap       float64      `yaml:"reach_cap"`
}

// DefaultMatchingParams returns the stock matching tunables.
func DefaultMatchingParams() MatchingParams {
	return MatchingParams{
		Weights:        MatchWeights{Audience: 0.4, Relevance: 0.3, BrandFit: 0.2, Quality: 0.1},
		Threshold:      0.5,
		AllocationBase: 0.1,
		AllocationCap:  0.3,
		ReachDivisor:   1000,
		ReachCap:       2,
	}
}

// PayoutParams tune settlement.
type PayoutParams struct {
	CreatorShare      float64       `yaml:"creator_share"`
	MinExposures      int64         `yaml:"min_exposures"`
	PartialSettlement bool          `yaml:"partial_settlement"`
	InterTxDelay      time.Duration `yaml:"inter_tx_delay"`
}

// DefaultPayoutParams returns the stock payout tunables.
func DefaultPayoutParams() PayoutParams {
	return PayoutParams{
		CreatorShare: 0.95,
		MinExposures: 10,
		InterTxDelay: time.Second,
	}
}

// FraudParams bound plausible exposure for an episode.
type FraudParams struct {
	Floor   int64 `yaml:"floor"`
	PerHour int64 `yaml:"per_hour"`
}

// DefaultFraudParams returns the stock fraud ceiling.
func DefaultFraudParams() FraudParams {
	return FraudParams{Floor: 100, PerHour: 50}
}

// VerificationParams tune the verification verdict.
type VerificationParams struct {
	MinOverall       float64 `yaml:"min_overall"`
	NaturalnessFloor float64 `yaml:"naturalness_floor"`
	FlowDisruption   float64 `yaml:"flow_disruption"`
	RequirementRatio float64 `yaml:"requirement_ratio"`
}

// DefaultVerificationParams returns the stock verification tunables.
func DefaultVerificationParams() VerificationParams {
	return VerificationParams{
		MinOverall:       0.7,
		NaturalnessFloor: 0.6,
		FlowDisruption:   0.3,
		RequirementRatio: 0.6,
	}
}

// Split is the division of a settlement between creator and platform.
type Split struct {
	CreatorShare int64
	PlatformFee  int64
}

// SplitPayout divides payout by share; rounding dust goes to the platform so
// the parts always sum to payout.
func SplitPayout(payout int64, share float64) Split {
	creator := int64(math.Floor(float64(payout)*share + 1e-9))
	if creator > payout {
		creator = payout
	}
	if creator < 0 {
		creator = 0
	}
	return Split{CreatorShare: creator, PlatformFee: payout - creator}
}
