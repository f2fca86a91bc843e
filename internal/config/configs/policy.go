package configs

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"castads/internal/core/domain"
)

// Policy holds the business tunables. They are read from an optional YAML
// file; keys missing from the file keep their defaults.
type Policy struct {
	Matching     domain.MatchingParams     `yaml:"matching"`
	Payout       domain.PayoutParams       `yaml:"payout"`
	Fraud        domain.FraudParams        `yaml:"fraud"`
	Verification domain.VerificationParams `yaml:"verification"`
	// RejectedRetention is how long rejected placements are kept before the
	// cleanup sweep removes them.
	RejectedRetention time.Duration `yaml:"rejected_retention"`
}

// DefaultPolicy returns the stock tunables.
func DefaultPolicy() Policy {
	return Policy{
		Matching:          domain.DefaultMatchingParams(),
		Payout:            domain.DefaultPayoutParams(),
		Fraud:             domain.DefaultFraudParams(),
		Verification:      domain.DefaultVerificationParams(),
		RejectedRetention: 30 * 24 * time.Hour,
	}
}

// LoadPolicy overlays the YAML file at path on the defaults. An empty path
// returns the defaults.
func LoadPolicy(path string) (Policy, error) {
	p := DefaultPolicy()
	if path == "" {
		return p, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy file: %w", err)
	}
	if err = yaml.Unmarshal(raw, &p); err != nil {
		return Policy{}, fmt.Errorf("parse policy file: %w", err)
	}
	if err = p.Validate(); err != nil {
		return Policy{}, fmt.Errorf("policy file %s: %w", path, err)
	}
	return p, nil
}

// Validate rejects tunables the engines cannot work with.
func (p Policy) Validate() error {
	var errs []error
	w := p.Matching.Weights
	if sum := w.Audience + w.Relevance + w.BrandFit + w.Quality; math.Abs(sum-1) > 1e-6 {
		errs = append(errs, fmt.Errorf("matching weights sum to %.3f, want 1", sum))
	}
	for name, v := range map[string]float64{
		"matching threshold":   p.Matching.Threshold,
		"creator share":        p.Payout.CreatorShare,
		"verification minimum": p.Verification.MinOverall,
	} {
		if !domain.InUnit(v) {
			errs = append(errs, fmt.Errorf("%s %.3f outside [0,1]", name, v))
		}
	}
	if p.Payout.MinExposures < 1 {
		errs = append(errs, fmt.Errorf("min payout exposures must be positive, got %d", p.Payout.MinExposures))
	}
	if p.Fraud.Floor < 0 || p.Fraud.PerHour < 0 {
		errs = append(errs, errors.New("fraud ceiling must not be negative"))
	}
	if p.RejectedRetention <= 0 {
		errs = append(errs, errors.New("rejected retention must be positive"))
	}
	return errors.Join(errs...)
}
