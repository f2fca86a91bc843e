package invoke

import (
	"fmt"
	"strings"
	"time"
)

// Strategy selects how the delay between attempts grows.
type Strategy string

const (
	Exponential Strategy = "exponential"
	Linear      Strategy = "linear"
	Fixed       Strategy = "fixed"
)

// ParseStrategy maps configuration text to a Strategy. Unknown values fall
// back to Exponential.
func ParseStrategy(s string) Strategy {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case Linear:
		return Linear
	case Fixed:
		return Fixed
	default:
		return Exponential
	}
}

// RetryPolicy bounds how often and how patiently a call is retried.
type RetryPolicy struct {
	// MaxAttempts is the total number of calls made before giving up.
	MaxAttempts int
	BaseDelay   time.Duration
	Strategy    Strategy
	// Timeout bounds every single attempt. Zero leaves the caller's context
	// deadline in charge.
	Timeout time.Duration
}

// DefaultRetryPolicy returns three exponential attempts starting at 500ms.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   500 * time.Millisecond,
		Strategy:    Exponential,
		Timeout:     30 * time.Second,
	}
}

// Delay returns the pause after the given zero-based attempt:
// exponential base*2^attempt, linear base*(attempt+1), fixed base.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	switch p.Strategy {
	case Linear:
		return p.BaseDelay * time.Duration(attempt+1)
	case Fixed:
		return p.BaseDelay
	default:
		if attempt > 30 {
			attempt = 30
		}
		return p.BaseDelay * time.Duration(1<<uint(attempt))
	}
}

// Validate rejects policies that could never make a call.
func (p RetryPolicy) Validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("retry policy: max attempts must be at least 1, got %d", p.MaxAttempts)
	}
	if p.BaseDelay < 0 {
		return fmt.Errorf("retry policy: negative base delay %s", p.BaseDelay)
	}
	return nil
}
