package configs

import (
	"time"

	"castads/internal/core/invoke"
)

// AI configures the generative-text collaborator and the retry budget every
// call runs under.
type AI struct {
	APIKey  string `env:"API_KEY"`
	BaseURL string `env:"BASE_URL"`
	Model   string `env:"MODEL" envDefault:"gpt-4o-mini"`
	// VerificationModel judges merged content. Empty reuses Model.
	VerificationModel string        `env:"VERIFICATION_MODEL"`
	Temperature       float64       `env:"TEMPERATURE" envDefault:"0.7"`
	MaxRetries        int           `env:"MAX_RETRIES" envDefault:"3"`
	BaseDelay         time.Duration `env:"BASE_DELAY" envDefault:"500ms"`
	Backoff           string        `env:"BACKOFF" envDefault:"exponential"`
	Timeout           time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// RetryPolicy converts the section into the invoker's policy. MaxRetries is
// the total attempt count.
func (c AI) RetryPolicy() invoke.RetryPolicy {
	return invoke.RetryPolicy{
		MaxAttempts: c.MaxRetries,
		BaseDelay:   c.BaseDelay,
		Strategy:    invoke.ParseStrategy(c.Backoff),
		Timeout:     c.Timeout,
	}
}

// JudgeModel returns the model used for verification.
func (c AI) JudgeModel() string {
	if c.VerificationModel != "" {
		return c.VerificationModel
	}
	return c.Model
}
