package invoke

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"castads/internal/core/domain"
	"castads/internal/core/port"
)

// Result carries either a value or the classified failure that prevented it.
type Result[T any] struct {
	Value    T
	Err      *domain.AIServiceError
	Attempts int
}

// OK reports whether the call produced a value.
func (r Result[T]) OK() bool { return r.Err == nil }

// Unwrap converts the result into the usual (value, error) pair.
func (r Result[T]) Unwrap() (T, error) {
	if r.Err != nil {
		return r.Value, r.Err
	}
	return r.Value, nil
}

// Request is one prompt addressed to the generative collaborator.
type Request struct {
	Service domain.ServiceKind
	Prompt  string
}

// Sleeper pauses for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Invoker wraps a TextGenerator with input validation, per-attempt timeouts
// and bounded retries.
type Invoker struct {
	gen    port.TextGenerator
	policy RetryPolicy
	logger *slog.Logger
	sleep  Sleeper
}

// Option customises an Invoker.
type Option func(*Invoker)

// WithSleeper replaces the timer based sleep, mainly for tests.
func WithSleeper(s Sleeper) Option {
	return func(i *Invoker) { i.sleep = s }
}

// New builds an Invoker. A policy with fewer than one attempt is raised to one.
func New(gen port.TextGenerator, policy RetryPolicy, logger *slog.Logger, opts ...Option) *Invoker {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	i := &Invoker{gen: gen, policy: policy, logger: logger, sleep: sleepCtx}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Model returns the identifier of the model behind the invoker.
func (i *Invoker) Model() string {
	if i == nil || i.gen == nil {
		return ""
	}
	return i.gen.Model()
}

// Policy returns the retry policy in force.
func (i *Invoker) Policy() RetryPolicy { return i.policy }

// Generate sends the prompt and returns the raw text.
func (i *Invoker) Generate(ctx context.Context, req Request) Result[string] {
	return Call(ctx, i, req, func(s string) (string, error) { return s, nil })
}

// Call sends the prompt and parses the reply. Transport failures are retried
// per policy; a parse failure is final and reported as INVALID_RESPONSE.
func Call[T any](ctx context.Context, i *Invoker, req Request, parse func(string) (T, error)) Result[T] {
	if err := validate(i, req); err != nil {
		return Result[T]{Err: err}
	}

	var last *domain.AIServiceError
	attempts := 0
	for attempt := 0; attempt < i.policy.MaxAttempts; attempt++ {
		attempts++
		text, err := i.attempt(ctx, req.Prompt)
		if err == nil {
			v, perr := parse(text)
			if perr != nil {
				return Result[T]{Attempts: attempts, Err: &domain.AIServiceError{
					Service: req.Service,
					Code:    domain.CodeInvalidResponse,
					Message: "response failed validation",
					Err:     perr,
				}}
			}
			return Result[T]{Value: v, Attempts: attempts}
		}

		if cerr := ctx.Err(); cerr != nil {
			return Result[T]{Attempts: attempts, Err: contextError(req.Service, cerr)}
		}
		last = classify(req.Service, err)
		if !last.Retryable {
			return Result[T]{Attempts: attempts, Err: last}
		}
		if attempt == i.policy.MaxAttempts-1 {
			break
		}

		delay := i.policy.Delay(attempt)
		i.logger.Debug("ai call failed, retrying",
			slog.String("service", string(req.Service)),
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
			slog.Any("error", err))
		if serr := i.sleep(ctx, delay); serr != nil {
			return Result[T]{Attempts: attempts, Err: contextError(req.Service, serr)}
		}
	}

	return Result[T]{Attempts: attempts, Err: &domain.AIServiceError{
		Service:   req.Service,
		Code:      domain.CodeMaxRetriesExceeded,
		Message:   fmt.Sprintf("gave up after %d attempts", attempts),
		Retryable: false,
		Err:       last,
	}}
}

func (i *Invoker) attempt(ctx context.Context, prompt string) (string, error) {
	if i.policy.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.policy.Timeout)
		defer cancel()
	}
	text, err := i.gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", &domain.AIServiceError{
			Code:      domain.CodeInvalidResponse,
			Message:   "empty response",
			Retryable: true,
		}
	}
	return text, nil
}

func validate(i *Invoker, req Request) *domain.AIServiceError {
	var missing []string
	if i == nil || i.gen == nil {
		missing = append(missing, "generator")
	}
	if strings.TrimSpace(string(req.Service)) == "" {
		missing = append(missing, "service")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		missing = append(missing, "prompt")
	}
	if len(missing) == 0 {
		return nil
	}
	return &domain.AIServiceError{
		Service: req.Service,
		Code:    domain.CodeInvalidInput,
		Message: "missing required field: " + strings.Join(missing, ", "),
	}
}

func classify(service domain.ServiceKind, err error) *domain.AIServiceError {
	var aiErr *domain.AIServiceError
	if errors.As(err, &aiErr) {
		out := *aiErr
		if out.Service == "" {
			out.Service = service
		}
		return &out
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &domain.AIServiceError{Service: service, Code: domain.CodeTimeout, Message: "attempt timed out", Retryable: true, Err: err}
	case errors.Is(err, context.Canceled):
		return &domain.AIServiceError{Service: service, Code: domain.CodeCancelled, Message: "call cancelled", Err: err}
	default:
		return &domain.AIServiceError{Service: service, Code: domain.CodeCallFailed, Message: "call failed", Retryable: true, Err: err}
	}
}

func contextError(service domain.ServiceKind, err error) *domain.AIServiceError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.AIServiceError{Service: service, Code: domain.CodeTimeout, Message: "request deadline exceeded", Err: err}
	}
	return &domain.AIServiceError{Service: service, Code: domain.CodeCancelled, Message: "request cancelled", Err: err}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
