// Package openai implements port.TextGenerator on the OpenAI chat completions
// API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"castads/internal/core/domain"
	"castads/internal/core/port"
)

// Config selects the endpoint and model.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
}

// Generator sends each prompt as a single user message. Retries are left to
// the invocation layer, so the client's own retries are disabled.
type Generator struct {
	client openai.Client
	model  string
	temp   float64
}

var _ port.TextGenerator = (*Generator)(nil)

// NewGenerator returns a generator for cfg.
func NewGenerator(cfg Config) (*Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: openai api key", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("%w: openai model", domain.ErrInvalidInput)
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Generator{client: openai.NewClient(opts...), model: cfg.Model, temp: cfg.Temperature}, nil
}

// Model returns the configured model name.
func (g *Generator) Model() string { return g.model }

// Generate returns the first choice's text. Provider failures are mapped to
// *domain.AIServiceError so the invoker can decide whether to retry.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		Model:    openai.ChatModel(g.model),
	}
	if g.temp > 0 {
		params.Temperature = openai.Float(g.temp)
	}

	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", mapError(err)
	}
	if len(resp.Choices) == 0 {
		return "", &domain.AIServiceError{Code: domain.CodeInvalidResponse, Message: "no choices in completion", Retryable: true}
	}
	return resp.Choices[0].Message.Content, nil
}

func mapError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return &domain.AIServiceError{Code: domain.CodeCallFailed, Message: "openai request failed", Retryable: true, Err: err}
	}
	return classifyStatus(apiErr.StatusCode, err)
}

func classifyStatus(status int, err error) *domain.AIServiceError {
	switch {
	case status == http.StatusTooManyRequests:
		return &domain.AIServiceError{Code: domain.CodeRateLimited, Message: "openai rate limited", Retryable: true, Err: err}
	case status == http.StatusRequestTimeout:
		return &domain.AIServiceError{Code: domain.CodeTimeout, Message: "openai request timed out", Retryable: true, Err: err}
	case status >= 500:
		return &domain.AIServiceError{Code: domain.CodeUpstream, Message: fmt.Sprintf("openai status %d", status), Retryable: true, Err: err}
	default:
		return &domain.AIServiceError{Code: domain.CodeRejected, Message: fmt.Sprintf("openai status %d", status), Err: err}
	}
}
