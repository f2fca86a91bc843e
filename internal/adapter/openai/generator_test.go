package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"castads/internal/core/domain"
)

func server(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		var req map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-test", req["model"])
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerateReturnsFirstChoice(t *testing.T) {
	srv := server(t, http.StatusOK, `{"id":"cmpl-1","object":"chat.completion","created":1,"model":"gpt-test",
		"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"0.82"}}]}`)
	g, err := NewGenerator(Config{APIKey: "test-key", BaseURL: srv.URL + "/", Model: "gpt-test"})
	require.NoError(t, err)

	text, err := g.Generate(context.Background(), "rate this")
	require.NoError(t, err)
	assert.Equal(t, "0.82", text)
	assert.Equal(t, "gpt-test", g.Model())
}

func TestGenerateMapsStatusCodes(t *testing.T) {
	tests := []struct {
		status    int
		code      string
		retryable bool
	}{
		{status: http.StatusTooManyRequests, code: domain.CodeRateLimited, retryable: true},
		{status: http.StatusBadGateway, code: domain.CodeUpstream, retryable: true},
		{status: http.StatusUnauthorized, code: domain.CodeRejected, retryable: false},
	}
	for _, tt := range tests {
		srv := server(t, tt.status, `{"error":{"message":"nope","type":"x","code":"y"}}`)
		g, err := NewGenerator(Config{APIKey: "test-key", BaseURL: srv.URL + "/", Model: "gpt-test"})
		require.NoError(t, err)

		_, err = g.Generate(context.Background(), "rate this")
		var aiErr *domain.AIServiceError
		require.ErrorAs(t, err, &aiErr)
		assert.Equal(t, tt.code, aiErr.Code)
		assert.Equal(t, tt.retryable, aiErr.Retryable)
	}
}

func TestNewGeneratorValidates(t *testing.T) {
	_, err := NewGenerator(Config{Model: "m"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = NewGenerator(Config{APIKey: "k"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
