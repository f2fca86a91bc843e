package ledger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"castads/internal/core/domain"
)

func gateway(t *testing.T, h http.HandlerFunc) *Gateway {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	g, err := NewGateway(srv.URL+"/", time.Second)
	require.NoError(t, err)
	return g
}

func TestGatewaySettle(t *testing.T) {
	g := gateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/settlements", r.URL.Path)
		var req pairRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, pairRequest{CampaignID: "c1", OwnerID: "o1", Exposures: 40}, req)
		_, _ = w.Write([]byte(`{"creator_share":76,"platform_fee":4,"tx_ref":"0xfeed","success":true}`))
	})

	res, err := g.SettleExposure(context.Background(), "c1", "o1", 40)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, int64(76), res.CreatorShare)
	assert.Equal(t, "0xfeed", res.TxRef)
}

func TestGatewayCampaignState(t *testing.T) {
	g := gateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/campaigns/c%201", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"campaign_id":"c 1","budget":500,"spent":120,"active":true}`))
	})

	st, err := g.CampaignState(context.Background(), "c 1")
	require.NoError(t, err)
	assert.Equal(t, int64(380), st.Remaining())
	assert.True(t, st.Active)
}

func TestGatewayStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		code   string
	}{
		{http.StatusPaymentRequired, domain.LedgerInsufficientBudget},
		{http.StatusServiceUnavailable, domain.LedgerUnavailable},
		{http.StatusBadRequest, domain.LedgerTransactionFailed},
	}
	for _, tt := range tests {
		g := gateway(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "nope", tt.status)
		})
		_, err := g.VerifyPlacement(context.Background(), "c1", "o1")
		var lerr *domain.LedgerError
		require.ErrorAs(t, err, &lerr)
		assert.Equal(t, tt.code, lerr.Code)
	}
}

func TestGatewayValidateExposure(t *testing.T) {
	g := gateway(t, func(w http.ResponseWriter, r *http.Request) {
		var body exposuresBody
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		body.Events = body.Events[:1]
		_ = json.NewEncoder(w).Encode(body)
	})

	in := []domain.ExposureEvent{
		{Kind: domain.ExposureView, SourceAddress: "0x1", Duration: time.Minute},
		{Kind: domain.ExposureClick, SourceAddress: "0x2"},
	}
	got, err := g.ValidateExposureAuthenticity(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, time.Minute, got[0].Duration)
}

func TestNewGatewayRejectsBadURL(t *testing.T) {
	_, err := NewGateway("localhost", time.Second)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
