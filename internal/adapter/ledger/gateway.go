package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"castads/internal/core/domain"
	"castads/internal/core/port"
)

// Gateway talks JSON to a settlement service that holds the signing key.
type Gateway struct {
	base   *url.URL
	client *http.Client
}

var _ port.Ledger = (*Gateway)(nil)

// NewGateway returns a client for the service at baseURL.
func NewGateway(baseURL string, timeout time.Duration) (*Gateway, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: ledger url %q", domain.ErrInvalidInput, baseURL)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Gateway{base: u, client: &http.Client{Timeout: timeout}}, nil
}

type pairRequest struct {
	CampaignID string `json:"campaign_id"`
	OwnerID    string `json:"owner_id"`
	Exposures  int64  `json:"exposures,omitempty"`
}

type verifyResponse struct {
	TxRef string `json:"tx_ref"`
}

type settleResponse struct {
	CreatorShare int64  `json:"creator_share"`
	PlatformFee  int64  `json:"platform_fee"`
	TxRef        string `json:"tx_ref"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

type campaignResponse struct {
	CampaignID string `json:"campaign_id"`
	Budget     int64  `json:"budget"`
	Spent      int64  `json:"spent"`
	Active     bool   `json:"active"`
}

type ownerResponse struct {
	OwnerID     string `json:"owner_id"`
	Wallet      string `json:"wallet"`
	TotalEarned int64  `json:"total_earned"`
}

type placementResponse struct {
	CampaignID   string `json:"campaign_id"`
	OwnerID      string `json:"owner_id"`
	Verified     bool   `json:"verified"`
	SettledViews int64  `json:"settled_views"`
	TotalPaid    int64  `json:"total_paid"`
}

type exposuresBody struct {
	Events []domain.ExposureEvent `json:"events"`
}

func (g *Gateway) VerifyPlacement(ctx context.Context, campaignID, ownerID string) (string, error) {
	var resp verifyResponse
	if err := g.do(ctx, http.MethodPost, "/placements/verify", pairRequest{CampaignID: campaignID, OwnerID: ownerID}, &resp); err != nil {
		return "", err
	}
	if resp.TxRef == "" {
		return "", &domain.LedgerError{Code: domain.LedgerTransactionFailed, Message: "verification returned no tx ref"}
	}
	return resp.TxRef, nil
}

func (g *Gateway) SettleExposure(ctx context.Context, campaignID, ownerID string, exposures int64) (port.SettlementResult, error) {
	var resp settleResponse
	req := pairRequest{CampaignID: campaignID, OwnerID: ownerID, Exposures: exposures}
	if err := g.do(ctx, http.MethodPost, "/settlements", req, &resp); err != nil {
		return port.SettlementResult{}, err
	}
	return port.SettlementResult(resp), nil
}

func (g *Gateway) CampaignState(ctx context.Context, campaignID string) (port.CampaignState, error) {
	var resp campaignResponse
	if err := g.do(ctx, http.MethodGet, "/campaigns/"+url.PathEscape(campaignID), nil, &resp); err != nil {
		return port.CampaignState{}, err
	}
	return port.CampaignState(resp), nil
}

func (g *Gateway) OwnerState(ctx context.Context, ownerID string) (port.OwnerState, error) {
	var resp ownerResponse
	if err := g.do(ctx, http.MethodGet, "/owners/"+url.PathEscape(ownerID), nil, &resp); err != nil {
		return port.OwnerState{}, err
	}
	return port.OwnerState(resp), nil
}

func (g *Gateway) PlacementState(ctx context.Context, campaignID, ownerID string) (port.PlacementState, error) {
	var resp placementResponse
	path := "/campaigns/" + url.PathEscape(campaignID) + "/owners/" + url.PathEscape(ownerID)
	if err := g.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return port.PlacementState{}, err
	}
	return port.PlacementState(resp), nil
}

func (g *Gateway) ValidateExposureAuthenticity(ctx context.Context, events []domain.ExposureEvent) ([]domain.ExposureEvent, error) {
	var resp exposuresBody
	if err := g.do(ctx, http.MethodPost, "/exposures/validate", exposuresBody{Events: events}, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

func (g *Gateway) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode ledger request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.base.String()+path, body)
	if err != nil {
		return fmt.Errorf("build ledger request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return &domain.LedgerError{Code: domain.LedgerUnavailable, Message: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return statusError(resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.LedgerError{Code: domain.LedgerTransactionFailed, Message: "decode ledger response", Err: err}
	}
	return nil
}

func statusError(status int, msg string) error {
	switch {
	case status == http.StatusPaymentRequired || status == http.StatusConflict:
		return &domain.LedgerError{Code: domain.LedgerInsufficientBudget, Message: msg}
	case status >= 500:
		return &domain.LedgerError{Code: domain.LedgerUnavailable, Message: fmt.Sprintf("status %d: %s", status, msg)}
	default:
		return &domain.LedgerError{Code: domain.LedgerTransactionFailed, Message: fmt.Sprintf("status %d: %s", status, msg)}
	}
}
