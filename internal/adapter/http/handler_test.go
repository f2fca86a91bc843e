package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"castads/internal/adapter/scheduler"
	"castads/internal/core/domain"
	"castads/internal/core/port"
	"castads/internal/core/port/mocks"
)

type fixture struct {
	svc    *mocks.MockAdUseCase
	sweeps *mocks.MockSweepTrigger
	ledger *mocks.MockLedger
	h      http.Handler
}

func newFixture(t *testing.T) fixture {
	f := fixture{
		svc:    mocks.NewMockAdUseCase(t),
		sweeps: mocks.NewMockSweepTrigger(t),
		ledger: mocks.NewMockLedger(t),
	}
	f.h = NewHandler(f.svc, f.sweeps, f.ledger, nil).Router()
	return f
}

func (f fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.h.ServeHTTP(rec, req)
	return rec
}

func TestGenerateEpisode(t *testing.T) {
	f := newFixture(t)
	created := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	f.svc.EXPECT().GenerateEpisode(mock.Anything, port.GenerateRequest{OwnerID: "o1", Title: "Morning brew", VerifyImmediately: true}).
		Return(&port.EpisodeResult{
			Episode:    domain.Episode{ID: "e1", OwnerID: "o1", Title: "Morning brew", HasAds: true, AdCount: 1, CreatedAt: created},
			Placements: []domain.AdPlacement{{ID: "p1", CampaignID: "c1", Status: domain.PlacementVerified, VerificationTxRef: "0xabc"}},
		}, nil)

	rec := f.do(http.MethodPost, "/api/v1/episodes", `{"owner_id":"o1","title":"Morning brew","verify_immediately":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body generateEpisodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "e1", body.Episode.ID)
	require.Len(t, body.Placements, 1)
	assert.Equal(t, domain.PlacementVerified, body.Placements[0].Status)
	assert.Equal(t, "0xabc", body.Placements[0].TxRef)
}

func TestGenerateEpisodeRejectsUnknownFields(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/api/v1/episodes", `{"owner":"o1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestErrorsStayGeneric(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		text   string
	}{
		{"invalid", fmt.Errorf("%w: title", domain.ErrInvalidInput), http.StatusBadRequest, "invalid request"},
		{"missing owner", fmt.Errorf("%w: owner o9", domain.ErrNotFound), http.StatusNotFound, "not found"},
		{"ai", &domain.AIServiceError{Service: domain.ServiceContent, Code: domain.CodeMaxRetriesExceeded}, http.StatusServiceUnavailable, "try again later"},
		{"other", errors.New("pool closed"), http.StatusInternalServerError, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.svc.EXPECT().GenerateEpisode(mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := f.do(http.MethodPost, "/api/v1/episodes", `{"owner_id":"o1","title":"t"}`)
			assert.Equal(t, tt.status, rec.Code)
			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.text, body.Error)
			assert.NotContains(t, rec.Body.String(), domain.CodeMaxRetriesExceeded)
		})
	}
}

func TestGetEpisodeMissing(t *testing.T) {
	f := newFixture(t)
	f.svc.EXPECT().GetEpisode(mock.Anything, "nope").Return(nil, nil)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/api/v1/episodes/nope", "").Code)
}

func TestTrackExposureConvertsEvents(t *testing.T) {
	f := newFixture(t)
	f.svc.EXPECT().TrackExposure(mock.Anything, "p1", mock.MatchedBy(func(evs []domain.ExposureEvent) bool {
		return len(evs) == 1 && evs[0].Kind == domain.ExposureView && evs[0].Duration == 42*time.Second
	})).Return(&port.ExposureResult{Received: 1, Accepted: 1, Applied: domain.ExposureDelta{Views: 1},
		Placement: domain.AdPlacement{ID: "p1", ViewCount: 11}}, nil)

	rec := f.do(http.MethodPost, "/api/v1/placements/p1/exposures",
		`{"events":[{"kind":"view","duration_seconds":42,"source_address":"0xabc","agent_string":"app","subject_id":"e1"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var body exposureResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Accepted)
	assert.Equal(t, int64(11), body.Placement.ViewCount)
}

func TestTrackExposureOnRejectedPlacement(t *testing.T) {
	f := newFixture(t)
	f.svc.EXPECT().TrackExposure(mock.Anything, "p1", mock.Anything).
		Return(nil, fmt.Errorf("%w: placement p1 is rejected", domain.ErrNotTrackable))
	rec := f.do(http.MethodPost, "/api/v1/placements/p1/exposures", `{"events":[{"kind":"view"}]}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestFeedback(t *testing.T) {
	f := newFixture(t)
	f.svc.EXPECT().AddFeedback(mock.Anything, "p1", domain.Feedback{UserID: "u1", Rating: 5, Comment: "fun"}).Return(nil)
	rec := f.do(http.MethodPost, "/api/v1/placements/p1/feedback", `{"user_id":"u1","rating":5,"comment":"fun"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestVariationsCount(t *testing.T) {
	f := newFixture(t)
	f.svc.EXPECT().Variations(mock.Anything, "p1", 2).Return([]domain.AdContent{{Script: "a"}, {Script: "b"}}, nil).Once()
	f.svc.EXPECT().Variations(mock.Anything, "p1", 3).Return([]domain.AdContent{{Script: "a"}}, nil).Once()

	assert.Equal(t, http.StatusOK, f.do(http.MethodPost, "/api/v1/placements/p1/variations?n=2", "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodPost, "/api/v1/placements/p1/variations", "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/api/v1/placements/p1/variations?n=x", "").Code)
}

func TestStatsOverview(t *testing.T) {
	f := newFixture(t)
	day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	f.svc.EXPECT().GetStats(mock.Anything, mock.MatchedBy(func(req port.StatsReq) bool {
		return req.CampaignID != nil && *req.CampaignID == "c1" && req.From.Equal(day)
	})).Return([]domain.CampaignDailyStats{
		{CampaignID: "c1", Day: day, Views: 10, Spend: 20},
		{CampaignID: "c1", Day: day.AddDate(0, 0, 1), Views: 5, Spend: 10},
	}, nil)

	rec := f.do(http.MethodGet, "/api/v1/stats/overview?from=2026-02-01&to=2026-02-03&campaign_id=c1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body statsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(15), body.Views)
	assert.Equal(t, int64(30), body.Spend)
	assert.Equal(t, "2026-02-02", body.Rows[1].Day)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/v1/stats/overview?from=yesterday", "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/v1/stats/overview?from=2026-02-03&to=2026-02-01", "").Code)
}

func TestRunSweep(t *testing.T) {
	f := newFixture(t)
	f.sweeps.EXPECT().RunJob(mock.Anything, "payout").Return(port.JobReport{Name: "payout", Summary: "groups=1 settled=1"}, nil)
	f.sweeps.EXPECT().RunJob(mock.Anything, "nope").Return(port.JobReport{}, scheduler.ErrUnknownJob)
	f.sweeps.EXPECT().RunJob(mock.Anything, "fraud").Return(port.JobReport{Name: "fraud", Err: errors.New("db down")}, nil)

	rec := f.do(http.MethodPost, "/api/v1/sweeps/payout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "groups=1 settled=1")
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPost, "/api/v1/sweeps/nope", "").Code)
	assert.Equal(t, http.StatusInternalServerError, f.do(http.MethodPost, "/api/v1/sweeps/fraud", "").Code)
}

func TestLedgerState(t *testing.T) {
	f := newFixture(t)
	f.ledger.EXPECT().CampaignState(mock.Anything, "c1").Return(port.CampaignState{CampaignID: "c1", Budget: 500, Spent: 200, Active: true}, nil)
	f.ledger.EXPECT().OwnerState(mock.Anything, "o1").Return(port.OwnerState{}, &domain.LedgerError{Code: domain.LedgerUnavailable})

	rec := f.do(http.MethodGet, "/api/v1/ledger/campaigns/c1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body campaignStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(300), body.Remaining)

	assert.Equal(t, http.StatusServiceUnavailable, f.do(http.MethodGet, "/api/v1/ledger/owners/o1", "").Code)
}
