package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/leadscout/internal/catalog"
	"github.com/jonesrussell/leadscout/internal/database"
	"github.com/jonesrussell/leadscout/internal/domain"
	"github.com/jonesrussell/leadscout/internal/logger"
)

type fakeLeadReader struct {
	leads      []*domain.Lead
	lastFilter database.LeadFilter
}

func (f *fakeLeadReader) List(_ context.Context, filter database.LeadFilter) ([]*domain.Lead, error) {
	f.lastFilter = filter
	return f.leads, nil
}

func (f *fakeLeadReader) GetByUsername(_ context.Context, platform domain.Platform, username string) (*domain.Lead, error) {
	for _, lead := range f.leads {
		if lead.Platform == platform && lead.Username == username {
			return lead, nil
		}
	}
	return nil, database.ErrLeadNotFound
}

type fakeRejectionManager struct {
	records []*domain.RejectionRecord
	deleted []string
}

func (f *fakeRejectionManager) List(context.Context, int, int) ([]*domain.RejectionRecord, error) {
	return f.records, nil
}

func (f *fakeRejectionManager) Delete(_ context.Context, platform domain.Platform, username string) error {
	for _, rec := range f.records {
		if rec.Platform == platform && rec.Username == username {
			f.deleted = append(f.deleted, username)
			return nil
		}
	}
	return database.ErrRejectionNotFound
}

type fakeRunReader struct {
	runs []*domain.Run
}

func (f *fakeRunReader) List(context.Context, int, int) ([]*domain.Run, error) {
	return f.runs, nil
}

func (f *fakeRunReader) Get(_ context.Context, id string) (*domain.Run, error) {
	for _, run := range f.runs {
		if run.ID == id {
			return run, nil
		}
	}
	return nil, database.ErrRunNotFound
}

type fakeSweeper struct {
	calls int
	err   error
}

func (f *fakeSweeper) StartSweep() error {
	f.calls++
	return f.err
}

func testRouter(t *testing.T, leads *fakeLeadReader, rejections *fakeRejectionManager, runs *fakeRunReader, sweeper Sweeper) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New(logger.Config{Level: "error"})
	require.NoError(t, err)

	h := NewHandler(leads, rejections, runs, sweeper, log)
	return NewRouter(h, catalog.Default(), log)
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, http.NoBody)
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router := testRouter(t, &fakeLeadReader{}, &fakeRejectionManager{}, &fakeRunReader{}, nil)

	w := doRequest(router, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListLeadsAppliesFilter(t *testing.T) {
	leads := &fakeLeadReader{leads: []*domain.Lead{
		{Platform: domain.PlatformInstagram, Username: "la_foodie", Score: 90},
	}}
	router := testRouter(t, leads, &fakeRejectionManager{}, &fakeRunReader{}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/leads?platform=instagram&min_score=60&with_email=true&limit=10")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, domain.PlatformInstagram, leads.lastFilter.Platform)
	assert.Equal(t, 60, leads.lastFilter.MinScore)
	assert.True(t, leads.lastFilter.WithEmail)
	assert.Equal(t, 10, leads.lastFilter.Limit)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
}

func TestGetLead(t *testing.T) {
	leads := &fakeLeadReader{leads: []*domain.Lead{
		{Platform: domain.PlatformInstagram, Username: "la_foodie", Score: 90},
	}}
	router := testRouter(t, leads, &fakeRejectionManager{}, &fakeRunReader{}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/leads/instagram/la_foodie")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/leads/instagram/ghost")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRejection(t *testing.T) {
	rejections := &fakeRejectionManager{records: []*domain.RejectionRecord{
		{Platform: domain.PlatformInstagram, Username: "gym_guy"},
	}}
	router := testRouter(t, &fakeLeadReader{}, rejections, &fakeRunReader{}, nil)

	w := doRequest(router, http.MethodDelete, "/api/v1/rejections/instagram/gym_guy")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"gym_guy"}, rejections.deleted)

	w = doRequest(router, http.MethodDelete, "/api/v1/rejections/instagram/ghost")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRun(t *testing.T) {
	runs := &fakeRunReader{runs: []*domain.Run{
		{ID: "run-1", Status: domain.RunStatusCompleted, Qualified: 3},
	}}
	router := testRouter(t, &fakeLeadReader{}, &fakeRejectionManager{}, runs, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/runs/run-1")
	require.Equal(t, http.StatusOK, w.Code)

	var run domain.Run
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	assert.Equal(t, 3, run.Qualified)

	w = doRequest(router, http.MethodGet, "/api/v1/runs/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStartRun(t *testing.T) {
	sweeper := &fakeSweeper{}
	router := testRouter(t, &fakeLeadReader{}, &fakeRejectionManager{}, &fakeRunReader{}, sweeper)

	w := doRequest(router, http.MethodPost, "/api/v1/runs")
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, 1, sweeper.calls)
}

func TestStartRunConflict(t *testing.T) {
	sweeper := &fakeSweeper{err: errors.New("sweep already running")}
	router := testRouter(t, &fakeLeadReader{}, &fakeRejectionManager{}, &fakeRunReader{}, sweeper)

	w := doRequest(router, http.MethodPost, "/api/v1/runs")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStartRunWithoutPipeline(t *testing.T) {
	router := testRouter(t, &fakeLeadReader{}, &fakeRejectionManager{}, &fakeRunReader{}, nil)

	w := doRequest(router, http.MethodPost, "/api/v1/runs")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCatalogEndpoint(t *testing.T) {
	router := testRouter(t, &fakeLeadReader{}, &fakeRejectionManager{}, &fakeRunReader{}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/catalog")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Version string   `json:"version"`
		Groups  []string `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "5.0", body.Version)
	assert.Contains(t, body.Groups, "location_strong")
}
