package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"factory_floor/background"
	"factory_floor/catalog"
	"factory_floor/dashboard"
	"factory_floor/simulation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSimulator struct {
	scenario string
}

func (s *stubSimulator) FetchSimulation(ctx context.Context, title, desc, scenario string) simulation.Response {
	s.scenario = scenario
	r := simulation.Fallback()
	r.SystemStatus = simulation.StatusOptimal
	r.AIAnalysis = "analysis for " + title
	return r
}

type memStore map[string]string

func (m memStore) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m memStore) TrySet(key, value string) bool {
	m[key] = value
	return true
}

func newTestServer(t *testing.T, c *catalog.Catalog, bg *background.Cache) (*httptest.Server, *stubSimulator) {
	t.Helper()
	sims := &stubSimulator{}
	ts := httptest.NewServer(New(c, sims, bg).Routes())
	t.Cleanup(ts.Close)
	return ts, sims
}

func do(t *testing.T, ts *httptest.Server, method, path string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, nil)
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t, catalog.Default(), nil)

	var body map[string]string
	assert.Equal(t, http.StatusOK, do(t, ts, http.MethodGet, "/healthz", &body))
	assert.Equal(t, "ok", body["status"])
}

func TestCatalogIncludesResolvedIcons(t *testing.T) {
	ts, _ := newTestServer(t, catalog.Default(), nil)

	var body struct {
		Zones []struct {
			ID    string `json:"id"`
			Icon  string `json:"icon"`
			Glyph string `json:"glyph"`
		} `json:"zones"`
		Areas []catalog.Area     `json:"areas"`
		Steps []catalog.TourStep `json:"tourSteps"`
	}
	require.Equal(t, http.StatusOK, do(t, ts, http.MethodGet, "/api/catalog", &body))

	assert.Len(t, body.Zones, 10)
	assert.Len(t, body.Areas, 5)
	assert.Len(t, body.Steps, 5)
	for _, z := range body.Zones {
		assert.NotEmpty(t, z.Icon, z.ID)
		assert.NotEmpty(t, z.Glyph, z.ID)
	}
}

func TestTourFlow(t *testing.T) {
	ts, sims := newTestServer(t, catalog.Default(), nil)

	var v dashboard.View
	require.Equal(t, http.StatusOK, do(t, ts, http.MethodPost, "/api/tour/start", &v))
	assert.True(t, v.TourActive)
	require.NotNil(t, v.StepIndex)
	assert.Equal(t, 0, *v.StepIndex)
	require.NotNil(t, v.PanelStep)

	var out dashboard.Outcome
	require.Equal(t, http.StatusOK, do(t, ts, http.MethodPost, "/api/scenario", &out))
	assert.True(t, out.Applied)
	assert.Equal(t, simulation.StatusOptimal, out.Report.SystemStatus)
	assert.Equal(t, v.PanelStep.Impact, sims.scenario)

	require.Equal(t, http.StatusOK, do(t, ts, http.MethodPost, "/api/tour/next", &v))
	assert.Equal(t, 1, *v.StepIndex)
	assert.Nil(t, v.Report, "moving on clears the previous report")

	require.Equal(t, http.StatusOK, do(t, ts, http.MethodPost, "/api/tour/exit", &v))
	assert.False(t, v.TourActive)
	assert.Nil(t, v.StepIndex)
	assert.Nil(t, v.Zone)
}

func TestEmptyTourConflicts(t *testing.T) {
	c := catalog.New([]catalog.Zone{{ID: "a", Title: "A"}}, nil, nil)
	ts, _ := newTestServer(t, c, nil)

	var body map[string]string
	assert.Equal(t, http.StatusConflict, do(t, ts, http.MethodPost, "/api/tour/start", &body))
	assert.NotEmpty(t, body["error"])
}

func TestSelectZone(t *testing.T) {
	ts, sims := newTestServer(t, catalog.Default(), nil)

	var body map[string]string
	assert.Equal(t, http.StatusNotFound, do(t, ts, http.MethodPost, "/api/zones/nope/select", &body))

	var v dashboard.View
	require.Equal(t, http.StatusOK, do(t, ts, http.MethodPost, "/api/zones/watch-tower/select", &v))
	require.NotNil(t, v.Zone)
	assert.Equal(t, "watch-tower", v.Zone.ID)
	assert.Nil(t, v.PanelStep)

	var out dashboard.Outcome
	require.Equal(t, http.StatusOK, do(t, ts, http.MethodPost, "/api/scenario", &out))
	assert.Empty(t, sims.scenario, "plain zones run without a scenario")

	var current dashboard.View
	require.Equal(t, http.StatusOK, do(t, ts, http.MethodGet, "/api/dashboard", &current))
	require.NotNil(t, current.Report)
	assert.Contains(t, current.Report.AIAnalysis, "Supply Chain Watch Tower")

	var closed dashboard.View
	require.Equal(t, http.StatusOK, do(t, ts, http.MethodPost, "/api/panel/close", &closed))
	assert.Nil(t, closed.Zone)
	assert.Nil(t, closed.Report)
}

func TestViewSendsEmptyPanelFieldsAsNull(t *testing.T) {
	ts, _ := newTestServer(t, catalog.Default(), nil)

	require.Equal(t, http.StatusOK, do(t, ts, http.MethodPost, "/api/zones/watch-tower/select", nil))
	require.Equal(t, http.StatusOK, do(t, ts, http.MethodPost, "/api/scenario", nil))

	var body map[string]json.RawMessage
	require.Equal(t, http.StatusOK, do(t, ts, http.MethodPost, "/api/panel/close", &body))
	for _, key := range []string{"zone", "report", "tourStep", "panelStep", "stepIndex"} {
		raw, ok := body[key]
		require.True(t, ok, key)
		assert.Equal(t, "null", string(raw), key)
	}
}

func TestScenarioWithoutZone(t *testing.T) {
	ts, _ := newTestServer(t, catalog.Default(), nil)

	var body map[string]string
	assert.Equal(t, http.StatusConflict, do(t, ts, http.MethodPost, "/api/scenario", &body))
}

func TestBackground(t *testing.T) {
	ts, _ := newTestServer(t, catalog.Default(), nil)
	assert.Equal(t, http.StatusNoContent, do(t, ts, http.MethodGet, "/api/background", nil))

	cache := background.NewCache(memStore{}, nil, "")
	ts, _ = newTestServer(t, catalog.Default(), cache)
	assert.Equal(t, http.StatusNoContent, do(t, ts, http.MethodGet, "/api/background", nil))

	stored := memStore{background.StorageKey: "data:image/png;base64,aGVsbG8="}
	ts, _ = newTestServer(t, catalog.Default(), background.NewCache(stored, nil, ""))

	var body map[string]string
	require.Equal(t, http.StatusOK, do(t, ts, http.MethodGet, "/api/background", &body))
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", body["image"])
}

func TestRequestIDHeaderIsAccepted(t *testing.T) {
	ts, _ := newTestServer(t, catalog.Default(), nil)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "abc-123")
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
