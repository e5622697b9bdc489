package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streacs/internal/engine"
	"streacs/internal/models"
)

type fakeSource struct {
	state engine.State
	data  *engine.Dataset
}

func (f *fakeSource) State() engine.State { return f.state }

func (f *fakeSource) Dataset() (*engine.Dataset, bool) {
	return f.data, f.state == engine.StateReady
}

func (f *fakeSource) Report() engine.Report {
	return engine.Report{engine.SourceMarketStructure: engine.OriginFallback}
}

func readySource() *fakeSource {
	raw := engine.RawData{
		Markets: map[string]models.MarketRecord{
			"Armenia": {Region: "ECA", Years: map[string]models.MarketCode{
				"2020": models.Code2a, "2023": models.Code3a, "2024": models.Code3a,
			}},
			"Spain": {Region: "ECA", Years: map[string]models.MarketCode{"2024": models.Code4b}},
			"Chile": {Region: "LAC", Years: map[string]models.MarketCode{"2024": models.Code3b}},
		},
		VRE: []models.VREPoint{
			{Entity: "Armenia", Year: 2023, Share: 7.8},
			{Entity: "Armenia", Year: 2024, Share: 10.1},
		},
	}
	return &fakeSource{state: engine.StateReady, data: engine.NewDataset(raw, nil)}
}

func newServer(src DataSource) *echo.Echo {
	e := echo.New()
	NewHandler(src).RegisterRoutes(e)
	return e
}

func get(t *testing.T, e *echo.Echo, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestDataRoutesWhileLoading(t *testing.T) {
	e := newServer(&fakeSource{state: engine.StateLoading})

	for _, target := range []string{
		"/api/countries",
		"/api/markets/Armenia/2024",
		"/api/vre/Armenia",
		"/api/map/2024",
		"/api/compare?countries=Armenia,Spain",
	} {
		rec := get(t, e, target)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
		assert.JSONEq(t, `{"status":"loading"}`, rec.Body.String(), target)
	}

	// Static routes do not depend on the load.
	assert.Equal(t, http.StatusOK, get(t, e, "/api/codes").Code)
	assert.Equal(t, http.StatusOK, get(t, e, "/api/scenarios").Code)
}

func TestGetStatus(t *testing.T) {
	rec := get(t, newServer(&fakeSource{state: engine.StateLoading}), "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decode(t, rec, &body)
	assert.Equal(t, "loading", body["status"])
	assert.NotContains(t, body, "summary")

	rec = get(t, newServer(readySource()), "/api/status")
	decode(t, rec, &body)
	assert.Equal(t, "ready", body["status"])
	assert.Equal(t, map[string]interface{}{"marketStructure": "fallback"}, body["sources"])
	summary := body["summary"].(map[string]interface{})
	assert.EqualValues(t, 3, summary["countries"])
}

func TestGetCountries(t *testing.T) {
	e := newServer(readySource())

	var page struct {
		Data   []string `json:"data"`
		Total  int      `json:"total"`
		Limit  int      `json:"limit"`
		Offset int      `json:"offset"`
	}
	decode(t, get(t, e, "/api/countries"), &page)
	assert.Equal(t, []string{"Armenia", "Chile", "Spain"}, page.Data)
	assert.Equal(t, 3, page.Total)

	decode(t, get(t, e, "/api/countries?limit=1&offset=1"), &page)
	assert.Equal(t, []string{"Chile"}, page.Data)

	decode(t, get(t, e, "/api/countries?offset=10"), &page)
	assert.Empty(t, page.Data)

	decode(t, get(t, e, "/api/countries?order=suggested"), &page)
	assert.Equal(t, []string{"Armenia", "Spain", "Chile"}, page.Data)
}

func TestGetMarket(t *testing.T) {
	e := newServer(readySource())

	var status models.MarketStatus
	decode(t, get(t, e, "/api/markets/Armenia/2024"), &status)
	assert.Equal(t, models.Code3a, status.Code)
	assert.Equal(t, 5, status.Score)
	assert.Equal(t, engine.MarketColor(models.Code3a), status.Color)

	decode(t, get(t, e, "/api/markets/Armenia/1990"), &status)
	assert.Equal(t, models.CodeNone, status.Code)
	assert.Equal(t, engine.NoDataColor, status.Color)
	assert.Equal(t, 0, status.Score)

	assert.Equal(t, http.StatusBadRequest, get(t, e, "/api/markets/Armenia/latest").Code)
}

func TestGetEvolution(t *testing.T) {
	var steps []models.EvolutionStep
	decode(t, get(t, newServer(readySource()), "/api/markets/Armenia/evolution"), &steps)
	require.Len(t, steps, 2)
	assert.Equal(t, 2020, steps[0].Year)
	assert.Equal(t, 2023, steps[1].Year)
}

func TestGetVRE(t *testing.T) {
	e := newServer(readySource())

	var points []models.VREPoint
	decode(t, get(t, e, "/api/vre/Armenia"), &points)
	assert.Len(t, points, 2)

	decode(t, get(t, e, "/api/vre/Armenia?from=2024"), &points)
	require.Len(t, points, 1)
	assert.Equal(t, 10.1, points[0].Share)

	rec := get(t, e, "/api/vre/Atlantis")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	var combined []models.CombinedPoint
	decode(t, get(t, e, "/api/vre/Armenia/combined?from=2023"), &combined)
	require.Len(t, combined, 2)
	assert.Equal(t, 5, combined[1].Score)
}

func TestGetComparison(t *testing.T) {
	e := newServer(readySource())

	var rows []models.ComparisonRow
	decode(t, get(t, e, "/api/compare?countries=Armenia,%20Spain&year=2024"), &rows)
	require.Len(t, rows, 2)
	assert.Equal(t, "Armenia", rows[0].Country)
	assert.Equal(t, 10.1, rows[0].VREShare)
	assert.Equal(t, models.Code4b, rows[1].Code)
	assert.Equal(t, 0.0, rows[1].VREShare)

	assert.Equal(t, http.StatusBadRequest, get(t, e, "/api/compare?countries=Armenia").Code)
	assert.Equal(t, http.StatusBadRequest,
		get(t, e, "/api/compare?countries=A,B,C,D,E,F,G,H,I,J,K").Code)
}

func TestGetMap_NoBoundaryData(t *testing.T) {
	var body struct {
		Year     int                 `json:"year"`
		Loaded   bool                `json:"loaded"`
		Features []models.MapFeature `json:"features"`
	}
	decode(t, get(t, newServer(readySource()), "/api/map/2024"), &body)
	assert.Equal(t, 2024, body.Year)
	assert.False(t, body.Loaded)
	assert.Empty(t, body.Features)
}

func TestGetScenarios(t *testing.T) {
	e := newServer(&fakeSource{})

	var presets []models.ScenarioSeries
	decode(t, get(t, e, "/api/scenarios"), &presets)
	require.Len(t, presets, 2)
	assert.Len(t, presets[0].Points, 16)

	var custom []models.ScenarioSeries
	decode(t, get(t, e, "/api/scenarios?current=0&target1=50&target2=100&year=2020&t1=2025&t2=2030"), &custom)
	require.Len(t, custom, 1)
	points := custom[0].Points
	require.Len(t, points, 10)
	assert.Equal(t, models.ScenarioPoint{Year: 2021, Value: 10}, points[0])
	assert.Equal(t, models.ScenarioPoint{Year: 2025, Value: 50}, points[4])
	assert.Equal(t, models.ScenarioPoint{Year: 2030, Value: 100}, points[9])

	assert.Equal(t, http.StatusBadRequest, get(t, e, "/api/scenarios?current=1&year=2030&t1=2025").Code)
}

func TestGetScenarios_WindowTooLong(t *testing.T) {
	e := newServer(&fakeSource{})

	rec := get(t, e, "/api/scenarios?current=1&target1=2&target2=3&year=0&t1=1&t2=2000000")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, e, "/api/scenarios?current=1&year=-9000000000000000000&t1=0&t2=9000000000000000000")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, e, "/api/scenarios?current=1&target1=2&target2=3&year=2000&t1=2050&t2=2101")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var custom []models.ScenarioSeries
	decode(t, get(t, e, "/api/scenarios?current=1&target1=2&target2=3&year=2000&t1=2050&t2=2100"), &custom)
	require.Len(t, custom, 1)
	assert.Len(t, custom[0].Points, engine.MaxProjectionYears)
}

func TestStaticRoutes(t *testing.T) {
	e := newServer(&fakeSource{})

	var codes []map[string]interface{}
	decode(t, get(t, e, "/api/codes"), &codes)
	require.Len(t, codes, len(models.AllMarketCodes()))
	assert.Equal(t, "1a", codes[0]["code"])

	var metrics models.ValidationMetrics
	decode(t, get(t, e, "/api/scenarios/validation"), &metrics)
	assert.InDelta(t, 0.253, metrics.RMSE, 1e-3)
	assert.InDelta(t, 0.24, metrics.MAE, 1e-9)

	var prices models.PriceScenario
	decode(t, get(t, e, "/api/scenarios/prices"), &prices)
	assert.Len(t, prices.Series["optimistic"], len(prices.Years))

	rec := get(t, e, "/api/milestones")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"startYear":1989`)
}
