package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"streacs/internal/engine"
	"streacs/internal/models"
)

// DataSource is what the handlers need from the loader.
type DataSource interface {
	State() engine.State
	Dataset() (*engine.Dataset, bool)
	Report() engine.Report
}

type Handler struct {
	source DataSource
}

func NewHandler(source DataSource) *Handler {
	return &Handler{source: source}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/status", h.GetStatus)
	api.GET("/codes", h.GetCodes)
	api.GET("/milestones", h.GetMilestones)
	api.GET("/scenarios", h.GetScenarios)
	api.GET("/scenarios/prices", h.GetPriceScenarios)
	api.GET("/scenarios/validation", h.GetValidation)

	// Data routes answer 503 until the background load has finished.
	api.GET("/countries", h.GetCountries, h.requireReady)
	api.GET("/countries/:country/profile", h.GetProfile, h.requireReady)
	api.GET("/markets/:country/evolution", h.GetEvolution, h.requireReady)
	api.GET("/markets/:country/:year", h.GetMarket, h.requireReady)
	api.GET("/vre/:country", h.GetVRE, h.requireReady)
	api.GET("/vre/:country/combined", h.GetCombined, h.requireReady)
	api.GET("/compare", h.GetComparison, h.requireReady)
	api.GET("/map/:year", h.GetMap, h.requireReady)
}

const datasetKey = "dataset"

func (h *Handler) requireReady(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		d, ok := h.source.Dataset()
		if !ok {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": h.source.State().String()})
		}
		c.Set(datasetKey, d)
		return next(c)
	}
}

func dataset(c echo.Context) *engine.Dataset {
	d, _ := c.Get(datasetKey).(*engine.Dataset)
	return d
}

// --- HANDLERS ---
func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// optionalInt reads an integer query parameter; absent or malformed yields def.
func optionalInt(c echo.Context, name string, def int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return def
	}
	return v
}

func optionalFloat(c echo.Context, name string, def float64) float64 {
	v, err := strconv.ParseFloat(c.QueryParam(name), 64)
	if err != nil {
		return def
	}
	return v
}

func pathYear(c echo.Context) (int, error) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "year must be an integer")
	}
	return year, nil
}

func (h *Handler) GetStatus(c echo.Context) error {
	resp := map[string]interface{}{
		"status":  h.source.State().String(),
		"sources": h.source.Report(),
	}
	if d, ok := h.source.Dataset(); ok {
		resp["summary"] = d.Summary()
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetCodes(c echo.Context) error {
	return c.JSON(http.StatusOK, engine.CodeDefinitions())
}

func (h *Handler) GetMilestones(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"timeline":   map[string]int{"startYear": engine.TimelineStart, "endYear": engine.TimelineEnd},
		"milestones": engine.ArmeniaMilestones(),
	})
}

// returns the sorted country list, or the suggested order with ?order=suggested
func (h *Handler) GetCountries(c echo.Context) error {
	d := dataset(c)
	countries := d.Countries()
	if c.QueryParam("order") == "suggested" {
		countries = d.SuggestedCountries()
	}

	total := len(countries)
	limit, offset := getPaginationParams(c, total)

	if offset >= total {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"data": []string{}, "total": total, "limit": limit, "offset": offset,
		})
	}

	end := offset + limit
	if end > total {
		end = total
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":   countries[offset:end],
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) GetMarket(c echo.Context) error {
	year, err := pathYear(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataset(c).Status(c.Param("country"), year))
}

func (h *Handler) GetEvolution(c echo.Context) error {
	return c.JSON(http.StatusOK, dataset(c).Evolution(c.Param("country")))
}

func (h *Handler) GetProfile(c echo.Context) error {
	return c.JSON(http.StatusOK, dataset(c).Profile(c.Param("country")))
}

func (h *Handler) GetVRE(c echo.Context) error {
	from := optionalInt(c, "from", 0)
	to := optionalInt(c, "to", 0)
	return c.JSON(http.StatusOK, dataset(c).VREData(c.Param("country"), from, to))
}

func (h *Handler) GetCombined(c echo.Context) error {
	from := optionalInt(c, "from", 0)
	return c.JSON(http.StatusOK, dataset(c).Combined(c.Param("country"), from))
}

func (h *Handler) GetComparison(c echo.Context) error {
	var countries []string
	for _, name := range strings.Split(c.QueryParam("countries"), ",") {
		if name = strings.TrimSpace(name); name != "" {
			countries = append(countries, name)
		}
	}
	if len(countries) < 2 {
		return echo.NewHTTPError(http.StatusBadRequest, "select at least 2 countries to compare")
	}
	if len(countries) > engine.MaxCompared {
		return echo.NewHTTPError(http.StatusBadRequest, "at most "+strconv.Itoa(engine.MaxCompared)+" countries can be compared")
	}

	year := optionalInt(c, "year", engine.TimelineEnd)
	return c.JSON(http.StatusOK, dataset(c).Compare(countries, year))
}

func (h *Handler) GetMap(c echo.Context) error {
	year, err := pathYear(c)
	if err != nil {
		return err
	}
	d := dataset(c)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"year":     year,
		"loaded":   d.MapLoaded(),
		"features": d.MapFeatures(year),
	})
}

// projects the preset scenarios, or a custom one when ?current is given
func (h *Handler) GetScenarios(c echo.Context) error {
	if c.QueryParam("current") == "" {
		return c.JSON(http.StatusOK, engine.Presets())
	}

	base := engine.ConservativeScenario
	s := engine.Scenario{
		Current:     optionalFloat(c, "current", base.Current),
		TargetT1:    optionalFloat(c, "target1", base.TargetT1),
		TargetT2:    optionalFloat(c, "target2", base.TargetT2),
		CurrentYear: optionalInt(c, "year", base.CurrentYear),
		T1:          optionalInt(c, "t1", base.T1),
		T2:          optionalInt(c, "t2", base.T2),
	}
	if s.T1 < s.CurrentYear || s.T2 < s.T1 {
		return echo.NewHTTPError(http.StatusBadRequest, "checkpoints must satisfy year <= t1 <= t2")
	}
	if span := s.T2 - s.CurrentYear; span < 0 || span > engine.MaxProjectionYears {
		return echo.NewHTTPError(http.StatusBadRequest,
			"projection window may span at most "+strconv.Itoa(engine.MaxProjectionYears)+" years")
	}
	return c.JSON(http.StatusOK, []models.ScenarioSeries{{Name: "Custom Scenario", Points: s.Projection()}})
}

func (h *Handler) GetPriceScenarios(c echo.Context) error {
	return c.JSON(http.StatusOK, engine.PriceScenarios())
}

func (h *Handler) GetValidation(c echo.Context) error {
	return c.JSON(http.StatusOK, engine.Validation())
}
