package engine

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streacs/internal/models"
)

func sampleDataset() *Dataset {
	markets := fallbackMarketStructure()
	markets["Spain"] = models.MarketRecord{Region: "ECA", Years: map[string]models.MarketCode{"2024": models.Code4b}}

	regulators := fallbackRegulators()
	regulators["Georgia"] = models.RegulatorRecord{Name: "GNERC", YearEstablished: models.YearNone}

	var topo Topology
	doc := `{"type":"Topology","objects":{"countries":{"type":"GeometryCollection","geometries":[
		{"type":"Polygon","properties":{"name":"Armenia"}},
		{"type":"Polygon","properties":{"name":"Antarctica"}},
		{"type":"Polygon","properties":{"name":"Czechia"}},
		{"type":"MultiPolygon","properties":{"name":"Germany"}}
	]}}}`
	if err := json.Unmarshal([]byte(doc), &topo); err != nil {
		panic(err)
	}

	return NewDataset(RawData{
		Markets:    markets,
		Regulators: regulators,
		IPP:        fallbackIPP(),
		Unbundling: fallbackUnbundling(),
		VRE: []models.VREPoint{
			{Entity: "Armenia", Year: 2015, Share: 0.01},
			{Entity: "Armenia", Year: 2018, Share: 0.07},
			{Entity: "Armenia", Year: 2023, Share: 7.8},
			{Entity: "Armenia", Year: 2024, Share: 10.1},
			{Entity: "Germany", Year: 2024, Share: 45.3},
		},
		WorldMap: &topo,
	}, nil)
}

func TestDataset_QuerySurface(t *testing.T) {
	d := sampleDataset()

	assert.Equal(t, models.Code3a, d.MarketCode("Armenia", 2023))
	assert.Equal(t, models.Code2b, d.MarketCode("Armenia", 2002))
	assert.Equal(t, models.CodeNone, d.MarketCode("Armenia", 1900))
	assert.Equal(t, []string{"Argentina", "Armenia", "Germany", "Spain"}, d.Countries())

	series := d.VREData("Armenia", 2018, 2023)
	require.Len(t, series, 2)
	assert.Equal(t, 2018, series[0].Year)
	assert.Equal(t, 2023, series[1].Year)
	assert.Empty(t, d.VREData("Atlantis", 0, 0))

	status := d.Status("Atlantis", 2024)
	assert.Equal(t, NoDataColor, status.Color)
	assert.Equal(t, NoDataLabel, status.Label)
	assert.Equal(t, 0, status.Score)
}

func TestDataset_Nil(t *testing.T) {
	var d *Dataset
	assert.Equal(t, models.CodeNone, d.MarketCode("Armenia", 2024))
	assert.Empty(t, d.Countries())
	assert.Empty(t, d.VREData("Armenia", 0, 0))
	assert.Empty(t, d.MapFeatures(2024))
	assert.Empty(t, d.Evolution("Armenia"))
	assert.False(t, d.HasIndependentRegulator("Armenia"))
	assert.Equal(t, Summary{}, d.Summary())
}

func TestDataset_Regulators(t *testing.T) {
	d := sampleDataset()

	assert.True(t, d.HasIndependentRegulator("Armenia"))
	assert.False(t, d.HasIndependentRegulator("Georgia"))
	assert.False(t, d.HasIndependentRegulator("Atlantis"))
}

func TestDataset_Evolution(t *testing.T) {
	steps := sampleDataset().Evolution("Armenia")
	require.Len(t, steps, 3)
	assert.Equal(t, models.EvolutionStep{Year: 1989, Code: models.Code1a, Label: "VIU State-owned", Color: "#d73027"}, steps[0])
	assert.Equal(t, 2002, steps[1].Year)
	assert.Equal(t, models.Code2b, steps[1].Code)
	assert.Equal(t, 2023, steps[2].Year)
}

func TestDataset_Profile(t *testing.T) {
	d := sampleDataset()

	p := d.Profile("Armenia")
	assert.Equal(t, "ECA", p.Region)
	assert.True(t, p.Regulator.Independent)
	require.NotNil(t, p.IPP)
	assert.Equal(t, "Gas", p.IPP.TypeLabel)
	require.NotNil(t, p.Unbundling)
	assert.Len(t, p.VRE, 4)

	empty := d.Profile("Atlantis")
	assert.False(t, empty.Regulator.Independent)
	assert.Nil(t, empty.IPP)
	assert.Nil(t, empty.Unbundling)
	assert.Empty(t, empty.Evolution)
	assert.Empty(t, empty.VRE)
}

func TestDataset_SuggestedCountries(t *testing.T) {
	got := sampleDataset().SuggestedCountries()
	assert.Equal(t, []string{"Armenia", "Germany", "Spain", "Argentina"}, got)
}

func TestDataset_Compare(t *testing.T) {
	rows := sampleDataset().Compare([]string{"Armenia", "Spain", "Atlantis"}, 2024)
	require.Len(t, rows, 3)

	assert.Equal(t, 5, rows[0].Score)
	assert.Equal(t, 10.1, rows[0].VREShare)
	assert.Equal(t, 9, rows[1].Score)
	assert.Equal(t, 0.0, rows[1].VREShare)
	assert.Equal(t, models.CodeNone, rows[2].Code)
}

func TestDataset_Combined(t *testing.T) {
	points := sampleDataset().Combined("Armenia", 2018)
	require.Len(t, points, 3)
	assert.Equal(t, models.CombinedPoint{Year: 2018, Share: 0.07, Score: 4}, points[0])
	assert.Equal(t, 5, points[2].Score)
}

func TestDataset_MapFeatures(t *testing.T) {
	features := sampleDataset().MapFeatures(2024)
	require.Len(t, features, 4)

	assert.Equal(t, models.Code3a, features[0].Code)
	assert.Equal(t, "Armenia\n2024: Wholesale - Bilateral", features[0].Tooltip)

	antarctica := features[1]
	assert.True(t, antarctica.Excluded)
	assert.Empty(t, antarctica.Canonical)
	assert.Equal(t, NoDataColor, antarctica.Color)
	assert.Equal(t, "Antarctica\nNo data available", antarctica.Tooltip)

	// Aliased but unclassified: looked up under its canonical name, finds nothing.
	czechia := features[2]
	assert.False(t, czechia.Excluded)
	assert.Equal(t, "Czech Republic", czechia.Canonical)
	assert.Equal(t, models.CodeNone, czechia.Code)
	assert.Equal(t, NoDataColor, czechia.Color)

	assert.Equal(t, models.Code3b, features[3].Code)
}

func TestDataset_Summary(t *testing.T) {
	s := sampleDataset().Summary()
	assert.Equal(t, 4, s.Countries)
	assert.Equal(t, 5, s.VRERows)
	assert.Equal(t, 2, s.VRECountries)
	assert.Equal(t, 4, s.MapFeatures)
}
