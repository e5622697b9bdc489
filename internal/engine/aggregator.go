package engine

import (
	"fmt"

	"streacs/internal/models"
)

// MaxCompared caps how many countries one comparison may include.
const MaxCompared = 10

// priorityCountries lead the suggested country order when present.
var priorityCountries = []string{
	"Armenia", "Georgia",
	"Poland", "Romania",
	"Germany", "Spain", "Denmark",
	"Argentina", "Chile", "Australia",
}

// Evolution lists the years where a country's classification changes,
// starting with its first classified year.
func (d *Dataset) Evolution(country string) []models.EvolutionStep {
	steps := make([]models.EvolutionStep, 0)
	if d == nil {
		return steps
	}

	prev := models.CodeNone
	for i, year := range d.markets.Years(country) {
		code := d.markets.CodeFor(country, year)
		if i > 0 && code == prev {
			continue
		}
		steps = append(steps, models.EvolutionStep{
			Year:  year,
			Code:  code,
			Label: MarketLabel(code),
			Color: MarketColor(code),
		})
		prev = code
	}
	return steps
}

// Profile gathers everything known about one country.
func (d *Dataset) Profile(country string) models.CountryProfile {
	p := models.CountryProfile{
		Name:      country,
		Region:    d.Region(country),
		Evolution: d.Evolution(country),
		VRE:       d.VREData(country, 0, 0),
	}

	if r, ok := d.Regulator(country); ok {
		p.Regulator.Record = &r
		p.Regulator.Independent = r.YearEstablished != models.YearNone
	}
	if u, ok := d.Unbundling(country); ok {
		p.Unbundling = &u
	}
	if ipp, ok := d.IPP(country); ok {
		p.IPP = &models.IPPInfo{IPPRecord: ipp, TypeLabel: ipp.TypeOperational.Label()}
	}
	return p
}

// SuggestedCountries puts the priority countries that exist first, then the
// rest in sorted order.
func (d *Dataset) SuggestedCountries() []string {
	all := d.Countries()
	seen := make(map[string]bool, len(priorityCountries))
	out := make([]string, 0, len(all))

	for _, c := range priorityCountries {
		if d.HasMarketData(c) {
			out = append(out, c)
			seen[c] = true
		}
	}
	for _, c := range all {
		if !seen[c] {
			out = append(out, c)
		}
	}
	return out
}

// Compare resolves each country's market status and renewable share in year.
// A missing share is reported as 0.
func (d *Dataset) Compare(countries []string, year int) []models.ComparisonRow {
	rows := make([]models.ComparisonRow, 0, len(countries))
	for _, c := range countries {
		share, _ := d.VREAt(c, year)
		rows = append(rows, models.ComparisonRow{
			MarketStatus: d.Status(c, year),
			VREShare:     share,
		})
	}
	return rows
}

// Combined pairs each renewable point from `from` onward with that year's
// liberalization score.
func (d *Dataset) Combined(country string, from int) []models.CombinedPoint {
	series := d.VREData(country, from, 0)
	out := make([]models.CombinedPoint, 0, len(series))
	for _, p := range series {
		out = append(out, models.CombinedPoint{
			Year:  p.Year,
			Share: p.Share,
			Score: LiberalizationScore(d.MarketCode(country, p.Year)),
		})
	}
	return out
}

// MapFeature colours one boundary-file label for year. Excluded territories
// never reach the market lookup.
func (d *Dataset) MapFeature(label string, year int) models.MapFeature {
	canonical, ok := d.Normalize(label)
	if !ok {
		return models.MapFeature{
			Name:     label,
			Excluded: true,
			Code:     models.CodeNone,
			Color:    NoDataColor,
			Tooltip:  label + "\nNo data available",
		}
	}

	code := d.MarketCode(canonical, year)
	return models.MapFeature{
		Name:      label,
		Canonical: canonical,
		Code:      code,
		Color:     MarketColor(code),
		Tooltip:   fmt.Sprintf("%s\n%d: %s", label, year, MarketLabel(code)),
	}
}

// MapFeatures colours every feature of the boundary file for year. Empty when
// no boundary data was loaded.
func (d *Dataset) MapFeatures(year int) []models.MapFeature {
	var labels []string
	if d != nil {
		labels = d.worldMap.CountryLabels()
	}
	out := make([]models.MapFeature, 0, len(labels))
	for _, label := range labels {
		out = append(out, d.MapFeature(label, year))
	}
	return out
}
