package engine

import (
	"sort"
	"strconv"
	"strings"

	"streacs/internal/models"
)

// MarketIndex answers (country, year) lookups over the classification dataset.
// Missing years are "no data"; nothing is carried over from neighbouring years.
type MarketIndex struct {
	countries map[string]*countryMarkets
	names     []string

	// Skipped counts year entries dropped for an unparseable year or unknown code.
	Skipped int
}

type countryMarkets struct {
	region string
	codes  map[int]models.MarketCode
	years  []int // ascending years that carry a code
}

func BuildMarketIndex(raw map[string]models.MarketRecord) *MarketIndex {
	idx := &MarketIndex{
		countries: make(map[string]*countryMarkets, len(raw)),
		names:     make([]string, 0, len(raw)),
	}

	for name, rec := range raw {
		if name == "" {
			continue
		}
		cm := &countryMarkets{
			region: rec.Region,
			codes:  make(map[int]models.MarketCode, len(rec.Years)),
		}
		for key, code := range rec.Years {
			year, err := strconv.Atoi(strings.TrimSpace(key))
			if err != nil || !code.Valid() {
				idx.Skipped++
				continue
			}
			cm.codes[year] = code
			cm.years = append(cm.years, year)
		}
		sort.Ints(cm.years)
		idx.countries[name] = cm
		idx.names = append(idx.names, name)
	}
	sort.Strings(idx.names)

	return idx
}

// CodeFor returns the code for (country, year), or CodeNone.
func (x *MarketIndex) CodeFor(country string, year int) models.MarketCode {
	if x == nil {
		return models.CodeNone
	}
	cm, ok := x.countries[country]
	if !ok {
		return models.CodeNone
	}
	return cm.codes[year]
}

// Countries returns every country key, sorted. The slice is a copy.
func (x *MarketIndex) Countries() []string {
	if x == nil {
		return []string{}
	}
	out := make([]string, len(x.names))
	copy(out, x.names)
	return out
}

func (x *MarketIndex) Has(country string) bool {
	if x == nil {
		return false
	}
	_, ok := x.countries[country]
	return ok
}

func (x *MarketIndex) Region(country string) string {
	if x == nil {
		return ""
	}
	if cm, ok := x.countries[country]; ok {
		return cm.region
	}
	return ""
}

// Years returns the ascending years with a classification for country.
func (x *MarketIndex) Years(country string) []int {
	if x == nil {
		return []int{}
	}
	cm, ok := x.countries[country]
	if !ok {
		return []int{}
	}
	out := make([]int, len(cm.years))
	copy(out, cm.years)
	return out
}
