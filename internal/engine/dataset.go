package engine

import "streacs/internal/models"

// RawData is every source document as decoded, before indexing.
type RawData struct {
	Markets    map[string]models.MarketRecord
	Regulators map[string]models.RegulatorRecord
	IPP        map[string]models.IPPRecord
	Unbundling map[string]models.UnbundlingRecord
	VRE        []models.VREPoint
	WorldMap   *Topology // nil when the boundary file could not be loaded
}

// Dataset is the process-wide data context. It is built once and never
// mutated afterwards, so it is safe to share between goroutines. A nil
// *Dataset answers every query with "no data".
type Dataset struct {
	markets    *MarketIndex
	vre        *ColumnStore
	regulators map[string]models.RegulatorRecord
	ipp        map[string]models.IPPRecord
	unbundling map[string]models.UnbundlingRecord
	worldMap   *Topology
	names      *Normalizer
}

// NewDataset indexes raw. names may be nil, in which case DefaultNormalizer is used.
func NewDataset(raw RawData, names *Normalizer) *Dataset {
	if names == nil {
		names = DefaultNormalizer()
	}
	return &Dataset{
		markets:    BuildMarketIndex(raw.Markets),
		vre:        BuildColumnStore(raw.VRE),
		regulators: raw.Regulators,
		ipp:        raw.IPP,
		unbundling: raw.Unbundling,
		worldMap:   raw.WorldMap,
		names:      names,
	}
}

// MarketCode returns the classification for (country, year), or CodeNone.
func (d *Dataset) MarketCode(country string, year int) models.MarketCode {
	if d == nil {
		return models.CodeNone
	}
	return d.markets.CodeFor(country, year)
}

// Countries returns every classified country, sorted and deduplicated.
func (d *Dataset) Countries() []string {
	if d == nil {
		return []string{}
	}
	return d.markets.Countries()
}

// VREData returns the renewable-share series for country between from and to
// inclusive. A bound <= 0 is open.
func (d *Dataset) VREData(country string, from, to int) []models.VREPoint {
	if d == nil {
		return []models.VREPoint{}
	}
	return d.vre.Series(country, from, to)
}

// VREAt returns the renewable share for one (country, year).
func (d *Dataset) VREAt(country string, year int) (float64, bool) {
	if d == nil {
		return 0, false
	}
	return d.vre.At(country, year)
}

func (d *Dataset) HasMarketData(country string) bool {
	return d != nil && d.markets.Has(country)
}

func (d *Dataset) Region(country string) string {
	if d == nil {
		return ""
	}
	return d.markets.Region(country)
}

func (d *Dataset) Regulator(country string) (models.RegulatorRecord, bool) {
	if d == nil {
		return models.RegulatorRecord{}, false
	}
	r, ok := d.regulators[country]
	return r, ok
}

// HasIndependentRegulator is false when there is no record or the record's
// establishment year is the "None" sentinel.
func (d *Dataset) HasIndependentRegulator(country string) bool {
	r, ok := d.Regulator(country)
	return ok && r.YearEstablished != models.YearNone
}

func (d *Dataset) IPP(country string) (models.IPPRecord, bool) {
	if d == nil {
		return models.IPPRecord{}, false
	}
	r, ok := d.ipp[country]
	return r, ok
}

func (d *Dataset) Unbundling(country string) (models.UnbundlingRecord, bool) {
	if d == nil {
		return models.UnbundlingRecord{}, false
	}
	r, ok := d.unbundling[country]
	return r, ok
}

// Normalize maps a boundary-file label to a canonical country name.
// See Normalizer.Normalize.
func (d *Dataset) Normalize(label string) (string, bool) {
	if d == nil {
		return DefaultNormalizer().Normalize(label)
	}
	return d.names.Normalize(label)
}

// MapLoaded reports whether boundary data is available.
func (d *Dataset) MapLoaded() bool {
	return d != nil && d.worldMap != nil
}

// Status resolves (country, year) into its code and presentation values.
func (d *Dataset) Status(country string, year int) models.MarketStatus {
	code := d.MarketCode(country, year)
	return models.MarketStatus{
		Country: country,
		Year:    year,
		Code:    code,
		Label:   MarketLabel(code),
		Color:   MarketColor(code),
		Score:   LiberalizationScore(code),
	}
}

// Summary counts what was indexed.
type Summary struct {
	Countries    int `json:"countries"`
	SkippedYears int `json:"skippedYears"`
	VRERows      int `json:"vreRows"`
	VRECountries int `json:"vreCountries"`
	Regulators   int `json:"regulators"`
	IPP          int `json:"ipp"`
	Unbundling   int `json:"unbundling"`
	MapFeatures  int `json:"mapFeatures"`
}

func (d *Dataset) Summary() Summary {
	if d == nil {
		return Summary{}
	}
	s := Summary{
		Countries:  len(d.markets.Countries()),
		VRERows:    d.vre.Len(),
		Regulators: len(d.regulators),
		IPP:        len(d.ipp),
		Unbundling: len(d.unbundling),
	}
	if d.markets != nil {
		s.SkippedYears = d.markets.Skipped
	}
	if d.vre != nil {
		s.VRECountries = len(d.vre.CountryDict)
	}
	if d.worldMap != nil {
		s.MapFeatures = len(d.worldMap.Objects.Countries.Geometries)
	}
	return s
}
