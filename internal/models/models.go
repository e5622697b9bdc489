package models

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// MarketCode is one of the ten market-structure classifications, or CodeNone.
type MarketCode uint8

const (
	CodeNone MarketCode = iota
	Code1a
	Code1b
	Code2a
	Code2b
	Code3a
	Code3b
	Code3c
	Code3d
	Code4a
	Code4b
)

var marketCodeNames = [...]string{"none", "1a", "1b", "2a", "2b", "3a", "3b", "3c", "3d", "4a", "4b"}

// AllMarketCodes lists the known codes in ascending order (CodeNone excluded).
func AllMarketCodes() []MarketCode {
	return []MarketCode{Code1a, Code1b, Code2a, Code2b, Code3a, Code3b, Code3c, Code3d, Code4a, Code4b}
}

// ParseMarketCode maps "3a", " 3A " etc. to a code. Anything unrecognised is CodeNone.
func ParseMarketCode(s string) MarketCode {
	s = strings.ToLower(strings.TrimSpace(s))
	for i := int(Code1a); i < len(marketCodeNames); i++ {
		if marketCodeNames[i] == s {
			return MarketCode(i)
		}
	}
	return CodeNone
}

func (c MarketCode) String() string {
	if int(c) < len(marketCodeNames) {
		return marketCodeNames[c]
	}
	return marketCodeNames[CodeNone]
}

// Valid reports whether c is one of the ten known codes.
func (c MarketCode) Valid() bool {
	return c >= Code1a && c <= Code4b
}

func (c MarketCode) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(c.String())), nil
}

func (c *MarketCode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		// numbers, null and other shapes carry no code
		*c = CodeNone
		return nil
	}
	*c = ParseMarketCode(s)
	return nil
}

// Tier is the liberalization stage a code belongs to.
type Tier uint8

const (
	TierNone Tier = iota
	TierVerticallyIntegrated
	TierSingleBuyer
	TierWholesale
	TierRetail
)

func (t Tier) String() string {
	switch t {
	case TierVerticallyIntegrated:
		return "Vertically Integrated Utility (VIU)"
	case TierSingleBuyer:
		return "Single Buyer Model"
	case TierWholesale:
		return "Wholesale Competition"
	case TierRetail:
		return "Retail Competition"
	default:
		return "No data"
	}
}

func (t Tier) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

// Year is a calendar year as found in the source files, which mix 1997,
// "1997", "None", "" and null. Zero means unknown; YearNone is the explicit
// "None" sentinel, matched case-sensitively.
type Year int

const YearNone Year = -1

func (y *Year) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*y = 0
		return nil
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	switch {
	case s == "":
		*y = 0
	case s == "None":
		*y = YearNone
	default:
		if n, err := strconv.Atoi(s); err == nil {
			*y = Year(n)
		} else if f, err := strconv.ParseFloat(s, 64); err == nil {
			*y = Year(int(f))
		} else {
			*y = 0
		}
	}
	return nil
}

func (y Year) MarshalJSON() ([]byte, error) {
	switch {
	case y == YearNone:
		return []byte(`"None"`), nil
	case y <= 0:
		return []byte("null"), nil
	default:
		return []byte(strconv.Itoa(int(y))), nil
	}
}

// Known reports whether y holds an actual year.
func (y Year) Known() bool { return y > 0 }

// GenerationType is the technology of a country's first operational IPP.
type GenerationType uint8

const (
	GenNone GenerationType = iota
	GenHydro
	GenWind
	GenSolar
	GenGas
	GenCoal
	GenOil
	GenBiomass
	GenGeothermal
	GenBattery
	GenUnknown GenerationType = 255
)

var generationLabels = [...]string{
	"None", "Hydro", "Wind", "Solar", "Gas", "Coal", "Oil",
	"Biomass/Biogas/Waste", "Geothermal", "Battery",
}

func (g GenerationType) Label() string {
	if int(g) < len(generationLabels) {
		return generationLabels[g]
	}
	return "Unknown"
}

func (g *GenerationType) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(string(b)), `"`))
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n >= len(generationLabels) {
		*g = GenUnknown
		return nil
	}
	*g = GenerationType(n)
	return nil
}

func (g GenerationType) MarshalJSON() ([]byte, error) {
	if g == GenUnknown {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(strconv.Itoa(int(g)))), nil
}

// --- Source documents ---

type MarketRecord struct {
	Region string                `json:"region"`
	Years  map[string]MarketCode `json:"years"`
}

type RegulatorRecord struct {
	Name            string `json:"name"`
	YearEstablished Year   `json:"yearEstablished"`
	Website         string `json:"website,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

type IPPRecord struct {
	YearFirstIPP        Year           `json:"yearFirstIPP"`
	YearFirstPrivateIPP Year           `json:"yearFirstPrivateIPP"`
	TypeOperational     GenerationType `json:"typeOperational"`
	Notes               string         `json:"notes,omitempty"`
}

type UnbundlingRecord struct {
	Transmission string `json:"transmission"`
	Distribution string `json:"distribution"`
	Notes        string `json:"notes,omitempty"`
}

// VREPoint is one row of the solar-and-wind share dataset.
type VREPoint struct {
	Entity string  `json:"Entity"`
	Code   string  `json:"Code,omitempty"`
	Year   int     `json:"Year"`
	Share  float64 `json:"Solar and wind - % electricity"`
}

// --- Derived views ---

type CodeDefinition struct {
	Code        MarketCode `json:"code"`
	Type        Tier       `json:"type"`
	Label       string     `json:"label"`
	Description string     `json:"description"`
}

type MarketStatus struct {
	Country string     `json:"country"`
	Year    int        `json:"year"`
	Code    MarketCode `json:"code"`
	Label   string     `json:"label"`
	Color   string     `json:"color"`
	Score   int        `json:"score"`
}

type EvolutionStep struct {
	Year  int        `json:"year"`
	Code  MarketCode `json:"code"`
	Label string     `json:"label"`
	Color string     `json:"color"`
}

type RegulatorInfo struct {
	Independent bool             `json:"independent"`
	Record      *RegulatorRecord `json:"record,omitempty"`
}

type IPPInfo struct {
	IPPRecord
	TypeLabel string `json:"typeLabel"`
}

type CountryProfile struct {
	Name       string            `json:"name"`
	Region     string            `json:"region,omitempty"`
	Evolution  []EvolutionStep   `json:"evolution"`
	Regulator  RegulatorInfo     `json:"regulator"`
	Unbundling *UnbundlingRecord `json:"unbundling,omitempty"`
	IPP        *IPPInfo          `json:"ipp,omitempty"`
	VRE        []VREPoint        `json:"vre"`
}

type ComparisonRow struct {
	MarketStatus
	VREShare float64 `json:"vreShare"`
}

type CombinedPoint struct {
	Year  int     `json:"year"`
	Share float64 `json:"share"`
	Score int     `json:"score"`
}

type MapFeature struct {
	Name      string     `json:"name"`
	Canonical string     `json:"canonical,omitempty"`
	Excluded  bool       `json:"excluded"`
	Code      MarketCode `json:"code"`
	Color     string     `json:"color"`
	Tooltip   string     `json:"tooltip"`
}

type ScenarioPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

type ScenarioSeries struct {
	Name   string          `json:"name"`
	Points []ScenarioPoint `json:"points"`
}

type PriceScenario struct {
	Years  []int                `json:"years"`
	Series map[string][]float64 `json:"series"`
}

type ValidationMetrics struct {
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
}

type Milestone struct {
	Year  int    `json:"year"`
	Event string `json:"event"`
}
