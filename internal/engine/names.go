package engine

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer maps boundary-file country labels onto the canonical names used
// by the market datasets.
//
// A label is in one of three states: aliased to a canonical name, explicitly
// excluded (no corresponding country, e.g. Antarctica), or absent from the
// table, in which case it passes through unchanged.
type Normalizer struct {
	aliases  map[string]string
	excluded map[string]struct{}
	folded   map[string]string // accent-folded key -> table key
}

var defaultAliases = map[string]string{
	"United States of America":     "United States",
	"USA":                          "United States",
	"Czechia":                      "Czech Republic",
	"Czech Rep.":                   "Czech Republic",
	"Bosnia and Herz.":             "Bosnia and Herzegovina",
	"Bosnia-Herzegovina":           "Bosnia and Herzegovina",
	"North Macedonia":              "Republic of North Macedonia",
	"Macedonia":                    "Republic of North Macedonia",
	"Turkey":                       "Turkiye",
	"Dem. Rep. Congo":              "Democratic Republic of the Congo",
	"Democratic Republic of Congo": "Democratic Republic of the Congo",
	"Congo":                        "Congo",
	"Republic of Congo":            "Congo",
	"Republic of the Congo":        "Congo",
	"CÃ´te d'Ivoire":               "Ivory Coast",
	"Cote d'Ivoire":                "Ivory Coast",
	"Dominican Rep.":               "Dominican Republic",
	"Eq. Guinea":                   "Equatorial Guinea",
	"Central African Rep.":         "Central African Republic",
	"S. Sudan":                     "South Sudan",
	"Solomon Is.":                  "Solomon Islands",
	"Lao PDR":                      "Laos",
	"Timor-Leste":                  "Timor Leste",
	"eSwatini":                     "Eswatini (Swaziland)",
	"W. Sahara":                    "Western Sahara",
}

var defaultExcluded = []string{"Antarctica", "Somaliland"}

// DefaultNormalizer uses the alias table for the world-atlas boundary file.
func DefaultNormalizer() *Normalizer {
	return NewNormalizer(defaultAliases, defaultExcluded)
}

func NewNormalizer(aliases map[string]string, excluded []string) *Normalizer {
	n := &Normalizer{
		aliases:  make(map[string]string, len(aliases)),
		excluded: make(map[string]struct{}, len(excluded)),
		folded:   make(map[string]string, len(aliases)+len(excluded)),
	}
	for from, to := range aliases {
		n.aliases[from] = to
		n.folded[fold(from)] = from
	}
	for _, label := range excluded {
		delete(n.aliases, label)
		n.excluded[label] = struct{}{}
		n.folded[fold(label)] = label
	}
	return n
}

// Normalize returns the canonical name for label. ok is false only when the
// label is explicitly excluded; callers must then treat the territory as
// having no data instead of looking up the raw label. Table lookups ignore
// diacritics, so an accented spelling of a listed label resolves like the
// listed one; labels absent from the table pass through verbatim.
func (n *Normalizer) Normalize(label string) (canonical string, ok bool) {
	key, found := n.key(label)
	if !found {
		return label, true
	}
	if _, ex := n.excluded[key]; ex {
		return "", false
	}
	return n.aliases[key], true
}

// Known reports whether label has an entry in the table, aliased or excluded.
func (n *Normalizer) Known(label string) bool {
	_, found := n.key(label)
	return found
}

func (n *Normalizer) key(label string) (string, bool) {
	if n == nil {
		return "", false
	}
	if _, ok := n.aliases[label]; ok {
		return label, true
	}
	if _, ok := n.excluded[label]; ok {
		return label, true
	}
	if key, ok := n.folded[fold(label)]; ok {
		return key, true
	}
	return "", false
}

// fold strips combining marks so "Côte d'Ivoire" matches "Cote d'Ivoire".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
