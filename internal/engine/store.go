package engine

import (
	"math"
	"sort"

	"streacs/internal/models"
)

// ColumnStore holds the renewable-share series in Struct-of-Arrays format.
// Rows are sorted by (country, year) so every country owns one contiguous span.
type ColumnStore struct {
	// Data Columns (Flat Arrays)
	Years  []int32
	Shares []float64

	// Dictionary Encoded IDs (0..N)
	CountryIDs []int32

	// Dictionaries (ID -> String)
	CountryDict []string
	CodeDict    []string // ISO code per country ID, may be empty

	countryMap map[string]int32
	spans      []span
}

type span struct{ lo, hi int }

// BuildColumnStore encodes points into a ColumnStore. Blank entities and NaN
// shares are dropped. If a (country, year) pair repeats, the later row wins.
func BuildColumnStore(points []models.VREPoint) *ColumnStore {
	cs := &ColumnStore{countryMap: make(map[string]int32)}

	type row struct {
		cid   int32
		year  int32
		share float64
	}
	rows := make([]row, 0, len(points))

	for _, p := range points {
		if p.Entity == "" || math.IsNaN(p.Share) {
			continue
		}
		id, ok := cs.countryMap[p.Entity]
		if !ok {
			id = int32(len(cs.CountryDict))
			cs.CountryDict = append(cs.CountryDict, p.Entity)
			cs.CodeDict = append(cs.CodeDict, p.Code)
			cs.countryMap[p.Entity] = id
		}
		rows = append(rows, row{cid: id, year: int32(p.Year), share: p.Share})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].cid != rows[j].cid {
			return rows[i].cid < rows[j].cid
		}
		return rows[i].year < rows[j].year
	})

	// Collapse duplicates: the stable sort leaves the last input row at the end of each run.
	out := rows[:0]
	for i, r := range rows {
		if i+1 < len(rows) && rows[i+1].cid == r.cid && rows[i+1].year == r.year {
			continue
		}
		out = append(out, r)
	}

	n := len(out)
	cs.Years = make([]int32, n)
	cs.Shares = make([]float64, n)
	cs.CountryIDs = make([]int32, n)
	cs.spans = make([]span, len(cs.CountryDict))

	for i, r := range out {
		cs.Years[i] = r.year
		cs.Shares[i] = r.share
		cs.CountryIDs[i] = r.cid
		if i == 0 || out[i-1].cid != r.cid {
			cs.spans[r.cid].lo = i
		}
		cs.spans[r.cid].hi = i + 1
	}

	return cs
}

// Len is the number of stored rows.
func (cs *ColumnStore) Len() int {
	if cs == nil {
		return 0
	}
	return len(cs.Years)
}

func (cs *ColumnStore) lookup(country string) (span, bool) {
	if cs == nil {
		return span{}, false
	}
	id, ok := cs.countryMap[country]
	if !ok {
		return span{}, false
	}
	return cs.spans[id], true
}

// Series returns the points for country with from <= year <= to, ascending
// by year. A bound <= 0 is open. Unknown countries yield an empty slice.
func (cs *ColumnStore) Series(country string, from, to int) []models.VREPoint {
	sp, ok := cs.lookup(country)
	if !ok {
		return []models.VREPoint{}
	}

	lo, hi := sp.lo, sp.hi
	years := cs.Years[sp.lo:sp.hi]
	if from > 0 {
		lo = sp.lo + sort.Search(len(years), func(i int) bool { return int(years[i]) >= from })
	}
	if to > 0 {
		hi = sp.lo + sort.Search(len(years), func(i int) bool { return int(years[i]) > to })
	}
	if lo >= hi {
		return []models.VREPoint{}
	}

	id := cs.CountryIDs[sp.lo]
	series := make([]models.VREPoint, 0, hi-lo)
	for i := lo; i < hi; i++ {
		series = append(series, models.VREPoint{
			Entity: cs.CountryDict[id],
			Code:   cs.CodeDict[id],
			Year:   int(cs.Years[i]),
			Share:  cs.Shares[i],
		})
	}
	return series
}

// At returns the share for (country, year).
func (cs *ColumnStore) At(country string, year int) (float64, bool) {
	sp, ok := cs.lookup(country)
	if !ok {
		return 0, false
	}
	years := cs.Years[sp.lo:sp.hi]
	i := sort.Search(len(years), func(i int) bool { return int(years[i]) >= year })
	if i < len(years) && int(years[i]) == year {
		return cs.Shares[sp.lo+i], true
	}
	return 0, false
}
