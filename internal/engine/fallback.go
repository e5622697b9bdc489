package engine

import (
	"strconv"

	"streacs/internal/models"
)

// Illustrative data used when a source cannot be fetched. It covers a
// handful of countries and is not authoritative.

func fillYears(from, to int, code models.MarketCode, overrides map[int]models.MarketCode) map[string]models.MarketCode {
	years := make(map[string]models.MarketCode, to-from+1+len(overrides))
	for y := from; y <= to; y++ {
		years[strconv.Itoa(y)] = code
	}
	for y, c := range overrides {
		years[strconv.Itoa(y)] = c
	}
	return years
}

func yearRange(from, to int, code models.MarketCode) map[int]models.MarketCode {
	m := make(map[int]models.MarketCode, to-from+1)
	for y := from; y <= to; y++ {
		m[y] = code
	}
	return m
}

func fallbackMarketStructure() map[string]models.MarketRecord {
	armenia := yearRange(2002, 2022, models.Code2b)
	armenia[2023] = models.Code3a
	armenia[2024] = models.Code3a

	return map[string]models.MarketRecord{
		"Armenia": {
			Region: "ECA",
			Years:  fillYears(1989, 2001, models.Code1a, armenia),
		},
		"Argentina": {
			Region: "LAC",
			Years:  fillYears(1989, 1991, models.Code1a, yearRange(1992, 2024, models.Code3c)),
		},
		"Germany": {
			Region: "ECA",
			Years:  fillYears(1989, 1997, models.Code1a, yearRange(1998, 2024, models.Code3b)),
		},
	}
}

func fallbackRegulators() map[string]models.RegulatorRecord {
	return map[string]models.RegulatorRecord{
		"Armenia": {
			Name:            "Public Services Regulatory Commission (PSRC)",
			YearEstablished: 1997,
			Website:         "https://www.psrc.am/contents/page/history",
			Notes:           "Established on April 3, 1997 by decree of the President",
		},
		"Argentina": {
			Name:            "National Electricity Regulator (ENRE)",
			YearEstablished: 1991,
			Website:         "https://www.argentina.gob.ar/enre",
			Notes:           "Independent entity within the Energy Secretariat",
		},
		"Germany": {
			Name:            "Federal Network Agency (BNetzA)",
			YearEstablished: 2005,
			Website:         "https://www.bundesnetzagentur.de",
			Notes:           "Regulates electricity, gas, telecommunications, post and railway markets",
		},
	}
}

func fallbackIPP() map[string]models.IPPRecord {
	return map[string]models.IPPRecord{
		"Armenia": {
			YearFirstIPP:        2003,
			YearFirstPrivateIPP: 2011,
			TypeOperational:     models.GenGas,
			Notes:               "Hrazdan Thermal Power Plant acquired by Russian state in 2003, sold to Tashir Group in 2011",
		},
		"Argentina": {
			YearFirstIPP:        1992,
			YearFirstPrivateIPP: 1992,
			TypeOperational:     models.GenHydro,
			Notes:               "Major privatizations in 1992 when IPPs entered the country",
		},
		"Germany": {
			YearFirstIPP:        1998,
			YearFirstPrivateIPP: 1998,
			TypeOperational:     models.GenWind,
			Notes:               "Market liberalization enabled private generators",
		},
	}
}

func fallbackUnbundling() map[string]models.UnbundlingRecord {
	return map[string]models.UnbundlingRecord{
		"Armenia": {
			Transmission: "ISO Model since 2002",
			Distribution: "Separated",
			Notes:        "Independent System Operator model - ownership remains but operation is independent",
		},
		"Germany": {
			Transmission: "Ownership Unbundling",
			Distribution: "Ownership Unbundling",
			Notes:        "Full separation of transmission and distribution from generation",
		},
		"Argentina": {
			Transmission: "Ownership Unbundling since 1992",
			Distribution: "Ownership Unbundling",
			Notes:        "Complete separation during privatization in early 1990s",
		},
	}
}
