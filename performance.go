package folio

import (
	"encoding/json"
	"math"
)

// Rate is an annualized or cumulative return that may be undefined: a
// single-signed cash flow schedule has no internal rate, and a solver may
// fail to converge. An undefined rate is reported as such, never as a
// fabricated zero.
type Rate struct {
	Value float64
	Valid bool
}

// Percent expresses the rate in percent.
func (r Rate) Percent() Percent { return Percent(100 * r.Value) }

// MarshalJSON emits the value, or null when the rate is undefined.
func (r Rate) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

func (r Rate) String() string {
	if !r.Valid {
		return "n/a"
	}
	return r.Percent().String()
}

// xnpv is the net present value of a dated cash flow schedule at an annual
// rate, compounding on actual days over 365. Rates at or below -100% return
// +Inf to push the root finder away from the divergent region.
func xnpv(rate float64, values []float64, dates []Date) float64 {
	if rate <= -1.0 {
		return math.Inf(1)
	}
	d0 := dates[0]
	sum := 0.0
	for i, v := range values {
		years := float64(dates[i].DaysSince(d0)) / 365.0
		sum += v / math.Pow(1.0+rate, years)
	}
	return sum
}

const (
	solverTolerance = 1.48e-8
	solverMaxIter   = 50
)

// solveRate finds a root of f near the guess using the secant method. It is
// bounded: after solverMaxIter iterations without convergence it reports
// failure rather than looping.
func solveRate(f func(float64) float64, guess float64) (float64, bool) {
	x0 := guess
	f0 := f(x0)
	delta := x0 * 1e-4
	if delta == 0 {
		delta = 1e-4
	}
	x1 := x0 + delta
	f1 := f(x1)

	for range solverMaxIter {
		if f1 == f0 {
			return 0, false // flat secant, cannot progress
		}
		x2 := x1 - f1*(x1-x0)/(f1-f0)
		if math.IsNaN(x2) || math.IsInf(x2, 0) {
			return 0, false
		}
		if math.Abs(x2-x1) < solverTolerance {
			return x2, true
		}
		x0, f0 = x1, f1
		x1 = x2
		f1 = f(x1)
		if math.Abs(f1) < solverTolerance {
			return x1, true
		}
	}
	return 0, false
}

// xirrSeeds are tried in order; the solver must fail fast on all of them
// before the result is reported undefined.
var xirrSeeds = []float64{0.1, -0.1, 0.0, 0.2, 0.5}

// XIRR computes the annualized money-weighted return of a dated cash flow
// schedule: capital committed appears as negative values, the terminal
// portfolio value as a positive one. It is undefined for fewer than two
// points or when all values share one sign.
func XIRR(values []float64, dates []Date) Rate {
	if len(values) < 2 {
		return Rate{}
	}
	allNonNeg, allNonPos := true, true
	for _, v := range values {
		if v < 0 {
			allNonNeg = false
		}
		if v > 0 {
			allNonPos = false
		}
	}
	if allNonNeg || allNonPos {
		return Rate{}
	}

	f := func(rate float64) float64 { return xnpv(rate, values, dates) }
	for _, seed := range xirrSeeds {
		if rate, ok := solveRate(f, seed); ok {
			return Rate{Value: rate, Valid: true}
		}
	}
	return Rate{}
}

// TWR computes the cumulative time-weighted return of a daily portfolio
// value series against its external flow series.
//
// The series is trimmed to start at its first strictly positive value. For
// each subsequent day the growth factor is value / (previous value + flow):
// the flow joins the denominator because capital moved between the two
// valuation points is not investment return. Days with a non-positive
// denominator or value are excluded. The chained product minus one is the
// TWR; it is undefined when no valid day exists.
func TWR(values, flows *History[float64]) Rate {
	// trim to the first strictly positive value
	trimmed := &History[float64]{}
	started := false
	for on, v := range values.Values() {
		if !started && v <= 0 {
			continue
		}
		started = true
		trimmed.Append(on, v)
	}
	if trimmed.Len() < 2 {
		return Rate{}
	}

	product := 1.0
	valid := false
	prev := math.NaN()
	for on, v := range trimmed.Values() {
		if !math.IsNaN(prev) {
			flow, _ := flows.Get(on)
			denom := prev + flow
			if denom > 0 && v > 0 {
				product *= v / denom
				valid = true
			}
		}
		prev = v
	}
	if !valid {
		return Rate{}
	}
	return Rate{Value: product - 1, Valid: true}
}

// Window labels for performance metrics.
const (
	Lifetime   = "Lifetime"
	OneYear    = "1Y"
	YearToDate = "YTD"
)

// Metric pairs the money-weighted and time-weighted returns of one window.
type Metric struct {
	XIRR Rate `json:"xirr"`
	TWR  Rate `json:"twr"`
}

// PerformanceMetrics computes XIRR and TWR for the Lifetime, 1Y and YTD
// windows of a portfolio value series and its external flow series.
//
// Sub-windows are re-anchored: the first in-window portfolio value acts as
// the initial committed capital, and only flows strictly after the anchor
// date join the schedule (the anchor day's own flow is already embedded in
// the anchor value). A window whose start cannot be located in the series
// has undefined metrics.
func PerformanceMetrics(values, flows *History[float64]) map[string]Metric {
	metrics := make(map[string]Metric)
	if values.Len() == 0 {
		return metrics
	}
	currentDate, currentVal := values.Latest()

	// Lifetime: every external flow is committed capital.
	var lifeValues []float64
	var lifeDates []Date
	for on, flow := range flows.Values() {
		lifeValues = append(lifeValues, -flow)
		lifeDates = append(lifeDates, on)
	}
	lifeValues = append(lifeValues, currentVal)
	lifeDates = append(lifeDates, currentDate)
	metrics[Lifetime] = Metric{
		XIRR: XIRR(lifeValues, lifeDates),
		TWR:  TWR(values, flows),
	}

	windows := map[string]Date{
		OneYear:    currentDate.Add(-365),
		YearToDate: currentDate.StartOfYear(),
	}
	for label, start := range windows {
		metrics[label] = windowMetric(values, flows, start, currentDate, currentVal)
	}
	return metrics
}

// windowMetric computes one re-anchored sub-window, undefined when the
// window start is beyond the available history.
func windowMetric(values, flows *History[float64], start, currentDate Date, currentVal float64) Metric {
	// locate the first series point on or after the window start.
	anchorDate := Date{}
	anchorVal := 0.0
	for on, v := range values.Values() {
		if !on.Before(start) {
			anchorDate, anchorVal = on, v
			break
		}
	}
	if anchorDate.IsZero() {
		return Metric{} // insufficient history: undefined, not zero
	}

	schedule := []float64{-anchorVal}
	dates := []Date{anchorDate}
	for on, flow := range flows.Values() {
		if on.After(anchorDate) {
			schedule = append(schedule, -flow)
			dates = append(dates, on)
		}
	}
	schedule = append(schedule, currentVal)
	dates = append(dates, currentDate)

	return Metric{
		XIRR: XIRR(schedule, dates),
		TWR:  TWR(values.From(anchorDate), flows.From(anchorDate.Add(1))),
	}
}
