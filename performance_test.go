package folio

import (
	"math"
	"testing"
)

func TestXIRRSimpleYear(t *testing.T) {
	// -1000 grows to 1100 over exactly one year: 10%.
	values := []float64{-1000, 1100}
	dates := []Date{MustParseDate("2024-01-01"), MustParseDate("2024-12-31")}
	// 365 days apart under day/365 compounding
	if d := dates[1].DaysSince(dates[0]); d != 365 {
		t.Fatalf("fixture spans %d days, want 365", d)
	}

	rate := XIRR(values, dates)
	if !rate.Valid {
		t.Fatal("rate undefined")
	}
	if math.Abs(rate.Value-0.10) > 1e-4 {
		t.Errorf("xirr = %v, want 0.10", rate.Value)
	}
}

func TestXIRRIntermediateFlows(t *testing.T) {
	values := []float64{-1000, -500, 1700}
	dates := []Date{
		MustParseDate("2024-01-01"),
		MustParseDate("2024-07-01"),
		MustParseDate("2024-12-31"),
	}
	rate := XIRR(values, dates)
	if !rate.Valid {
		t.Fatal("rate undefined")
	}
	// the root must actually zero the npv.
	if npv := xnpv(rate.Value, values, dates); math.Abs(npv) > 1e-4 {
		t.Errorf("xnpv at solution = %v, want ~0", npv)
	}
}

func TestXIRRUndefined(t *testing.T) {
	testCases := []struct {
		name   string
		values []float64
		dates  []Date
	}{
		{"single point", []float64{-1000}, []Date{MustParseDate("2024-01-01")}},
		{"all outflows", []float64{-1000, -500},
			[]Date{MustParseDate("2024-01-01"), MustParseDate("2024-06-01")}},
		{"all inflows", []float64{1000, 500},
			[]Date{MustParseDate("2024-01-01"), MustParseDate("2024-06-01")}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if rate := XIRR(tc.values, tc.dates); rate.Valid {
				t.Errorf("got %v, want undefined", rate.Value)
			}
		})
	}
}

func TestXIRRSameDaySchedule(t *testing.T) {
	// deposit and terminal value on the same day: the npv is constant for
	// every rate, so no seed may be reported as a converged root.
	d0 := MustParseDate("2025-03-01")
	testCases := []struct {
		name   string
		values []float64
	}{
		{"balanced", []float64{-1000, 1000}},
		{"same-day gain", []float64{-1000, 1100}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if rate := XIRR(tc.values, []Date{d0, d0}); rate.Valid {
				t.Errorf("got %v, want undefined", rate.Value)
			}
		})
	}
}

func TestXNPVDivergentRate(t *testing.T) {
	values := []float64{-1000, 1100}
	dates := []Date{MustParseDate("2024-01-01"), MustParseDate("2024-12-31")}
	if got := xnpv(-1.0, values, dates); !math.IsInf(got, 1) {
		t.Errorf("xnpv at -100%% = %v, want +Inf", got)
	}
}

func TestTWRNoFlows(t *testing.T) {
	values := &History[float64]{}
	values.Append(MustParseDate("2025-01-01"), 1000)
	values.Append(MustParseDate("2025-01-02"), 1100)
	values.Append(MustParseDate("2025-01-03"), 1210)

	rate := TWR(values, &History[float64]{})
	if !rate.Valid {
		t.Fatal("rate undefined")
	}
	if math.Abs(rate.Value-0.21) > 1e-9 {
		t.Errorf("twr = %v, want 0.21", rate.Value)
	}
}

func TestTWRFlowIsNotReturn(t *testing.T) {
	// value doubles only because of a deposit; the return is zero.
	values := &History[float64]{}
	values.Append(MustParseDate("2025-01-01"), 1000)
	values.Append(MustParseDate("2025-01-02"), 2000)
	flows := &History[float64]{}
	flows.Append(MustParseDate("2025-01-02"), 1000)

	rate := TWR(values, flows)
	if !rate.Valid {
		t.Fatal("rate undefined")
	}
	if math.Abs(rate.Value) > 1e-9 {
		t.Errorf("twr = %v, want 0", rate.Value)
	}
}

func TestTWRTrimsLeadingNonPositive(t *testing.T) {
	// the series starts at zero before any deposit settles; those days are
	// trimmed rather than producing a division by zero.
	values := &History[float64]{}
	values.Append(MustParseDate("2025-01-01"), 0)
	values.Append(MustParseDate("2025-01-02"), 1000)
	values.Append(MustParseDate("2025-01-03"), 1050)
	flows := &History[float64]{}
	flows.Append(MustParseDate("2025-01-02"), 1000)

	rate := TWR(values, flows)
	if !rate.Valid {
		t.Fatal("rate undefined")
	}
	if math.Abs(rate.Value-0.05) > 1e-9 {
		t.Errorf("twr = %v, want 0.05", rate.Value)
	}
}

func TestTWRUndefined(t *testing.T) {
	values := &History[float64]{}
	values.Append(MustParseDate("2025-01-01"), 1000)
	if rate := TWR(values, &History[float64]{}); rate.Valid {
		t.Errorf("single-point series: got %v, want undefined", rate.Value)
	}
}

func TestPerformanceMetricsWindows(t *testing.T) {
	// two years of history spanning a year boundary so lifetime, 1Y and YTD
	// all anchor differently.
	values := &History[float64]{}
	flows := &History[float64]{}
	flows.Append(MustParseDate("2024-01-01"), 1000)
	day := MustParseDate("2024-01-01")
	end := MustParseDate("2025-06-30")
	v := 1000.0
	for ; !day.After(end); day = day.Add(1) {
		values.Append(day, v)
		v *= 1.0005
	}

	metrics := PerformanceMetrics(values, flows)
	for _, label := range []string{Lifetime, OneYear, YearToDate} {
		m, ok := metrics[label]
		if !ok {
			t.Fatalf("missing %s window", label)
		}
		if !m.XIRR.Valid || !m.TWR.Valid {
			t.Errorf("%s: xirr valid=%v twr valid=%v, want both defined", label, m.XIRR.Valid, m.TWR.Valid)
		}
		if m.TWR.Value <= 0 {
			t.Errorf("%s: twr = %v, want positive for a rising series", label, m.TWR.Value)
		}
	}
	// shorter windows of a steady riser compound less than the lifetime.
	if metrics[OneYear].TWR.Value >= metrics[Lifetime].TWR.Value {
		t.Errorf("1Y twr %v not below lifetime %v", metrics[OneYear].TWR.Value, metrics[Lifetime].TWR.Value)
	}
	if metrics[YearToDate].TWR.Value >= metrics[OneYear].TWR.Value {
		t.Errorf("ytd twr %v not below 1Y %v", metrics[YearToDate].TWR.Value, metrics[OneYear].TWR.Value)
	}
}

func TestWindowMetricBeyondHistory(t *testing.T) {
	values := &History[float64]{}
	values.Append(MustParseDate("2025-01-01"), 1000)
	values.Append(MustParseDate("2025-01-02"), 1010)

	m := windowMetric(values, &History[float64]{}, MustParseDate("2025-02-01"), MustParseDate("2025-01-02"), 1010)
	if m.XIRR.Valid || m.TWR.Valid {
		t.Errorf("window start beyond series: got %+v, want undefined metrics", m)
	}
}
