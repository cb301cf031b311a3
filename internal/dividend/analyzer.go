package dividend

import (
	"math"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/domain"
)

// DefaultCAGR is assumed when the payment history is too thin to measure growth.
const DefaultCAGR = 0.03

// Frequency is the inferred dividend payment cadence.
type Frequency string

const (
	FrequencyMonthly    Frequency = "monthly"
	FrequencyQuarterly  Frequency = "quarterly"
	FrequencySemiannual Frequency = "semiannual"
	FrequencyAnnual     Frequency = "annual"
)

// Analysis summarizes a symbol's dividend payment history.
type Analysis struct {
	PaymentsPerYear int
	Frequency       Frequency
	TrailingAnnual  float64
	ForwardAnnual   float64
	CAGR5y          float64
	CAGRDefaulted   bool
	// FilteredCount is the number of payments inside the trailing 5-year window,
	// used by the DDM confidence gate.
	FilteredCount int
}

// Analyze infers payment frequency and computes trailing/forward annual dividends
// and the 5-year CAGR from an unordered payment history. Sorting is internal, so
// the result does not depend on input ordering.
func Analyze(records []domain.DividendPaymentRecord, now time.Time) Analysis {
	desc := make([]domain.DividendPaymentRecord, len(records))
	copy(desc, records)
	sort.Slice(desc, func(i, j int) bool { return desc[i].Date.After(desc[j].Date) })

	perYear, freq := inferFrequency(desc)

	a := Analysis{PaymentsPerYear: perYear, Frequency: freq}

	// Trailing annual dividend: sum of the most recent paymentsPerYear prints.
	// Summing a fixed count instead of a rolling 12-month window avoids
	// double-counting when report timing produces 5 quarterly prints in a year.
	n := min(perYear, len(desc))
	a.TrailingAnnual = lo.SumBy(desc[:n], func(r domain.DividendPaymentRecord) float64 {
		return r.AmountPerShare
	})

	// Forward annual dividend: flat projection of the most recent payment.
	if len(desc) > 0 {
		a.ForwardAnnual = desc[0].AmountPerShare * float64(perYear)
	}

	a.CAGR5y, a.CAGRDefaulted, a.FilteredCount = fiveYearCAGR(desc, now)
	return a
}

// inferFrequency classifies the payment cadence from the mean gap between the
// most recent payments (up to 6 gaps over 7 payments). Fewer than 3 payments
// defaults to quarterly.
func inferFrequency(desc []domain.DividendPaymentRecord) (int, Frequency) {
	if len(desc) < 3 {
		return 4, FrequencyQuarterly
	}

	recent := desc
	if len(recent) > 7 {
		recent = recent[:7]
	}
	var total float64
	gaps := 0
	for i := 0; i < len(recent)-1; i++ {
		total += recent[i].Date.Sub(recent[i+1].Date).Hours() / 24
		gaps++
	}
	mean := total / float64(gaps)

	switch {
	case mean <= 35:
		return 12, FrequencyMonthly
	case mean <= 100:
		return 4, FrequencyQuarterly
	case mean <= 200:
		return 2, FrequencySemiannual
	default:
		return 1, FrequencyAnnual
	}
}

// fiveYearCAGR annualizes the first and last halves of the trailing 5-year window
// and compounds the ratio over 5 years. Too few data points or non-positive slice
// sums keep the 3% default.
func fiveYearCAGR(desc []domain.DividendPaymentRecord, now time.Time) (cagr float64, defaulted bool, filtered int) {
	cutoff := now.AddDate(-5, 0, 0)
	window := lo.Filter(desc, func(r domain.DividendPaymentRecord, _ int) bool {
		return r.Date.After(cutoff)
	})
	filtered = len(window)
	if filtered < 4 {
		return DefaultCAGR, true, filtered
	}

	// Ascending for growth measurement.
	asc := make([]domain.DividendPaymentRecord, filtered)
	copy(asc, window)
	sort.Slice(asc, func(i, j int) bool { return asc[i].Date.Before(asc[j].Date) })

	half := filtered / 2
	firstSum := lo.SumBy(asc[:half], func(r domain.DividendPaymentRecord) float64 { return r.AmountPerShare })
	lastSum := lo.SumBy(asc[filtered-half:], func(r domain.DividendPaymentRecord) float64 { return r.AmountPerShare })
	if firstSum <= 0 || lastSum <= 0 {
		return DefaultCAGR, true, filtered
	}

	// Same-length slices at the same cadence, so annualization cancels in the
	// ratio and the slice sums compare directly.
	return math.Pow(lastSum/firstSum, 1.0/5.0) - 1, false, filtered
}
