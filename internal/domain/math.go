package domain

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMetricValue parses a collaborator-supplied metric value string into a
// float. It tolerates percent and multiple suffixes ("4.5%", "12.3x") and
// European decimal commas ("0,8"). Returns nil for empty or unparseable input.
func ParseMetricValue(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(raw, "%")
	raw = strings.TrimSuffix(raw, "x")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(normalizeDecimalSeparators(raw))
	if err != nil {
		return nil
	}
	f, _ := d.Float64()
	return &f
}

// normalizeDecimalSeparators converts European decimal format to standard format.
// "0,8" → "0.8", "1.234,56" → "1234.56", "1.5" → "1.5"
func normalizeDecimalSeparators(s string) string {
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return s
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round2 rounds to two decimal places, the precision used for every score and
// per-share figure in the response payload.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Ptr returns a pointer to v.
func Ptr(v float64) *float64 { return &v }

// Deref returns the pointed-to value, or fallback when v is nil.
func Deref(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
