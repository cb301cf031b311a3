package reit

import (
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/dividend"
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/domain"
)

// CAPM parameters and the Gordon Growth divergence margin.
const (
	RiskFreeRate      = 0.045
	EquityRiskPremium = 0.05
	DefaultBeta       = 0.8
	growthCapMargin   = 0.005
)

// Valuation labels relative to intrinsic value.
const (
	LabelSobrevalorizado = "Sobrevalorizado"
	LabelSubvalorizado   = "Subvalorizado"
	LabelJusto           = "Justo"
)

// DdmResult is the Gordon Growth valuation output with its confidence gate.
type DdmResult struct {
	IntrinsicValue *float64   `json:"intrinsicValue"`
	RequiredReturn float64    `json:"requiredReturn"`
	GrowthRateUsed float64    `json:"growthRateUsed"`
	DividendYield  *float64   `json:"dividendYield"`
	DividendCAGR   float64    `json:"dividendCagr"`
	ValuationLabel *string    `json:"valuation"`
	Confidence     Confidence `json:"ddmConfidence"`
	Reasons        []string   `json:"ddmConfidenceNote"`
}

// ValueDDM computes the CAPM discount rate and Gordon Growth intrinsic value from
// a dividend history analysis. The model declines to produce a value (nil, never
// zero) when its preconditions are unmet, and marks itself low-confidence when the
// dividend signal is too weak to anchor a growth-discount valuation — callers
// should then defer to FFO/NAV.
func ValueDDM(div dividend.Analysis, price *float64, beta float64) DdmResult {
	if beta <= 0 {
		beta = DefaultBeta
	}
	rr := RiskFreeRate + beta*EquityRiskPremium

	// Gordon Growth diverges as g approaches the discount rate.
	g := domain.Clamp(div.CAGR5y, 0, rr-growthCapMargin)

	res := DdmResult{
		RequiredReturn: rr,
		GrowthRateUsed: g,
		DividendCAGR:   div.CAGR5y,
	}

	if price != nil && *price > 0 && div.TrailingAnnual > 0 {
		res.DividendYield = domain.Ptr(div.TrailingAnnual / *price)
	}

	numerator := div.TrailingAnnual * (1 + g)
	if denominator := rr - g; numerator > 0 && denominator > 0 {
		res.IntrinsicValue = domain.Ptr(numerator / denominator)
	}

	if res.IntrinsicValue != nil && price != nil && *price > 0 {
		switch {
		case *price > 1.05**res.IntrinsicValue:
			res.ValuationLabel = strPtr(LabelSobrevalorizado)
		case *price < 0.95**res.IntrinsicValue:
			res.ValuationLabel = strPtr(LabelSubvalorizado)
		default:
			res.ValuationLabel = strPtr(LabelJusto)
		}
	}

	// Confidence gate: any weak dividend signal demotes the whole model.
	if res.DividendYield == nil || *res.DividendYield < 0.03 {
		res.Reasons = append(res.Reasons, "dividend yield abaixo de 3%")
	}
	if div.CAGR5y < 0.02 {
		res.Reasons = append(res.Reasons, "crescimento de dividendos (CAGR 5a) abaixo de 2%")
	}
	if div.FilteredCount < 8 {
		res.Reasons = append(res.Reasons, "historico de dividendos inferior a 5 anos completos")
	}

	if len(res.Reasons) > 0 {
		res.Confidence = ConfidenceLow
	} else {
		res.Confidence = ConfidenceHigh
	}
	return res
}

func strPtr(s string) *string { return &s }
