package reit

import (
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/domain"
)

// FfoSource identifies which branch of the resolution hierarchy produced the
// FFO figure.
type FfoSource string

const (
	FfoSourceKeyMetrics          FfoSource = "key-metrics"
	FfoSourceSimplified          FfoSource = "simplified"
	FfoSourceSimplifiedSpecialty FfoSource = "simplified-specialty"
	FfoSourceNotApplicable       FfoSource = "not-applicable"
)

// FfoResult resolves Funds From Operations plus the leverage and cash-flow
// metrics derived alongside it. Source and confidence are derived, never set
// independently.
type FfoResult struct {
	Ffo         *float64   `json:"ffo"`
	FfoPerShare *float64   `json:"ffoPerShare"`
	PFfo        *float64   `json:"pFFO"`
	Source      FfoSource  `json:"ffoSource"`
	Confidence  Confidence `json:"ffoConfidence"`
	Reasons     []string   `json:"ffoConfidenceReasons"`

	DepreciationGuarded bool         `json:"depreciationWasGuarded"`
	SharesEstimated     bool         `json:"sharesEstimated"`
	SharesMethod        SharesMethod `json:"sharesMethod"`

	Ebitda                    *float64 `json:"ebitda"`
	DebtToEbitda              *float64 `json:"debtToEbitda"`
	DebtToEquity              *float64 `json:"debtToEquity"`
	OperatingCashFlowPerShare *float64 `json:"operatingCashFlowPerShare"`
	CfoApprox                 bool     `json:"operatingCashFlowPerShareApprox"`
	PayoutRatio               *float64 `json:"ffoPayoutRatio"`
}

// EstimateFFO resolves FFO per share through the source-priority hierarchy:
// mortgage trusts produce no figure, a positive provider-reported NAREIT figure
// wins otherwise, and the simplified (netIncome + depreciation) / shares formula
// is the fallback, at capped confidence for specialty trusts whose depreciation
// overstates real-estate D&A.
func EstimateFFO(snap *domain.RawFinancialSnapshot, trust TrustType, trailingDividend float64) FfoResult {
	mcap := domain.Deref(snap.MarketCap(), 0)
	shares, sharesMethod := ResolveShares(snap)

	res := FfoResult{
		SharesMethod:    sharesMethod,
		SharesEstimated: sharesMethod == SharesEstimated,
	}

	dep, depProvenance := guardedDepreciation(snap, mcap)
	res.DepreciationGuarded = depProvenance == domain.ProvenanceGuarded

	switch {
	case trust == TrustMortgage:
		res.Source = FfoSourceNotApplicable
		res.Reasons = append(res.Reasons, "FFO nao aplicavel a mortgage REITs; usar Distributable Earnings")

	case reportedFfoPerShare(snap) != nil:
		res.Source = FfoSourceKeyMetrics
		res.FfoPerShare = reportedFfoPerShare(snap)
		if shares != nil {
			res.Ffo = domain.Ptr(*res.FfoPerShare * *shares)
		}

	default:
		res.Source = FfoSourceSimplified
		if trust == TrustSpecialty {
			res.Source = FfoSourceSimplifiedSpecialty
			res.Reasons = append(res.Reasons, "formula simplificada em specialty REIT: depreciacao inclui equipamento nao imobiliario e pode sobrestimar o FFO")
		}
		res.Ffo, res.FfoPerShare = simplifiedFfo(snap, dep, shares)
	}

	if res.DepreciationGuarded {
		res.Reasons = append(res.Reasons, "depreciacao reportada a zero foi tratada como em falta (guard de plausibilidade)")
	}
	if res.SharesEstimated {
		res.Reasons = append(res.Reasons, "shares outstanding estimadas via marketCap/price")
	}

	res.Confidence = ffoConfidence(res)

	// Derived metrics are computed for every trust type, FFO or not.
	res.Ebitda = deriveEbitda(snap, mcap)
	if bs := snap.Balance; bs != nil && bs.TotalDebt != nil {
		if res.Ebitda != nil && *res.Ebitda > 0 {
			res.DebtToEbitda = domain.Ptr(*bs.TotalDebt / *res.Ebitda)
		}
		equity := domain.Guard(bs.TotalStockholdersEquity, mcap)
		if equity != nil && *equity > 0 {
			res.DebtToEquity = domain.Ptr(*bs.TotalDebt / *equity)
		}
	}
	if cf := snap.CashFlow; cf != nil && shares != nil {
		if cfo := domain.Guard(cf.OperatingCashFlow, mcap); cfo != nil {
			res.OperatingCashFlowPerShare = domain.Ptr(*cfo / *shares)
			res.CfoApprox = res.SharesEstimated
		}
	}
	if res.FfoPerShare != nil && *res.FfoPerShare > 0 {
		if trailingDividend > 0 {
			res.PayoutRatio = domain.Ptr(trailingDividend / *res.FfoPerShare)
		}
		if price := snap.BestPrice(); price != nil && *price > 0 {
			res.PFfo = domain.Ptr(*price / *res.FfoPerShare)
		}
	}

	return res
}

// guardedDepreciation prefers the cash-flow statement's D&A, falling back to the
// income statement's, and passes the figure through the plausibility guard.
func guardedDepreciation(snap *domain.RawFinancialSnapshot, mcap float64) (*float64, domain.Provenance) {
	var raw *float64
	if snap.CashFlow != nil && snap.CashFlow.DepreciationAndAmortization != nil {
		raw = snap.CashFlow.DepreciationAndAmortization
	} else if snap.Income != nil {
		raw = snap.Income.DepreciationAndAmortization
	}
	return domain.GuardWithProvenance(raw, mcap, domain.DefaultGuardThreshold)
}

func reportedFfoPerShare(snap *domain.RawFinancialSnapshot) *float64 {
	if snap.KeyMetrics != nil && snap.KeyMetrics.FfoPerShare != nil && *snap.KeyMetrics.FfoPerShare > 0 {
		return snap.KeyMetrics.FfoPerShare
	}
	return nil
}

// simplifiedFfo computes (netIncome + depreciation) / shares. A guard-nulled
// depreciation still lets the formula run with zero as the computational
// fallback; the caller flags the downgrade.
func simplifiedFfo(snap *domain.RawFinancialSnapshot, dep, shares *float64) (ffo, perShare *float64) {
	if snap.Income == nil || snap.Income.NetIncome == nil {
		return nil, nil
	}
	total := *snap.Income.NetIncome + domain.Deref(dep, 0)
	ffo = domain.Ptr(total)
	if shares != nil && *shares > 0 {
		perShare = domain.Ptr(total / *shares)
	}
	return ffo, perShare
}

// ffoConfidence is a pure function of source and guard flags: high only for a
// clean provider-reported figure, low for anything structurally weak, medium
// otherwise.
func ffoConfidence(res FfoResult) Confidence {
	switch {
	case res.Source == FfoSourceNotApplicable,
		res.Source == FfoSourceSimplifiedSpecialty,
		res.DepreciationGuarded,
		res.SharesEstimated:
		return ConfidenceLow
	case res.Source == FfoSourceKeyMetrics:
		return ConfidenceHigh
	default:
		return ConfidenceMedium
	}
}

// deriveEbitda returns reported EBITDA, else operating income plus raw
// depreciation, else nil. The reported figure passes the plausibility guard.
func deriveEbitda(snap *domain.RawFinancialSnapshot, mcap float64) *float64 {
	if snap.Income == nil {
		return nil
	}
	if v := domain.Guard(snap.Income.EBITDA, mcap); v != nil {
		return v
	}
	if snap.Income.OperatingIncome != nil && snap.Income.DepreciationAndAmortization != nil {
		return domain.Ptr(*snap.Income.OperatingIncome + *snap.Income.DepreciationAndAmortization)
	}
	return nil
}
