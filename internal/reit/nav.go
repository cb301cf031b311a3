package reit

import (
	"strings"

	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/domain"
)

// DefaultCapRate is applied when a sector has no entry in the cap-rate table.
const DefaultCapRate = 0.0625

// Scenario spreads around the base cap rate. A lower cap rate discounts the NOI
// less, inflating the implied property value, which is why the lower rate is the
// optimistic scenario.
const (
	optimisticCapSpread   = -0.005
	conservativeCapSpread = 0.0075
)

// sectorCapRates maps industry keywords to base capitalization rates. Ordered,
// so overlapping labels resolve deterministically (first match wins).
var sectorCapRates = []struct {
	keyword string
	rate    float64
}{
	{"residential", 0.050},
	{"industrial", 0.055},
	{"retail", 0.065},
	{"office", 0.070},
	{"healthcare", 0.065},
	{"hotel", 0.080},
	{"lodging", 0.080},
	{"resorts", 0.080},
	{"specialty", 0.070},
	{"diversified", 0.060},
}

// NavScenario is one economic-NAV computation at a fixed cap rate. Each scenario
// is independently computable and immutable once produced.
type NavScenario struct {
	CapRate       float64  `json:"capRate"`
	PropertyValue *float64 `json:"propertyValue"`
	EconomicNav   *float64 `json:"economicNav"`
	NavPerShare   *float64 `json:"navPerShare"`
	PriceVsNav    *float64 `json:"priceVsNav"`
}

// NavScenarios groups the three standard cap-rate scenarios.
type NavScenarios struct {
	Optimistic   NavScenario `json:"optimistic"`
	Base         NavScenario `json:"base"`
	Conservative NavScenario `json:"conservative"`
}

// NavResult holds book NAV and the multi-scenario economic NAV.
type NavResult struct {
	BookNav         *float64     `json:"nav"`
	BookNavPerShare *float64     `json:"navPerShare"`
	PriceToNav      *float64     `json:"priceToNAV"`
	Scenarios       NavScenarios `json:"scenarios"`
	ImpliedCapRate  *float64     `json:"impliedCapRate"`
	Confidence      Confidence   `json:"navConfidence"`
	Reasons         []string     `json:"navConfidenceReasons"`
	CapRateFromTable bool        `json:"capRateFromTable"`
}

// EstimateNAV computes book NAV from the balance sheet and economic NAV from the
// guarded NOI proxy (gross profit) under three cap-rate scenarios.
func EstimateNAV(snap *domain.RawFinancialSnapshot) NavResult {
	mcap := domain.Deref(snap.MarketCap(), 0)
	price := snap.BestPrice()
	shares, _ := ResolveShares(snap)

	var res NavResult

	res.BookNav = bookNav(snap.Balance, mcap)
	if res.BookNav != nil && shares != nil {
		res.BookNavPerShare = domain.Ptr(*res.BookNav / *shares)
		if price != nil && *res.BookNavPerShare != 0 {
			res.PriceToNav = domain.Ptr(*price / *res.BookNavPerShare)
		}
	}

	var noi *float64
	if snap.Income != nil {
		noi = domain.Guard(snap.Income.GrossProfit, mcap)
	}

	baseRate, fromTable := capRateForIndustry(industryLabel(snap))
	res.CapRateFromTable = fromTable

	res.Scenarios = NavScenarios{
		Optimistic:   navScenario(snap, noi, shares, price, baseRate+optimisticCapSpread),
		Base:         navScenario(snap, noi, shares, price, baseRate),
		Conservative: navScenario(snap, noi, shares, price, baseRate+conservativeCapSpread),
	}

	// Diagnostic only, not a scenario: the cap rate the market is implying at the
	// current enterprise value.
	if noi != nil && *noi > 0 && snap.Balance != nil {
		ev := mcap + domain.Deref(snap.Balance.NetDebt, 0)
		if ev > 0 && mcap > 0 {
			res.ImpliedCapRate = domain.Ptr(*noi / ev)
		}
	}

	noiMissing := noi == nil || *noi == 0
	if noiMissing {
		res.Reasons = append(res.Reasons, "NOI proxy em falta ou zero")
	}
	if !fromTable {
		res.Reasons = append(res.Reasons, "cap rate por omissao: setor nao mapeado na tabela")
	}
	if base := res.Scenarios.Base.EconomicNav; base != nil && *base < 0 {
		res.Reasons = append(res.Reasons, "NAV economico base negativo")
	}

	// A missing NOI proxy empties every scenario, so it alone demotes to low.
	switch {
	case noiMissing, len(res.Reasons) >= 2:
		res.Confidence = ConfidenceLow
	case len(res.Reasons) == 1:
		res.Confidence = ConfidenceMedium
	default:
		res.Confidence = ConfidenceHigh
	}
	return res
}

// bookNav is total assets minus total liabilities, falling back to reported
// stockholders' equity when either side is missing.
func bookNav(bs *domain.BalanceSheet, mcap float64) *float64 {
	if bs == nil {
		return nil
	}
	if bs.TotalAssets != nil && bs.TotalLiabilities != nil {
		return domain.Ptr(*bs.TotalAssets - *bs.TotalLiabilities)
	}
	return domain.Guard(bs.TotalStockholdersEquity, mcap)
}

// navScenario capitalizes the NOI proxy at the given rate and nets out the
// capital structure. A missing NOI proxy makes the whole scenario undefined.
func navScenario(snap *domain.RawFinancialSnapshot, noi, shares, price *float64, capRate float64) NavScenario {
	s := NavScenario{CapRate: capRate}
	if noi == nil || *noi == 0 || capRate <= 0 {
		return s
	}
	s.PropertyValue = domain.Ptr(*noi / capRate)

	if snap.Balance == nil {
		return s
	}
	economic := *s.PropertyValue +
		domain.Deref(snap.Balance.CashAndCashEquivalents, 0) -
		domain.Deref(snap.Balance.NetDebt, 0) -
		domain.Deref(snap.Balance.PreferredStock, 0)
	s.EconomicNav = domain.Ptr(economic)

	if shares != nil && *shares > 0 {
		s.NavPerShare = domain.Ptr(economic / *shares)
		if price != nil && *s.NavPerShare != 0 {
			s.PriceVsNav = domain.Ptr((*price - *s.NavPerShare) / *s.NavPerShare)
		}
	}
	return s
}

func industryLabel(snap *domain.RawFinancialSnapshot) string {
	if snap.Profile == nil {
		return ""
	}
	if snap.Profile.Industry != "" {
		return snap.Profile.Industry
	}
	return snap.Profile.Sector
}

// capRateForIndustry looks an industry label up in the sector table, reporting
// whether the rate came from the table or the default.
func capRateForIndustry(industry string) (float64, bool) {
	label := strings.ToLower(industry)
	for _, entry := range sectorCapRates {
		if strings.Contains(label, entry.keyword) {
			return entry.rate, true
		}
	}
	return DefaultCapRate, false
}
