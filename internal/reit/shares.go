package reit

import "github.com/joaoFerreiragHub/API-finhub-sub001/internal/domain"

// SharesMethod records how the shares-outstanding figure was resolved.
type SharesMethod string

const (
	SharesDilutedWeighted SharesMethod = "diluted-weighted-average"
	SharesBasicWeighted   SharesMethod = "basic-weighted-average"
	SharesBalanceSheet    SharesMethod = "balance-sheet"
	SharesEstimated       SharesMethod = "estimated"
	SharesUnavailable     SharesMethod = "unavailable"
)

// ResolveShares picks the best available shares-outstanding figure. Per-share
// results computed from an estimated count (marketCap / price) carry lower
// confidence downstream.
func ResolveShares(snap *domain.RawFinancialSnapshot) (shares *float64, method SharesMethod) {
	if snap.Income != nil {
		if v := snap.Income.WeightedAverageShsOutDil; v != nil && *v > 0 {
			return v, SharesDilutedWeighted
		}
		if v := snap.Income.WeightedAverageShsOut; v != nil && *v > 0 {
			return v, SharesBasicWeighted
		}
	}
	if snap.Quote != nil {
		if v := snap.Quote.SharesOutstanding; v != nil && *v > 0 {
			return v, SharesBalanceSheet
		}
	}
	mcap := snap.MarketCap()
	price := snap.BestPrice()
	if mcap != nil && price != nil && *price > 0 {
		return domain.Ptr(*mcap / *price), SharesEstimated
	}
	return nil, SharesUnavailable
}
