package domain

import "time"

// CompanyProfile holds the issuer profile fields consumed by the valuation core.
type CompanyProfile struct {
	Symbol      string   `json:"symbol"`
	CompanyName string   `json:"companyName"`
	Sector      string   `json:"sector"`
	Industry    string   `json:"industry"`
	Beta        float64  `json:"beta"`
	Price       *float64 `json:"price"`
	MarketCap   *float64 `json:"mktCap"`
}

// Quote is the current market quote for a symbol.
type Quote struct {
	Symbol            string   `json:"symbol"`
	Price             *float64 `json:"price"`
	MarketCap         *float64 `json:"marketCap"`
	SharesOutstanding *float64 `json:"sharesOutstanding"`
}

// IncomeStatement is the most recent annual income statement.
// Every numeric field is optional; absence and reported-zero are distinct.
type IncomeStatement struct {
	Date                        string   `json:"date"`
	Revenue                     *float64 `json:"revenue"`
	GrossProfit                 *float64 `json:"grossProfit"`
	OperatingIncome             *float64 `json:"operatingIncome"`
	NetIncome                   *float64 `json:"netIncome"`
	DepreciationAndAmortization *float64 `json:"depreciationAndAmortization"`
	EBITDA                      *float64 `json:"ebitda"`
	WeightedAverageShsOut       *float64 `json:"weightedAverageShsOut"`
	WeightedAverageShsOutDil    *float64 `json:"weightedAverageShsOutDil"`
}

// BalanceSheet is the most recent annual balance sheet.
type BalanceSheet struct {
	Date                    string   `json:"date"`
	TotalAssets             *float64 `json:"totalAssets"`
	TotalLiabilities        *float64 `json:"totalLiabilities"`
	TotalStockholdersEquity *float64 `json:"totalStockholdersEquity"`
	CashAndCashEquivalents  *float64 `json:"cashAndCashEquivalents"`
	TotalDebt               *float64 `json:"totalDebt"`
	NetDebt                 *float64 `json:"netDebt"`
	PreferredStock          *float64 `json:"preferredStock"`
}

// CashFlowStatement is the most recent annual cash-flow statement.
type CashFlowStatement struct {
	Date                        string   `json:"date"`
	OperatingCashFlow           *float64 `json:"operatingCashFlow"`
	DepreciationAndAmortization *float64 `json:"depreciationAndAmortization"`
	DividendsPaid               *float64 `json:"dividendsPaid"`
	FreeCashFlow                *float64 `json:"freeCashFlow"`
}

// KeyMetrics carries pre-computed per-share figures supplied by the provider.
type KeyMetrics struct {
	FfoPerShare *float64 `json:"ffoPerShare"`
}

// DividendPaymentRecord is a single historical dividend payment.
type DividendPaymentRecord struct {
	Date           time.Time `json:"date"`
	AmountPerShare float64   `json:"amountPerShare"`
}

// RawFinancialSnapshot is the point-in-time bag of upstream sub-documents for one
// symbol. It is owned by the valuation request and discarded after the response is
// built. Any sub-document may be nil or empty when the corresponding sub-fetch
// degraded; every consumer must tolerate absent fields.
type RawFinancialSnapshot struct {
	Symbol     string
	Profile    *CompanyProfile
	Quote      *Quote
	Income     *IncomeStatement
	Balance    *BalanceSheet
	CashFlow   *CashFlowStatement
	KeyMetrics *KeyMetrics
	Dividends  []DividendPaymentRecord

	// Degraded lists the sub-documents whose fetch failed and was replaced by an
	// empty record.
	Degraded []string
}

// Price returns the best available share price: quote first, profile as fallback.
func (s *RawFinancialSnapshot) BestPrice() *float64 {
	if s.Quote != nil && s.Quote.Price != nil {
		return s.Quote.Price
	}
	if s.Profile != nil && s.Profile.Price != nil {
		return s.Profile.Price
	}
	return nil
}

// MarketCap returns the best available market capitalization.
func (s *RawFinancialSnapshot) MarketCap() *float64 {
	if s.Quote != nil && s.Quote.MarketCap != nil {
		return s.Quote.MarketCap
	}
	if s.Profile != nil && s.Profile.MarketCap != nil {
		return s.Profile.MarketCap
	}
	return nil
}
