package fmp

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/domain"
)

// The provider returns most documents as single-element arrays, newest first.

// FetchProfile returns the company profile, or nil when the symbol is unknown.
func (c *Client) FetchProfile(ctx context.Context, symbol string) (*domain.CompanyProfile, error) {
	var profiles []domain.CompanyProfile
	if err := c.getJSON(ctx, "/api/v3/profile/"+url.PathEscape(symbol), nil, &profiles); err != nil {
		return nil, fmt.Errorf("fetching profile for %s: %w", symbol, err)
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return &profiles[0], nil
}

// FetchQuote returns the current quote for a symbol.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	var quotes []domain.Quote
	if err := c.getJSON(ctx, "/api/v3/quote/"+url.PathEscape(symbol), nil, &quotes); err != nil {
		return nil, fmt.Errorf("fetching quote for %s: %w", symbol, err)
	}
	if len(quotes) == 0 {
		return nil, nil
	}
	return &quotes[0], nil
}

// FetchIncomeStatement returns the most recent annual income statement.
func (c *Client) FetchIncomeStatement(ctx context.Context, symbol string) (*domain.IncomeStatement, error) {
	var statements []domain.IncomeStatement
	if err := c.getJSON(ctx, "/api/v3/income-statement/"+url.PathEscape(symbol), annualLimit1(), &statements); err != nil {
		return nil, fmt.Errorf("fetching income statement for %s: %w", symbol, err)
	}
	if len(statements) == 0 {
		return nil, nil
	}
	return &statements[0], nil
}

// FetchBalanceSheet returns the most recent annual balance sheet.
func (c *Client) FetchBalanceSheet(ctx context.Context, symbol string) (*domain.BalanceSheet, error) {
	var statements []domain.BalanceSheet
	if err := c.getJSON(ctx, "/api/v3/balance-sheet-statement/"+url.PathEscape(symbol), annualLimit1(), &statements); err != nil {
		return nil, fmt.Errorf("fetching balance sheet for %s: %w", symbol, err)
	}
	if len(statements) == 0 {
		return nil, nil
	}
	return &statements[0], nil
}

// FetchCashFlowStatement returns the most recent annual cash-flow statement.
func (c *Client) FetchCashFlowStatement(ctx context.Context, symbol string) (*domain.CashFlowStatement, error) {
	var statements []domain.CashFlowStatement
	if err := c.getJSON(ctx, "/api/v3/cash-flow-statement/"+url.PathEscape(symbol), annualLimit1(), &statements); err != nil {
		return nil, fmt.Errorf("fetching cash-flow statement for %s: %w", symbol, err)
	}
	if len(statements) == 0 {
		return nil, nil
	}
	return &statements[0], nil
}

// FetchKeyMetrics returns provider-computed per-share figures, or nil when none
// are published for the symbol.
func (c *Client) FetchKeyMetrics(ctx context.Context, symbol string) (*domain.KeyMetrics, error) {
	var metrics []domain.KeyMetrics
	if err := c.getJSON(ctx, "/api/v3/key-metrics-ttm/"+url.PathEscape(symbol), nil, &metrics); err != nil {
		return nil, fmt.Errorf("fetching key metrics for %s: %w", symbol, err)
	}
	if len(metrics) == 0 {
		return nil, nil
	}
	return &metrics[0], nil
}

// dividendHistoryResponse is the provider's dividend history envelope.
type dividendHistoryResponse struct {
	Symbol     string `json:"symbol"`
	Historical []struct {
		Date     string  `json:"date"`
		Dividend float64 `json:"dividend"`
	} `json:"historical"`
}

// FetchDividendHistory returns the dividend payment history. Records with
// unparseable dates are dropped.
func (c *Client) FetchDividendHistory(ctx context.Context, symbol string) ([]domain.DividendPaymentRecord, error) {
	var resp dividendHistoryResponse
	if err := c.getJSON(ctx, "/api/v3/historical-price-full/stock_dividend/"+url.PathEscape(symbol), nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching dividend history for %s: %w", symbol, err)
	}

	records := make([]domain.DividendPaymentRecord, 0, len(resp.Historical))
	for _, h := range resp.Historical {
		date, err := time.Parse("2006-01-02", h.Date)
		if err != nil {
			continue
		}
		records = append(records, domain.DividendPaymentRecord{
			Date:           date,
			AmountPerShare: h.Dividend,
		})
	}
	return records, nil
}

func annualLimit1() url.Values {
	return url.Values{"period": {"annual"}, "limit": {"1"}}
}
