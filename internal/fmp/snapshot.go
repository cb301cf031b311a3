package fmp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/domain"
)

// ErrSymbolNotFound indicates the provider has no profile record for a symbol.
var ErrSymbolNotFound = errors.New("symbol not found")

// FetchSnapshot assembles the raw financial snapshot for one symbol, fetching
// all sub-documents concurrently with concurrency=4. A missing profile is fatal
// for the request; any other failed sub-fetch degrades to an empty record and is
// listed in Degraded, so downstream formulas always run on best-effort data.
func (c *Client) FetchSnapshot(ctx context.Context, symbol string) (*domain.RawFinancialSnapshot, error) {
	snap := &domain.RawFinancialSnapshot{Symbol: symbol}

	var mu sync.Mutex
	var profileErr error
	degrade := func(name string, err error) {
		slog.Warn("snapshot sub-fetch degraded", "symbol", symbol, "document", name, "error", err)
		mu.Lock()
		snap.Degraded = append(snap.Degraded, name)
		mu.Unlock()
	}

	type subFetch struct {
		name string
		run  func(ctx context.Context) error
	}
	fetches := []subFetch{
		{"profile", func(ctx context.Context) error {
			p, err := c.FetchProfile(ctx, symbol)
			if err != nil {
				mu.Lock()
				profileErr = err
				mu.Unlock()
				return err
			}
			mu.Lock()
			snap.Profile = p
			mu.Unlock()
			return nil
		}},
		{"quote", func(ctx context.Context) error {
			q, err := c.FetchQuote(ctx, symbol)
			if err != nil {
				return err
			}
			mu.Lock()
			snap.Quote = q
			mu.Unlock()
			return nil
		}},
		{"income-statement", func(ctx context.Context) error {
			s, err := c.FetchIncomeStatement(ctx, symbol)
			if err != nil {
				return err
			}
			mu.Lock()
			snap.Income = s
			mu.Unlock()
			return nil
		}},
		{"balance-sheet", func(ctx context.Context) error {
			s, err := c.FetchBalanceSheet(ctx, symbol)
			if err != nil {
				return err
			}
			mu.Lock()
			snap.Balance = s
			mu.Unlock()
			return nil
		}},
		{"cash-flow", func(ctx context.Context) error {
			s, err := c.FetchCashFlowStatement(ctx, symbol)
			if err != nil {
				return err
			}
			mu.Lock()
			snap.CashFlow = s
			mu.Unlock()
			return nil
		}},
		{"key-metrics", func(ctx context.Context) error {
			m, err := c.FetchKeyMetrics(ctx, symbol)
			if err != nil {
				return err
			}
			mu.Lock()
			snap.KeyMetrics = m
			mu.Unlock()
			return nil
		}},
		{"dividends", func(ctx context.Context) error {
			d, err := c.FetchDividendHistory(ctx, symbol)
			if err != nil {
				return err
			}
			mu.Lock()
			snap.Dividends = d
			mu.Unlock()
			return nil
		}},
	}

	sem := make(chan struct{}, 4)
	var wg sync.WaitGroup
	for _, f := range fetches {
		wg.Add(1)
		go func(f subFetch) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := f.run(ctx); err != nil {
				degrade(f.name, err)
			}
		}(f)
	}
	wg.Wait()

	if profileErr != nil {
		return nil, fmt.Errorf("fetching profile for %s: %w", symbol, profileErr)
	}
	if snap.Profile == nil {
		return nil, fmt.Errorf("%s: %w", symbol, ErrSymbolNotFound)
	}
	return snap, nil
}
