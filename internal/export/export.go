package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/analysis"
)

// sheetName is the tab every writer fills.
const sheetName = "REITS"

// reportHeader is the column layout shared by the XLSX and Sheets writers.
var reportHeader = []any{
	"Symbol", "Name", "Sector", "Industry", "Trust Type",
	"Price", "Market Cap",
	"FFO/Share", "P/FFO", "FFO Source", "FFO Confidence",
	"NAV/Share", "P/NAV", "Economic NAV/Share", "NAV Confidence",
	"Intrinsic Value (DDM)", "Valuation", "DDM Confidence",
	"Dividend Yield", "Dividend CAGR 5y", "Frequency", "Trailing Dividend",
	"REIT Profile",
	"Sector Score", "Sector Label", "Sector Confidence",
	"Quality Score", "Quality Label",
}

// SheetWriter writes a report grid (header row included) to a destination.
type SheetWriter interface {
	Write(ctx context.Context, grid [][]any) error
}

// Analyzer produces the analysis report for one symbol.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string, opts analysis.Options) (*analysis.AnalysisReport, error)
}

// Service recomputes the watchlist and delegates writing to the configured
// destinations. One failing symbol never aborts the run; one failing writer does.
type Service struct {
	analyses  Analyzer
	watchlist []string
	writers   []SheetWriter
}

// NewService creates a new export Service.
func NewService(analyses Analyzer, watchlist []string, writers ...SheetWriter) *Service {
	return &Service{analyses: analyses, watchlist: watchlist, writers: writers}
}

// RunOnce analyzes every watchlist symbol and writes the grid to each writer.
func (s *Service) RunOnce(ctx context.Context) error {
	if len(s.watchlist) == 0 {
		return fmt.Errorf("export: empty watchlist")
	}

	reports := make([]*analysis.AnalysisReport, 0, len(s.watchlist))
	for _, symbol := range s.watchlist {
		report, err := s.analyses.Analyze(ctx, symbol, analysis.Options{})
		if err != nil {
			slog.Warn("export: symbol analysis failed, skipping", "symbol", symbol, "error", err)
			continue
		}
		reports = append(reports, report)
	}
	if len(reports) == 0 {
		return fmt.Errorf("export: no symbol of %d could be analyzed", len(s.watchlist))
	}

	grid := buildReportGrid(reports)
	for _, w := range s.writers {
		if err := w.Write(ctx, grid); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
	}
	slog.Info("export run complete", "symbols", len(reports), "writers", len(s.writers))
	return nil
}

// buildReportGrid flattens reports into the shared header-plus-rows grid.
func buildReportGrid(reports []*analysis.AnalysisReport) [][]any {
	grid := make([][]any, 0, len(reports)+1)
	grid = append(grid, reportHeader)

	rows := lo.Map(reports, func(r *analysis.AnalysisReport, _ int) []any {
		return []any{
			r.Symbol, r.CompanyName, r.Sector, r.Industry, r.TrustType,
			floatCell(r.Price), floatCell(r.MarketCap),
			floatCell(r.FfoPerShare), floatCell(r.PFfo), r.FfoSource, r.FfoConfidence,
			floatCell(r.NavPerShare), floatCell(r.PriceToNav), baseEconomicNavPerShare(r), r.NavConfidence,
			floatCell(r.IntrinsicValue), strCell(r.Valuation), r.DdmConfidence,
			floatCell(r.DividendYield), r.DividendCagr, r.DividendFrequency, r.TrailingDividend,
			r.ReitProfile,
			r.SectorContextScore.Score, r.SectorContextScore.Label, r.SectorContextScore.Confidence,
			r.DataQualityScore.Score, r.DataQualityScore.Label,
		}
	})
	return append(grid, rows...)
}

func baseEconomicNavPerShare(r *analysis.AnalysisReport) any {
	if r.EconomicNav == nil {
		return nil
	}
	return floatCell(r.EconomicNav.Scenarios.Base.NavPerShare)
}

func floatCell(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func strCell(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
