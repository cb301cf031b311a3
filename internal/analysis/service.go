package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/config"
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/dividend"
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/domain"
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/fmp"
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/governance"
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/reit"
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/scoring"
)

// ErrNotFound indicates the symbol has no profile record upstream.
var ErrNotFound = errors.New("company not found")

// neutralComposite anchors the sector blend when no composite score is supplied.
const neutralComposite = 50.0

// SnapshotSource provides the raw financial snapshot for a symbol.
type SnapshotSource interface {
	FetchSnapshot(ctx context.Context, symbol string) (*domain.RawFinancialSnapshot, error)
}

// Options tunes a single analysis request.
type Options struct {
	// CompositeScore is the collaborator-computed quick-analysis composite
	// score; the neutral 50 is assumed when absent.
	CompositeScore *float64
}

// Service orchestrates one valuation request: concurrent snapshot retrieval,
// the independent valuation components, and the governance-driven scoring.
// It holds no cross-request state; every entity lives and dies with the request.
type Service struct {
	source   SnapshotSource
	states   governance.StateSource
	features config.Features
	now      func() time.Time
}

// NewService creates the analysis Service. The governance state source may be a
// static fallback when no store is configured.
func NewService(source SnapshotSource, states governance.StateSource, features config.Features) *Service {
	if source == nil {
		panic("analysis.NewService: source is nil")
	}
	if states == nil {
		panic("analysis.NewService: states is nil")
	}
	return &Service{source: source, states: states, features: features, now: time.Now}
}

// Analyze builds the full valuation and data-quality report for one symbol.
func (s *Service) Analyze(ctx context.Context, symbol string, opts Options) (*AnalysisReport, error) {
	snap, err := s.source.FetchSnapshot(ctx, symbol)
	if err != nil {
		if errors.Is(err, fmp.ErrSymbolNotFound) {
			return nil, fmt.Errorf("%s: %w", symbol, ErrNotFound)
		}
		return nil, fmt.Errorf("fetching snapshot for %s: %w", symbol, err)
	}

	now := s.now()
	trace := newTrace(symbol, now)
	for _, doc := range snap.Degraded {
		trace.add("snapshot", "upstream-degraded", doc)
	}

	div := dividend.Analyze(snap.Dividends, now)
	trace.add("dividends", "frequency", fmt.Sprintf("%s (%d/yr, %d payments in 5y window)", div.Frequency, div.PaymentsPerYear, div.FilteredCount))
	if div.CAGRDefaulted {
		trace.add("dividends", "cagr-default", "historico insuficiente, CAGR assumido em 3%")
	}

	trust := reit.ClassifyTrust(industryOf(snap))
	trace.add("classifier", "trust-type", trust.String())

	ffo := reit.EstimateFFO(snap, trust, div.TrailingAnnual)
	trace.add("ffo", "source", string(ffo.Source))
	if ffo.DepreciationGuarded {
		trace.add("ffo", "plausibility-guard", "depreciacao zero tratada como em falta")
	}
	if ffo.SharesEstimated {
		trace.add("ffo", "shares-estimated", "marketCap/price")
	}

	nav := reit.EstimateNAV(snap)
	if nav.CapRateFromTable {
		trace.add("nav", "cap-rate", "tabela setorial")
	} else {
		trace.add("nav", "cap-rate", "default 6.25%")
	}
	for _, r := range nav.Reasons {
		trace.add("nav", "confidence-reason", r)
	}

	beta := 0.0
	if snap.Profile != nil {
		beta = snap.Profile.Beta
	}
	ddm := reit.ValueDDM(div, snap.BestPrice(), beta)
	for _, r := range ddm.Reasons {
		trace.add("ddm", "confidence-reason", r)
	}

	profile := reit.DetectProfile(domain.Deref(ddm.DividendYield, 0), div.CAGR5y)
	trace.add("profile", "classified", string(profile.Profile))

	states, err := s.states.FetchStates(ctx, symbol)
	if err != nil {
		// Governance degradation is recoverable: score on an empty state set.
		slog.Warn("governance state fetch degraded", "symbol", symbol, "error", err)
		trace.add("governance", "upstream-degraded", err.Error())
		states = nil
	}

	composite := neutralComposite
	if opts.CompositeScore != nil {
		composite = *opts.CompositeScore
	}
	sector := scoring.ScoreSectorContext(composite, states)
	quality := scoring.ScoreDataQuality(governance.Summarize(states))

	report := s.buildReport(snap, trust, div, ffo, nav, ddm, profile, sector, quality)
	if s.features.DecisionTrace {
		report.DecisionTrace = trace
	}
	return report, nil
}

func (s *Service) buildReport(
	snap *domain.RawFinancialSnapshot,
	trust reit.TrustType,
	div dividend.Analysis,
	ffo reit.FfoResult,
	nav reit.NavResult,
	ddm reit.DdmResult,
	profile reit.ReitProfile,
	sector scoring.SectorContextScore,
	quality scoring.DataQualityScore,
) *AnalysisReport {
	report := &AnalysisReport{
		Symbol:    snap.Symbol,
		TrustType: trust.String(),
		Price:     snap.BestPrice(),
		MarketCap: snap.MarketCap(),

		Ffo:                       ffo.Ffo,
		FfoPerShare:               ffo.FfoPerShare,
		PFfo:                      ffo.PFfo,
		FfoSource:                 string(ffo.Source),
		FfoConfidence:             string(ffo.Confidence),
		FfoConfidenceReasons:      ffo.Reasons,
		Ebitda:                    ffo.Ebitda,
		DebtToEbitda:              ffo.DebtToEbitda,
		DebtToEquity:              ffo.DebtToEquity,
		OperatingCashFlowPerShare: ffo.OperatingCashFlowPerShare,
		FfoPayoutRatio:            ffo.PayoutRatio,

		Nav:           nav.BookNav,
		NavPerShare:   nav.BookNavPerShare,
		PriceToNav:    nav.PriceToNav,
		EconomicNav:   &EconomicNav{Scenarios: nav.Scenarios},
		NavConfidence: string(nav.Confidence),
		NavReasons:    nav.Reasons,

		IntrinsicValue:    ddm.IntrinsicValue,
		DividendYield:     ddm.DividendYield,
		DividendCagr:      div.CAGR5y,
		TrailingDividend:  div.TrailingAnnual,
		ForwardDividend:   div.ForwardAnnual,
		DividendFrequency: string(div.Frequency),
		Valuation:         ddm.ValuationLabel,
		DdmConfidence:     string(ddm.Confidence),
		DdmConfidenceNote: strings.Join(ddm.Reasons, "; "),

		ReitProfile:       string(profile.Profile),
		ProfileConfidence: string(profile.Confidence),

		SectorContextScore: sector,
		DataQualityScore:   quality,
	}

	if snap.Profile != nil {
		report.CompanyName = snap.Profile.CompanyName
		report.Sector = snap.Profile.Sector
		report.Industry = snap.Profile.Industry
	}
	if snap.CashFlow != nil {
		report.OperatingCashFlow = domain.Guard(snap.CashFlow.OperatingCashFlow, domain.Deref(snap.MarketCap(), 0))
	}
	if s.features.ImpliedCapRate {
		report.ImpliedCapRate = nav.ImpliedCapRate
	}
	if !s.features.MetricBreakdown {
		report.SectorContextScore.Metrics = nil
	}
	return report
}

func industryOf(snap *domain.RawFinancialSnapshot) string {
	if snap.Profile == nil {
		return ""
	}
	return snap.Profile.Industry
}
