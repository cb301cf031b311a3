package reit

import (
	"math"
	"testing"

	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/domain"
)

func testSnapshot() *domain.RawFinancialSnapshot {
	return &domain.RawFinancialSnapshot{
		Symbol: "TEST",
		Profile: &domain.CompanyProfile{
			Symbol:   "TEST",
			Industry: "REIT - Retail",
			Beta:     0.9,
		},
		Quote: &domain.Quote{
			Price:             domain.Ptr(25.0),
			MarketCap:         domain.Ptr(2_500_000_000.0),
			SharesOutstanding: domain.Ptr(100_000_000.0),
		},
		Income: &domain.IncomeStatement{
			Revenue:                     domain.Ptr(800_000_000.0),
			GrossProfit:                 domain.Ptr(500_000_000.0),
			OperatingIncome:             domain.Ptr(250_000_000.0),
			NetIncome:                   domain.Ptr(120_000_000.0),
			DepreciationAndAmortization: domain.Ptr(180_000_000.0),
			WeightedAverageShsOutDil:    domain.Ptr(100_000_000.0),
		},
		Balance: &domain.BalanceSheet{
			TotalAssets:             domain.Ptr(6_000_000_000.0),
			TotalLiabilities:        domain.Ptr(3_500_000_000.0),
			TotalStockholdersEquity: domain.Ptr(2_500_000_000.0),
			CashAndCashEquivalents:  domain.Ptr(200_000_000.0),
			TotalDebt:               domain.Ptr(3_000_000_000.0),
			NetDebt:                 domain.Ptr(2_800_000_000.0),
		},
		CashFlow: &domain.CashFlowStatement{
			OperatingCashFlow:           domain.Ptr(300_000_000.0),
			DepreciationAndAmortization: domain.Ptr(180_000_000.0),
		},
	}
}

func TestEstimateFFOMortgageNotApplicable(t *testing.T) {
	snap := testSnapshot()
	snap.KeyMetrics = &domain.KeyMetrics{FfoPerShare: domain.Ptr(2.5)}

	res := EstimateFFO(snap, TrustMortgage, 1.0)
	if res.Source != FfoSourceNotApplicable {
		t.Fatalf("source = %s, want not-applicable: mortgage wins over every other field", res.Source)
	}
	if res.Ffo != nil || res.FfoPerShare != nil {
		t.Error("mortgage trust must not produce a numeric FFO")
	}
	if res.Confidence != ConfidenceLow {
		t.Errorf("confidence = %s, want low", res.Confidence)
	}
}

func TestEstimateFFOKeyMetricsPriority(t *testing.T) {
	snap := testSnapshot()
	snap.KeyMetrics = &domain.KeyMetrics{FfoPerShare: domain.Ptr(2.5)}

	res := EstimateFFO(snap, TrustStandard, 1.5)
	if res.Source != FfoSourceKeyMetrics {
		t.Fatalf("source = %s, want key-metrics", res.Source)
	}
	if res.FfoPerShare == nil || *res.FfoPerShare != 2.5 {
		t.Fatalf("ffoPerShare = %v, want 2.5", res.FfoPerShare)
	}
	if res.Confidence != ConfidenceHigh {
		t.Errorf("confidence = %s, want high for clean key-metrics", res.Confidence)
	}
	if res.PFfo == nil || math.Abs(*res.PFfo-10) > 1e-9 {
		t.Errorf("pFFO = %v, want 10 (25 / 2.5)", res.PFfo)
	}
	if res.PayoutRatio == nil || math.Abs(*res.PayoutRatio-0.6) > 1e-9 {
		t.Errorf("payout = %v, want 0.6 (1.5 / 2.5)", res.PayoutRatio)
	}
}

func TestEstimateFFOSimplified(t *testing.T) {
	snap := testSnapshot()
	res := EstimateFFO(snap, TrustStandard, 1.0)

	if res.Source != FfoSourceSimplified {
		t.Fatalf("source = %s, want simplified", res.Source)
	}
	// (120M + 180M) / 100M shares
	if res.FfoPerShare == nil || math.Abs(*res.FfoPerShare-3.0) > 1e-9 {
		t.Fatalf("ffoPerShare = %v, want 3.0", res.FfoPerShare)
	}
	if res.Confidence != ConfidenceMedium {
		t.Errorf("confidence = %s, want medium for clean simplified", res.Confidence)
	}
}

func TestEstimateFFOSpecialtyCappedLow(t *testing.T) {
	snap := testSnapshot()
	res := EstimateFFO(snap, TrustSpecialty, 1.0)

	if res.Source != FfoSourceSimplifiedSpecialty {
		t.Fatalf("source = %s, want simplified-specialty", res.Source)
	}
	if res.Confidence != ConfidenceLow {
		t.Errorf("confidence = %s, want low (overstatement risk)", res.Confidence)
	}
	if len(res.Reasons) == 0 {
		t.Error("specialty downgrade must carry an explanatory reason")
	}
}

func TestEstimateFFOGuardedDepreciation(t *testing.T) {
	snap := testSnapshot()
	snap.CashFlow.DepreciationAndAmortization = domain.Ptr(0.0)
	snap.Income.DepreciationAndAmortization = nil

	res := EstimateFFO(snap, TrustStandard, 1.0)
	if !res.DepreciationGuarded {
		t.Fatal("zero depreciation at 2.5B market cap must be guarded")
	}
	// Formula still runs with zero as fallback: 120M / 100M shares.
	if res.FfoPerShare == nil || math.Abs(*res.FfoPerShare-1.2) > 1e-9 {
		t.Fatalf("ffoPerShare = %v, want 1.2", res.FfoPerShare)
	}
	if res.Confidence != ConfidenceLow {
		t.Errorf("confidence = %s, want low when depreciation was guarded", res.Confidence)
	}
}

func TestEstimateFFOSharesEstimatedDowngrades(t *testing.T) {
	snap := testSnapshot()
	snap.Income.WeightedAverageShsOutDil = nil
	snap.Quote.SharesOutstanding = nil
	snap.KeyMetrics = &domain.KeyMetrics{FfoPerShare: domain.Ptr(2.5)}

	res := EstimateFFO(snap, TrustStandard, 1.0)
	if res.SharesMethod != SharesEstimated || !res.SharesEstimated {
		t.Fatalf("shares method = %s, want estimated (marketCap/price)", res.SharesMethod)
	}
	if res.Confidence == ConfidenceHigh {
		t.Error("confidence cannot be high when shares were estimated")
	}
	if res.OperatingCashFlowPerShare != nil && !res.CfoApprox {
		t.Error("CFO per share from estimated shares must be flagged approx")
	}
}

func TestEstimateFFOGuardedCFO(t *testing.T) {
	snap := testSnapshot()
	snap.CashFlow.OperatingCashFlow = domain.Ptr(0.0)

	res := EstimateFFO(snap, TrustStandard, 1.0)
	if res.OperatingCashFlowPerShare != nil {
		t.Errorf("CFO/share = %v, want nil: reported zero CFO at 2.5B market cap is guarded", *res.OperatingCashFlowPerShare)
	}
}

func TestEstimateFFODerivedMetrics(t *testing.T) {
	snap := testSnapshot()
	snap.Income.EBITDA = domain.Ptr(400_000_000.0)

	res := EstimateFFO(snap, TrustStandard, 1.0)
	if res.Ebitda == nil || *res.Ebitda != 400_000_000 {
		t.Fatalf("ebitda = %v, want reported 400M", res.Ebitda)
	}
	if res.DebtToEbitda == nil || math.Abs(*res.DebtToEbitda-7.5) > 1e-9 {
		t.Errorf("debt/EBITDA = %v, want 7.5", res.DebtToEbitda)
	}
	if res.DebtToEquity == nil || math.Abs(*res.DebtToEquity-1.2) > 1e-9 {
		t.Errorf("debt/equity = %v, want 1.2", res.DebtToEquity)
	}
	if res.OperatingCashFlowPerShare == nil || math.Abs(*res.OperatingCashFlowPerShare-3.0) > 1e-9 {
		t.Errorf("CFO/share = %v, want 3.0", res.OperatingCashFlowPerShare)
	}
}

func TestEstimateFFOEbitdaFallback(t *testing.T) {
	snap := testSnapshot()
	res := EstimateFFO(snap, TrustStandard, 1.0)
	// No reported EBITDA: operating income + depreciation.
	if res.Ebitda == nil || *res.Ebitda != 430_000_000 {
		t.Errorf("ebitda = %v, want 430M fallback", res.Ebitda)
	}
}

func TestClassifyTrust(t *testing.T) {
	tests := []struct {
		industry string
		want     TrustType
	}{
		{"REIT - Mortgage", TrustMortgage},
		{"REIT - Specialty", TrustSpecialty},
		{"REIT - Office", TrustStandard},
		{"Mortgage Finance", TrustMortgage},
		{"", TrustStandard},
	}
	for _, tt := range tests {
		if got := ClassifyTrust(tt.industry); got != tt.want {
			t.Errorf("ClassifyTrust(%q) = %s, want %s", tt.industry, got, tt.want)
		}
	}
}
