package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/analysis"
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/config"
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/domain"
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/fmp"
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/governance"
)

type stubSource struct{}

func (stubSource) FetchSnapshot(_ context.Context, symbol string) (*domain.RawFinancialSnapshot, error) {
	if symbol != "PLD" {
		return nil, fmt.Errorf("%s: %w", symbol, fmp.ErrSymbolNotFound)
	}
	var dividends []domain.DividendPaymentRecord
	for i := 0; i < 8; i++ {
		dividends = append(dividends, domain.DividendPaymentRecord{
			Date:           time.Now().AddDate(0, -3*i, 0),
			AmountPerShare: 0.90,
		})
	}
	return &domain.RawFinancialSnapshot{
		Symbol: "PLD",
		Profile: &domain.CompanyProfile{
			Symbol:      "PLD",
			CompanyName: "Prologis",
			Sector:      "Real Estate",
			Industry:    "REIT - Industrial",
			Beta:        1.1,
		},
		Quote: &domain.Quote{
			Price:             domain.Ptr(110.0),
			MarketCap:         domain.Ptr(100_000_000_000.0),
			SharesOutstanding: domain.Ptr(920_000_000.0),
		},
		Income: &domain.IncomeStatement{
			GrossProfit:                 domain.Ptr(5_000_000_000.0),
			NetIncome:                   domain.Ptr(3_000_000_000.0),
			DepreciationAndAmortization: domain.Ptr(2_500_000_000.0),
			WeightedAverageShsOutDil:    domain.Ptr(920_000_000.0),
		},
		Dividends: dividends,
	}, nil
}

type stubExporter struct {
	runs int
	err  error
}

func (e *stubExporter) RunOnce(_ context.Context) error {
	e.runs++
	return e.err
}

func newTestServer(t *testing.T, exporter Exporter, adminKey string) *httptest.Server {
	t.Helper()
	svc := analysis.NewService(stubSource{}, &governance.StaticStateSource{}, config.Features{})
	srv := NewServer("0", NewHandler(svc, exporter), adminKey)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func TestGetAnalysis(t *testing.T) {
	ts := newTestServer(t, nil, "")

	resp, err := http.Get(ts.URL + "/api/v1/reits/pld/analysis?composite=70")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var report analysis.AnalysisReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if report.Symbol != "PLD" {
		t.Errorf("symbol = %s, want PLD (path symbols are upper-cased)", report.Symbol)
	}
	if report.TrustType != "standard" {
		t.Errorf("trustType = %s, want standard", report.TrustType)
	}
	if report.FfoPerShare == nil {
		t.Error("ffoPerShare missing from payload")
	}
}

func TestGetAnalysisNotFound(t *testing.T) {
	ts := newTestServer(t, nil, "")

	resp, err := http.Get(ts.URL + "/api/v1/reits/ZZZZ/analysis")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestGetAnalysisInvalidComposite(t *testing.T) {
	ts := newTestServer(t, nil, "")

	for _, q := range []string{"composite=abc", "composite=-3", "composite=101"} {
		resp, err := http.Get(ts.URL + "/api/v1/reits/PLD/analysis?" + q)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, resp.StatusCode)
		}
	}
}

func TestGetQuality(t *testing.T) {
	ts := newTestServer(t, nil, "")

	resp, err := http.Get(ts.URL + "/api/v1/reits/PLD/quality")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if _, ok := payload["dataQualityScore"]; !ok {
		t.Error("quality payload missing dataQualityScore")
	}
	if _, ok := payload["sectorContextScore"]; ok {
		t.Error("quality payload must not carry the sector score")
	}
}

func TestTriggerExportAuth(t *testing.T) {
	exporter := &stubExporter{}
	ts := newTestServer(t, exporter, "secret")

	resp, err := http.Post(ts.URL+"/api/v1/export", "application/json", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", resp.StatusCode)
	}
	if exporter.runs != 0 {
		t.Error("export must not run without auth")
	}

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/export", nil)
	req.Header.Set("Authorization", "Bearer secret")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("authenticated status = %d, want 200", resp.StatusCode)
	}
	if exporter.runs != 1 {
		t.Errorf("export runs = %d, want 1", exporter.runs)
	}
}

func TestTriggerExportUnconfigured(t *testing.T) {
	ts := newTestServer(t, nil, "")

	resp, err := http.Post(ts.URL+"/api/v1/export", "application/json", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}

func TestTriggerExportFailure(t *testing.T) {
	ts := newTestServer(t, &stubExporter{err: errors.New("sheet unreachable")}, "")

	resp, err := http.Post(ts.URL+"/api/v1/export", "application/json", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !strings.Contains(body["error"], "export") {
		t.Errorf("error = %q, want export failure message", body["error"])
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil, "")

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
