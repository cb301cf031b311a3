package scoring

import (
	"math"
	"testing"

	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/governance"
)

func readyCore(key, value, benchmark string) governance.MetricState {
	return governance.MetricState{
		Key:               key,
		Value:             value,
		BenchmarkValue:    benchmark,
		Status:            governance.StatusOK,
		RequiredForSector: true,
	}
}

func TestScoreMetricWorkedExample(t *testing.T) {
	// Sector benchmark P/E 20, company 15: lower-is-better, ratio 1.333,
	// sensitivity 40 => 63.33, favorable.
	ms, ok := scoreMetric(readyCore("peRatio", "15", "20"))
	if !ok {
		t.Fatal("metric with both values parseable must be comparable")
	}
	if math.Abs(ms.Score-63.33) > 0.01 {
		t.Errorf("score = %v, want 63.33", ms.Score)
	}
	if !ms.Favorable {
		t.Error("company P/E below benchmark must count as favorable")
	}
}

func TestScoreMetricHigherIsBetter(t *testing.T) {
	// ROE 12% vs benchmark 10%: ratio 1.2, profitability sensitivity 55 => 61.
	ms, ok := scoreMetric(readyCore("roe", "12", "10"))
	if !ok {
		t.Fatal("want comparable")
	}
	if math.Abs(ms.Score-61) > 0.01 {
		t.Errorf("score = %v, want 61", ms.Score)
	}
	if !ms.Favorable {
		t.Error("ROE above benchmark must be favorable")
	}
}

func TestScoreMetricUnparseable(t *testing.T) {
	if _, ok := scoreMetric(readyCore("peRatio", "n/a", "20")); ok {
		t.Error("unparseable value must not be comparable")
	}
	if _, ok := scoreMetric(readyCore("peRatio", "0", "20")); ok {
		t.Error("zero current value on a lower-is-better metric must not divide")
	}
}

func TestScoreSectorContextBlend(t *testing.T) {
	states := []governance.MetricState{
		readyCore("peRatio", "20", "20"), // exactly at benchmark: 50
	}
	res := ScoreSectorContext(80, states)

	// coreTotal=1, coreReady=1, comparable=1 => confidence 100, no penalty.
	if res.Confidence != 100 {
		t.Fatalf("confidence = %d, want 100", res.Confidence)
	}
	// 0.5*80 + 0.5*50 = 65.
	if math.Abs(res.Score-65) > 0.01 {
		t.Errorf("score = %v, want 65", res.Score)
	}
	if res.Label != LabelSolido {
		t.Errorf("label = %s, want Solido", res.Label)
	}
}

func TestScoreSectorContextNoComparables(t *testing.T) {
	states := []governance.MetricState{
		{Key: "peRatio", Status: governance.StatusSemDadoAtual, RequiredForSector: true},
	}
	res := ScoreSectorContext(80, states)

	if res.ComparableCount != 0 {
		t.Fatalf("comparable count = %d, want 0", res.ComparableCount)
	}
	// 0.85*80 + 0.15*50 = 75.5, then the <50-confidence penalty 0.85 applies.
	want := 75.5 * 0.85
	if math.Abs(res.Score-want) > 0.01 {
		t.Errorf("score = %v, want %v", res.Score, want)
	}
	if res.Confidence != 0 {
		t.Errorf("confidence = %d, want 0 with no ready core metrics", res.Confidence)
	}
}

func TestScoreSectorContextNonReadySkipped(t *testing.T) {
	states := []governance.MetricState{
		readyCore("peRatio", "15", "20"),
		{Key: "roe", Value: "12", BenchmarkValue: "10", Status: governance.StatusErroFonte, RequiredForSector: true},
		{Key: "beta", Value: "0.7", BenchmarkValue: "1.0", Status: governance.StatusOK, RequiredForSector: false},
	}
	res := ScoreSectorContext(60, states)
	if res.ComparableCount != 1 {
		t.Errorf("comparable count = %d, want 1 (errored and non-required skipped)", res.ComparableCount)
	}
	if res.FavorableCount != 1 {
		t.Errorf("favorable count = %d, want 1", res.FavorableCount)
	}
}

func TestSectorLabels(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{90, LabelExcelente}, {85, LabelExcelente},
		{75, LabelForte}, {70, LabelForte},
		{60, LabelSolido}, {55, LabelSolido},
		{45, LabelNeutro}, {40, LabelNeutro},
		{39.99, LabelFragil}, {0, LabelFragil},
	}
	for _, tt := range tests {
		if got := sectorLabel(tt.score); got != tt.want {
			t.Errorf("sectorLabel(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestConfidencePenaltyTiers(t *testing.T) {
	if confidencePenalty(49) != 0.85 {
		t.Error("confidence below 50 must apply the 0.85 penalty")
	}
	if confidencePenalty(64) != 0.93 {
		t.Error("confidence below 65 must apply the 0.93 penalty")
	}
	if confidencePenalty(65) != 1.0 {
		t.Error("confidence at 65 or above must not be penalized")
	}
}
