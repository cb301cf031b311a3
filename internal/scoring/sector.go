package scoring

import (
	"math"

	"github.com/samber/lo"

	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/domain"
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/governance"
)

// Sector score labels.
const (
	LabelExcelente = "Excelente"
	LabelForte     = "Forte"
	LabelSolido    = "Solido"
	LabelNeutro    = "Neutro"
	LabelFragil    = "Fragil"
)

// MetricScore is the benchmark-relative score of a single comparable metric.
type MetricScore struct {
	Key       string  `json:"key"`
	Ratio     float64 `json:"ratio"`
	Score     float64 `json:"score"`
	Favorable bool    `json:"favorable"`
}

// SectorContextScore places a company's composite score in its sector context.
// Recomputed on every request, never cached.
type SectorContextScore struct {
	Score           float64       `json:"score"`
	Label           string        `json:"label"`
	Confidence      int           `json:"confidence"`
	RelativeScore   float64       `json:"relativeScore"`
	ComparableCount int           `json:"comparableCount"`
	FavorableCount  int           `json:"favorableCount"`
	Metrics         []MetricScore `json:"metrics"`
}

// ScoreSectorContext blends a composite company score with a benchmark-relative
// score built from the governance collaborator's per-metric states. Only metrics
// that are required for the sector, in a ready state and parseable on both sides
// participate.
func ScoreSectorContext(compositeScore float64, states []governance.MetricState) SectorContextScore {
	summary := governance.Summarize(states)

	var metrics []MetricScore
	comparableCore := 0
	for _, st := range states {
		if !st.RequiredForSector || !st.Status.Ready() {
			continue
		}
		ms, ok := scoreMetric(st)
		if !ok {
			continue
		}
		metrics = append(metrics, ms)
		comparableCore++
	}

	relative := 50.0
	if len(metrics) > 0 {
		relative = lo.SumBy(metrics, func(m MetricScore) float64 { return m.Score }) / float64(len(metrics))
	}

	// Blend: with no comparable metric the composite carries almost all the
	// weight against a neutral anchor.
	var blended float64
	if len(metrics) > 0 {
		blended = 0.5*compositeScore + 0.5*relative
	} else {
		blended = 0.85*compositeScore + 0.15*50
	}

	confidence := sectorConfidence(summary, comparableCore)
	blended *= confidencePenalty(confidence)

	score := domain.Round2(domain.Clamp(blended, 0, 100))

	return SectorContextScore{
		Score:           score,
		Label:           sectorLabel(score),
		Confidence:      confidence,
		RelativeScore:   domain.Round2(relative),
		ComparableCount: len(metrics),
		FavorableCount:  lo.CountBy(metrics, func(m MetricScore) bool { return m.Favorable }),
		Metrics:         metrics,
	}
}

// scoreMetric converts one metric's deviation from its sector benchmark into a
// 0-100 score. Polarity comes from the catalog: for lower-is-better metrics the
// ratio inverts so that beating the benchmark always pushes above 50.
func scoreMetric(st governance.MetricState) (MetricScore, bool) {
	current := domain.ParseMetricValue(st.Value)
	benchmark := domain.ParseMetricValue(st.BenchmarkValue)
	if current == nil || benchmark == nil {
		return MetricScore{}, false
	}

	meta := governance.Lookup(st.Key)

	var ratio float64
	switch {
	case meta.LowerIsBetter:
		if *current == 0 {
			return MetricScore{}, false
		}
		ratio = *benchmark / *current
	default:
		if *benchmark == 0 {
			return MetricScore{}, false
		}
		ratio = *current / *benchmark
	}

	score := domain.Clamp(50+(ratio-1)*governance.Sensitivity(meta.Category), 0, 100)

	favorable := *current >= *benchmark
	if meta.LowerIsBetter {
		favorable = *current <= *benchmark
	}

	return MetricScore{
		Key:       st.Key,
		Ratio:     domain.Round2(ratio),
		Score:     domain.Round2(score),
		Favorable: favorable,
	}, true
}

// sectorConfidence weighs core readiness against how many core metrics were
// actually comparable to a benchmark.
func sectorConfidence(summary governance.StateSummary, comparableCore int) int {
	comparableRatio := 0.0
	if summary.CoreTotal > 0 {
		comparableRatio = float64(comparableCore) / float64(summary.CoreTotal)
	}
	raw := summary.CoreCoverage()*100*0.65 + comparableRatio*35
	return int(math.Round(domain.Clamp(raw, 0, 100)))
}

// confidencePenalty shrinks the blended score when the inputs behind it are thin.
func confidencePenalty(confidence int) float64 {
	switch {
	case confidence < 50:
		return 0.85
	case confidence < 65:
		return 0.93
	default:
		return 1.0
	}
}

func sectorLabel(score float64) string {
	switch {
	case score >= 85:
		return LabelExcelente
	case score >= 70:
		return LabelForte
	case score >= 55:
		return LabelSolido
	case score >= 40:
		return LabelNeutro
	default:
		return LabelFragil
	}
}
