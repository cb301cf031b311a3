package scoring

import (
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/domain"
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/governance"
)

// Data quality labels.
const (
	LabelRobusta  = "Robusta"
	LabelBoa      = "Boa"
	LabelModerada = "Moderada"
	LabelFraca    = "Fraca"
)

// DataQualityScore grades the completeness and reliability of a symbol's metric
// payload.
type DataQualityScore struct {
	Score          float64                 `json:"score"`
	Label          string                  `json:"label"`
	DirectRate     float64                 `json:"directRate"`
	CalculatedRate float64                 `json:"calculatedRate"`
	MissingRate    float64                 `json:"missingRate"`
	CoreCoverage   float64                 `json:"coreCoverage"`
	Summary        governance.StateSummary `json:"summary"`
}

// ScoreDataQuality scores a governance state summary. Metrics marked
// nao_aplicavel are excluded from the effective population so that a trust is
// not penalized for metrics that cannot apply to it.
func ScoreDataQuality(summary governance.StateSummary) DataQualityScore {
	effectiveTotal := max(1, summary.Total-summary.NaoAplicavel)

	directRate := float64(summary.OK) / float64(effectiveTotal)
	calculatedRate := float64(summary.Calculated) / float64(effectiveTotal)
	missingRate := float64(summary.SemDadoAtual+summary.ErroFonte) / float64(effectiveTotal)
	coreCoverage := summary.CoreCoverage()

	score := domain.Clamp(
		coreCoverage*100*0.55+
			directRate*100*0.25+
			calculatedRate*100*0.10-
			missingRate*100*0.25,
		0, 100)
	score = domain.Round2(score)

	return DataQualityScore{
		Score:          score,
		Label:          qualityLabel(score),
		DirectRate:     domain.Round2(directRate),
		CalculatedRate: domain.Round2(calculatedRate),
		MissingRate:    domain.Round2(missingRate),
		CoreCoverage:   domain.Round2(coreCoverage),
		Summary:        summary,
	}
}

func qualityLabel(score float64) string {
	switch {
	case score >= 85:
		return LabelRobusta
	case score >= 70:
		return LabelBoa
	case score >= 50:
		return LabelModerada
	default:
		return LabelFraca
	}
}
