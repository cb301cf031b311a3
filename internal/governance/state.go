package governance

import "github.com/samber/lo"

// Status is the readiness state the governance collaborator assigns to a metric.
type Status string

const (
	StatusOK           Status = "ok"
	StatusCalculated   Status = "calculated"
	StatusNaoAplicavel Status = "nao_aplicavel"
	StatusSemDadoAtual Status = "sem_dado_atual"
	StatusErroFonte    Status = "erro_fonte"
)

// Ready reports whether the metric's value is usable for scoring.
func (s Status) Ready() bool {
	return s == StatusOK || s == StatusCalculated
}

// MetricState is the per-symbol state of one quick-analysis metric, owned by the
// governance collaborator and consumed read-only here.
type MetricState struct {
	Key               string `json:"key"`
	Value             string `json:"value"`
	BenchmarkValue    string `json:"benchmarkValue"`
	Status            Status `json:"status"`
	RequiredForSector bool   `json:"requiredForSector"`
}

// StateSummary aggregates a symbol's metric states for the scoring components.
type StateSummary struct {
	Total        int `json:"total"`
	OK           int `json:"ok"`
	Calculated   int `json:"calculated"`
	NaoAplicavel int `json:"naoAplicavel"`
	SemDadoAtual int `json:"semDadoAtual"`
	ErroFonte    int `json:"erroFonte"`
	CoreTotal    int `json:"coreTotal"`
	CoreReady    int `json:"coreReady"`
}

// Summarize counts metric states by status and core coverage.
func Summarize(states []MetricState) StateSummary {
	byStatus := lo.CountValuesBy(states, func(s MetricState) Status { return s.Status })

	core := lo.Filter(states, func(s MetricState, _ int) bool { return s.RequiredForSector })
	coreReady := lo.CountBy(core, func(s MetricState) bool { return s.Status.Ready() })

	return StateSummary{
		Total:        len(states),
		OK:           byStatus[StatusOK],
		Calculated:   byStatus[StatusCalculated],
		NaoAplicavel: byStatus[StatusNaoAplicavel],
		SemDadoAtual: byStatus[StatusSemDadoAtual],
		ErroFonte:    byStatus[StatusErroFonte],
		CoreTotal:    len(core),
		CoreReady:    coreReady,
	}
}

// CoreCoverage is the fraction of required-core metrics in a ready state.
func (s StateSummary) CoreCoverage() float64 {
	if s.CoreTotal == 0 {
		return 0
	}
	return float64(s.CoreReady) / float64(s.CoreTotal)
}
