package analysis

import "time"

// TraceVersion identifies the decision-trace contract. Bump on any structural
// change so downstream consumers can branch on it.
const TraceVersion = 1

// TraceStep records one guard or branch decision taken while building a report.
type TraceStep struct {
	Component string `json:"component"`
	Branch    string `json:"branch"`
	Detail    string `json:"detail,omitempty"`
}

// Trace is the structured diagnostic record attached to every response. It
// exists to make automated financial conclusions auditable.
type Trace struct {
	Version     int         `json:"version"`
	Symbol      string      `json:"symbol"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Steps       []TraceStep `json:"steps"`
}

func newTrace(symbol string, at time.Time) *Trace {
	return &Trace{Version: TraceVersion, Symbol: symbol, GeneratedAt: at}
}

func (t *Trace) add(component, branch, detail string) {
	t.Steps = append(t.Steps, TraceStep{Component: component, Branch: branch, Detail: detail})
}
