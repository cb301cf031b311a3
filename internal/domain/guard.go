package domain

// DefaultGuardThreshold is the market-cap materiality threshold above which a
// reported exact zero is treated as "not reported".
const DefaultGuardThreshold = 500_000_000

// Provenance records how a guarded value was obtained.
type Provenance string

const (
	ProvenanceReported Provenance = "reported"
	ProvenanceZero     Provenance = "zero"
	ProvenanceGuarded  Provenance = "guarded-to-missing"
)

// Guard normalizes the upstream zero-vs-missing ambiguity. A nil value stays nil.
// An exact zero reported by a company whose market cap exceeds the threshold is
// implausible for material line items (CFO, D&A, EBITDA, equity, gross profit) and
// is converted to nil. Everything else, including legitimate zeros of small
// companies and all negative values, passes through unchanged.
//
// Guard is pure and idempotent; it is the single choke point keeping "0" from
// behaving like "no data" downstream.
func Guard(value *float64, marketCap float64) *float64 {
	v, _ := GuardWithProvenance(value, marketCap, DefaultGuardThreshold)
	return v
}

// GuardWithProvenance is Guard with an explicit threshold and a provenance flag
// for the decision trace. A nil input carries no provenance.
func GuardWithProvenance(value *float64, marketCap, threshold float64) (*float64, Provenance) {
	if value == nil {
		return nil, ""
	}
	if *value == 0 {
		if marketCap > threshold {
			return nil, ProvenanceGuarded
		}
		return value, ProvenanceZero
	}
	return value, ProvenanceReported
}
