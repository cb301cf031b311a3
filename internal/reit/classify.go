package reit

import "strings"

// TrustType is the tagged classification of a trust derived from its free-text
// industry label. Upstream label text changes must land in TrustStandard rather
// than silently misclassifying.
type TrustType int

const (
	// TrustStandard is any equity REIT without special FFO treatment.
	TrustStandard TrustType = iota
	// TrustMortgage holds mortgages rather than properties; FFO is not
	// applicable and Distributable Earnings is the relevant measure.
	TrustMortgage
	// TrustSpecialty covers data centers, towers and similar trusts whose
	// depreciation includes non-real-estate equipment.
	TrustSpecialty
)

func (t TrustType) String() string {
	switch t {
	case TrustMortgage:
		return "mortgage"
	case TrustSpecialty:
		return "specialty"
	default:
		return "standard"
	}
}

// ClassifyTrust maps the upstream industry label to a TrustType.
func ClassifyTrust(industry string) TrustType {
	label := strings.ToLower(industry)
	switch {
	case strings.Contains(label, "mortgage"):
		return TrustMortgage
	case strings.Contains(label, "specialty"):
		return TrustSpecialty
	default:
		return TrustStandard
	}
}

// Confidence grades a computed result. Confidence is always derived from source
// and guard flags, never set independently.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)
