package reit

// ProfileKind is the dividend-signal classification of a trust.
type ProfileKind string

const (
	ProfileGrowth ProfileKind = "growth"
	ProfileIncome ProfileKind = "income"
	ProfileMixed  ProfileKind = "mixed"
)

// ReitProfile classifies a trust as growth/income/mixed from dividend yield and
// dividend growth alone.
type ReitProfile struct {
	Profile    ProfileKind `json:"reitProfile"`
	Confidence Confidence  `json:"profileConfidence"`
	Reasons    []string    `json:"profileReasons"`
}

// DetectProfile is a pure classifier over (dividendYield, dividendCagr), both as
// fractions. Confidence is high only when at least two independent signals agree
// on the winning side.
func DetectProfile(dividendYield, dividendCagr float64) ReitProfile {
	growthSignals := 0
	var growthReasons []string
	if dividendYield < 0.03 {
		growthSignals++
		growthReasons = append(growthReasons, "dividend yield abaixo de 3%")
	}
	if dividendCagr < 0.02 {
		growthSignals++
		growthReasons = append(growthReasons, "CAGR de dividendos abaixo de 2%")
	}

	incomeSignals := 0
	var incomeReasons []string
	if dividendYield >= 0.04 {
		incomeSignals++
		incomeReasons = append(incomeReasons, "dividend yield igual ou superior a 4%")
	}
	if dividendCagr >= 0.02 {
		incomeSignals++
		incomeReasons = append(incomeReasons, "CAGR de dividendos igual ou superior a 2%")
	}

	switch {
	case growthSignals > 0:
		return ReitProfile{
			Profile:    ProfileGrowth,
			Confidence: agreementConfidence(growthSignals),
			Reasons:    growthReasons,
		}
	case incomeSignals == 2:
		return ReitProfile{
			Profile:    ProfileIncome,
			Confidence: ConfidenceHigh,
			Reasons:    incomeReasons,
		}
	default:
		return ReitProfile{
			Profile:    ProfileMixed,
			Confidence: ConfidenceLow,
			Reasons:    []string{"sinais de yield e crescimento nao convergem"},
		}
	}
}

func agreementConfidence(signals int) Confidence {
	if signals >= 2 {
		return ConfidenceHigh
	}
	return ConfidenceLow
}
