package analysis

import (
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/reit"
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/scoring"
)

// EconomicNav wraps the three cap-rate scenarios under a stable payload name.
type EconomicNav struct {
	Scenarios reit.NavScenarios `json:"scenarios"`
}

// AnalysisReport is the full response payload for one symbol. Field names are a
// stable contract; every numeric is nullable because any formula may decline to
// produce a value.
type AnalysisReport struct {
	Symbol      string   `json:"symbol"`
	CompanyName string   `json:"companyName"`
	Sector      string   `json:"sector"`
	Industry    string   `json:"industry"`
	TrustType   string   `json:"trustType"`
	Price       *float64 `json:"price"`
	MarketCap   *float64 `json:"marketCap"`

	Ffo                       *float64 `json:"ffo"`
	FfoPerShare               *float64 `json:"ffoPerShare"`
	PFfo                      *float64 `json:"pFFO"`
	FfoSource                 string   `json:"ffoSource"`
	FfoConfidence             string   `json:"ffoConfidence"`
	FfoConfidenceReasons      []string `json:"ffoConfidenceReasons"`
	Ebitda                    *float64 `json:"ebitda"`
	DebtToEbitda              *float64 `json:"debtToEbitda"`
	DebtToEquity              *float64 `json:"debtToEquity"`
	OperatingCashFlow         *float64 `json:"operatingCashFlow"`
	OperatingCashFlowPerShare *float64 `json:"operatingCashFlowPerShare"`
	FfoPayoutRatio            *float64 `json:"ffoPayoutRatio"`

	Nav            *float64     `json:"nav"`
	NavPerShare    *float64     `json:"navPerShare"`
	PriceToNav     *float64     `json:"priceToNAV"`
	EconomicNav    *EconomicNav `json:"economicNAV"`
	NavConfidence  string       `json:"navConfidence"`
	NavReasons     []string     `json:"navConfidenceReasons"`
	ImpliedCapRate *float64     `json:"impliedCapRate,omitempty"`

	IntrinsicValue    *float64 `json:"intrinsicValue"`
	DividendYield     *float64 `json:"dividendYield"`
	DividendCagr      float64  `json:"dividendCagr"`
	TrailingDividend  float64  `json:"trailingAnnualDividend"`
	ForwardDividend   float64  `json:"forwardAnnualDividend"`
	DividendFrequency string   `json:"dividendFrequency"`
	Valuation         *string  `json:"valuation"`
	DdmConfidence     string   `json:"ddmConfidence"`
	DdmConfidenceNote string   `json:"ddmConfidenceNote,omitempty"`

	ReitProfile       string `json:"reitProfile"`
	ProfileConfidence string `json:"profileConfidence"`

	SectorContextScore scoring.SectorContextScore `json:"sectorContextScore"`
	DataQualityScore   scoring.DataQualityScore   `json:"dataQualityScore"`

	DecisionTrace *Trace `json:"_decisionTrace,omitempty"`
}
