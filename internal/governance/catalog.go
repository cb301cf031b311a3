package governance

// Category groups quick-analysis metrics for benchmark sensitivity purposes.
type Category string

const (
	CategoryValuation        Category = "valuation"
	CategoryCapitalStructure Category = "capital-structure"
	CategoryGrowth           Category = "growth"
	CategoryProfitability    Category = "profitability"
	CategoryRisk             Category = "risk"
	CategoryOther            Category = "other"
)

// MetricMeta holds the canonical definition of a quick-analysis metric.
type MetricMeta struct {
	Name          string
	Category      Category
	Core          bool
	LowerIsBetter bool
}

// metricCatalog maps metric keys to their canonical metadata. All consumers MUST
// resolve metadata through Lookup; unknown keys fall back to a non-core,
// higher-is-better default in the "other" category.
var metricCatalog = map[string]MetricMeta{
	"peRatio":           {Name: "P/E", Category: CategoryValuation, Core: true, LowerIsBetter: true},
	"priceToSalesRatio": {Name: "P/S", Category: CategoryValuation, Core: true, LowerIsBetter: true},
	"pegRatio":          {Name: "PEG", Category: CategoryValuation, Core: false, LowerIsBetter: true},
	"priceToBookRatio":  {Name: "P/B", Category: CategoryValuation, Core: false, LowerIsBetter: true},
	"pFFO":              {Name: "P/FFO", Category: CategoryValuation, Core: true, LowerIsBetter: true},
	"debtToEquity":      {Name: "Divida/Capital Proprio", Category: CategoryCapitalStructure, Core: true, LowerIsBetter: true},
	"netDebtToEBITDA":   {Name: "Divida Liquida/EBITDA", Category: CategoryCapitalStructure, Core: true, LowerIsBetter: true},
	"interestCoverage":  {Name: "Cobertura de Juros", Category: CategoryCapitalStructure, Core: false},
	"revenueGrowth":     {Name: "Crescimento de Receita", Category: CategoryGrowth, Core: true},
	"ffoGrowth":         {Name: "Crescimento de FFO", Category: CategoryGrowth, Core: false},
	"dividendCagr":      {Name: "CAGR de Dividendos", Category: CategoryGrowth, Core: true},
	"roe":               {Name: "ROE", Category: CategoryProfitability, Core: true},
	"roic":              {Name: "ROIC", Category: CategoryProfitability, Core: false},
	"ebitdaMargin":      {Name: "Margem EBITDA", Category: CategoryProfitability, Core: true},
	"ffoPayoutRatio":    {Name: "Payout FFO", Category: CategoryProfitability, Core: false, LowerIsBetter: true},
	"dividendYield":     {Name: "Dividend Yield", Category: CategoryOther, Core: true},
	"beta":              {Name: "Beta", Category: CategoryRisk, Core: true, LowerIsBetter: true},
	"volatility":        {Name: "Volatilidade", Category: CategoryRisk, Core: false, LowerIsBetter: true},
}

// Lookup resolves a metric key to its catalog metadata.
func Lookup(key string) MetricMeta {
	if meta, ok := metricCatalog[key]; ok {
		return meta
	}
	return MetricMeta{Name: key, Category: CategoryOther}
}

// Sensitivity is the benchmark-deviation multiplier for a metric category: how
// strongly a 1.0 deviation of the relative ratio moves the 0-100 metric score.
func Sensitivity(c Category) float64 {
	switch c {
	case CategoryValuation:
		return 40
	case CategoryCapitalStructure:
		return 45
	case CategoryGrowth:
		return 50
	case CategoryProfitability:
		return 55
	case CategoryRisk:
		return 35
	default:
		return 50
	}
}
