package model

// FundamentalSnapshot is a point-in-time set of fundamental fields.
// A nil field means the data source did not provide it.
// Percent fields (ROE, ProfitMargin, RevenueGrowth, DividendYield) hold
// percentages, e.g. 18.5 for 18.5%.
type FundamentalSnapshot struct {
	PERatio              *float64
	ROE                  *float64
	DebtToEquity         *float64
	ProfitMargin         *float64
	RevenueGrowth        *float64
	FreeCashFlowPositive *bool
	TargetPrice          *float64
	Recommendation       *string

	// Descriptive fields, shown in reports only.
	CompanyName   *string
	Sector        *string
	Industry      *string
	MarketCap     *float64
	CurrentPrice  *float64
	PBRatio       *float64
	EPS           *float64
	Beta          *float64
	DividendYield *float64
	Week52High    *float64
	Week52Low     *float64
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
