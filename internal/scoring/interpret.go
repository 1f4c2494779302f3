package scoring

// Metric identifies a ratio for Interpret.
type Metric string

const (
	MetricPE           Metric = "pe_ratio"
	MetricPB           Metric = "pb_ratio"
	MetricROE          Metric = "roe"
	MetricDebtToEquity Metric = "debt_to_equity"
	MetricMargin       Metric = "profit_margin"
	MetricGrowth       Metric = "revenue_growth"
	MetricBeta         Metric = "beta"
)

// Interpret gives a short qualitative reading of a ratio. Percent metrics
// take percentages. A nil value reads as "Data not available".
func Interpret(m Metric, value *float64) string {
	if value == nil {
		return "Data not available"
	}
	v := *value
	switch m {
	case MetricPE:
		switch {
		case v < 0:
			return "Negative P/E indicates losses"
		case v < 15:
			return "Below market average - potentially undervalued or facing challenges"
		case v < 25:
			return "Fairly valued - in line with market average"
		case v < 35:
			return "Above average - market expects growth or stock may be overvalued"
		default:
			return "High P/E - expensive valuation or very high growth expectations"
		}
	case MetricPB:
		switch {
		case v < 1:
			return "Trading below book value - potentially undervalued"
		case v < 3:
			return "Reasonable valuation relative to book value"
		default:
			return "Trading at premium to book value"
		}
	case MetricROE:
		switch {
		case v < 0:
			return "Negative ROE indicates company is losing money"
		case v < 10:
			return "Below average - capital not used efficiently"
		case v < 15:
			return "Average - decent returns on equity"
		case v < 20:
			return "Good - efficiently generates profits from equity"
		default:
			return "Excellent - very efficient use of shareholder capital"
		}
	case MetricDebtToEquity:
		switch {
		case v < 0.5:
			return "Low debt - strong balance sheet with minimal leverage"
		case v < 1.0:
			return "Moderate debt - balanced capital structure"
		case v < 2.0:
			return "High debt - company is leveraged, monitor carefully"
		default:
			return "Very high debt - significant financial risk"
		}
	case MetricMargin:
		switch {
		case v < 0:
			return "Negative margin - company is unprofitable"
		case v < 5:
			return "Low margins - thin profitability"
		case v < 10:
			return "Moderate margins - decent profitability"
		case v < 20:
			return "Good margins - strong profitability"
		default:
			return "Excellent margins - very profitable operations"
		}
	case MetricGrowth:
		switch {
		case v < 0:
			return "Declining revenue - concerning trend"
		case v < 5:
			return "Slow growth - mature or struggling business"
		case v < 15:
			return "Moderate growth - healthy expansion"
		case v < 25:
			return "Strong growth - rapidly expanding"
		default:
			return "Very high growth - exceptional expansion"
		}
	case MetricBeta:
		switch {
		case v < 0.5:
			return "Low volatility - moves less than the market"
		case v < 1.0:
			return "Below market volatility - relatively stable"
		case v < 1.5:
			return "Above market volatility"
		default:
			return "High volatility - significantly more volatile than market"
		}
	}
	return ""
}
