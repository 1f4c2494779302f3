package scoring

import (
	"fmt"

	"EquityScope/internal/model"
)

// Flag thresholds.
const (
	RedFlagDebt     = 2.0
	RedFlagPE       = 50.0
	GreenFlagROE    = 15.0
	GreenFlagDebt   = 0.5
	GreenFlagGrowth = 10.0
	GreenFlagMargin = 15.0
	GreenFlagPEMin  = 10.0
	GreenFlagPEMax  = 25.0
)

// DetectFlags evaluates every red and green condition. A condition whose
// field is absent is skipped, never counted as a failure.
func DetectFlags(s model.FundamentalSnapshot) model.FlagSet {
	return model.FlagSet{
		Red:   redFlags(s),
		Green: greenFlags(s),
	}
}

func redFlags(s model.FundamentalSnapshot) []model.Flag {
	var flags []model.Flag
	if v := s.DebtToEquity; v != nil && *v > RedFlagDebt {
		flags = append(flags, model.Flag{
			Tag:         model.FlagHighDebt,
			Title:       "High Debt",
			Description: fmt.Sprintf("Debt-to-Equity ratio of %.2f indicates high leverage", *v),
		})
	}
	if v := s.ROE; v != nil && *v < 0 {
		flags = append(flags, model.Flag{
			Tag:         model.FlagNegativeROE,
			Title:       "Negative ROE",
			Description: fmt.Sprintf("Return on Equity of %.2f%% indicates unprofitable operations", *v),
		})
	}
	if v := s.RevenueGrowth; v != nil && *v < 0 {
		flags = append(flags, model.Flag{
			Tag:         model.FlagDecliningRevenue,
			Title:       "Declining Revenue",
			Description: fmt.Sprintf("Revenue declined by %.2f%% year-over-year", -*v),
		})
	}
	if v := s.ProfitMargin; v != nil && *v < 0 {
		flags = append(flags, model.Flag{
			Tag:         model.FlagNegativeMargin,
			Title:       "Negative Margins",
			Description: fmt.Sprintf("Net profit margin of %.2f%% indicates losses", *v),
		})
	}
	if v := s.PERatio; v != nil && *v > RedFlagPE {
		flags = append(flags, model.Flag{
			Tag:         model.FlagHighPE,
			Title:       "High P/E Ratio",
			Description: fmt.Sprintf("P/E ratio of %.2f may indicate overvaluation", *v),
		})
	}
	if v := s.FreeCashFlowPositive; v != nil && !*v {
		flags = append(flags, model.Flag{
			Tag:         model.FlagNegativeCashFlow,
			Title:       "Negative Cash Flow",
			Description: "Company is not generating positive free cash flow",
		})
	}
	return flags
}

func greenFlags(s model.FundamentalSnapshot) []model.Flag {
	var flags []model.Flag
	if v := s.ROE; v != nil && *v > GreenFlagROE {
		flags = append(flags, model.Flag{
			Tag:         model.FlagStrongROE,
			Title:       "Strong ROE",
			Description: fmt.Sprintf("Return on Equity of %.2f%% shows efficient use of capital", *v),
		})
	}
	if v := s.DebtToEquity; v != nil && *v < GreenFlagDebt {
		flags = append(flags, model.Flag{
			Tag:         model.FlagLowDebt,
			Title:       "Low Debt",
			Description: fmt.Sprintf("Debt-to-Equity ratio of %.2f indicates a strong balance sheet", *v),
		})
	}
	if v := s.RevenueGrowth; v != nil && *v > GreenFlagGrowth {
		flags = append(flags, model.Flag{
			Tag:         model.FlagStrongGrowth,
			Title:       "Strong Growth",
			Description: fmt.Sprintf("Revenue grew by %.2f%% year-over-year", *v),
		})
	}
	if v := s.ProfitMargin; v != nil && *v > GreenFlagMargin {
		flags = append(flags, model.Flag{
			Tag:         model.FlagHealthyMargin,
			Title:       "Healthy Margins",
			Description: fmt.Sprintf("Net profit margin of %.2f%% shows strong profitability", *v),
		})
	}
	if v := s.FreeCashFlowPositive; v != nil && *v {
		flags = append(flags, model.Flag{
			Tag:         model.FlagPositiveCashFlow,
			Title:       "Positive Cash Flow",
			Description: "Company generates positive free cash flow",
		})
	}
	if v := s.PERatio; v != nil && *v >= GreenFlagPEMin && *v <= GreenFlagPEMax {
		flags = append(flags, model.Flag{
			Tag:         model.FlagFairValuation,
			Title:       "Reasonable Valuation",
			Description: fmt.Sprintf("P/E ratio of %.2f is in fair value range", *v),
		})
	}
	return flags
}
