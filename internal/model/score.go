package model

// ScoreBand is the qualitative reading of a total score.
type ScoreBand string

const (
	BandExcellent ScoreBand = "Excellent"
	BandGood      ScoreBand = "Good"
	BandAverage   ScoreBand = "Average"
	BandWeak      ScoreBand = "Weak"
	BandPoor      ScoreBand = "Poor"
)

// Criterion is one line of the score breakdown.
type Criterion struct {
	Name      string
	Points    int
	Max       int
	Available bool
}

// ScoreResult is the 0-100 investment quality score and its breakdown.
type ScoreResult struct {
	Total        int
	PE           Criterion
	ROE          Criterion
	DebtToEquity Criterion
	Margin       Criterion
	Growth       Criterion
	Band         ScoreBand
	Missing      []string
}

// Criteria returns the breakdown in display order.
func (s ScoreResult) Criteria() []Criterion {
	return []Criterion{s.PE, s.ROE, s.DebtToEquity, s.Margin, s.Growth}
}

// FlagTag identifies a red or green flag condition.
type FlagTag string

const (
	FlagHighDebt         FlagTag = "HIGH_DEBT"
	FlagNegativeROE      FlagTag = "NEGATIVE_ROE"
	FlagDecliningRevenue FlagTag = "DECLINING_REVENUE"
	FlagNegativeMargin   FlagTag = "NEGATIVE_MARGIN"
	FlagHighPE           FlagTag = "HIGH_PE"
	FlagNegativeCashFlow FlagTag = "NEGATIVE_CASH_FLOW"

	FlagStrongROE        FlagTag = "STRONG_ROE"
	FlagLowDebt          FlagTag = "LOW_DEBT"
	FlagStrongGrowth     FlagTag = "STRONG_GROWTH"
	FlagHealthyMargin    FlagTag = "HEALTHY_MARGIN"
	FlagPositiveCashFlow FlagTag = "POSITIVE_CASH_FLOW"
	FlagFairValuation    FlagTag = "FAIR_VALUATION"
)

// Flag is a triggered threshold condition.
type Flag struct {
	Tag         FlagTag
	Title       string
	Description string
}

// FlagSet holds the warning and positive signals of one evaluation.
type FlagSet struct {
	Red   []Flag
	Green []Flag
}
