package scoring

import "EquityScope/internal/model"

// Criterion names, as shown in reports and in ScoreResult.Missing.
const (
	NamePE           = "P/E Ratio"
	NameROE          = "ROE"
	NameDebtToEquity = "Debt-to-Equity"
	NameMargin       = "Profit Margin"
	NameGrowth       = "Revenue Growth"
)

// Criterion maxima.
const (
	MaxPE           = 30
	MaxROE          = 20
	MaxDebtToEquity = 20
	MaxMargin       = 15
	MaxGrowth       = 15
)

// scorePE: [15,25] -> 30; [10,15) or (25,40] -> 20; (0,10) or (40,50] -> 10.
// Negative or zero P/E means no meaningful earnings and scores 0, as does >50.
func scorePE(pe *float64) model.Criterion {
	c := model.Criterion{Name: NamePE, Max: MaxPE}
	if pe == nil {
		return c
	}
	c.Available = true
	v := *pe
	switch {
	case v <= 0:
		c.Points = 0
	case v >= 15 && v <= 25:
		c.Points = 30
	case v >= 10 && v < 15, v > 25 && v <= 40:
		c.Points = 20
	case v < 10, v > 40 && v <= 50:
		c.Points = 10
	default:
		c.Points = 0
	}
	return c
}

// scoreROE: >15 -> 20; [10,15] -> 12; [0,10) -> 5; <0 -> 0.
func scoreROE(roe *float64) model.Criterion {
	c := model.Criterion{Name: NameROE, Max: MaxROE}
	if roe == nil {
		return c
	}
	c.Available = true
	switch v := *roe; {
	case v > 15:
		c.Points = 20
	case v >= 10:
		c.Points = 12
	case v >= 0:
		c.Points = 5
	}
	return c
}

// scoreDebtToEquity: <0.5 -> 20; [0.5,1.0] -> 12; (1.0,2.0] -> 5; >2.0 -> 0.
func scoreDebtToEquity(de *float64) model.Criterion {
	c := model.Criterion{Name: NameDebtToEquity, Max: MaxDebtToEquity}
	if de == nil {
		return c
	}
	c.Available = true
	switch v := *de; {
	case v < 0.5:
		c.Points = 20
	case v <= 1.0:
		c.Points = 12
	case v <= 2.0:
		c.Points = 5
	}
	return c
}

// scoreMargin: >15 -> 15; [5,15] -> 9; [0,5) -> 4; <0 -> 0.
func scoreMargin(margin *float64) model.Criterion {
	c := model.Criterion{Name: NameMargin, Max: MaxMargin}
	if margin == nil {
		return c
	}
	c.Available = true
	c.Points = tieredPercent(*margin, 15, 5, 15, 9, 4)
	return c
}

// scoreGrowth: >10 -> 15; [5,10] -> 9; [0,5) -> 4; <0 -> 0.
func scoreGrowth(growth *float64) model.Criterion {
	c := model.Criterion{Name: NameGrowth, Max: MaxGrowth}
	if growth == nil {
		return c
	}
	c.Available = true
	c.Points = tieredPercent(*growth, 10, 5, 15, 9, 4)
	return c
}

// tieredPercent implements the shared margin/growth shape:
// v > high -> top; v >= mid -> middle; v >= 0 -> low; otherwise 0.
func tieredPercent(v, high, mid float64, top, middle, low int) int {
	switch {
	case v > high:
		return top
	case v >= mid:
		return middle
	case v >= 0:
		return low
	default:
		return 0
	}
}
