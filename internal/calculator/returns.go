package calculator

import (
	"fmt"
	"math"

	"EquityScope/internal/model"
)

// DailyReturns returns the close-to-close percent change for each adjacent
// pair, dated with the later day. Fewer than two observations yield nil.
func DailyReturns(obs []model.Observation) []model.DailyReturn {
	if len(obs) < 2 {
		return nil
	}
	returns := make([]model.DailyReturn, 0, len(obs)-1)
	for i := 1; i < len(obs); i++ {
		prev := obs[i-1].Close
		returns = append(returns, model.DailyReturn{
			Date:    obs[i].Date,
			Percent: (obs[i].Close - prev) / prev * 100,
		})
	}
	return returns
}

// Volatility is the sample standard deviation (n-1) of the daily returns.
func Volatility(obs []model.Observation) (float64, error) {
	returns := DailyReturns(obs)
	if len(returns) < 2 {
		return 0, fmt.Errorf("%w: volatility needs 2 returns, have %d", ErrInsufficientData, len(returns))
	}
	return sampleStdDev(percents(returns)), nil
}

// Extrema returns the best and worst daily returns. Ties keep the earliest day.
func Extrema(obs []model.Observation) (best, worst model.DailyReturn, err error) {
	returns := DailyReturns(obs)
	if len(returns) == 0 {
		return best, worst, fmt.Errorf("%w: no daily returns", ErrInsufficientData)
	}
	best, worst = returns[0], returns[0]
	for _, r := range returns[1:] {
		if r.Percent > best.Percent {
			best = r
		}
		if r.Percent < worst.Percent {
			worst = r
		}
	}
	return best, worst, nil
}

// PeriodChange returns the percent change from the first to the last close.
func PeriodChange(obs []model.Observation) (float64, error) {
	if len(obs) == 0 {
		return 0, fmt.Errorf("%w: no observations", ErrInvalidInput)
	}
	first := obs[0].Close
	if first <= 0 {
		return 0, fmt.Errorf("%w: first close must be positive", ErrInvalidInput)
	}
	return (obs[len(obs)-1].Close - first) / first * 100, nil
}

// AverageDailyReturn is the arithmetic mean of the daily returns.
func AverageDailyReturn(obs []model.Observation) (float64, error) {
	returns := DailyReturns(obs)
	if len(returns) == 0 {
		return 0, fmt.Errorf("%w: no daily returns", ErrInsufficientData)
	}
	return mean(percents(returns)), nil
}

func percents(returns []model.DailyReturn) []float64 {
	out := make([]float64, len(returns))
	for i, r := range returns {
		out[i] = r.Percent
	}
	return out
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func sampleStdDev(values []float64) float64 {
	m := mean(values)
	variance := 0.0
	for _, v := range values {
		d := v - m
		variance += d * d
	}
	variance /= float64(len(values) - 1)
	return math.Sqrt(variance)
}
