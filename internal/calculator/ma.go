package calculator

import (
	"fmt"

	"EquityScope/internal/model"
)

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("%w: period must be positive", ErrInvalidInput)
	}
	if len(prices) < period {
		return 0, fmt.Errorf("%w: SMA(%d) needs %d prices, have %d", ErrInsufficientData, period, period, len(prices))
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// SimpleMovingAverage returns the mean close of the most recent window
// observations. Windows count observations, not calendar days.
func SimpleMovingAverage(obs []model.Observation, window int) (float64, error) {
	return CalculateSMA(extractCloses(obs), window)
}

func extractCloses(obs []model.Observation) []float64 {
	closes := make([]float64, len(obs))
	for i, o := range obs {
		closes[i] = o.Close
	}
	return closes
}
