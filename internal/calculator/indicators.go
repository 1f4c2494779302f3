package calculator

import (
	"EquityScope/internal/model"
)

// Standard windows used by ComputeIndicators.
const (
	ShortSMAWindow = 7
	LongSMAWindow  = 14
	RSIPeriod      = 14
)

// ComputeIndicators validates the observations and derives every indicator.
// Windowed indicators without enough history are left nil; only malformed
// input returns an error.
func ComputeIndicators(obs []model.Observation) (*model.IndicatorResult, error) {
	if err := ValidateObservations(obs); err != nil {
		return nil, err
	}

	last := obs[len(obs)-1]
	res := &model.IndicatorResult{
		CurrentPrice: last.Close,
		TradingDays:  len(obs),
		FirstDate:    obs[0].Date,
		LastDate:     last.Date,
		DailyReturns: DailyReturns(obs),
	}

	// Validated input is non-empty, so these cannot fail.
	res.PeriodHigh, res.PeriodLow, _ = PeriodRange(obs)
	res.PeriodChange, _ = PeriodChange(obs)
	res.AvgVolume, _ = AverageVolume(obs)

	res.SMA7 = optional(SimpleMovingAverage(obs, ShortSMAWindow))
	res.SMA14 = optional(SimpleMovingAverage(obs, LongSMAWindow))
	res.RSI14 = optional(CalculateRSI(obs, RSIPeriod))
	res.Volatility = optional(Volatility(obs))
	res.AvgDailyReturn = optional(AverageDailyReturn(obs))

	if best, worst, err := Extrema(obs); err == nil {
		res.BestDay = &best
		res.WorstDay = &worst
	}

	return res, nil
}

func optional(v float64, err error) *float64 {
	if err != nil {
		return nil
	}
	return &v
}
