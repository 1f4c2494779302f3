package model

import "time"

// DailyReturn is the close-to-close percent change ending on Date.
type DailyReturn struct {
	Date    time.Time
	Percent float64
}

// IndicatorResult holds the technical indicators derived from one
// observation sequence. Nil pointers mean there was not enough history.
type IndicatorResult struct {
	CurrentPrice float64
	PeriodHigh   float64
	PeriodLow    float64
	PeriodChange float64 // percent, first to last close
	AvgVolume    float64
	TradingDays  int
	FirstDate    time.Time
	LastDate     time.Time

	SMA7           *float64
	SMA14          *float64
	RSI14          *float64
	Volatility     *float64 // sample std dev of daily returns, percent
	AvgDailyReturn *float64

	DailyReturns []DailyReturn
	BestDay      *DailyReturn
	WorstDay     *DailyReturn
}
