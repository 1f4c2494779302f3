package model

import "time"

// Observation is one trading day of OHLCV data.
type Observation struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// StockData is everything the data source returned for one symbol.
type StockData struct {
	Symbol       string
	Observations []Observation
	Fundamentals FundamentalSnapshot
	Source       string
	FetchedAt    time.Time
}
