package calculator

import (
	"time"

	"EquityScope/internal/model"
)

var day0 = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

// barsFromCloses builds one observation per close on consecutive days.
func barsFromCloses(closes ...float64) []model.Observation {
	obs := make([]model.Observation, len(closes))
	for i, c := range closes {
		obs[i] = model.Observation{
			Date:   day0.AddDate(0, 0, i),
			Open:   c * 0.998,
			High:   c * 1.004,
			Low:    c * 0.995,
			Close:  c,
			Volume: int64(1000000 + i*1000),
		}
	}
	return obs
}

var relianceCloses = []float64{
	2401.20, 2404.10, 2406.75, 2409.30, 2411.85, 2415.00, 2417.40,
	2420.15, 2423.60, 2425.90, 2428.45, 2431.20, 2434.05, 2436.80,
	2439.35, 2442.10, 2445.70, 2448.25, 2450.90, 2453.60, 2456.30,
}
