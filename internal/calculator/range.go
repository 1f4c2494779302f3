package calculator

import (
	"fmt"
	"math"

	"EquityScope/internal/model"
)

// PeriodRange scans every observation and returns the highest high and lowest low.
func PeriodRange(obs []model.Observation) (high, low float64, err error) {
	if len(obs) == 0 {
		return 0, 0, fmt.Errorf("%w: no observations", ErrInvalidInput)
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, o := range obs {
		if o.High > high {
			high = o.High
		}
		if o.Low < low {
			low = o.Low
		}
	}
	return high, low, nil
}

// AverageVolume returns the mean daily volume.
func AverageVolume(obs []model.Observation) (float64, error) {
	if len(obs) == 0 {
		return 0, fmt.Errorf("%w: no observations", ErrInvalidInput)
	}
	var total float64
	for _, o := range obs {
		total += float64(o.Volume)
	}
	return total / float64(len(obs)), nil
}

// RangePosition returns where price sits within [low, high], clamped to 0..1.
func RangePosition(price, high, low float64) (float64, error) {
	if high < low {
		return 0, fmt.Errorf("%w: high must be >= low", ErrInvalidInput)
	}
	if high == low {
		return 0.5, nil
	}
	pos := (price - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
