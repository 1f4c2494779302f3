package calculator

import (
	"fmt"

	"EquityScope/internal/model"
)

// ValidateObservations rejects sequences that are empty, not strictly
// ascending by date, or that carry non-positive prices or negative volume.
func ValidateObservations(obs []model.Observation) error {
	if len(obs) == 0 {
		return fmt.Errorf("%w: no observations", ErrInvalidInput)
	}
	for i, o := range obs {
		if o.Open <= 0 || o.High <= 0 || o.Low <= 0 || o.Close <= 0 {
			return fmt.Errorf("%w: non-positive price on %s", ErrInvalidInput, o.Date.Format("2006-01-02"))
		}
		if o.Volume < 0 {
			return fmt.Errorf("%w: negative volume on %s", ErrInvalidInput, o.Date.Format("2006-01-02"))
		}
		if i > 0 && !o.Date.After(obs[i-1].Date) {
			return fmt.Errorf("%w: observation %d (%s) is not after %s", ErrInvalidInput, i,
				o.Date.Format("2006-01-02"), obs[i-1].Date.Format("2006-01-02"))
		}
	}
	return nil
}
