package calculator

import "errors"

var (
	// ErrInsufficientData is returned when a windowed computation lacks history.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrInvalidInput is returned for malformed observation sequences.
	ErrInvalidInput = errors.New("invalid input")
)
