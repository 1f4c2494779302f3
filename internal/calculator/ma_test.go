package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleMovingAverage_UsesMostRecentWindow(t *testing.T) {
	obs := barsFromCloses(relianceCloses...)

	sma7, err := SimpleMovingAverage(obs, 7)
	require.NoError(t, err)
	assert.InDelta(t, 2448.0285714, sma7, 1e-6)

	sma14, err := SimpleMovingAverage(obs, 14)
	require.NoError(t, err)
	assert.InDelta(t, 2438.3107142, sma14, 1e-6)

	// The 7-day mean ignores everything but the last seven closes.
	last7 := barsFromCloses(relianceCloses[len(relianceCloses)-7:]...)
	only, err := SimpleMovingAverage(last7, 7)
	require.NoError(t, err)
	assert.InDelta(t, only, sma7, 1e-9)
}

func TestSimpleMovingAverage_InsufficientData(t *testing.T) {
	for n := 0; n < 7; n++ {
		obs := barsFromCloses(relianceCloses[:n]...)
		_, err := SimpleMovingAverage(obs, 7)
		assert.ErrorIs(t, err, ErrInsufficientData, "length %d", n)
	}
}

func TestSimpleMovingAverage_ExactWindow(t *testing.T) {
	sma, err := SimpleMovingAverage(barsFromCloses(10, 20, 30), 3)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, sma, 1e-12)
}

func TestCalculateSMA_InvalidPeriod(t *testing.T) {
	_, err := CalculateSMA([]float64{1, 2, 3}, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
