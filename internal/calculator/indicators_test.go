package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EquityScope/internal/model"
)

func TestComputeIndicators_FullHistory(t *testing.T) {
	obs := barsFromCloses(relianceCloses...)
	res, err := ComputeIndicators(obs)
	require.NoError(t, err)

	require.NotNil(t, res.SMA7)
	require.NotNil(t, res.SMA14)
	assert.InDelta(t, 2448.0285714, *res.SMA7, 1e-6)
	assert.InDelta(t, 2438.3107142, *res.SMA14, 1e-6)
	require.NotNil(t, res.Volatility)
	assert.GreaterOrEqual(t, *res.Volatility, 0.0)
	require.NotNil(t, res.RSI14)
	require.NotNil(t, res.BestDay)
	require.NotNil(t, res.WorstDay)

	assert.Equal(t, 2456.30, res.CurrentPrice)
	assert.Equal(t, 21, res.TradingDays)
	assert.Len(t, res.DailyReturns, 20)
	assert.InDelta(t, 2.2946859, res.PeriodChange, 1e-6)
	assert.Equal(t, obs[0].Date, res.FirstDate)
	assert.Equal(t, obs[20].Date, res.LastDate)
}

func TestComputeIndicators_ShortHistory(t *testing.T) {
	res, err := ComputeIndicators(barsFromCloses(relianceCloses[:10]...))
	require.NoError(t, err)
	assert.NotNil(t, res.SMA7)
	assert.Nil(t, res.SMA14)
	assert.Nil(t, res.RSI14)
}

func TestComputeIndicators_SingleObservation(t *testing.T) {
	res, err := ComputeIndicators(barsFromCloses(2401.20))
	require.NoError(t, err)
	assert.Empty(t, res.DailyReturns)
	assert.Nil(t, res.Volatility)
	assert.Nil(t, res.AvgDailyReturn)
	assert.Nil(t, res.BestDay)
	assert.Nil(t, res.WorstDay)
	assert.Nil(t, res.SMA7)
	assert.Zero(t, res.PeriodChange)
}

func TestComputeIndicators_RejectsMalformedInput(t *testing.T) {
	unsorted := barsFromCloses(100, 101, 102)
	unsorted[1], unsorted[2] = unsorted[2], unsorted[1]

	duplicate := barsFromCloses(100, 101)
	duplicate[1].Date = duplicate[0].Date

	zeroPrice := barsFromCloses(100, 101)
	zeroPrice[1].Close = 0

	negVolume := barsFromCloses(100, 101)
	negVolume[0].Volume = -1

	cases := map[string][]model.Observation{
		"empty":          nil,
		"unsorted":       unsorted,
		"duplicate date": duplicate,
		"zero close":     zeroPrice,
		"negative vol":   negVolume,
	}
	for name, obs := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ComputeIndicators(obs)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
