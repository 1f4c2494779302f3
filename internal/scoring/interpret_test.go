package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"EquityScope/internal/model"
)

func TestInterpret(t *testing.T) {
	assert.Equal(t, "Data not available", Interpret(MetricPE, nil))
	assert.Equal(t, "Negative P/E indicates losses", Interpret(MetricPE, model.Float(-3)))
	assert.Equal(t, "Fairly valued - in line with market average", Interpret(MetricPE, model.Float(20)))
	assert.Equal(t, "Low debt - strong balance sheet with minimal leverage", Interpret(MetricDebtToEquity, model.Float(0.2)))
	assert.Equal(t, "Declining revenue - concerning trend", Interpret(MetricGrowth, model.Float(-4)))
	assert.Equal(t, "", Interpret(Metric("unknown"), model.Float(1)))
}
