package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"EquityScope/internal/model"
)

func TestMarketCapCategory(t *testing.T) {
	tests := []struct {
		name string
		cap  *float64
		want string
	}{
		{"missing", nil, CapUnknown},
		{"large boundary", model.Float(LargeCapMin), CapLarge},
		{"just below large", model.Float(LargeCapMin - 1), CapMid},
		{"mid boundary", model.Float(MidCapMin), CapMid},
		{"just below mid", model.Float(MidCapMin - 1), CapSmall},
		{"reliance", model.Float(16340000000000), CapLarge},
		{"zero", model.Float(0), CapSmall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MarketCapCategory(tt.cap))
		})
	}
}
