package scoring

// Market cap class thresholds in rupees.
const (
	LargeCapMin = 20000 * 1e7 // ₹20,000 Cr
	MidCapMin   = 5000 * 1e7  // ₹5,000 Cr
)

const (
	CapLarge   = "Large Cap"
	CapMid     = "Mid Cap"
	CapSmall   = "Small Cap"
	CapUnknown = "Unknown"
)

// MarketCapCategory classifies a market capitalisation given in rupees.
func MarketCapCategory(marketCap *float64) string {
	switch {
	case marketCap == nil:
		return CapUnknown
	case *marketCap >= LargeCapMin:
		return CapLarge
	case *marketCap >= MidCapMin:
		return CapMid
	default:
		return CapSmall
	}
}
