// Package scoring turns a fundamental snapshot into the 0-100 investment
// quality score and the red/green flag set. Everything here is pure.
package scoring

import "EquityScope/internal/model"

// MaxScore is the sum of every criterion maximum.
const MaxScore = 100

// Bands maps a minimum total score to its band, highest first.
var Bands = []struct {
	MinScore int
	Band     model.ScoreBand
}{
	{80, model.BandExcellent},
	{60, model.BandGood},
	{40, model.BandAverage},
	{20, model.BandWeak},
}

// DefaultBand is the band for scores below 20.
var DefaultBand = model.BandPoor

// BandFor maps a total score to its band.
func BandFor(total int) model.ScoreBand {
	for _, b := range Bands {
		if total >= b.MinScore {
			return b.Band
		}
	}
	return DefaultBand
}

// ComputeScore evaluates every criterion. Absent fields score zero and are
// listed in Missing; the score is always computable.
func ComputeScore(s model.FundamentalSnapshot) model.ScoreResult {
	res := model.ScoreResult{
		PE:           scorePE(s.PERatio),
		ROE:          scoreROE(s.ROE),
		DebtToEquity: scoreDebtToEquity(s.DebtToEquity),
		Margin:       scoreMargin(s.ProfitMargin),
		Growth:       scoreGrowth(s.RevenueGrowth),
	}

	for _, c := range res.Criteria() {
		res.Total += c.Points
		if !c.Available {
			res.Missing = append(res.Missing, c.Name)
		}
	}
	if res.Total > MaxScore {
		res.Total = MaxScore
	}
	res.Band = BandFor(res.Total)
	return res
}

// Interpretation returns the one-line reading of a band.
func Interpretation(b model.ScoreBand) string {
	switch b {
	case model.BandExcellent:
		return "Excellent fundamentals"
	case model.BandGood:
		return "Good fundamentals"
	case model.BandAverage:
		return "Average fundamentals"
	case model.BandWeak:
		return "Weak fundamentals"
	default:
		return "Poor fundamentals"
	}
}
