package aggregator

import (
	"math"

	"github.com/quantive/marketcore/internal/model"
)

// Fear/greed breakpoints: volatility level -> sentiment score. The
// mapping is piecewise linear between adjacent points and clamped
// outside them. These values are part of the scoring contract; tests
// pin them, so changing one is a behavior change, not a tune-up.
var fearGreedBreakpoints = []struct {
	volatility float64
	score      float64
}{
	{10, 100},
	{15, 75},
	{20, 50},
	{25, 25},
	{30, 10},
	{40, 0},
}

// FearGreedFromVolatility maps a volatility index level to a 0-100
// sentiment score and a categorical label. Low volatility reads as
// greed, high as fear; the mapping is monotonic non-increasing.
func FearGreedFromVolatility(volatility float64) model.FearGreed {
	score := fearGreedScore(volatility)
	return model.FearGreed{
		Score: int(math.Round(score)),
		Label: fearGreedLabel(score),
	}
}

func fearGreedScore(volatility float64) float64 {
	bp := fearGreedBreakpoints
	if volatility <= bp[0].volatility {
		return bp[0].score
	}
	last := bp[len(bp)-1]
	if volatility >= last.volatility {
		return last.score
	}

	for i := 1; i < len(bp); i++ {
		if volatility <= bp[i].volatility {
			lo, hi := bp[i-1], bp[i]
			frac := (volatility - lo.volatility) / (hi.volatility - lo.volatility)
			return lo.score + frac*(hi.score-lo.score)
		}
	}
	return last.score
}

// fearGreedLabel buckets a sentiment score into the five categories.
func fearGreedLabel(score float64) string {
	switch {
	case score >= 80:
		return "extreme greed"
	case score >= 60:
		return "greed"
	case score >= 40:
		return "neutral"
	case score >= 20:
		return "fear"
	default:
		return "extreme fear"
	}
}
