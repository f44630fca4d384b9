package scoring

import "math"

type Counters struct {
	Likes       int64
	Reposts     int64
	Replies     int64
	Impressions int64
}

type tier struct {
	threshold float64
	score     float64
}

var (
	likeTiers   = []tier{{1000, 3.0}, {100, 2.0}, {10, 1.0}, {1, 0.5}}
	repostTiers = []tier{{1000, 2.0}, {100, 1.5}, {10, 0.75}, {1, 0.25}}
	replyTiers  = []tier{{1000, 1.5}, {100, 1.0}, {10, 0.5}, {1, 0.2}}
	rateTiers   = []tier{{0.10, 2.0}, {0.05, 1.5}, {0.02, 1.0}, {0.01, 0.5}}
	reachTiers  = []tier{
		{1_000_000, 3.0}, {100_000, 2.5}, {50_000, 2.0}, {10_000, 1.5},
		{5_000, 1.0}, {1_000, 0.75}, {500, 0.5}, {100, 0.25},
	}
)

// tiers must be sorted by descending threshold.
func scoreTier(tiers []tier, v float64) float64 {
	for _, t := range tiers {
		if v >= t.threshold {
			return t.score
		}
	}

	return 0
}

// EngagementScore maps public counters to a score in [0, 10].
func EngagementScore(c Counters) float64 {
	score := scoreTier(likeTiers, float64(c.Likes)) +
		scoreTier(repostTiers, float64(c.Reposts)) +
		scoreTier(replyTiers, float64(c.Replies)) +
		scoreTier(reachTiers, float64(c.Impressions))

	if c.Impressions > 0 {
		rate := float64(c.Likes+2*c.Reposts+3*c.Replies) / float64(c.Impressions)
		score += scoreTier(rateTiers, rate)
	}

	return clampRound(score, 0, 10)
}

const maxBotPenalty = 5

// BotPenalty flags counter shapes that organic posts rarely have. The result
// is in [0, 5].
func BotPenalty(c Counters) float64 {
	penalty := 0.0
	if c.Impressions > 0 && float64(c.Likes)/float64(c.Impressions) > 0.5 {
		penalty += 2
	}

	if c.Reposts > 2*c.Likes && c.Reposts > 100 {
		penalty += 1
	}

	if c.Impressions < 100 && (c.Likes > 50 || c.Reposts > 30) {
		penalty += 2
	}

	if c.Replies == 0 && c.Likes > 100 {
		penalty += 1
	}

	if penalty > maxBotPenalty {
		return maxBotPenalty
	}

	return penalty
}

func clampRound(v, lo, hi float64) float64 {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}

	return math.Round(v*10) / 10
}
