package scoring

import (
	"strings"
	"unicode"
)

var (
	highValueKeywords = []string{
		"questx", "quest", "bounty", "bounties", "task marketplace", "ai agent",
		"agents", "earn points", "referral", "rewards engine",
	}
	mediumValueKeywords = []string{
		"marketplace", "freelance", "automation", "workflow", "community",
		"onboarding", "leaderboard", "reward", "rewards", "contributors",
	}
	genericKeywords = []string{
		"ai", "crypto", "web3", "tech", "startup", "product", "platform",
		"build", "building", "launch",
	}
	positiveTokens = []string{
		"love", "great", "amazing", "awesome", "excited", "recommend",
		"helpful", "impressive", "useful", "best",
	}
	negativeTokens = []string{
		"scam", "rug", "rugpull", "fraud", "ponzi", "fake", "hate",
		"terrible", "worst", "airdrop giveaway",
	}
)

const (
	highValueWeight = 1.5
	mediumWeight    = 0.8
	genericWeight   = 0.3
	positiveWeight  = 0.2
	negativePenalty = 2.0
)

// FallbackScore grades text with fixed keyword weights. It is pure so the
// same text always gets the same score.
func FallbackScore(text string) float64 {
	normalized := " " + strings.Join(strings.FieldsFunc(strings.ToLower(text), isSeparator), " ") + " "

	score := 0.0
	score += highValueWeight * float64(countMatches(normalized, highValueKeywords))
	score += mediumWeight * float64(countMatches(normalized, mediumValueKeywords))
	score += genericWeight * float64(countMatches(normalized, genericKeywords))
	score += positiveWeight * float64(countMatches(normalized, positiveTokens))

	if countMatches(normalized, negativeTokens) > 0 {
		score -= negativePenalty
	}

	return clampRound(score, 0, 10)
}

// countMatches counts the distinct keywords which appear as whole words.
func countMatches(normalized string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(normalized, " "+k+" ") {
			n++
		}
	}

	return n
}

// Symbols and underscores split words, so "@questx_lab" yields "questx".
func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
