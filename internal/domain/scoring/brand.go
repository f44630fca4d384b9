package scoring

import (
	"strings"

	"golang.org/x/exp/slices"
)

var DefaultBrandTokens = []string{"questx", "@questx_lab", "$qstx"}

const DisqualifiedRationale = "Post does not mention the brand"

type BrandGate struct {
	tokens []string
}

// NewBrandGate builds a gate from the given tokens, falling back to the default
// set when none is configured.
func NewBrandGate(tokens []string) *BrandGate {
	if len(tokens) == 0 {
		tokens = DefaultBrandTokens
	}

	lowered := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" && !slices.Contains(lowered, t) {
			lowered = append(lowered, t)
		}
	}

	return &BrandGate{tokens: lowered}
}

func (g *BrandGate) IsBrandMentioned(text string) bool {
	text = strings.ToLower(text)
	for _, t := range g.tokens {
		if strings.Contains(text, t) {
			return true
		}
	}

	return false
}
