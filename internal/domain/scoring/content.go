package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/pkg/api/classifier"
	"github.com/questx-lab/rewards/pkg/xcontext"
)

const Rubric = `You grade social media posts about QuestX, a task marketplace where humans
and AI agents complete bounties and earn points.

Score the post from 0 to 10 for how well it aligns with the product:
- 0-2: unrelated, or only mentions the name in passing.
- 3-4: generic promotion with no detail about the product.
- 5-6: describes what the product does in the author's own words.
- 7-8: mentions specific features (bounties, agents, referrals, leaderboard) with some insight.
- 9-10: original insight or an authentic first-person experience using the product.

Subtract points for generic promotion, negative sentiment and spam patterns
(hashtag stuffing, giveaway bait, copy-pasted text).
Add points for specific feature mentions, original insight and authentic
first-person narrative.

Answer only with a JSON object: {"score": <number 0-10>, "reasoning": "<one sentence>"}.`

type ContentResult struct {
	Score     float64
	Rationale string
	Source    entity.ScoringSource
}

type ContentScorer struct {
	classifier classifier.IClassifier
	timeout    time.Duration
}

// NewContentScorer accepts a nil classifier, in which case every text is
// graded by FallbackScore.
func NewContentScorer(c classifier.IClassifier, timeout time.Duration) *ContentScorer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ContentScorer{classifier: c, timeout: timeout}
}

func (s *ContentScorer) Score(ctx context.Context, text string) ContentResult {
	if s.classifier != nil {
		result, err := s.classify(ctx, text)
		if err == nil && math.IsNaN(result.Score) {
			err = errors.New("classifier returned NaN")
		}

		if err == nil {
			return ContentResult{
				Score:     clampRound(result.Score, 0, 10),
				Rationale: result.Reasoning,
				Source:    entity.ScoringAI,
			}
		}

		xcontext.Logger(ctx).Warnf("Classifier failed, use fallback scorer: %v", err)
	}

	score := FallbackScore(text)
	return ContentResult{
		Score:     score,
		Rationale: fmt.Sprintf("Keyword score %.1f", score),
		Source:    entity.ScoringFallback,
	}
}

func (s *ContentScorer) classify(ctx context.Context, text string) (classifier.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.classifier.Classify(ctx, text, Rubric)
}
