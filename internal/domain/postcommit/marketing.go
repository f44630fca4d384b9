package postcommit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/questx-lab/rewards/pkg/api/marketing"
	"github.com/questx-lab/rewards/pkg/pubsub"
	"github.com/questx-lab/rewards/pkg/xcontext"
)

type MarketingEvent struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	Tag         string    `json:"tag"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// MarketingHook publishes an active poster event for every scored
// submission.
func MarketingHook(publisher pubsub.Publisher) Hook {
	return func(ctx context.Context, event SubmissionEvent) {
		if event.Email == "" {
			return
		}

		b, err := json.Marshal(MarketingEvent{
			UserID:      event.UserID,
			Email:       event.Email,
			Tag:         marketing.ActivePosterTag,
			SubmittedAt: event.At,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot marshal marketing event: %v", err)
			return
		}

		topic := xcontext.Configs(ctx).Marketing.Topic
		err = publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(event.UserID), Msg: b})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot publish marketing event: %v", err)
		}
	}
}

// NewMarketingHandler consumes the events published by MarketingHook and tags
// the contact on the marketing platform. Failures are only logged.
func NewMarketingHandler(rootCtx context.Context, endpoint marketing.IEndpoint) pubsub.SubscribeHandler {
	return func(ctx context.Context, pack *pubsub.Pack, t time.Time) {
		var event MarketingEvent
		if err := json.Unmarshal(pack.Msg, &event); err != nil {
			xcontext.Logger(rootCtx).Errorf("Cannot unmarshal marketing event: %v", err)
			return
		}

		if err := endpoint.TagContact(ctx, event.Email, event.Tag); err != nil {
			xcontext.Logger(rootCtx).Warnf("Cannot tag contact %s: %v", event.UserID, err)
			return
		}

		xcontext.Logger(rootCtx).Debugf("Tagged contact %s as %s", event.UserID, event.Tag)
	}
}
