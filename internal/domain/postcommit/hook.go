package postcommit

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"github.com/questx-lab/rewards/internal/domain/referral"
	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/pkg/xcontext"
)

// SubmissionEvent describes a submission which has been persisted and
// credited.
type SubmissionEvent struct {
	UserID       string
	Email        string
	SubmissionID string
	Points       entity.Points
	Credits      []referral.Credit
	At           time.Time
}

type Hook func(ctx context.Context, event SubmissionEvent)

// Runner runs hooks in the background after the response has been decided.
// Hooks never affect the result of the submission.
type Runner struct {
	hooks []Hook
	wg    sync.WaitGroup
}

func NewRunner(hooks ...Hook) *Runner {
	return &Runner{hooks: hooks}
}

func (r *Runner) Run(ctx context.Context, event SubmissionEvent) {
	if r == nil || len(r.hooks) == 0 {
		return
	}

	ctx = xcontext.Detach(ctx)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for _, hook := range r.hooks {
			runHook(ctx, hook, event)
		}
	}()
}

// Wait blocks until every started hook has returned.
func (r *Runner) Wait() {
	if r != nil {
		r.wg.Wait()
	}
}

func runHook(ctx context.Context, hook Hook, event SubmissionEvent) {
	defer func() {
		if err := recover(); err != nil {
			xcontext.Logger(ctx).Errorf("Post commit hook panicked: %v\n%s", err, debug.Stack())
		}
	}()

	hook(ctx, event)
}
