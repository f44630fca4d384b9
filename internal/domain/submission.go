package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/questx-lab/rewards/internal/common"
	"github.com/questx-lab/rewards/internal/domain/fetcher"
	"github.com/questx-lab/rewards/internal/domain/postcommit"
	"github.com/questx-lab/rewards/internal/domain/referral"
	"github.com/questx-lab/rewards/internal/domain/scoring"
	"github.com/questx-lab/rewards/internal/domain/statistic"
	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/internal/model"
	"github.com/questx-lab/rewards/internal/repository"
	"github.com/questx-lab/rewards/pkg/errorx"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	defaultVerificationBonus = 2
	defaultRecentSubmissions = 10
)

type SubmissionDomain interface {
	Submit(context.Context, *model.SubmitPostRequest) (*model.SubmitPostResponse, error)
	GetStats(context.Context, *model.GetStatsRequest) (*model.GetStatsResponse, error)
	GetMySubmissions(context.Context, *model.GetListSubmissionRequest) (*model.GetListSubmissionResponse, error)
}

type submissionDomain struct {
	userRepo       repository.UserRepository
	submissionRepo repository.SubmissionRepository
	ledgerRepo     repository.LedgerRepository
	fetcher        fetcher.Fetcher
	brandGate      *scoring.BrandGate
	contentScorer  *scoring.ContentScorer
	propagator     referral.Propagator
	leaderboard    statistic.Leaderboard
	hooks          *postcommit.Runner
}

func NewSubmissionDomain(
	userRepo repository.UserRepository,
	submissionRepo repository.SubmissionRepository,
	ledgerRepo repository.LedgerRepository,
	postFetcher fetcher.Fetcher,
	brandGate *scoring.BrandGate,
	contentScorer *scoring.ContentScorer,
	propagator referral.Propagator,
	leaderboard statistic.Leaderboard,
	hooks *postcommit.Runner,
) *submissionDomain {
	return &submissionDomain{
		userRepo:       userRepo,
		submissionRepo: submissionRepo,
		ledgerRepo:     ledgerRepo,
		fetcher:        postFetcher,
		brandGate:      brandGate,
		contentScorer:  contentScorer,
		propagator:     propagator,
		leaderboard:    leaderboard,
		hooks:          hooks,
	}
}

func (d *submissionDomain) Submit(
	ctx context.Context, req *model.SubmitPostRequest,
) (*model.SubmitPostResponse, error) {
	resp, err := d.submit(ctx, req)
	recordSubmission(resp, err)
	return resp, err
}

func (d *submissionDomain) submit(
	ctx context.Context, req *model.SubmitPostRequest,
) (*model.SubmitPostResponse, error) {
	user, err := d.authorizeSubmitter(ctx)
	if err != nil {
		return nil, err
	}

	ref, err := fetcher.ParsePostReference(req.PostReference)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid post reference %q: %v", req.PostReference, err)
		return nil, errorx.New(errorx.InvalidReference, "Invalid post reference")
	}

	post, err := d.fetcher.Fetch(ctx, ref)
	if err != nil {
		if errors.Is(err, fetcher.ErrPostNotFound) {
			return nil, errorx.New(errorx.NotFound, "Post does not exist or is private")
		}

		xcontext.Logger(ctx).Warnf("Cannot fetch post %s: %v", ref.PostID, err)
		return nil, errorx.New(errorx.Unavailable, "Content platform is unavailable, please try again later")
	}

	if post.ID == "" {
		post.ID = ref.PostID
	}

	linkedHandle := fetcher.NormalizeHandle(user.TwitterHandle.String)
	if fetcher.NormalizeHandle(post.AuthorHandle) != linkedHandle {
		return nil, errorx.New(errorx.OwnershipMismatch,
			"Post is authored by @%s but your linked account is @%s",
			fetcher.NormalizeHandle(post.AuthorHandle), linkedHandle)
	}

	existing, err := d.submissionRepo.GetByPostIDAndUserID(ctx, post.ID, user.ID)
	if err == nil {
		return alreadySubmittedResponse(existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get submission: %v", err)
		return nil, errorx.Unknown
	}

	_, err = d.submissionRepo.GetByPostID(ctx, post.ID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyClaimed, "This post has already been claimed")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get submission: %v", err)
		return nil, errorx.Unknown
	}

	submission := &entity.Submission{
		Base:         entity.Base{ID: uuid.NewString()},
		UserID:       user.ID,
		PostID:       post.ID,
		AuthorHandle: post.AuthorHandle,
		Text:         post.Text,
		Likes:        post.Likes,
		Reposts:      post.Reposts,
		Replies:      post.Replies,
		Impressions:  post.Impressions,
	}

	if !d.brandGate.IsBrandMentioned(post.Text) {
		submission.Status = entity.SubmissionDisqualified
		submission.ScoringSource = entity.ScoringNone
		submission.Rationale = scoring.DisqualifiedRationale
		submission.TotalPoints = 0

		if resp, err := d.persist(ctx, submission); resp != nil || err != nil {
			return resp, err
		}

		return &model.SubmitPostResponse{
			Status:      model.SubmitStatusDisqualified,
			Submission:  model.ConvertSubmission(submission),
			TotalPoints: 0,
			Reason:      scoring.DisqualifiedRationale,
		}, nil
	}

	d.score(ctx, submission, post)
	if resp, err := d.persist(ctx, submission); resp != nil || err != nil {
		return resp, err
	}

	// The submission is the source of truth from here. Bookkeeping failures
	// are logged and left to reconciliation.
	if _, err := d.ledgerRepo.Credit(ctx, user.ID, submission.TotalPoints, false, submission.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot credit submission %s to %s: %v", submission.ID, user.ID, err)
		common.PromCounters[common.LedgerCreditFailure].WithLabelValues("submission").Inc()
	}

	credits := d.propagator.Propagate(ctx, user.ID, submission.TotalPoints, submission.ID)

	d.hooks.Run(ctx, postcommit.SubmissionEvent{
		UserID:       user.ID,
		Email:        user.Email,
		SubmissionID: submission.ID,
		Points:       submission.TotalPoints,
		Credits:      credits,
		At:           time.Now(),
	})

	referrals := []model.ReferralReward{}
	for _, c := range credits {
		referrals = append(referrals, model.ReferralReward{
			UserID: c.AncestorID,
			Level:  c.Level,
			Amount: c.Amount.Float(),
		})
	}

	return &model.SubmitPostResponse{
		Status:      model.SubmitStatusScored,
		Submission:  model.ConvertSubmission(submission),
		TotalPoints: submission.TotalPoints.Float(),
		Referrals:   referrals,
	}, nil
}

// authorizeSubmitter checks that the request comes from a human account with
// a linked twitter handle.
func (d *submissionDomain) authorizeSubmitter(ctx context.Context) (*entity.User, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	if kind := xcontext.RequestUserKind(ctx); kind != "" && kind != string(entity.HumanUser) {
		return nil, errorx.New(errorx.PermissionDenied, "Only human accounts can earn points")
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "User does not exist")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if user.Kind != entity.HumanUser {
		return nil, errorx.New(errorx.PermissionDenied, "Only human accounts can earn points")
	}

	if !user.TwitterHandle.Valid || user.TwitterHandle.String == "" {
		return nil, errorx.New(errorx.PermissionDenied, "You need to link your Twitter account before")
	}

	return user, nil
}

// score fills the breakdown and the total of the submission. The total is
// rounded exactly once here, the same value is stored and credited.
func (d *submissionDomain) score(ctx context.Context, submission *entity.Submission, post fetcher.PostData) {
	counters := scoring.Counters{
		Likes:       post.Likes,
		Reposts:     post.Reposts,
		Replies:     post.Replies,
		Impressions: post.Impressions,
	}

	verification := 0.0
	if post.AuthorVerified {
		verification = xcontext.Configs(ctx).Rewards.VerificationBonus
		if verification <= 0 {
			verification = defaultVerificationBonus
		}
	}

	content := d.contentScorer.Score(ctx, post.Text)
	engagement := scoring.EngagementScore(counters)
	penalty := scoring.BotPenalty(counters)

	submission.VerificationScore = verification
	submission.ContentScore = content.Score
	submission.EngagementScore = engagement
	submission.BotPenalty = penalty
	submission.TotalPoints = TotalPoints(verification, content.Score, engagement, penalty)
	submission.Status = entity.SubmissionScored
	submission.ScoringSource = content.Source
	submission.Rationale = fmt.Sprintf("[%s] %s", content.Source, content.Rationale)
}

// TotalPoints floors the sum at zero. There is no upper bound.
func TotalPoints(verification, content, engagement, penalty float64) entity.Points {
	total := verification + content + engagement - penalty
	if total < 0 {
		total = 0
	}

	return entity.NewPoints(total)
}

// persist inserts the submission. When a concurrent request claimed the same
// post first, it returns the outcome the loser would have seen had it come
// second. Both results are nil on success.
func (d *submissionDomain) persist(
	ctx context.Context, submission *entity.Submission,
) (*model.SubmitPostResponse, error) {
	err := d.submissionRepo.Create(ctx, submission)
	if err == nil {
		return nil, nil
	}

	winner, getErr := d.submissionRepo.GetByPostID(ctx, submission.PostID)
	if getErr == nil {
		if winner.UserID == submission.UserID {
			return alreadySubmittedResponse(winner), nil
		}
		return nil, errorx.New(errorx.AlreadyClaimed, "This post has already been claimed")
	}

	xcontext.Logger(ctx).Errorf("Cannot create submission: %v", err)
	return nil, errorx.New(errorx.Internal, "Cannot save the submission")
}

func alreadySubmittedResponse(s *entity.Submission) *model.SubmitPostResponse {
	return &model.SubmitPostResponse{
		Status:      model.SubmitStatusAlreadySubmitted,
		Submission:  model.ConvertSubmission(s),
		TotalPoints: s.TotalPoints.Float(),
	}
}

func recordSubmission(resp *model.SubmitPostResponse, err error) {
	status := "unknown"
	if resp != nil {
		status = resp.Status
	} else {
		var errx errorx.Error
		if errors.As(err, &errx) {
			status = fmt.Sprint(errx.Code)
		}
	}

	common.PromCounters[common.SubmissionTotal].WithLabelValues(status).Inc()
}

func (d *submissionDomain) GetStats(
	ctx context.Context, req *model.GetStatsRequest,
) (*model.GetStatsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	resp := &model.GetStatsResponse{
		ReferralCode:      repository.ReferralCode(userID),
		RecentSubmissions: []model.Submission{},
	}

	ledger, err := d.ledgerRepo.Get(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get ledger: %v", err)
		return nil, errorx.Unknown
	}

	if ledger != nil {
		resp.TotalPoints = ledger.TotalPoints.Float()
		resp.SubmissionsCount = ledger.Submissions
		resp.ReferralPoints = ledger.ReferralPoints.Float()
		resp.ReferralCount = ledger.ReferralCount
		resp.ReferralCode = ledger.ReferralCode
	}

	recentLimit := xcontext.Configs(ctx).Rewards.RecentSubmissions
	if recentLimit <= 0 {
		recentLimit = defaultRecentSubmissions
	}

	recent, err := d.submissionRepo.GetListByUserID(ctx, userID, 0, recentLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get recent submissions: %v", err)
		return nil, errorx.Unknown
	}
	resp.RecentSubmissions = model.ConvertSubmissions(recent)

	rank, err := d.leaderboard.GetRank(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get leaderboard position: %v", err)
	} else {
		resp.LeaderboardPosition = rank
	}

	return resp, nil
}

func (d *submissionDomain) GetMySubmissions(
	ctx context.Context, req *model.GetListSubmissionRequest,
) (*model.GetListSubmissionResponse, error) {
	if err := checkLimit(ctx, &req.Limit); err != nil {
		return nil, err
	}

	if req.Offset < 0 {
		return nil, errorx.New(errorx.BadRequest, "Offset must not be negative")
	}

	submissions, err := d.submissionRepo.GetListByUserID(
		ctx, xcontext.RequestUserID(ctx), req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get submissions: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetListSubmissionResponse{Submissions: model.ConvertSubmissions(submissions)}, nil
}
