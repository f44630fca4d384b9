package domain

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/questx-lab/rewards/internal/domain/fetcher"
	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/internal/model"
	"github.com/questx-lab/rewards/internal/repository"
	"github.com/questx-lab/rewards/pkg/crypto"
	"github.com/questx-lab/rewards/pkg/enum"
	"github.com/questx-lab/rewards/pkg/errorx"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"gorm.io/gorm"
)

const verificationCodeLength = 6

var (
	emailRegex         = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	twitterHandleRegex = regexp.MustCompile(`^[a-z0-9_]{1,15}$`)
)

type UserDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	VerifyEmail(context.Context, *model.VerifyEmailRequest) (*model.VerifyEmailResponse, error)
	LinkTwitter(context.Context, *model.LinkTwitterRequest) (*model.LinkTwitterResponse, error)
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
}

type userDomain struct {
	userRepo        repository.UserRepository
	ledgerRepo      repository.LedgerRepository
	referralRepo    repository.ReferralRepository
	profileResolver fetcher.ProfileResolver
}

func NewUserDomain(
	userRepo repository.UserRepository,
	ledgerRepo repository.LedgerRepository,
	referralRepo repository.ReferralRepository,
	profileResolver fetcher.ProfileResolver,
) *userDomain {
	return &userDomain{
		userRepo:        userRepo,
		ledgerRepo:      ledgerRepo,
		referralRepo:    referralRepo,
		profileResolver: profileResolver,
	}
}

func (d *userDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !emailRegex.MatchString(email) {
		return nil, errorx.New(errorx.BadRequest, "Invalid email")
	}

	if req.Kind == "" {
		req.Kind = string(entity.HumanUser)
	}

	kind, err := enum.ToEnum[entity.UserKind](req.Kind)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid user kind: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid user kind")
	}

	_, err = d.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Email is already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	var referrer *entity.PointsLedger
	if code := strings.ToUpper(strings.TrimSpace(req.ReferralCode)); code != "" {
		referrer, err = d.ledgerRepo.GetByReferralCode(ctx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.BadRequest, "Invalid referral code")
			}

			xcontext.Logger(ctx).Errorf("Cannot get referrer: %v", err)
			return nil, errorx.Unknown
		}
	}

	user := &entity.User{
		Base:                  entity.Base{ID: uuid.NewString()},
		Email:                 email,
		Kind:                  kind,
		EmailVerificationCode: crypto.GenerateRandomAlphabet(verificationCodeLength),
	}

	ledger := &entity.PointsLedger{UserID: user.ID}
	if referrer != nil {
		ledger.ReferredBy = sql.NullString{String: referrer.UserID, Valid: true}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.ledgerRepo.Create(ctx, ledger); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create ledger: %v", err)
		return nil, errorx.Unknown
	}

	if referrer != nil {
		err := d.referralRepo.Create(ctx, &entity.ReferralEdge{
			Base:       entity.Base{ID: uuid.NewString()},
			ReferrerID: referrer.UserID,
			ReferredID: user.ID,
			Code:       referrer.ReferralCode,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create referral edge: %v", err)
			return nil, errorx.Unknown
		}

		if err := d.ledgerRepo.IncreaseReferralCount(ctx, referrer.UserID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot increase referral count: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	if !xcontext.Configs(ctx).IsProduction() {
		xcontext.Logger(ctx).Debugf("Verification code of %s is %s", user.Email, user.EmailVerificationCode)
	}

	token, err := xcontext.TokenEngine(ctx).Generate(user.ID, model.AccessToken{
		ID:   user.ID,
		Kind: string(user.Kind),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RegisterResponse{
		User:         model.ConvertUser(user),
		AccessToken:  token,
		ReferralCode: ledger.ReferralCode,
	}, nil
}

func (d *userDomain) VerifyEmail(
	ctx context.Context, req *model.VerifyEmailRequest,
) (*model.VerifyEmailResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, errorx.New(errorx.BadRequest, "Empty verification code")
	}

	err := d.userRepo.VerifyEmail(ctx, xcontext.RequestUserID(ctx), code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Invalid code or email is already verified")
		}

		xcontext.Logger(ctx).Errorf("Cannot verify email: %v", err)
		return nil, errorx.Unknown
	}

	return &model.VerifyEmailResponse{}, nil
}

func (d *userDomain) LinkTwitter(
	ctx context.Context, req *model.LinkTwitterRequest,
) (*model.LinkTwitterResponse, error) {
	handle := fetcher.NormalizeHandle(req.Handle)
	if !twitterHandleRegex.MatchString(handle) {
		return nil, errorx.New(errorx.BadRequest, "Invalid twitter handle")
	}

	profile, err := d.profileResolver.Resolve(ctx, handle)
	if err != nil {
		if errors.Is(err, fetcher.ErrProfileNotFound) {
			return nil, errorx.New(errorx.NotFound, "Twitter account does not exist")
		}

		xcontext.Logger(ctx).Warnf("Cannot resolve twitter profile: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Content platform is unavailable, please try again later")
	}

	requestUserID := xcontext.RequestUserID(ctx)
	owner, err := d.userRepo.GetByTwitterHandle(ctx, profile.Handle)
	if err == nil && owner.ID != requestUserID {
		return nil, errorx.New(errorx.AlreadyExists, "This twitter account is linked to another user")
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by twitter handle: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.UpdateTwitter(ctx, requestUserID, profile.Handle, profile.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update twitter handle: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LinkTwitterResponse{
		TwitterHandle: profile.Handle,
		Verified:      profile.Verified,
	}, nil
}

func (d *userDomain) GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetMeResponse(model.ConvertUser(user))
	return &resp, nil
}
