package model

type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Kind          string `json:"kind"`
	EmailVerified bool   `json:"email_verified"`
	TwitterHandle string `json:"twitter_handle,omitempty"`
	CreatedAt     string `json:"created_at"`
}

type RegisterRequest struct {
	Email        string `json:"email"`
	Kind         string `json:"kind"`
	ReferralCode string `json:"referral_code"`
}

type RegisterResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	ReferralCode string `json:"referral_code"`
}

type VerifyEmailRequest struct {
	Code string `json:"code"`
}

type VerifyEmailResponse struct{}

type LinkTwitterRequest struct {
	Handle string `json:"handle"`
}

type LinkTwitterResponse struct {
	TwitterHandle string `json:"twitter_handle"`
	Verified      bool   `json:"verified"`
}

type GetMeRequest struct{}

type GetMeResponse User
