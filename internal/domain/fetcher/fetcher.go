package fetcher

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrInvalidReference = errors.New("invalid post reference")
	ErrPostNotFound     = errors.New("post does not exist or is private")
	ErrProfileNotFound  = errors.New("profile does not exist")
	ErrTransient        = errors.New("content platform is unavailable")
)

type PostData struct {
	ID             string
	AuthorID       string
	AuthorHandle   string
	AuthorVerified bool
	Text           string
	Likes          int64
	Reposts        int64
	Replies        int64
	Impressions    int64
}

// Fetcher loads a post from the content platform. Errors are ErrPostNotFound
// or ErrTransient, possibly wrapped.
type Fetcher interface {
	Fetch(ctx context.Context, ref Reference) (PostData, error)
}

type Profile struct {
	ID       string `json:"id"`
	Handle   string `json:"handle"`
	Verified bool   `json:"verified"`
}

type ProfileResolver interface {
	Resolve(ctx context.Context, handle string) (Profile, error)
}

type ProfileCache interface {
	Get(ctx context.Context, handle string) (Profile, bool)
	Set(ctx context.Context, profile Profile)
}
