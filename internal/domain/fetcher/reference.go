package fetcher

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var (
	numericRegex = regexp.MustCompile(`^\d{1,25}$`)
	statusRegex  = regexp.MustCompile(`^/([A-Za-z0-9_]{1,50})/status(?:es)?/(\d{1,25})(?:/.*)?$`)
)

var allowedHosts = map[string]struct{}{
	"twitter.com":        {},
	"www.twitter.com":    {},
	"mobile.twitter.com": {},
	"x.com":              {},
	"www.x.com":          {},
	"mobile.x.com":       {},
}

// Reference is a parsed post reference. Handle is empty when the reference is
// a bare id.
type Reference struct {
	PostID string
	Handle string
}

// ParsePostReference accepts a bare numeric id or a post URL on twitter.com or
// x.com. Query strings, fragments and trailing segments such as /photo/1 are
// ignored.
func ParsePostReference(ref string) (Reference, error) {
	ref = strings.TrimSpace(ref)
	if numericRegex.MatchString(ref) {
		return Reference{PostID: ref}, nil
	}

	if !strings.Contains(ref, "://") {
		ref = "https://" + ref
	}

	u, err := url.Parse(ref)
	if err != nil {
		return Reference{}, errors.Wrap(ErrInvalidReference, err.Error())
	}

	if u.Scheme != "https" && u.Scheme != "http" {
		return Reference{}, errors.Wrap(ErrInvalidReference, "invalid scheme")
	}

	if _, ok := allowedHosts[strings.ToLower(u.Hostname())]; !ok {
		return Reference{}, errors.Wrap(ErrInvalidReference, "invalid domain")
	}

	matches := statusRegex.FindStringSubmatch(u.Path)
	if matches == nil {
		return Reference{}, errors.Wrap(ErrInvalidReference, "invalid path")
	}

	return Reference{PostID: matches[2], Handle: matches[1]}, nil
}

// NormalizeHandle strips the leading @ and lowercases the handle.
func NormalizeHandle(handle string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(handle), "@"))
}
