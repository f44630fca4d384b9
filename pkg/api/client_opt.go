package api

import "net/http"

type oauth2Opt struct {
	token string
}

// OAuth2 sets the Authorization header, e.g. OAuth2("Bearer", token).
func OAuth2(prefix, token string) *oauth2Opt {
	return &oauth2Opt{token: prefix + " " + token}
}

func (opt *oauth2Opt) Do(req *http.Request) {
	req.Header.Set("Authorization", opt.token)
}
