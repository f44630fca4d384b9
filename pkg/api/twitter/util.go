package twitter

import (
	"net/http"

	"github.com/questx-lab/rewards/pkg/api"
)

func IsRateLimit(resp *api.Response) bool {
	if resp.Code == http.StatusTooManyRequests {
		return true
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return false
	}

	errs, err := body.GetArray("errors")
	if err != nil {
		return false
	}

	for i := range errs {
		if m, ok := errs[i].(map[string]any); ok {
			if code, err := api.JSON(m).GetInt("code"); err == nil && code == 88 {
				return true
			}
		}
	}

	return false
}

// isMissingResource reports whether the errors describe a deleted, suspended
// or protected resource. Twitter answers those with a 200 and no data.
func isMissingResource(errs []apiError) bool {
	for _, e := range errs {
		switch e.Title {
		case "Not Found Error", "Authorization Error", "Forbidden":
			return true
		}
	}

	return false
}
