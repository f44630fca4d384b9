package common

import (
	"fmt"
	"strings"
)

const RedisKeyPointLeaderBoard = "leaderboard:points"

func RedisKeyTwitterProfile(handle string) string {
	return fmt.Sprintf("twitterprofile:%s", strings.ToLower(handle))
}
