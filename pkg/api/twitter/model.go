package twitter

type User struct {
	ID       string `mapstructure:"id"`
	Name     string `mapstructure:"name"`
	Handle   string `mapstructure:"username"`
	Verified bool   `mapstructure:"verified"`
}

type PublicMetrics struct {
	Likes       int64 `mapstructure:"like_count"`
	Reposts     int64 `mapstructure:"retweet_count"`
	Replies     int64 `mapstructure:"reply_count"`
	Quotes      int64 `mapstructure:"quote_count"`
	Impressions int64 `mapstructure:"impression_count"`
}

type Tweet struct {
	ID       string        `mapstructure:"id"`
	Text     string        `mapstructure:"text"`
	AuthorID string        `mapstructure:"author_id"`
	Metrics  PublicMetrics `mapstructure:"public_metrics"`

	// Author is resolved from the includes of the response.
	Author User `mapstructure:"-"`
}

type apiError struct {
	Title  string `mapstructure:"title"`
	Type   string `mapstructure:"type"`
	Detail string `mapstructure:"detail"`
}

type tweetResponse struct {
	Data     *Tweet `mapstructure:"data"`
	Includes struct {
		Users []User `mapstructure:"users"`
	} `mapstructure:"includes"`
	Errors []apiError `mapstructure:"errors"`
}

type userResponse struct {
	Data   *User      `mapstructure:"data"`
	Errors []apiError `mapstructure:"errors"`
}
