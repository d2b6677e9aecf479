package twitter

// Selectors holds the DOM selectors used to drive and read twitter.com.
// The site reshuffles its markup often, so every selector can be overridden
// from the config file without a rebuild.
type Selectors struct {
	// Login form.
	UsernameInput string `yaml:"username_input" validate:"required"`
	PasswordInput string `yaml:"password_input" validate:"required"`
	ButtonText    string `yaml:"button_text" validate:"required"`
	NextText      string `yaml:"next_text" validate:"required"`
	LoginText     string `yaml:"login_text" validate:"required"`
	CodeInput     string `yaml:"code_input" validate:"required"`
	HomeMarker    string `yaml:"home_marker" validate:"required"`

	// Profile header. ProfileStat matches every header count twice, so
	// following is match 0 and followers match 2.
	ProfileStat  string `yaml:"profile_stat" validate:"required"`
	ProfileCount string `yaml:"profile_count" validate:"required"`

	// Timeline.
	Post      string `yaml:"post" validate:"required"`
	PostUser  string `yaml:"post_user" validate:"required"`
	PostTime  string `yaml:"post_time" validate:"required"`
	PostText  string `yaml:"post_text" validate:"required"`
	PostReply string `yaml:"post_reply" validate:"required"`
	PostShare string `yaml:"post_share" validate:"required"`
	PostLike  string `yaml:"post_like" validate:"required"`
}

// DefaultSelectors returns the selectors matching the twitter.com markup the
// scraper was written against.
func DefaultSelectors() Selectors {
	return Selectors{
		UsernameInput: `input[autocomplete="username"][type="text"]`,
		PasswordInput: `input[autocomplete="current-password"][type="password"]`,
		ButtonText:    `span`,
		NextText:      `Next`,
		LoginText:     `Log in`,
		CodeInput:     `input[data-testid="ocfEnterTextTextInput"]`,
		HomeMarker:    `[data-testid="SideNav_NewTweet_Button"], [data-testid="AppTabBar_Home_Link"]`,

		ProfileStat:  `div.css-1dbjc4n.r-13awgt0.r-18u37iz.r-1w6e6rj > div > a span.css-901oao.css-16my406.r-poiln3.r-bcqeeo.r-qvutc0`,
		ProfileCount: `div[dir="ltr"].css-901oao.css-1hf3ou5.r-1bwzh9t.r-37j5jr.r-n6v787.r-16dba41.r-1cwl3u0.r-bcqeeo.r-qvutc0`,

		Post:      `article[data-testid="tweet"]`,
		PostUser:  `[data-testid="User-Name"]`,
		PostTime:  `time`,
		PostText:  `[data-testid="tweetText"]`,
		PostReply: `[data-testid="reply"]`,
		PostShare: `[data-testid="retweet"]`,
		PostLike:  `[data-testid="like"]`,
	}
}
