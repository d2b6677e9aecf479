package twitter

import "time"

// Profile holds the stats shown in a profile header. Counts are kept as the
// site renders them ("4,530", "1.2M") and are nil when the page did not
// yield a value.
type Profile struct {
	Username  string  `json:"username"`
	Followers *string `json:"No. of followers"`
	Following *string `json:"No. of following"`
	Tweets    *string `json:"tweets"`
}

// Post is a single timeline entry. Text doubles as the dedup key, so two
// distinct posts with the same body collapse into one record.
type Post struct {
	UserTag   string `json:"UserTags"`
	Timestamp string `json:"TimeStamps"`
	Text      string `json:"Tweets"`
	Replies   string `json:"Replys"`
	Retweets  string `json:"reTweets"`
	Likes     string `json:"Likes"`
}

// Complete reports whether every field of the post was found.
func (p Post) Complete() bool {
	return p.UserTag != "" && p.Timestamp != "" && p.Text != "" &&
		p.Replies != "" && p.Retweets != "" && p.Likes != ""
}

// Result is the outcome of scraping one account.
type Result struct {
	Username    string
	ProfileErr  error
	TimelineErr error
	Posts       int
}

// OK reports whether both stages succeeded for the account.
func (r Result) OK() bool {
	return r.ProfileErr == nil && r.TimelineErr == nil
}

// Summary reports a whole run, one Result per account in input order.
type Summary struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []Result
}

// Failed returns the results that have at least one error.
func (s Summary) Failed() []Result {
	var failed []Result
	for _, r := range s.Results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}
