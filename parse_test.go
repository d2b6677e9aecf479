package twitter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return string(data)
}

func TestParseProfile_Fixture(t *testing.T) {
	t.Parallel()
	p, err := parseProfile("alice", readFixture(t, "profile.html"), DefaultSelectors())
	if err != nil {
		t.Fatalf("parseProfile: %v", err)
	}
	if p.Username != "alice" {
		t.Errorf("expected username alice, got %q", p.Username)
	}
	if deref(p.Following) != "120" {
		t.Errorf("expected following 120, got %s", deref(p.Following))
	}
	if deref(p.Followers) != "4,530" {
		t.Errorf("expected followers 4,530, got %s", deref(p.Followers))
	}
	if deref(p.Tweets) != "1,289" {
		t.Errorf("expected tweets 1,289, got %s", deref(p.Tweets))
	}
}

func TestParseProfile_EmptyPage(t *testing.T) {
	t.Parallel()
	_, err := parseProfile("alice", "<html><body></body></html>", DefaultSelectors())
	if !errors.Is(err, ErrLayoutChanged) {
		t.Fatalf("expected ErrLayoutChanged, got %v", err)
	}
}

func TestParseProfile_BlankCount(t *testing.T) {
	t.Parallel()
	page := userPage([]string{"1", "·", "2"}, "   ")
	p, err := parseProfile("alice", page, DefaultSelectors())
	if err != nil {
		t.Fatalf("parseProfile: %v", err)
	}
	if p.Tweets != nil {
		t.Errorf("expected nil tweets for blank count, got %q", *p.Tweets)
	}
}

func TestParsePosts_Fixture(t *testing.T) {
	t.Parallel()
	posts, err := parsePosts(readFixture(t, "timeline.html"), DefaultSelectors())
	if err != nil {
		t.Fatalf("parsePosts: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}

	want := []Post{
		{
			UserTag:   "Alice\n@alice\n·\nJun 1",
			Timestamp: "2023-06-01T12:00:00.000Z",
			Text:      "Shipping the new release today. Release notes below.",
			Replies:   "12",
			Retweets:  "3",
			Likes:     "1.2K",
		},
		{
			UserTag:   "Bob\n@bob\n·\nMay 30",
			Timestamp: "2023-05-30T09:15:00.000Z",
			Text:      "Quiet post",
			Replies:   "0",
			Retweets:  "0",
			Likes:     "7",
		},
		{
			UserTag:  "Alice\n@alice",
			Replies:  "1",
			Retweets: "1",
			Likes:    "1",
		},
	}
	for i := range want {
		if posts[i] != want[i] {
			t.Errorf("post %d:\n got  %+v\n want %+v", i, posts[i], want[i])
		}
	}
	if !posts[0].Complete() || !posts[1].Complete() {
		t.Error("expected the first two posts to be complete")
	}
	if posts[2].Complete() {
		t.Error("expected the post without text and time to be incomplete")
	}
}

func TestParsePosts_NoPosts(t *testing.T) {
	t.Parallel()
	posts, err := parsePosts(readFixture(t, "profile.html"), DefaultSelectors())
	if err != nil {
		t.Fatalf("parsePosts: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("expected no posts, got %d", len(posts))
	}
}

func TestParsePosts_CustomSelectors(t *testing.T) {
	t.Parallel()
	sel := DefaultSelectors()
	sel.Post = `div.status`
	sel.PostText = `p.body`
	page := `<div class="status">
		<div data-testid="User-Name"><span>Carol</span></div>
		<time datetime="2024-01-01T00:00:00Z"></time>
		<p class="body">custom layout</p>
		<div data-testid="reply">4</div><div data-testid="retweet">5</div><div data-testid="like">6</div>
	</div>`

	posts, err := parsePosts(page, sel)
	if err != nil {
		t.Fatalf("parsePosts: %v", err)
	}
	if len(posts) != 1 || posts[0].Text != "custom layout" || posts[0].Likes != "6" {
		t.Errorf("unexpected posts %+v", posts)
	}
}
