package twitter

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Positions of the profile header stats. Each count is rendered as a span
// nested in a span of the same class, so the stat selector matches every
// count twice and followers lands at index 2.
const (
	statFollowing = 0
	statFollowers = 2
)

// parseProfile reads the profile header stats from a rendered profile page.
func parseProfile(username, page string, sel Selectors) (Profile, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return Profile{}, fmt.Errorf("parse profile html: %w", err)
	}

	var stats []string
	doc.Find(sel.ProfileStat).Each(func(_ int, s *goquery.Selection) {
		stats = append(stats, strings.TrimSpace(s.Text()))
	})
	if len(stats) <= statFollowers {
		return Profile{}, fmt.Errorf("%w: %d profile stats for %q, want at least %d",
			ErrLayoutChanged, len(stats), username, statFollowers+1)
	}

	p := Profile{
		Username:  username,
		Following: strPtr(stats[statFollowing]),
		Followers: strPtr(stats[statFollowers]),
	}

	if count := doc.Find(sel.ProfileCount).First(); count.Length() > 0 {
		if fields := strings.Fields(count.Text()); len(fields) > 0 {
			p.Tweets = strPtr(fields[0])
		}
	}
	return p, nil
}

// parsePosts extracts one Post per post container on a rendered timeline.
// Every lookup is scoped to its own container.
func parsePosts(page string, sel Selectors) ([]Post, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse timeline html: %w", err)
	}

	var posts []Post
	doc.Find(sel.Post).Each(func(_ int, article *goquery.Selection) {
		posts = append(posts, parsePost(article, sel))
	})
	return posts, nil
}

func parsePost(article *goquery.Selection, sel Selectors) Post {
	p := Post{
		UserTag:  visibleText(article.Find(sel.PostUser).First()),
		Text:     strings.TrimSpace(article.Find(sel.PostText).First().Text()),
		Replies:  countText(article.Find(sel.PostReply).First()),
		Retweets: countText(article.Find(sel.PostShare).First()),
		Likes:    countText(article.Find(sel.PostLike).First()),
	}
	if ts, ok := article.Find(sel.PostTime).First().Attr("datetime"); ok {
		p.Timestamp = strings.TrimSpace(ts)
	}
	return p
}

// countText returns the text of an engagement control. The site leaves the
// label empty when the count is zero, so a present but empty control reads
// as "0" and only a missing control yields "".
func countText(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	if t := strings.TrimSpace(s.Text()); t != "" {
		return t
	}
	return "0"
}

// visibleText joins the non-blank text nodes under s with newlines, which is
// how the browser renders the stacked name, handle and age of a post author.
func visibleText(s *goquery.Selection) string {
	var lines []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				lines = append(lines, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return strings.Join(lines, "\n")
}

func strPtr(s string) *string {
	return &s
}
