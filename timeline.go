package twitter

import (
	"context"
	"fmt"
	"time"
)

// ScrapeTimeline loads an account's timeline, extracts the posts currently
// rendered and merges them into store one post at a time, so the file on disk
// is current after every post. It returns the number of posts found.
func (s *Scraper) ScrapeTimeline(ctx context.Context, username string, store *TimelineStore) (int, error) {
	if err := validateUsername(username); err != nil {
		return 0, fmt.Errorf("scrape timeline: %w", err)
	}

	totalStart := time.Now()
	page, err := s.snapshotFunc(ctx, s.profileURL(username), s.selectors.Post)
	if err != nil {
		return 0, fmt.Errorf("load timeline %q: %w", username, err)
	}

	posts, err := parsePosts(page, s.selectors)
	if err != nil {
		return 0, fmt.Errorf("parse timeline %q: %w", username, err)
	}

	incomplete := 0
	stored := 0
	for i, p := range posts {
		if !p.Complete() {
			incomplete++
		}
		merged, err := store.Merge([]Post{p})
		if err != nil {
			return i, fmt.Errorf("persist post %d of %q: %w", i+1, username, err)
		}
		stored = len(merged)
	}

	s.log.Info().
		Str("user", username).
		Int("posts", len(posts)).
		Int("incomplete", incomplete).
		Int("stored", stored).
		Dur("total", time.Since(totalStart)).
		Msg("timeline scraped")
	return len(posts), nil
}
