package twitter

import (
	"context"
	"fmt"
	"time"
)

// ScrapeProfile loads a profile page and reads its follower, following and
// post counts.
func (s *Scraper) ScrapeProfile(ctx context.Context, username string) (Profile, error) {
	if err := validateUsername(username); err != nil {
		return Profile{}, fmt.Errorf("scrape profile: %w", err)
	}

	totalStart := time.Now()
	page, err := s.snapshotFunc(ctx, s.profileURL(username), s.selectors.ProfileStat)
	if err != nil {
		return Profile{}, fmt.Errorf("load profile %q: %w", username, err)
	}

	parseStart := time.Now()
	p, err := parseProfile(username, page, s.selectors)
	if err != nil {
		return Profile{}, fmt.Errorf("parse profile %q: %w", username, err)
	}

	s.log.Debug().
		Str("user", username).
		Dur("parse", time.Since(parseStart)).
		Dur("total", time.Since(totalStart)).
		Msg("profile scraped")
	return p, nil
}

// ScrapeProfiles scrapes every account in order. The result always has one
// Profile per username; an account that failed gets a Profile with nil
// counts and its error at the same index of the returned error slice.
func (s *Scraper) ScrapeProfiles(ctx context.Context, usernames []string) ([]Profile, []error) {
	profiles := make([]Profile, len(usernames))
	errs := make([]error, len(usernames))

	for i, username := range usernames {
		if err := ctx.Err(); err != nil {
			profiles[i] = Profile{Username: username}
			errs[i] = fmt.Errorf("scrape profile %q: %w", username, err)
			continue
		}

		p, err := s.ScrapeProfile(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Str("user", username).Msg("profile failed")
			profiles[i] = Profile{Username: username}
			errs[i] = err
			continue
		}
		profiles[i] = p
	}
	return profiles, errs
}
