package twitter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Job describes one scraping run.
type Job struct {
	Usernames    []string
	ProfilesPath string
	Timeline     *TimelineStore
}

// Run scrapes the profile of every account, writes the profile file, then
// scrapes each account's timeline into the timeline store. A failing account
// is recorded in the Summary and the run moves on to the next one. The
// returned error is non-nil only when the profile file cannot be written or
// ctx is done.
func (s *Scraper) Run(ctx context.Context, job Job) (Summary, error) {
	sum := Summary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Results:   make([]Result, len(job.Usernames)),
	}
	log := s.log.With().Str("run", sum.RunID).Logger()
	log.Info().Int("accounts", len(job.Usernames)).Msg("run started")

	profiles, errs := s.ScrapeProfiles(ctx, job.Usernames)
	for i, username := range job.Usernames {
		sum.Results[i] = Result{Username: username, ProfileErr: errs[i]}
	}

	if err := WriteJSON(job.ProfilesPath, profiles); err != nil {
		sum.FinishedAt = time.Now()
		return sum, fmt.Errorf("write profiles: %w", err)
	}
	log.Info().Str("path", job.ProfilesPath).Int("profiles", len(profiles)).Msg("profiles saved")

	for i, username := range job.Usernames {
		if err := ctx.Err(); err != nil {
			sum.Results[i].TimelineErr = fmt.Errorf("scrape timeline %q: %w", username, err)
			continue
		}
		n, err := s.ScrapeTimeline(ctx, username, job.Timeline)
		sum.Results[i].Posts = n
		if err != nil {
			log.Warn().Err(err).Str("user", username).Msg("timeline failed")
			sum.Results[i].TimelineErr = err
		}
	}

	sum.FinishedAt = time.Now()
	log.Info().
		Int("failed", len(sum.Failed())).
		Dur("took", sum.FinishedAt.Sub(sum.StartedAt)).
		Msg("run finished")
	return sum, ctx.Err()
}
