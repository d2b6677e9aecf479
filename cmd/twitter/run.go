package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	twitter "github.com/RavensCloud/twitter-gofun"
)

var (
	usernamesFile string
	profilesFile  string
	tweetsFile    string
	cookiesFile   string
	proxyURL      string
	headless      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Log in, then scrape profiles and timelines for every listed account",
	RunE:  runScrape,
}

func init() {
	runCmd.Flags().StringVarP(&usernamesFile, "usernames", "u", "", "file with one account per line (default usernames.txt)")
	runCmd.Flags().StringVar(&profilesFile, "profiles", "", "profile output file (default twitter_profiles.json)")
	runCmd.Flags().StringVar(&tweetsFile, "tweets", "", "timeline output file (default tweets_live.json)")
	runCmd.Flags().StringVar(&cookiesFile, "cookies", "", "session cookie file to restore and save")
	runCmd.Flags().StringVar(&proxyURL, "proxy", "", "proxy URL (http/https/socks5)")
	runCmd.Flags().BoolVar(&headless, "headless", true, "run Chrome without a window")

	rootCmd.AddCommand(runCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(func(c *twitter.Config) {
		setIf(&c.Files.Usernames, usernamesFile)
		setIf(&c.Files.Profiles, profilesFile)
		setIf(&c.Files.Tweets, tweetsFile)
		setIf(&c.Browser.Cookies, cookiesFile)
		setIf(&c.Browser.Proxy, proxyURL)
		if cmd.Flags().Changed("headless") {
			c.Browser.Headless = headless
		}
	})
	if err != nil {
		return err
	}

	log, cleanup, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer cleanup()

	usernames, err := twitter.ReadUsernames(cfg.Files.Usernames)
	if err != nil {
		return err
	}
	if len(usernames) == 0 {
		return fmt.Errorf("no accounts listed in %s", cfg.Files.Usernames)
	}

	s, err := twitter.NewFromConfig(cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if err := s.InitBrowser(ctx); err != nil {
		return err
	}
	if err := startSession(ctx, s, cfg, log); err != nil {
		return err
	}

	sum, err := s.Run(ctx, twitter.Job{
		Usernames:    usernames,
		ProfilesPath: cfg.Files.Profiles,
		Timeline:     &twitter.TimelineStore{Path: cfg.Files.Tweets},
	})
	printSummary(cmd.OutOrStdout(), sum)
	if err != nil {
		return err
	}
	if failed := sum.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d of %d accounts failed", len(failed), len(sum.Results))
	}
	return nil
}

func printSummary(w io.Writer, sum twitter.Summary) {
	fmt.Fprintf(w, "Run %s (%s)\n", sum.RunID, sum.FinishedAt.Sub(sum.StartedAt).Round(time.Second))
	for _, r := range sum.Results {
		status := "ok"
		if !r.OK() {
			status = "FAILED"
		}
		fmt.Fprintf(w, "  @%-15s %-6s posts=%d\n", r.Username, status, r.Posts)
		if r.ProfileErr != nil {
			fmt.Fprintf(w, "      profile:  %v\n", r.ProfileErr)
		}
		if r.TimelineErr != nil {
			fmt.Fprintf(w, "      timeline: %v\n", r.TimelineErr)
		}
	}
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
