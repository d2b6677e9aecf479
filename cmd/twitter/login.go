package main

import (
	"fmt"

	"github.com/spf13/cobra"

	twitter "github.com/RavensCloud/twitter-gofun"
)

var loginCookies string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in through the browser and save the session cookies",
	RunE:  runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginCookies, "cookies", "", "where to save the session cookies (default cookies.json)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(func(c *twitter.Config) {
		setIf(&c.Browser.Cookies, loginCookies)
		if c.Browser.Cookies == "" {
			c.Browser.Cookies = "cookies.json"
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

	creds, err := twitter.ResolveCredentials(cfg.Account, keyringStore{log: log}, terminalPrompt)
	if err != nil {
		return err
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
	if err := s.Login(ctx, creds); err != nil {
		return err
	}
	if err := s.SaveCookies(cfg.Browser.Cookies); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in! Cookies saved to %s\n", cfg.Browser.Cookies)
	return nil
}
