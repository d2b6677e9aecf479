//go:build unittest

package twitter

import (
	"context"
	"fmt"
	"time"
)

func (s *Scraper) Login(ctx context.Context, creds Credentials) error {
	if creds.Username == "" || creds.Password == "" {
		return fmt.Errorf("login: %w", ErrCredentialsNotFound)
	}
	return fmt.Errorf("login: %w (build tag: unittest)", ErrBrowserNotReady)
}

func (s *Scraper) SaveCookies(path string) error {
	return fmt.Errorf("save cookies: %w (build tag: unittest)", ErrBrowserNotReady)
}

func (s *Scraper) LoginWithCookies(ctx context.Context, path string) error {
	if _, err := readCookies(path, time.Now()); err != nil {
		return fmt.Errorf("login with cookies: %w", err)
	}
	return fmt.Errorf("login with cookies: %w (build tag: unittest)", ErrBrowserNotReady)
}
