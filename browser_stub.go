//go:build unittest

package twitter

import (
	"context"
	"fmt"
)

func (s *Scraper) InitBrowser(ctx context.Context) error {
	if err := s.checkProxy(ctx); err != nil {
		return fmt.Errorf("init browser: %w", err)
	}
	return s.launchBrowser()
}

func (s *Scraper) launchBrowser() error {
	return fmt.Errorf("browser: %w (build tag: unittest)", ErrBrowserNotReady)
}

func (s *Scraper) setupResourceBlocking() {}

func (s *Scraper) snapshot(ctx context.Context, rawURL, marker string) (string, error) {
	return "", fmt.Errorf("snapshot %s: %w (build tag: unittest)", rawURL, ErrBrowserNotReady)
}

func (s *Scraper) closeBrowser() error {
	s.page = nil
	s.browser = nil
	s.router = nil
	return nil
}
