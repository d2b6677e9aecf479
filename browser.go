//go:build !unittest

package twitter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// InitBrowser launches Chrome with a stealth page. A configured proxy is
// preflighted first.
func (s *Scraper) InitBrowser(ctx context.Context) error {
	if err := s.checkProxy(ctx); err != nil {
		return fmt.Errorf("init browser: %w", err)
	}
	return s.launchBrowser()
}

func (s *Scraper) launchBrowser() error {
	l := launcher.New().Headless(s.headless)
	if s.browserBin != "" {
		l = l.Bin(s.browserBin)
	}
	if s.proxy != "" {
		l = l.Proxy(s.proxy)
	}

	start := time.Now()
	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connect browser: %w", err)
	}

	page, err := stealth.Page(browser)
	if err != nil {
		_ = browser.Close()
		return fmt.Errorf("create stealth page: %w", err)
	}

	s.browser = browser
	s.page = page

	if s.blockAssets {
		s.setupResourceBlocking()
	}

	s.log.Debug().
		Str("bin", s.browserBin).
		Bool("headless", s.headless).
		Dur("took", time.Since(start)).
		Msg("browser ready")
	return nil
}

func (s *Scraper) setupResourceBlocking() {
	router := s.browser.HijackRequests()
	blocked := []string{"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp", "*.mp4", "*.m3u8", "*.woff*", "*.svg"}
	for _, pattern := range blocked {
		router.MustAdd(pattern, func(ctx *rod.Hijack) {
			ctx.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
		})
	}
	go router.Run()
	s.router = router
}

// snapshot navigates the shared tab to rawURL, waits up to the wait timeout
// for marker and returns the rendered HTML.
func (s *Scraper) snapshot(ctx context.Context, rawURL, marker string) (string, error) {
	if s.page == nil {
		return "", ErrBrowserNotReady
	}

	totalStart := time.Now()
	page := s.page.Context(ctx)
	if err := page.Navigate(rawURL); err != nil {
		return "", fmt.Errorf("navigate %s: %w", rawURL, err)
	}

	waitStart := time.Now()
	if _, err := s.waitElement(page, marker); err != nil {
		return "", err
	}
	waitDur := time.Since(waitStart)

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("read html %s: %w", rawURL, err)
	}

	s.log.Debug().
		Str("url", rawURL).
		Dur("wait", waitDur).
		Dur("total", time.Since(totalStart)).
		Int("bytes", len(html)).
		Msg("page snapshot")
	return html, nil
}

// waitElement waits up to the wait timeout for selector. The returned
// element is detached from the timeout.
func (s *Scraper) waitElement(page *rod.Page, selector string) (*rod.Element, error) {
	el, err := page.Timeout(s.waitTimeout).Element(selector)
	if err != nil {
		return nil, waitError(err, selector)
	}
	return el.CancelTimeout(), nil
}

// waitElementText is waitElement for the first selector match whose text
// matches the regex text.
func (s *Scraper) waitElementText(page *rod.Page, selector, text string) (*rod.Element, error) {
	el, err := page.Timeout(s.waitTimeout).ElementR(selector, text)
	if err != nil {
		return nil, waitError(err, selector+" ~ "+text)
	}
	return el.CancelTimeout(), nil
}

func waitError(err error, selector string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrElementTimeout, selector)
	}
	return fmt.Errorf("wait for %s: %w", selector, err)
}

func (s *Scraper) closeBrowser() error {
	if s.router != nil {
		_ = s.router.Stop()
		s.router = nil
	}
	if s.page != nil {
		if err := s.page.Close(); err != nil {
			s.log.Debug().Err(err).Msg("close page")
		}
		s.page = nil
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			s.browser = nil
			return fmt.Errorf("close browser: %w", err)
		}
		s.browser = nil
	}
	return nil
}
