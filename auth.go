//go:build !unittest

package twitter

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pquerna/otp/totp"
)

// Login fills in the two-step login form in the browser: username, "Next",
// password, "Log in". When the site asks for a verification code and the
// credentials carry a TOTP secret, the code is generated and submitted.
func (s *Scraper) Login(ctx context.Context, creds Credentials) error {
	if creds.Username == "" || creds.Password == "" {
		return fmt.Errorf("login: %w", ErrCredentialsNotFound)
	}
	if s.page == nil {
		return fmt.Errorf("login: %w", ErrBrowserNotReady)
	}

	start := time.Now()
	sel := s.selectors
	page := s.page.Context(ctx)

	if err := page.Navigate(s.baseURL + "/login"); err != nil {
		return fmt.Errorf("navigate to login: %w", err)
	}

	if err := s.typeInto(page, sel.UsernameInput, creds.Username); err != nil {
		return fmt.Errorf("enter username: %w", err)
	}
	if err := s.clickText(page, sel.NextText); err != nil {
		return fmt.Errorf("click %q: %w", sel.NextText, err)
	}
	if err := s.typeInto(page, sel.PasswordInput, creds.Password); err != nil {
		return fmt.Errorf("enter password: %w", err)
	}
	if err := s.clickText(page, sel.LoginText); err != nil {
		return fmt.Errorf("click %q: %w", sel.LoginText, err)
	}

	if err := s.awaitHome(page, creds); err != nil {
		return err
	}

	s.isLogged = true
	s.log.Info().
		Str("user", creds.Username).
		Dur("took", time.Since(start)).
		Msg("logged in")
	return nil
}

// awaitHome waits for the logged-in home marker, answering a verification
// code prompt on the way if one shows up first.
func (s *Scraper) awaitHome(page *rod.Page, creds Credentials) error {
	sel := s.selectors

	challenged := false
	race := page.Timeout(s.waitTimeout)
	defer race.CancelTimeout()
	_, err := race.Race().
		Element(sel.HomeMarker).
		Element(sel.CodeInput).Handle(func(*rod.Element) error {
		challenged = true
		return nil
	}).
		Do()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoginFailed, waitError(err, sel.HomeMarker))
	}
	if !challenged {
		return nil
	}

	if creds.TOTPSecret == "" {
		return fmt.Errorf("login %s: %w: verification code requested and no TOTP secret configured",
			creds.Username, ErrChallenge)
	}
	code, err := totp.GenerateCode(creds.TOTPSecret, time.Now())
	if err != nil {
		return fmt.Errorf("generate TOTP code for %s: %w", creds.Username, err)
	}
	s.log.Info().Str("user", creds.Username).Msg("submitting TOTP code")

	if err := s.typeInto(page, sel.CodeInput, code); err != nil {
		return fmt.Errorf("enter verification code: %w", err)
	}
	if err := s.clickText(page, sel.NextText); err != nil {
		return fmt.Errorf("submit verification code: %w", err)
	}
	if _, err := s.waitElement(page, sel.HomeMarker); err != nil {
		return fmt.Errorf("%w: after verification code: %v", ErrLoginFailed, err)
	}
	return nil
}

func (s *Scraper) typeInto(page *rod.Page, selector, text string) error {
	el, err := s.waitElement(page, selector)
	if err != nil {
		return err
	}
	return el.Input(text)
}

func (s *Scraper) clickText(page *rod.Page, text string) error {
	el, err := s.waitElementText(page, s.selectors.ButtonText, text)
	if err != nil {
		return err
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

// SaveCookies writes the browser's cookies to path so a later run can skip
// the login form.
func (s *Scraper) SaveCookies(path string) error {
	if s.browser == nil {
		return fmt.Errorf("save cookies: %w", ErrBrowserNotReady)
	}
	cookies, err := s.browser.GetCookies()
	if err != nil {
		return fmt.Errorf("get browser cookies: %w", err)
	}
	return writeCookies(path, cookies)
}

// LoginWithCookies restores cookies saved by SaveCookies and checks that they
// still open a logged-in home timeline.
func (s *Scraper) LoginWithCookies(ctx context.Context, path string) error {
	if s.browser == nil || s.page == nil {
		return fmt.Errorf("login with cookies: %w", ErrBrowserNotReady)
	}
	cookies, err := readCookies(path, time.Now())
	if err != nil {
		return fmt.Errorf("login with cookies: %w", err)
	}
	if err := s.browser.SetCookies(cookies); err != nil {
		return fmt.Errorf("set browser cookies: %w", err)
	}

	if _, err := s.snapshotFunc(ctx, s.baseURL+"/home", s.selectors.HomeMarker); err != nil {
		return fmt.Errorf("%w: saved session rejected: %v", ErrLoginFailed, err)
	}
	s.isLogged = true
	s.log.Info().Str("cookies", path).Msg("session restored")
	return nil
}
