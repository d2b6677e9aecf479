package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	twitter "github.com/RavensCloud/twitter-gofun"
)

// startSession restores the saved browser session when there is one and
// falls back to the login form. After a form login the session is saved for
// the next run.
func startSession(ctx context.Context, s *twitter.Scraper, cfg *twitter.Config, log zerolog.Logger) error {
	path := cfg.Browser.Cookies
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			err := s.LoginWithCookies(ctx, path)
			if err == nil {
				return nil
			}
			log.Warn().Err(err).Msg("saved session unusable, logging in")
		}
	}

	creds, err := twitter.ResolveCredentials(cfg.Account, keyringStore{log: log}, terminalPrompt)
	if err != nil {
		return err
	}
	if err := s.Login(ctx, creds); err != nil {
		return err
	}

	if path != "" {
		if err := s.SaveCookies(path); err != nil {
			log.Warn().Err(err).Str("cookies", path).Msg("session not saved")
		}
	}
	return nil
}

// keyringStore treats an unavailable keyring (no secret service on a
// headless box) as an empty one.
type keyringStore struct {
	twitter.KeyringStore
	log zerolog.Logger
}

func (k keyringStore) Get(key string) (string, error) {
	v, err := k.KeyringStore.Get(key)
	if err != nil && !errors.Is(err, twitter.ErrCredentialsNotFound) {
		k.log.Warn().Err(err).Msg("keyring unavailable")
		return "", twitter.ErrCredentialsNotFound
	}
	return v, err
}

// terminalPrompt reads a value from stdin, without echo for secrets. When
// stdin is not a terminal secrets are not prompted for.
func terminalPrompt(label string, secret bool) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		if secret {
			return "", nil
		}
		return readLine(label)
	}

	fmt.Fprintf(os.Stderr, "%s: ", label)
	if secret {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return readLine("")
}

func readLine(label string) (string, error) {
	if label != "" {
		fmt.Fprintf(os.Stderr, "%s: ", label)
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", nil
	}
	return strings.TrimSpace(line), nil
}
