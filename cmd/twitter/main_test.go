package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	twitter "github.com/RavensCloud/twitter-gofun"
)

type memStore struct {
	secrets map[string]string
}

func (m *memStore) Get(key string) (string, error) {
	v, ok := m.secrets[key]
	if !ok {
		return "", twitter.ErrCredentialsNotFound
	}
	return v, nil
}

func (m *memStore) Set(key, value string) error {
	m.secrets[key] = value
	return nil
}

func (m *memStore) Delete(key string) error {
	if _, ok := m.secrets[key]; !ok {
		return twitter.ErrCredentialsNotFound
	}
	delete(m.secrets, key)
	return nil
}

func answers(m map[string]string) twitter.Prompter {
	return func(label string, _ bool) (string, error) {
		return m[label], nil
	}
}

func TestSetCredentials(t *testing.T) {
	store := &memStore{secrets: map[string]string{}}
	prompt := answers(map[string]string{
		"Password for alice":    "pw",
		"TOTP secret for alice": "JBSWY3DPEHPK3PXP",
	})

	if err := setCredentials(store, prompt, "alice", false); err != nil {
		t.Fatalf("setCredentials: %v", err)
	}
	if store.secrets["password/alice"] != "pw" {
		t.Errorf("password not stored: %v", store.secrets)
	}
	if _, ok := store.secrets["totp/alice"]; ok {
		t.Error("TOTP secret stored without --totp")
	}

	if err := setCredentials(store, prompt, "alice", true); err != nil {
		t.Fatalf("setCredentials --totp: %v", err)
	}
	if store.secrets["totp/alice"] != "JBSWY3DPEHPK3PXP" {
		t.Errorf("TOTP secret not stored: %v", store.secrets)
	}
}

func TestSetCredentials_EmptyPassword(t *testing.T) {
	store := &memStore{secrets: map[string]string{}}
	if err := setCredentials(store, answers(nil), "alice", false); err == nil {
		t.Fatal("expected error for empty password")
	}
	if len(store.secrets) != 0 {
		t.Errorf("nothing should be stored, got %v", store.secrets)
	}
}

func TestSetCredentials_PromptError(t *testing.T) {
	boom := errors.New("no tty")
	prompt := func(string, bool) (string, error) { return "", boom }
	err := setCredentials(&memStore{secrets: map[string]string{}}, prompt, "alice", false)
	if !errors.Is(err, boom) {
		t.Fatalf("expected prompt error, got %v", err)
	}
}

func TestDeleteCredentials(t *testing.T) {
	store := &memStore{secrets: map[string]string{
		"password/alice": "pw",
		"totp/alice":     "x",
		"password/bob":   "other",
	}}
	if err := deleteCredentials(store, "alice"); err != nil {
		t.Fatalf("deleteCredentials: %v", err)
	}
	if len(store.secrets) != 1 || store.secrets["password/bob"] != "other" {
		t.Errorf("unexpected secrets left: %v", store.secrets)
	}

	// Deleting again is a no-op.
	if err := deleteCredentials(store, "alice"); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestPrintSummary(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	sum := twitter.Summary{
		RunID:      "run-1",
		StartedAt:  start,
		FinishedAt: start.Add(42 * time.Second),
		Results: []twitter.Result{
			{Username: "alice", Posts: 5},
			{Username: "bob", ProfileErr: errors.New("load profile \"bob\": timeout"), TimelineErr: errors.New("load timeline \"bob\": timeout")},
		},
	}

	var buf bytes.Buffer
	printSummary(&buf, sum)
	out := buf.String()

	for _, want := range []string{
		"Run run-1 (42s)",
		"@alice",
		"posts=5",
		"FAILED",
		`profile:  load profile "bob": timeout`,
		`timeline: load timeline "bob": timeout`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "FAILED") != 1 {
		t.Errorf("expected exactly one failed account:\n%s", out)
	}
}

func TestNewLogger(t *testing.T) {
	if _, _, err := newLogger(twitter.LoggingConfig{Level: "loud"}); err == nil {
		t.Error("expected error for invalid level")
	}

	path := filepath.Join(t.TempDir(), "logs", "scrape.log")
	log, cleanup, err := newLogger(twitter.LoggingConfig{Level: "info", File: path})
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	log.Debug().Msg("hidden")
	log.Info().Str("user", "alice").Msg("profile scraped")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"message":"profile scraped"`) {
		t.Errorf("expected JSON log line, got %s", data)
	}
	if strings.Contains(string(data), "hidden") {
		t.Errorf("debug line written at info level: %s", data)
	}
}

func TestSetIf(t *testing.T) {
	v := "default"
	setIf(&v, "")
	if v != "default" {
		t.Errorf("empty value must not override, got %q", v)
	}
	setIf(&v, "flag")
	if v != "flag" {
		t.Errorf("expected flag value, got %q", v)
	}
}
