package twitter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/proto"
)

func TestCookies_RoundTrip(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "cookies.json")

	cookies := []*proto.NetworkCookie{
		{
			Name:     "auth_token",
			Value:    "abc",
			Domain:   ".twitter.com",
			Path:     "/",
			Expires:  proto.TimeSinceEpoch(now.Add(24 * time.Hour).Unix()),
			Secure:   true,
			HTTPOnly: true,
			SameSite: proto.NetworkCookieSameSiteNone,
		},
		{
			Name:    "session",
			Value:   "s",
			Domain:  ".twitter.com",
			Path:    "/",
			Expires: -1,
		},
		{
			Name:    "stale",
			Value:   "old",
			Domain:  ".twitter.com",
			Path:    "/",
			Expires: proto.TimeSinceEpoch(now.Add(-time.Hour).Unix()),
		},
	}
	if err := writeCookies(path, cookies); err != nil {
		t.Fatalf("writeCookies: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected cookie file mode 0600, got %o", perm)
	}

	params, err := readCookies(path, now)
	if err != nil {
		t.Fatalf("readCookies: %v", err)
	}
	if len(params) != 2 {
		t.Fatalf("expected 2 unexpired cookies, got %d", len(params))
	}
	got := params[0]
	if got.Name != "auth_token" || got.Value != "abc" || got.Domain != ".twitter.com" ||
		!got.Secure || !got.HTTPOnly || got.SameSite != proto.NetworkCookieSameSiteNone {
		t.Errorf("cookie fields not preserved: %+v", got)
	}
	if params[1].Name != "session" {
		t.Errorf("expected session cookie kept, got %q", params[1].Name)
	}
}

func TestReadCookies_AllExpired(t *testing.T) {
	t.Parallel()
	now := time.Now()
	path := filepath.Join(t.TempDir(), "cookies.json")
	cookies := []*proto.NetworkCookie{
		{Name: "auth_token", Value: "abc", Expires: proto.TimeSinceEpoch(now.Add(-time.Minute).Unix())},
	}
	if err := writeCookies(path, cookies); err != nil {
		t.Fatal(err)
	}
	_, err := readCookies(path, now)
	if !errors.Is(err, ErrLoginFailed) {
		t.Fatalf("expected ErrLoginFailed, got %v", err)
	}
}

func TestReadCookies_InvalidJSON(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "cookies.json")
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := readCookies(path, time.Now()); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestReadCookies_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := readCookies(filepath.Join(t.TempDir(), "cookies.json"), time.Now())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestReadCookies_NullEntries(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "cookies.json")
	data := `[null, {"name": "ct0", "value": "x", "domain": ".twitter.com", "path": "/", "expires": -1}]`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}
	params, err := readCookies(path, time.Now())
	if err != nil {
		t.Fatalf("readCookies: %v", err)
	}
	if len(params) != 1 || params[0].Name != "ct0" {
		t.Errorf("unexpected cookies %+v", params)
	}
}
