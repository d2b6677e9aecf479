package twitter

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod/lib/proto"
)

// writeCookies saves browser cookies to a JSON file readable only by the
// owner.
func writeCookies(path string, cookies []*proto.NetworkCookie) error {
	data, err := json.MarshalIndent(cookies, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cookies: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write cookies %s: %w", path, err)
	}
	return nil
}

// readCookies loads cookies saved by writeCookies, dropping any that expired
// since. Session cookies carry a non-positive expiry and are kept.
func readCookies(path string, now time.Time) ([]*proto.NetworkCookieParam, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cookies file: %w", err)
	}
	var cookies []*proto.NetworkCookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		return nil, fmt.Errorf("unmarshal cookies: %w", err)
	}

	params := make([]*proto.NetworkCookieParam, 0, len(cookies))
	for _, c := range cookies {
		if c == nil {
			continue
		}
		if c.Expires > 0 && int64(c.Expires) < now.Unix() {
			continue
		}
		params = append(params, &proto.NetworkCookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
			SameSite: c.SameSite,
			Expires:  c.Expires,
		})
	}
	if len(params) == 0 {
		return nil, fmt.Errorf("%w: no unexpired cookies in %s", ErrLoginFailed, path)
	}
	return params, nil
}
