package twitter

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/rs/zerolog"
	"golang.org/x/net/proxy"
)

const (
	defaultBaseURL     = "https://twitter.com"
	defaultWaitTimeout = 10 * time.Second
)

// Handles are 1-15 letters, digits or underscores. Anything else would
// also be unsafe to splice into a URL path.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,15}$`)

// Scraper drives a single headless Chrome session against twitter.com. It is
// not safe for concurrent use: every page load shares one tab.
type Scraper struct {
	baseURL     string // defaults to "https://twitter.com"
	proxy       string
	browserBin  string
	headless    bool
	blockAssets bool
	waitTimeout time.Duration
	selectors   Selectors
	log         zerolog.Logger
	isLogged    bool

	browser *rod.Browser
	page    *rod.Page
	router  *rod.HijackRouter

	// snapshotFunc loads a URL, waits for marker and returns the rendered
	// HTML. Replaceable for testing.
	snapshotFunc func(ctx context.Context, rawURL, marker string) (string, error)

	// dialFunc opens the proxy preflight connection. Replaceable for testing.
	dialFunc func(ctx context.Context, d proxy.ContextDialer, addr string) (net.Conn, error)
}

// New creates a Scraper with sensible defaults. The browser is not launched
// until InitBrowser is called.
func New() *Scraper {
	s := &Scraper{
		baseURL:     defaultBaseURL,
		headless:    true,
		blockAssets: true,
		waitTimeout: defaultWaitTimeout,
		selectors:   DefaultSelectors(),
		log:         zerolog.Nop(),
	}
	s.snapshotFunc = s.snapshot
	s.dialFunc = func(ctx context.Context, d proxy.ContextDialer, addr string) (net.Conn, error) {
		return d.DialContext(ctx, "tcp", addr)
	}
	return s
}

// NewFromConfig builds a Scraper from a validated Config.
func NewFromConfig(cfg *Config, log zerolog.Logger) (*Scraper, error) {
	s := New().
		WithLogger(log).
		WithBaseURL(cfg.Browser.BaseURL).
		WithBrowserBin(cfg.Browser.Bin).
		WithHeadless(cfg.Browser.Headless).
		WithResourceBlocking(cfg.Browser.BlockResources).
		WithWaitTimeout(cfg.Browser.WaitTimeout).
		WithSelectors(cfg.Selectors)
	if err := s.SetProxy(cfg.Browser.Proxy); err != nil {
		return nil, err
	}
	return s, nil
}

// WithLogger sets the logger used for progress and timing output.
func (s *Scraper) WithLogger(l zerolog.Logger) *Scraper {
	s.log = l
	return s
}

// WithBaseURL points the scraper at another origin, e.g. https://x.com.
func (s *Scraper) WithBaseURL(u string) *Scraper {
	if u != "" {
		s.baseURL = strings.TrimRight(u, "/")
	}
	return s
}

// WithWaitTimeout sets how long to wait for a page marker before giving up.
func (s *Scraper) WithWaitTimeout(d time.Duration) *Scraper {
	if d > 0 {
		s.waitTimeout = d
	}
	return s
}

// WithBrowserBin sets the Chrome executable. Empty lets rod find or
// download one.
func (s *Scraper) WithBrowserBin(path string) *Scraper {
	s.browserBin = path
	return s
}

// WithHeadless toggles headless mode.
func (s *Scraper) WithHeadless(headless bool) *Scraper {
	s.headless = headless
	return s
}

// WithResourceBlocking toggles blocking of images, media and fonts.
func (s *Scraper) WithResourceBlocking(block bool) *Scraper {
	s.blockAssets = block
	return s
}

// WithSelectors replaces the DOM selectors.
func (s *Scraper) WithSelectors(sel Selectors) *Scraper {
	s.selectors = sel
	return s
}

// SetProxy configures an HTTP/HTTPS or SOCKS5 proxy for the browser. It
// takes effect on the next InitBrowser.
func (s *Scraper) SetProxy(proxyAddr string) error {
	if proxyAddr == "" {
		s.proxy = ""
		return nil
	}

	u, err := url.Parse(proxyAddr)
	if err != nil {
		return fmt.Errorf("parse proxy url: %w", err)
	}

	switch u.Scheme {
	case "http", "https", "socks5":
	default:
		return fmt.Errorf("unsupported proxy scheme: %s", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("proxy url %q has no host", proxyAddr)
	}

	s.proxy = proxyAddr
	return nil
}

// checkProxy makes sure the configured proxy accepts connections before
// Chrome is launched behind it. Chrome reports a dead proxy only as a
// generic navigation failure on the first page load.
func (s *Scraper) checkProxy(ctx context.Context) error {
	if s.proxy == "" {
		return nil
	}
	u, err := url.Parse(s.proxy)
	if err != nil {
		return fmt.Errorf("parse proxy url: %w", err)
	}

	var (
		dialer proxy.ContextDialer = proxy.Direct
		addr                       = u.Host
	)
	if u.Scheme == "socks5" {
		d, err := proxy.FromURL(u, proxy.Direct)
		if err != nil {
			return fmt.Errorf("socks5 proxy: %w", err)
		}
		cd, ok := d.(proxy.ContextDialer)
		if !ok {
			return fmt.Errorf("socks5: context dialer not supported")
		}
		dialer = cd
		addr, err = s.targetAddr()
		if err != nil {
			return err
		}
		if u.User != nil {
			s.log.Warn().Msg("chrome ignores socks5 credentials; the proxy must allow this host")
		}
	}

	conn, err := s.dialFunc(ctx, dialer, addr)
	if err != nil {
		return fmt.Errorf("proxy preflight %s: %w", u.Host, err)
	}
	return conn.Close()
}

// targetAddr returns host:port of the base URL.
func (s *Scraper) targetAddr() (string, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	port := u.Port()
	if port == "" {
		port = "443"
		if u.Scheme == "http" {
			port = "80"
		}
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}

func (s *Scraper) profileURL(username string) string {
	return s.baseURL + "/" + url.PathEscape(username)
}

func validateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("%w: %q", ErrInvalidUsername, username)
	}
	return nil
}

// IsLoggedIn reports whether the scraper has an active session.
func (s *Scraper) IsLoggedIn() bool {
	return s.isLogged
}

// Close releases the browser if it is running. It is safe to call more than
// once.
func (s *Scraper) Close() error {
	return s.closeBrowser()
}
