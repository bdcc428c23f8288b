// Package browser drives an authenticated LinkedIn session in a headless (or
// visible) Chrome instance. It implements the discovery.Session interface;
// the session and its cookie cache are owned exclusively by the discovery
// stage for the duration of a run.
package browser

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	loginURL = "https://www.linkedin.com/login"
	homeURL  = "https://www.linkedin.com"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Credentials are optional account credentials for the programmatic login
// strategy.
type Credentials struct {
	Email    string
	Password string
}

// Options configure the browser session.
type Options struct {
	// Headless runs Chrome without a window. Manual login requires a
	// visible window and is skipped when Headless is set.
	Headless bool
	// WaitTime bounds waits for page elements.
	WaitTime time.Duration
	// CookieFile caches session cookies between runs; empty disables the
	// cookie login strategy.
	CookieFile string
	// Credentials enable the programmatic login strategy when non-empty.
	Credentials Credentials
}

// DefaultOptions returns the standard session settings.
func DefaultOptions() Options {
	return Options{
		Headless:   true,
		WaitTime:   10 * time.Second,
		CookieFile: "linkedin_cookies.json",
	}
}

// Session is a live Chrome session. Close must be called to release the
// browser.
type Session struct {
	ctx      context.Context
	cancels  []context.CancelFunc
	opts     Options
	loggedIn bool
}

// NewSession launches Chrome and prepares a browsing context.
func NewSession(ctx context.Context, opts Options) (*Session, error) {
	if opts.WaitTime <= 0 {
		opts.WaitTime = DefaultOptions().WaitTime
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	s := &Session{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{browserCancel, allocCancel},
		opts:    opts,
	}

	// Start the browser eagerly so a missing Chrome binary surfaces here
	// rather than mid-collection.
	if err := chromedp.Run(browserCtx); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return s, nil
}

// Close shuts the browser down.
func (s *Session) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
}

// Open navigates to the search results page and waits for job cards.
func (s *Session) Open(ctx context.Context, searchURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := chromedp.Run(s.ctx,
		chromedp.Navigate(searchURL),
		chromedp.WaitReady("body"),
	); err != nil {
		return fmt.Errorf("failed to navigate to search results: %w", err)
	}

	// Job cards render asynchronously; poll briefly rather than failing on
	// the first empty read.
	deadline := time.Now().Add(s.opts.WaitTime)
	for time.Now().Before(deadline) {
		var present bool
		if err := chromedp.Run(s.ctx, chromedp.Evaluate(
			`document.querySelector('[data-job-id]') !== null`, &present,
		)); err != nil {
			return fmt.Errorf("failed to inspect search results: %w", err)
		}
		if present {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}

	// Timed out waiting for cards; the page may still expose IDs via links.
	return nil
}

// currentURL returns the browser's current location.
func (s *Session) currentURL() (string, error) {
	var loc string
	if err := chromedp.Run(s.ctx, chromedp.Location(&loc)); err != nil {
		return "", err
	}
	return loc, nil
}

// currentJobID extracts the currentJobId query parameter from the current
// location, or "" when absent.
func (s *Session) currentJobID() string {
	loc, err := s.currentURL()
	if err != nil {
		return ""
	}
	parsed, err := url.Parse(loc)
	if err != nil {
		return ""
	}
	return parsed.Query().Get("currentJobId")
}
