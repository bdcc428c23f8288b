package browser

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// sessionCookie is the persisted form of one browser cookie.
type sessionCookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	Secure   bool    `json:"secure"`
	HTTPOnly bool    `json:"httpOnly"`
}

// Authenticate establishes a verified logged-in state. Strategies run in a
// fixed priority order - cached cookies, then submitted credentials, then a
// pause for a human login - and the first that verifies short-circuits the
// rest. After a credential or manual login the cookies are cached for the
// next run.
func (s *Session) Authenticate(ctx context.Context) error {
	if s.loggedIn {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.opts.CookieFile != "" {
		if ok := s.loginWithCookies(); ok {
			s.loggedIn = true
			return nil
		}
	}

	if s.opts.Credentials.Email != "" && s.opts.Credentials.Password != "" {
		if ok := s.loginWithCredentials(); ok {
			s.loggedIn = true
			s.saveCookies()
			return nil
		}
	}

	if !s.opts.Headless {
		if ok := s.loginManually(); ok {
			s.loggedIn = true
			s.saveCookies()
			return nil
		}
	}

	return fmt.Errorf("no login strategy succeeded")
}

// loginWithCookies restores a previous session from the cookie cache.
func (s *Session) loginWithCookies() bool {
	data, err := os.ReadFile(s.opts.CookieFile)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("browser: could not read cookie file: %v", err)
		}
		return false
	}

	var cookies []sessionCookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		log.Printf("browser: cookie file is not valid JSON: %v", err)
		return false
	}

	err = chromedp.Run(s.ctx,
		chromedp.Navigate(homeURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			for _, c := range cookies {
				expires := cdp.TimeSinceEpoch(time.Unix(int64(c.Expires), 0))
				err := network.SetCookie(c.Name, c.Value).
					WithDomain(c.Domain).
					WithPath(c.Path).
					WithExpires(&expires).
					WithSecure(c.Secure).
					WithHTTPOnly(c.HTTPOnly).
					Do(ctx)
				if err != nil {
					log.Printf("browser: failed to set cookie %s: %v", c.Name, err)
				}
			}
			return nil
		}),
		chromedp.Reload(),
		chromedp.Sleep(3*time.Second),
	)
	if err != nil {
		log.Printf("browser: cookie login failed: %v", err)
		return false
	}

	return s.isLoggedIn()
}

// loginWithCredentials fills and submits the login form. A security
// challenge cannot be completed headlessly, so the strategy reports failure
// and lets the next one run.
func (s *Session) loginWithCredentials() bool {
	err := chromedp.Run(s.ctx,
		chromedp.Navigate(loginURL),
		chromedp.WaitVisible("#username", chromedp.ByID),
		chromedp.Clear("#username", chromedp.ByID),
		chromedp.SendKeys("#username", s.opts.Credentials.Email, chromedp.ByID),
		chromedp.Clear("#password", chromedp.ByID),
		chromedp.SendKeys("#password", s.opts.Credentials.Password, chromedp.ByID),
		chromedp.Click(`button[type="submit"]`),
		chromedp.Sleep(5*time.Second),
	)
	if err != nil {
		log.Printf("browser: credential login failed: %v", err)
		return false
	}

	loc, err := s.currentURL()
	if err != nil {
		return false
	}
	if strings.Contains(loc, "challenge") || strings.Contains(loc, "checkpoint") {
		if s.opts.Headless {
			log.Printf("browser: security challenge detected; cannot complete headlessly")
			return false
		}
		fmt.Println("Security challenge detected. Complete it in the browser window.")
		waitForEnter("Press ENTER after completing the security challenge...")
	}

	return s.isLoggedIn()
}

// loginManually opens the login page and waits for a human to finish.
func (s *Session) loginManually() bool {
	if err := chromedp.Run(s.ctx, chromedp.Navigate(loginURL)); err != nil {
		log.Printf("browser: could not open login page: %v", err)
		return false
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("LOGIN REQUIRED")
	fmt.Println("Log in with your credentials in the browser window,")
	fmt.Println("complete any security challenge, then return here.")
	fmt.Println(strings.Repeat("=", 60))
	waitForEnter("Press ENTER once you are logged in...")

	return s.isLoggedIn()
}

// isLoggedIn verifies the authenticated state from the current page.
func (s *Session) isLoggedIn() bool {
	loc, err := s.currentURL()
	if err != nil {
		return false
	}
	if strings.Contains(loc, "/login") || strings.Contains(loc, "/checkpoint") {
		return false
	}
	if strings.Contains(loc, "/feed") || strings.Contains(loc, "linkedin.com/in/") {
		return true
	}

	var navPresent bool
	err = chromedp.Run(s.ctx, chromedp.Evaluate(
		`document.querySelector('.global-nav, [data-control-name="nav.settings"]') !== null`,
		&navPresent,
	))
	return err == nil && navPresent
}

// saveCookies caches the session cookies for the next run's cookie strategy.
func (s *Session) saveCookies() {
	if s.opts.CookieFile == "" {
		return
	}

	var cookies []sessionCookie
	err := chromedp.Run(s.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		raw, err := network.GetCookies().Do(ctx)
		if err != nil {
			return err
		}
		for _, c := range raw {
			cookies = append(cookies, sessionCookie{
				Name:     c.Name,
				Value:    c.Value,
				Domain:   c.Domain,
				Path:     c.Path,
				Expires:  c.Expires,
				Secure:   c.Secure,
				HTTPOnly: c.HTTPOnly,
			})
		}
		return nil
	}))
	if err != nil {
		log.Printf("browser: failed to read cookies: %v", err)
		return
	}

	data, err := json.MarshalIndent(cookies, "", "  ")
	if err != nil {
		log.Printf("browser: failed to marshal cookies: %v", err)
		return
	}
	if err := os.WriteFile(s.opts.CookieFile, data, 0o600); err != nil {
		log.Printf("browser: failed to write cookie file: %v", err)
	}
}

// waitForEnter blocks until the user presses ENTER on stdin.
func waitForEnter(prompt string) {
	fmt.Println(prompt)
	reader := bufio.NewReader(os.Stdin)
	_, _ = reader.ReadString('\n')
}
