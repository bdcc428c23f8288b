// Package fetchjd fetches public job posting pages and extracts the
// description and basic metadata. Extraction is best-effort: each field is
// resolved through an ordered list of known selectors, and a miss leaves the
// field absent rather than failing the fetch.
package fetchjd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the per-request timeout for posting pages.
const DefaultTimeout = 10 * time.Second

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Details holds whatever a posting page yielded. Nil info fields mean the
// page did not expose that value; Description is empty on a selector miss.
type Details struct {
	Title       *string
	Company     *string
	Location    *string
	Description string
}

// Error represents a failed page fetch or parse.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Fetcher retrieves job posting pages over plain HTTP with a shared client,
// reusing connections across the many sequential fetches of an enrichment run.
type Fetcher struct {
	client *http.Client
}

// New creates a Fetcher with the given timeout (DefaultTimeout if zero).
func New(timeout time.Duration) *Fetcher {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves a posting page and extracts its details.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string) (*Details, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	details, err := ExtractDetails(string(body))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to parse page", Cause: err}
	}
	return details, nil
}

// ExtractDetails parses a posting page and resolves each field through its
// selector list.
func ExtractDetails(html string) (*Details, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return &Details{
		Title:       firstText(doc, titleSelectors),
		Company:     firstText(doc, companySelectors),
		Location:    firstText(doc, locationSelectors),
		Description: descriptionText(doc),
	}, nil
}

// descriptionText resolves the description, or "" when no selector matches.
func descriptionText(doc *goquery.Document) string {
	if text := firstText(doc, descriptionSelectors); text != nil {
		return *text
	}
	return ""
}

// firstText applies selectors in priority order and returns the first
// non-empty trimmed text, or nil when none match.
func firstText(doc *goquery.Document, selectors []string) *string {
	for _, selector := range selectors {
		sel := doc.Find(selector)
		if sel.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(sel.First().Text())
		if text != "" {
			return &text
		}
	}
	return nil
}
