package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jonathan/jobscout/internal/discovery"
)

var _ discovery.Session = (*Session)(nil)

// Selector lists for list-view metadata, in priority order. Kept as data so
// markup drift is a config change.
var (
	listTitleSelectors = []string{
		"h1.job-title",
		".job-details-jobs-unified-top-card__job-title",
	}
	listCompanySelectors = []string{
		".job-details-jobs-unified-top-card__company-name",
		".job-card__company-name",
	}
	listLocationSelectors = []string{
		".job-details-jobs-unified-top-card__bullet",
		".job-card__location",
	}
)

// listVisibleIDsJS harvests job identifiers from card attributes and from
// posting links, preserving document order.
const listVisibleIDsJS = `(() => {
	const ids = [];
	document.querySelectorAll('[data-job-id]').forEach(el => {
		const id = el.getAttribute('data-job-id');
		if (id && !ids.includes(id)) ids.push(id);
	});
	document.querySelectorAll("a[href*='/jobs/view/']").forEach(a => {
		const m = (a.getAttribute('href') || '').match(/\/jobs\/view\/(\d+)/);
		if (m && !ids.includes(m[1])) ids.push(m[1]);
	});
	return ids;
})()`

// revealMoreJS scrolls the result list to its bottom and clicks a pagination
// button if one is enabled, returning whether anything was actuated.
const revealMoreJS = `(() => {
	const list = document.querySelector('.jobs-search-results__list, .jobs-search__results-list');
	let acted = false;
	if (list && list.scrollTop + list.clientHeight < list.scrollHeight) {
		list.scrollTop = list.scrollHeight;
		acted = true;
	}
	const btn = document.querySelector("button[aria-label*='more'], .jobs-search-results__pagination button");
	if (btn && !btn.disabled) {
		btn.click();
		acted = true;
	}
	return acted;
})()`

// clickCardJS clicks the job card with the given ID, returning whether the
// card was found.
const clickCardJS = `((id) => {
	const card = document.querySelector("[data-job-id='" + id + "']");
	if (!card) return false;
	card.click();
	return true;
})(%q)`

// advanceItemJS clicks the card following the currently selected job,
// returning whether it moved.
const advanceItemJS = `((currentID) => {
	const cards = Array.from(document.querySelectorAll(
		'[data-job-id], .job-card-container, .jobs-search-results__list-item'));
	if (cards.length <= 1) return false;
	let idx = cards.findIndex(c => c.getAttribute('data-job-id') === currentID);
	if (idx + 1 >= cards.length) return false;
	cards[idx + 1].click();
	return true;
})(%q)`

// firstTextJS resolves the first non-empty text among the selectors.
const firstTextJS = `((selectors) => {
	for (const sel of selectors) {
		const el = document.querySelector(sel);
		if (el) {
			const text = el.textContent.trim();
			if (text) return text;
		}
	}
	return "";
})(%s)`

// ListVisibleIDs returns every job identifier currently in view, including
// the one selected in the URL.
func (s *Session) ListVisibleIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var ids []string
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(listVisibleIDsJS, &ids)); err != nil {
		return nil, fmt.Errorf("failed to read job cards: %w", err)
	}

	if current := s.currentJobID(); current != "" && !contains(ids, current) {
		ids = append(ids, current)
	}
	return ids, nil
}

// RevealMore scrolls the result list and clicks pagination when available.
func (s *Session) RevealMore(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var acted bool
	if err := chromedp.Run(s.ctx,
		chromedp.Evaluate(revealMoreJS, &acted),
		chromedp.Sleep(2*time.Second),
	); err != nil {
		return false, fmt.Errorf("failed to scroll results: %w", err)
	}
	return acted, nil
}

// AdvanceItem selects the job after the current one in the list.
func (s *Session) AdvanceItem(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	script := fmt.Sprintf(advanceItemJS, s.currentJobID())
	var moved bool
	if err := chromedp.Run(s.ctx,
		chromedp.Evaluate(script, &moved),
		chromedp.Sleep(2*time.Second),
	); err != nil {
		return false, fmt.Errorf("failed to advance item: %w", err)
	}
	return moved, nil
}

// BasicInfo selects the job's card if needed and reads the list-view
// metadata fields, each through its selector list.
func (s *Session) BasicInfo(ctx context.Context, jobID string) (discovery.BasicInfo, error) {
	if err := ctx.Err(); err != nil {
		return discovery.BasicInfo{}, err
	}

	if s.currentJobID() != jobID {
		script := fmt.Sprintf(clickCardJS, jobID)
		var found bool
		if err := chromedp.Run(s.ctx,
			chromedp.Evaluate(script, &found),
			chromedp.Sleep(2*time.Second),
		); err != nil {
			return discovery.BasicInfo{}, fmt.Errorf("failed to select job %s: %w", jobID, err)
		}
		if !found {
			return discovery.BasicInfo{}, fmt.Errorf("no card found for job %s", jobID)
		}
	}

	return discovery.BasicInfo{
		Title:    s.firstText(listTitleSelectors),
		Company:  s.firstText(listCompanySelectors),
		Location: s.firstText(listLocationSelectors),
	}, nil
}

// firstText evaluates the selector list in the page, returning nil on a miss.
func (s *Session) firstText(selectors []string) *string {
	quoted := make([]string, len(selectors))
	for i, sel := range selectors {
		quoted[i] = fmt.Sprintf("%q", sel)
	}
	script := fmt.Sprintf(firstTextJS, "["+strings.Join(quoted, ",")+"]")

	var text string
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(script, &text)); err != nil {
		return nil
	}
	if text == "" {
		return nil
	}
	return &text
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
