// Package navigate implements the pagination engine: it determines which
// navigation scheme a listing page uses, walks every constituent page, and
// accumulates classified article links with guaranteed termination.
package navigate

import (
	"context"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/classify"
	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/fetch"
	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/reqctx"
	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/urlutil"
	"github.com/Ali-Choubdaran/corporate-news-extraction/pkg/models"
)

// ErrSafetyCapReached is recorded when the page-visit cap terminates a walk.
// The cap exists because year-select and load-more cursors can be ill-formed
// and must not loop forever.
var ErrSafetyCapReached = errors.New("page safety cap reached")

// emptyStreakLimit terminates a walk after this many consecutive pages with
// no new classifier hits; it is the "no more content" signal for cursors
// that never self-exhaust.
const emptyStreakLimit = 2

// failStreakLimit terminates a walk after this many consecutive transient
// fetch failures. Failures are counted apart from empty pages: a flaky page
// followed by an empty one is not a "no more content" signal.
const failStreakLimit = 3

// Fetcher is the transport dependency of the Navigator.
type Fetcher interface {
	Fetch(ctx context.Context, urlStr string, render bool) (*models.Page, error)
}

// Navigator enumerates all listing pages reachable from a base URL. Each Run
// owns its ListingState exclusively; the Navigator itself is stateless and
// safe to share.
type Navigator struct {
	fetcher    Fetcher
	classifier *classify.Classifier
	maxPages   int
}

// New creates a Navigator. maxPages caps total page fetches per run.
func New(fetcher Fetcher, classifier *classify.Classifier, maxPages int) *Navigator {
	if maxPages <= 0 {
		maxPages = 500
	}
	return &Navigator{
		fetcher:    fetcher,
		classifier: classifier,
		maxPages:   maxPages,
	}
}

// Run walks the listing at baseURL and returns its final ListingState.
// The state always carries whatever links were merged before any failure;
// a permanent fetch error on the base page is the only way to get FAILED
// with nothing discovered.
func (n *Navigator) Run(ctx context.Context, baseURL string) *models.ListingState {
	ctx = reqctx.WithRunContext(ctx)
	logger := log.With().
		Str("run_id", reqctx.GetRunContext(ctx).RunID).
		Str("base_url", baseURL).
		Logger()

	state := models.NewListingState(baseURL)

	page, err := n.fetcher.Fetch(ctx, baseURL, false)
	if err != nil {
		logger.Warn().Err(err).Msg("Base listing page fetch failed")
		state.Errs = append(state.Errs, err)
		state.Status = models.StatusFailed
		return state
	}
	state.PagesVisited++
	state.VisitedPageKeys[urlutil.Normalize(baseURL)] = true

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		state.Errs = append(state.Errs, err)
		state.Status = models.StatusFailed
		return state
	}

	// Feed shortcut: merge advertised RSS/Atom items before walking.
	if feedURL := discoverFeed(doc, baseURL); feedURL != "" {
		for _, link := range n.fetchFeedLinks(ctx, feedURL) {
			state.MergeLink(urlutil.Normalize(urlutil.Resolve(baseURL, link)))
		}
	}

	classified, firstPageLinks := n.classifyAndMerge(state, doc, baseURL)

	// Pages that render their list client-side sometimes embed the URLs in
	// inline script data; recover those before deciding we saw nothing.
	if firstPageLinks == 0 {
		for _, embedded := range probeScripts(doc, baseURL) {
			abs := urlutil.Normalize(urlutil.Resolve(baseURL, embedded))
			if n.classifyBareURL(abs, baseURL) {
				state.MergeLink(abs)
			}
		}
	}

	// A listing whose article anchors are mostly hidden is paginated
	// client-side: everything is already in the DOM, so there is nothing to
	// walk. Only the dominant article group counts; hidden menus and other
	// decorations elsewhere on the page must not trip this.
	if hiddenArticleRatio(classified) > 0.6 {
		logger.Debug().Msg("Client-side pagination detected; listing treated as fully loaded")
		state.Mode = models.ModeSinglePage
		state.Status = models.StatusExhausted
		return state
	}

	mode, cur := detectMode(doc, baseURL, n.maxPages)
	state.Mode = mode
	logger.Debug().Str("mode", string(mode)).Msg("Pagination mode selected")

	n.walk(ctx, state, cur, baseURL, &logger)

	if state.Status == models.StatusActive {
		state.Status = models.StatusExhausted
	}

	logger.Info().
		Str("mode", string(state.Mode)).
		Str("status", string(state.Status)).
		Int("pages", state.PagesVisited).
		Int("links", len(state.DiscoveredLinks)).
		Msg("Navigator run finished")

	return state
}

// walk drives the step loop for a cursor. Termination: cursor exhaustion,
// two consecutive pages with no new links, the page cap, a permanent fetch
// failure, or cancellation.
func (n *Navigator) walk(ctx context.Context, state *models.ListingState, cur cursor, baseURL string, logger *zerolog.Logger) {
	emptyStreak := 0
	failStreak := 0
	firstStep := true

	for state.Status == models.StatusActive {
		// Cancellation is checked between pagination steps, never mid-parse.
		if ctx.Err() != nil {
			state.Errs = append(state.Errs, ctx.Err())
			state.Status = models.StatusExhausted
			return
		}

		key, pageURL, ok := cur.Next()
		if !ok {
			// Cursor exhausted: the normal terminal state.
			state.Status = models.StatusExhausted
			return
		}

		if state.VisitedPageKeys[key] || state.VisitedPageKeys[urlutil.Normalize(pageURL)] {
			continue
		}

		if state.PagesVisited >= n.maxPages {
			logger.Warn().Int("cap", n.maxPages).Msg("Safety cap reached")
			state.Errs = append(state.Errs, ErrSafetyCapReached)
			state.Status = models.StatusExhausted
			return
		}

		state.VisitedPageKeys[key] = true
		state.VisitedPageKeys[urlutil.Normalize(pageURL)] = true

		page, err := n.fetcher.Fetch(ctx, pageURL, false)
		if err != nil {
			state.Errs = append(state.Errs, err)
			if fetch.IsPermanent(err) {
				state.Status = models.StatusFailed
				return
			}
			// Transient exhaustion is terminal for this page only.
			logger.Warn().Err(err).Str("page", pageURL).Msg("Page fetch failed; continuing")
			failStreak++
			if failStreak >= failStreakLimit {
				state.Status = models.StatusExhausted
				return
			}
			continue
		}
		failStreak = 0
		state.PagesVisited++

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
		if err != nil {
			state.Errs = append(state.Errs, err)
			continue
		}

		_, newLinks := n.classifyAndMerge(state, doc, pageURL)

		// Year pages sometimes paginate internally; nested numbered walking
		// shares this state (links, visited keys, page budget).
		if state.Mode == models.ModeYearSelect {
			if inner := detectNumbered(doc, pageURL, n.maxPages); inner != nil {
				n.walkNested(ctx, state, inner)
			}
		}

		// Decorative controls: a year selector or load-more control that
		// yields nothing on its first step downgrades to numbered detection
		// on the same page before giving up.
		if firstStep && newLinks == 0 &&
			(state.Mode == models.ModeYearSelect || state.Mode == models.ModeLoadMore) {
			if downgraded := detectNumbered(doc, baseURL, n.maxPages); downgraded != nil {
				logger.Debug().Msg("Decorative control; downgrading to numbered pagination")
				state.Mode = models.ModeNumberedPages
				cur = downgraded
				firstStep = false
				continue
			}
		}
		firstStep = false

		if newLinks == 0 {
			emptyStreak++
			if emptyStreak >= emptyStreakLimit {
				state.Status = models.StatusExhausted
				return
			}
		} else {
			emptyStreak = 0
		}
	}
}

// walkNested runs an inner numbered cursor against the shared state. It has
// its own empty-streak accounting but the same visited keys and page budget.
func (n *Navigator) walkNested(ctx context.Context, state *models.ListingState, cur cursor) {
	emptyStreak := 0

	for state.Status == models.StatusActive {
		if ctx.Err() != nil {
			state.Errs = append(state.Errs, ctx.Err())
			return
		}

		key, pageURL, ok := cur.Next()
		if !ok {
			return
		}
		normKey := urlutil.Normalize(pageURL)
		if state.VisitedPageKeys[key+":"+normKey] || state.VisitedPageKeys[normKey] {
			continue
		}
		if state.PagesVisited >= n.maxPages {
			state.Errs = append(state.Errs, ErrSafetyCapReached)
			state.Status = models.StatusExhausted
			return
		}
		state.VisitedPageKeys[key+":"+normKey] = true
		state.VisitedPageKeys[normKey] = true

		page, err := n.fetcher.Fetch(ctx, pageURL, false)
		if err != nil {
			state.Errs = append(state.Errs, err)
			if fetch.IsPermanent(err) {
				state.Status = models.StatusFailed
				return
			}
			continue
		}
		state.PagesVisited++

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
		if err != nil {
			state.Errs = append(state.Errs, err)
			continue
		}

		if _, newLinks := n.classifyAndMerge(state, doc, pageURL); newLinks == 0 {
			emptyStreak++
			if emptyStreak >= emptyStreakLimit {
				return
			}
		} else {
			emptyStreak = 0
		}
	}
}

// classifyAndMerge scans one page, classifies its anchors, and merges
// ARTICLE-labeled links. Returns the classified candidates and the number of
// links that were new.
func (n *Navigator) classifyAndMerge(state *models.ListingState, doc *goquery.Document, pageURL string) ([]models.LinkCandidate, int) {
	candidates := classify.Collect(doc, pageURL)
	classified := n.classifier.Classify(candidates, classify.PageContext{BaseURL: state.BaseURL})

	merged := 0
	for _, cand := range classified {
		if cand.Label != models.LabelArticle {
			continue
		}
		if state.MergeLink(cand.Href) {
			merged++
		}
	}
	return classified, merged
}

// classifyBareURL runs the classifier over a URL recovered without anchor
// context (script probe). Only URL-shape features can fire, so the bar for
// ARTICLE is effectively "has a date or slug-verb pattern on our host".
func (n *Navigator) classifyBareURL(absURL, baseURL string) bool {
	cands := []models.LinkCandidate{{Href: absURL, Label: models.LabelUnknown}}
	out := n.classifier.Classify(cands, classify.PageContext{BaseURL: baseURL})
	return out[0].Label == models.LabelArticle
}

// hiddenArticleRatio reports the hidden fraction of the dominant article
// group: the ancestry group holding the most ARTICLE-labeled anchors. Anchors
// outside that group (menus, footers) never contribute, so a large concealed
// navigation block cannot masquerade as client-side pagination.
func hiddenArticleRatio(cands []models.LinkCandidate) float64 {
	byGroup := make(map[string][]models.LinkCandidate)
	for _, c := range cands {
		if c.Label == models.LabelArticle {
			byGroup[c.Ancestry] = append(byGroup[c.Ancestry], c)
		}
	}

	var dominant []models.LinkCandidate
	var dominantKey string
	for key, group := range byGroup {
		if len(group) > len(dominant) ||
			(len(group) == len(dominant) && key < dominantKey) {
			dominant = group
			dominantKey = key
		}
	}
	if len(dominant) == 0 {
		return 0
	}

	hidden := 0
	for _, c := range dominant {
		if c.Hidden {
			hidden++
		}
	}
	return float64(hidden) / float64(len(dominant))
}
