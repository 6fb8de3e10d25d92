package navigate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/urlutil"
	"github.com/Ali-Choubdaran/corporate-news-extraction/pkg/models"
)

var (
	yearRe      = regexp.MustCompile(`^\d{4}$`)
	pageParamRe = regexp.MustCompile(`(?i)^(page|pg|paged|p)$`)
	loadMoreRe  = regexp.MustCompile(`(?i)\b(load more|show more|view more|see more|more news)\b`)
	loadAttrRe  = regexp.MustCompile(`(?i)(load[-_]?more|show[-_]?more)`)
)

// detectMode inspects a listing page and picks the pagination modality, in
// priority order: year selector, load-more control, numbered page links,
// single page. Returns the mode and a cursor over the remaining pages.
func detectMode(doc *goquery.Document, baseURL string, maxPages int) (models.PaginationMode, cursor) {
	if c := detectYearSelect(doc, baseURL); c != nil {
		return models.ModeYearSelect, c
	}
	if c := detectLoadMore(doc, baseURL); c != nil {
		return models.ModeLoadMore, c
	}
	if c := detectNumbered(doc, baseURL, maxPages); c != nil {
		return models.ModeNumberedPages, c
	}
	return models.ModeSinglePage, singleCursor{}
}

// detectYearSelect looks for a <select> whose options are predominantly
// 4-digit years. A selector qualifies when it has at least two options and
// 70% or more of them are years. When an "All" option carries a usable
// value it replaces per-year walking.
func detectYearSelect(doc *goquery.Document, baseURL string) cursor {
	var found *yearCursor

	doc.Find("select").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		options := sel.Find("option")
		if options.Length() < 2 {
			return true
		}

		years := 0
		var entries []yearEntry
		var allEntry *yearEntry

		paramName, _ := sel.Attr("name")
		if paramName == "" {
			paramName = "year"
		}

		options.Each(func(j int, opt *goquery.Selection) {
			text := strings.TrimSpace(opt.Text())
			value, _ := opt.Attr("value")
			value = strings.TrimSpace(value)

			if yearRe.MatchString(text) {
				years++
				entries = append(entries, yearEntry{
					year: text,
					url:  optionURL(baseURL, paramName, value, text),
				})
				return
			}
			if strings.Contains(strings.ToLower(text), "all") && value != "" {
				allEntry = &yearEntry{year: "all", url: optionURL(baseURL, paramName, value, text)}
			}
		})

		if years < (options.Length()*7+9)/10 { // >= 70% of options
			return true
		}

		if allEntry != nil {
			found = &yearCursor{entries: []yearEntry{*allEntry}}
		} else {
			found = &yearCursor{entries: entries}
		}

		log.Debug().
			Int("years", years).
			Bool("has_all", allEntry != nil).
			Msg("Year selector detected")
		return false
	})

	if found == nil {
		return nil
	}
	return found
}

// optionURL turns a select option into a listing URL: option values that are
// URLs are resolved; bare values become a query parameter on the base URL.
func optionURL(baseURL, param, value, text string) string {
	if value == "" {
		value = text
	}
	if strings.HasPrefix(value, "http") || strings.HasPrefix(value, "/") {
		return urlutil.Resolve(baseURL, value)
	}
	return urlutil.WithParam(baseURL, param, value)
}

// detectLoadMore looks for a load-more control by text, class, id, or
// aria-label. Selector controls are sometimes decorative, so the navigator
// verifies the first step actually yields links before trusting this mode.
func detectLoadMore(doc *goquery.Document, baseURL string) cursor {
	var found *loadMoreCursor

	doc.Find("button, a, div, span, li").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		class, _ := sel.Attr("class")
		id, _ := sel.Attr("id")
		aria, _ := sel.Attr("aria-label")

		if !loadMoreRe.MatchString(text) &&
			!loadAttrRe.MatchString(class) &&
			!loadAttrRe.MatchString(id) &&
			!loadMoreRe.MatchString(aria) {
			return true
		}

		// "Learn More" is a marketing link, not a pagination control.
		if regexp.MustCompile(`(?i)learn more`).MatchString(text) {
			return true
		}

		endpoint := baseURL
		for _, attr := range []string{"data-url", "data-href", "data-endpoint", "data-src"} {
			if v, ok := sel.Attr(attr); ok && v != "" {
				endpoint = urlutil.Resolve(baseURL, v)
				break
			}
		}

		found = &loadMoreCursor{endpoint: endpoint, param: "page", page: 2}
		log.Debug().
			Str("text", text).
			Str("endpoint", endpoint).
			Msg("Load-more control detected")
		return false
	})

	if found == nil {
		return nil
	}
	return found
}

// detectNumbered looks for numbered page links and, from the highest page
// number found, derives a URL template walked sequentially from page 1.
func detectNumbered(doc *goquery.Document, baseURL string, maxPages int) cursor {
	maxPage := 0
	var maxHref string

	doc.Find("a[href]").Each(func(i int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 || n > 9999 {
			return
		}
		href, _ := sel.Attr("href")
		abs := urlutil.Resolve(baseURL, href)
		if !urlutil.SameHost(baseURL, abs) {
			return
		}
		if template := pageTemplate(abs, n); template != "" && n > maxPage {
			maxPage = n
			maxHref = template
		}
	})

	if maxPage < 2 {
		return nil
	}
	if maxPages > 0 && maxPage > maxPages {
		maxPage = maxPages
	}

	log.Debug().
		Int("max_page", maxPage).
		Msg("Numbered pagination detected")

	return &numberedCursor{template: maxHref, max: maxPage, page: 1}
}

// pageTemplate finds where the page number n lives in a URL (query param or
// path segment) and substitutes the placeholder. Empty when n is nowhere in
// the URL, which means the numeric anchor text was not a page link.
func pageTemplate(urlStr string, n int) string {
	num := strconv.Itoa(n)

	// Query parameter: ?page=3
	if qIdx := strings.Index(urlStr, "?"); qIdx >= 0 {
		query := urlStr[qIdx+1:]
		params := strings.Split(query, "&")
		for i, p := range params {
			kv := strings.SplitN(p, "=", 2)
			if len(kv) == 2 && kv[1] == num && pageParamRe.MatchString(kv[0]) {
				params[i] = kv[0] + "=" + pagePlaceholder
				return urlStr[:qIdx+1] + strings.Join(params, "&")
			}
		}
	}

	// Path segment: /news/page/3 or /news/3
	base := urlStr
	if qIdx := strings.Index(base, "?"); qIdx >= 0 {
		base = base[:qIdx]
	}
	segments := strings.Split(base, "/")
	for i := len(segments) - 1; i > 2; i-- { // skip scheme/host segments
		if segments[i] == num {
			segments[i] = pagePlaceholder
			return strings.Join(segments, "/") + querySuffix(urlStr)
		}
	}

	return ""
}

func querySuffix(urlStr string) string {
	if qIdx := strings.Index(urlStr, "?"); qIdx >= 0 {
		return urlStr[qIdx:]
	}
	return ""
}
