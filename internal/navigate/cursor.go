package navigate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/urlutil"
)

// cursor walks the pages of one pagination modality. Next returns a stable
// page key (used for visited-set dedup), the page URL, and false when the
// cursor is exhausted. Exhaustion is a terminal state, not an error.
type cursor interface {
	Next() (key string, url string, ok bool)
}

// singleCursor is the SINGLE_PAGE modality: nothing beyond the base page.
type singleCursor struct{}

func (singleCursor) Next() (string, string, bool) { return "", "", false }

// yearCursor walks an ordered list of year-filtered listing URLs.
type yearCursor struct {
	entries []yearEntry
	pos     int
}

type yearEntry struct {
	year string
	url  string
}

func (c *yearCursor) Next() (string, string, bool) {
	if c.pos >= len(c.entries) {
		return "", "", false
	}
	e := c.entries[c.pos]
	c.pos++
	return "year:" + e.year, e.url, true
}

// numberedCursor walks numbered pages 1..max by substituting the page number
// into a URL template containing the pagePlaceholder marker.
type numberedCursor struct {
	template string
	max      int
	page     int
}

const pagePlaceholder = "{page}"

func (c *numberedCursor) Next() (string, string, bool) {
	if c.page > c.max {
		return "", "", false
	}
	page := c.page
	c.page++
	url := strings.ReplaceAll(c.template, pagePlaceholder, strconv.Itoa(page))
	return fmt.Sprintf("page:%d", page), url, true
}

// loadMoreCursor emulates a "load more" control by incrementing a page
// parameter against the control's data endpoint. It never self-exhausts;
// the navigator's empty-page streak and safety cap terminate it.
type loadMoreCursor struct {
	endpoint string
	param    string
	page     int
}

func (c *loadMoreCursor) Next() (string, string, bool) {
	page := c.page
	c.page++
	return fmt.Sprintf("more:%d", page), urlutil.WithParam(c.endpoint, c.param, strconv.Itoa(page)), true
}
