package navigate

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog/log"

	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/urlutil"
)

// discoverFeed finds an advertised RSS/Atom feed on a listing page. Press
// rooms frequently expose one, and its item links are article URLs for free.
func discoverFeed(doc *goquery.Document, baseURL string) string {
	var feedURL string

	doc.Find(`link[rel="alternate"]`).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		typ, _ := sel.Attr("type")
		href, _ := sel.Attr("href")
		if href == "" {
			return true
		}
		if strings.Contains(typ, "rss") || strings.Contains(typ, "atom") {
			feedURL = urlutil.Resolve(baseURL, href)
			return false
		}
		return true
	})

	return feedURL
}

// fetchFeedLinks fetches and parses a feed, returning its item links.
// Feed failures are best-effort: the pagination walk proceeds regardless.
func (n *Navigator) fetchFeedLinks(ctx context.Context, feedURL string) []string {
	page, err := n.fetcher.Fetch(ctx, feedURL, false)
	if err != nil {
		log.Debug().Err(err).Str("feed", feedURL).Msg("Feed fetch failed")
		return nil
	}

	feed, err := gofeed.NewParser().ParseString(page.HTML)
	if err != nil {
		log.Debug().Err(err).Str("feed", feedURL).Msg("Feed parse failed")
		return nil
	}

	links := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link != "" {
			links = append(links, item.Link)
		}
	}

	log.Debug().
		Str("feed", feedURL).
		Int("items", len(links)).
		Msg("Feed items merged into discovery")

	return links
}
