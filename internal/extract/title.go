package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxTitleLen discards headings too long to be headlines.
const maxTitleLen = 200

// extractTitle runs the title fallback chain and returns the title plus the
// chain level that produced it (0 = structured metadata, 1 = meta tags,
// 2 = visible heading). Found is false when every level fails.
func extractTitle(doc *goquery.Document) (title string, level int, found bool) {
	if t := schemaHeadline(doc); validTitle(t) {
		return t, 0, true
	}

	for _, sel := range []string{
		`meta[property="og:title"]`,
		`meta[name="twitter:title"]`,
		`meta[property="twitter:title"]`,
	} {
		if content, ok := doc.Find(sel).First().Attr("content"); ok && validTitle(content) {
			return strings.TrimSpace(content), 1, true
		}
	}

	if t := prominentHeading(doc); validTitle(t) {
		return t, 2, true
	}

	return "", 0, false
}

func validTitle(t string) bool {
	t = strings.TrimSpace(t)
	return t != "" && len(t) < maxTitleLen
}

// schemaHeadline digs the headline out of schema.org Article/NewsArticle
// JSON-LD blocks, including @graph wrappers and top-level arrays.
func schemaHeadline(doc *goquery.Document) string {
	var headline string

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		var data interface{}
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			return true
		}
		if h := findHeadline(data); h != "" {
			headline = h
			return false
		}
		return true
	})

	return headline
}

func findHeadline(data interface{}) string {
	switch v := data.(type) {
	case map[string]interface{}:
		if isArticleType(v["@type"]) {
			if h, ok := v["headline"].(string); ok && h != "" {
				return strings.TrimSpace(h)
			}
		}
		if graph, ok := v["@graph"]; ok {
			return findHeadline(graph)
		}
	case []interface{}:
		for _, item := range v {
			if h := findHeadline(item); h != "" {
				return h
			}
		}
	}
	return ""
}

func isArticleType(t interface{}) bool {
	switch v := t.(type) {
	case string:
		return v == "Article" || v == "NewsArticle" || v == "PressRelease"
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && isArticleType(s) {
				return true
			}
		}
	}
	return false
}

// prominentHeading picks the visible heading most likely to be the headline:
// an h1 inside <article> wins, then any page h1, then the first h2. Among
// several candidates the longest valid one is taken, because page h1s are
// often just the site name.
func prominentHeading(doc *goquery.Document) string {
	var candidates []string

	if h := strings.TrimSpace(doc.Find("article h1").First().Text()); h != "" {
		candidates = append(candidates, h)
	}
	doc.Find("h1").Each(func(i int, sel *goquery.Selection) {
		if h := strings.TrimSpace(sel.Text()); h != "" {
			candidates = append(candidates, h)
		}
	})
	if len(candidates) == 0 {
		if h := strings.TrimSpace(doc.Find("h2").First().Text()); h != "" {
			candidates = append(candidates, h)
		}
	}

	best := ""
	for _, c := range candidates {
		if len(c) < maxTitleLen && len(c) > len(best) {
			best = c
		}
	}
	return best
}
