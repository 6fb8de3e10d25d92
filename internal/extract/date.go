package extract

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"golang.org/x/net/html"
)

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`),
	regexp.MustCompile(`(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.? \d{1,2},? \d{4}`),
}

var pubIndicators = []string{"press", "release", "published", "posted"}

// extractDate runs the publication-date fallback chain: structured metadata,
// then meta tags, then a scored regex scan of the page's text nodes.
// Level reports the chain depth used (0/1/2); found is false when every
// level fails, which is not an error for the caller.
func extractDate(doc *goquery.Document) (date time.Time, level int, found bool) {
	if d, ok := schemaDate(doc); ok {
		return d, 0, true
	}

	if d, ok := metaDate(doc); ok {
		return d, 1, true
	}

	if d, ok := scanTextDates(doc); ok {
		return d, 2, true
	}

	return time.Time{}, 0, false
}

func schemaDate(doc *goquery.Document) (time.Time, bool) {
	var result time.Time
	ok := false

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		var data interface{}
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			return true
		}
		if raw := findDatePublished(data); raw != "" {
			if d, err := dateparse.ParseAny(raw); err == nil {
				result, ok = d, true
				return false
			}
		}
		return true
	})

	return result, ok
}

func findDatePublished(data interface{}) string {
	switch v := data.(type) {
	case map[string]interface{}:
		if raw, ok := v["datePublished"].(string); ok && raw != "" {
			return raw
		}
		if graph, ok := v["@graph"]; ok {
			return findDatePublished(graph)
		}
	case []interface{}:
		for _, item := range v {
			if raw := findDatePublished(item); raw != "" {
				return raw
			}
		}
	}
	return ""
}

func metaDate(doc *goquery.Document) (time.Time, bool) {
	selectors := []string{
		`meta[property="article:published_time"]`,
		`meta[property="og:published_time"]`,
		`meta[name="datePublished"]`,
		`meta[itemprop="datePublished"]`,
		`meta[name="date"]`,
	}
	for _, sel := range selectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok && content != "" {
			if d, err := dateparse.ParseAny(content); err == nil {
				return d, true
			}
		}
	}

	// <time datetime="..."> counts as tag-level metadata too.
	if dt, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok && dt != "" {
		if d, err := dateparse.ParseAny(dt); err == nil {
			return d, true
		}
	}

	return time.Time{}, false
}

// scanTextDates finds date-shaped strings in the page's text nodes and
// scores each by context: class names combining news/date hints and nearby
// publication vocabulary both raise confidence. Future dates are noise
// (event schedules, copyright ranges) and are rejected outright.
func scanTextDates(doc *goquery.Document) (time.Time, bool) {
	type candidate struct {
		date  time.Time
		score int
	}
	var candidates []candidate
	now := time.Now()

	doc.Find("body *").Each(func(i int, sel *goquery.Selection) {
		direct := directText(sel)
		if direct == "" || len(direct) > 300 {
			return
		}

		for _, pattern := range datePatterns {
			match := pattern.FindString(direct)
			if match == "" {
				continue
			}
			parsed, err := dateparse.ParseAny(match)
			if err != nil || parsed.After(now) {
				continue
			}

			score := 0
			if hasNewsDateClass(sel) {
				score += 5
			}
			surrounding := strings.ToLower(sel.Parent().Text())
			for _, ind := range pubIndicators {
				if strings.Contains(surrounding, ind) {
					score += 5
					break
				}
			}

			candidates = append(candidates, candidate{date: parsed, score: score})
		}
	})

	if len(candidates) == 0 {
		return time.Time{}, false
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.score > best.score {
			best = c
		}
	}
	return best.date, true
}

// hasNewsDateClass checks the element and its ancestors for class names that
// combine a news hint with a date hint ("news-date", "newsDate", ...).
func hasNewsDateClass(sel *goquery.Selection) bool {
	if len(sel.Nodes) == 0 {
		return false
	}
	for n := sel.Nodes[0]; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		for _, attr := range n.Attr {
			if attr.Key != "class" {
				continue
			}
			class := strings.ToLower(attr.Val)
			if strings.Contains(class, "date") &&
				(strings.Contains(class, "news") || strings.Contains(class, "publish") || strings.Contains(class, "post")) {
				return true
			}
		}
	}
	return false
}

// directText returns only the text immediately inside sel, not its children,
// so each date string is attributed to exactly one element.
func directText(sel *goquery.Selection) string {
	if len(sel.Nodes) == 0 {
		return ""
	}
	var b strings.Builder
	for c := sel.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(b.String())
}
