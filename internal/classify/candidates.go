package classify

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/urlutil"
	"github.com/Ali-Choubdaran/corporate-news-extraction/pkg/models"
)

// invalidHrefs never produce candidates.
var invalidHrefs = map[string]bool{
	"": true, "/": true, "#": true, "javascript:void(0)": true,
}

// Collect scans a parsed listing page for anchors and builds LinkCandidates
// with resolved absolute hrefs, anchor text, DOM depth, tag-path ancestry,
// and surrounding context hints. Anchors to fragments, tel:/mailto: schemes,
// and social networks are filtered out before classification, as are
// duplicate hrefs within the same ancestry group.
func Collect(doc *goquery.Document, baseURL string) []models.LinkCandidate {
	var candidates []models.LinkCandidate
	seen := make(map[string]map[string]bool) // ancestry -> href set

	doc.Find("a[href]").Each(func(i int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)

		if invalidHrefs[href] ||
			strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "tel:") ||
			strings.HasPrefix(href, "mailto:") ||
			strings.HasPrefix(href, "javascript:") {
			return
		}

		abs := urlutil.Resolve(baseURL, href)
		if isSocialHost(urlutil.Host(abs)) {
			return
		}

		normalized := urlutil.Normalize(abs)
		depth, ancestry, context := nodeContext(sel)

		if seen[ancestry] == nil {
			seen[ancestry] = make(map[string]bool)
		}
		if seen[ancestry][normalized] {
			return
		}
		seen[ancestry][normalized] = true

		candidates = append(candidates, models.LinkCandidate{
			Href:       normalized,
			AnchorText: strings.TrimSpace(sel.Text()),
			DOMDepth:   depth,
			Ancestry:   ancestry,
			Context:    context,
			Hidden:     anchorHidden(sel.Nodes[0]),
			Label:      models.LabelUnknown,
		})
	})

	return candidates
}

// nodeContext walks an anchor's ancestors collecting its depth, flexible
// tag-path ancestry, and nearby class/id hints.
func nodeContext(sel *goquery.Selection) (depth int, ancestry string, context []string) {
	if len(sel.Nodes) == 0 {
		return 0, "", nil
	}

	var tags []string
	for n := sel.Nodes[0].Parent; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		tags = append(tags, n.Data)
		depth++

		// Class and id hints from the three nearest ancestors only.
		if depth <= 3 {
			for _, attr := range n.Attr {
				if (attr.Key == "class" || attr.Key == "id") && attr.Val != "" {
					context = append(context, strings.ToLower(attr.Val))
				}
			}
		}
	}

	// Reverse so the path reads root-first.
	for i, j := 0, len(tags)-1; i < j; i, j = i+1, j-1 {
		tags[i], tags[j] = tags[j], tags[i]
	}

	return depth, strings.Join(tags, " > "), context
}

// anchorHidden reports whether the anchor or one of its three nearest
// ancestors is concealed via inline display:none or a "hidden" class.
func anchorHidden(n *html.Node) bool {
	for level := 0; n != nil && level <= 3; level++ {
		if nodeConcealed(n) {
			return true
		}
		n = n.Parent
	}
	return false
}

func nodeConcealed(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		switch attr.Key {
		case "style":
			if strings.Contains(strings.ReplaceAll(attr.Val, " ", ""), "display:none") {
				return true
			}
		case "class":
			if strings.Contains(strings.ToLower(attr.Val), "hidden") {
				return true
			}
		}
	}
	return false
}
