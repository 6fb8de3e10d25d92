package extract

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"github.com/Ali-Choubdaran/corporate-news-extraction/pkg/models"
)

const minContainerChars = 200

var contentClassRe = regexp.MustCompile(`(?i)(article|content|body|post|press|release|story|entry)`)

var skipContainers = map[string]bool{
	"nav": true, "footer": true, "aside": true, "header": true,
	"script": true, "style": true, "noscript": true, "form": true,
}

// rawBlock carries a content block plus layout context the boilerplate
// flagger needs: whether the block's text is fully bold.
type rawBlock struct {
	block models.ContentBlock
	bold  bool
}

// extractBody locates the main article container and walks it into an
// ordered block sequence. Level reports the detection chain depth:
// 0 = <article> element, 1 = content-class div, 2 = largest text region,
// 3 = readability fallback on the raw HTML.
func extractBody(doc *goquery.Document, pageURL string) (blocks []rawBlock, tables []models.TableBlock, level int, err error) {
	container, level := findContainer(doc)
	if container != nil {
		blocks, tables = walkBlocks(container)
		if len(blocks) > 0 || len(tables) > 0 {
			return blocks, tables, level, nil
		}
	}

	blocks, tables, rerr := readabilityBlocks(doc, pageURL)
	if rerr != nil || (len(blocks) == 0 && len(tables) == 0) {
		return nil, nil, 0, &Error{URL: pageURL, Reason: ErrNoBodyFound}
	}
	return blocks, tables, 3, nil
}

func findContainer(doc *goquery.Document) (*goquery.Selection, int) {
	if article := doc.Find("article").First(); article.Length() > 0 {
		return article, 0
	}

	var classHit *goquery.Selection
	doc.Find("div, section").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		id, _ := sel.Attr("id")
		if !contentClassRe.MatchString(class) && !contentClassRe.MatchString(id) {
			return true
		}
		if len(strings.TrimSpace(sel.Text())) > minContainerChars {
			classHit = sel
			return false
		}
		return true
	})
	if classHit != nil {
		return classHit, 1
	}

	var largest *goquery.Selection
	maxLen := minContainerChars
	doc.Find("div, section").Each(func(i int, sel *goquery.Selection) {
		if len(sel.Nodes) == 0 || insideSkipped(sel.Nodes[0]) {
			return
		}
		if l := len(strings.TrimSpace(sel.Text())); l > maxLen {
			largest, maxLen = sel, l
		}
	})
	if largest != nil {
		return largest, 2
	}

	return nil, 0
}

func insideSkipped(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && skipContainers[p.Data] {
			return true
		}
	}
	return false
}

var headingLevels = map[string]int{
	"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6,
}

var paragraphTags = map[string]bool{
	"p": true, "li": true, "blockquote": true,
}

// walkBlocks traverses the container in document order, emitting one block
// per paragraph-level element and one TableBlock per <table>. Table
// descendants are skipped so cell text never doubles as paragraph text.
// TableBlock.Position records how many content blocks precede the table,
// preserving the interleaving for downstream rendering.
func walkBlocks(container *goquery.Selection) ([]rawBlock, []models.TableBlock) {
	var blocks []rawBlock
	var tables []models.TableBlock
	if len(container.Nodes) == 0 {
		return nil, nil
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		tag := n.Data
		if skipContainers[tag] {
			return
		}
		if tag == "table" {
			if tb, ok := parseTable(n); ok {
				tb.Position = len(blocks)
				tables = append(tables, tb)
			}
			return
		}
		if lvl, isHeading := headingLevels[tag]; isHeading {
			if rb, ok := nodeBlock(n, models.BlockHeading, lvl); ok {
				blocks = append(blocks, rb)
			}
			return
		}
		if paragraphTags[tag] {
			kind := models.BlockParagraph
			if tag == "li" {
				kind = models.BlockListItem
			} else if tag == "blockquote" {
				kind = models.BlockQuote
			}
			if rb, ok := nodeBlock(n, kind, 0); ok {
				blocks = append(blocks, rb)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for c := container.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return blocks, tables
}

func nodeBlock(n *html.Node, kind models.BlockKind, level int) (rawBlock, bool) {
	text := collapseSpace(nodeText(n))
	if text == "" {
		return rawBlock{}, false
	}
	return rawBlock{
		block: models.ContentBlock{
			Kind:         kind,
			Text:         text,
			HTML:         innerHTML(n),
			HeadingLevel: level,
		},
		bold: fullyBold(n),
	}, true
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func innerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		html.Render(&buf, c)
	}
	return buf.String()
}

var spaceRe = regexp.MustCompile(`\s+`)

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// fullyBold reports whether every text character of n sits under bold
// styling (b/strong, a font-weight style, or a bold class). Boilerplate
// headers on some sites are bold paragraphs rather than real headings.
func fullyBold(n *html.Node) bool {
	if boldElem(n) {
		return true
	}
	sawText := false
	var walk func(node *html.Node, bold bool) bool
	walk = func(node *html.Node, bold bool) bool {
		if node.Type == html.TextNode {
			if strings.TrimSpace(node.Data) == "" {
				return true
			}
			sawText = true
			return bold
		}
		if node.Type == html.ElementNode && boldElem(node) {
			bold = true
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if !walk(c, bold) {
				return false
			}
		}
		return true
	}
	ok := true
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, false) {
			ok = false
			break
		}
	}
	return ok && sawText
}

func boldElem(n *html.Node) bool {
	if n.Data == "b" || n.Data == "strong" {
		return true
	}
	for _, attr := range n.Attr {
		switch attr.Key {
		case "style":
			v := strings.ToLower(attr.Val)
			if strings.Contains(v, "font-weight") &&
				(strings.Contains(v, "bold") || strings.Contains(v, "700") ||
					strings.Contains(v, "800") || strings.Contains(v, "900")) {
				return true
			}
		case "class":
			if strings.Contains(strings.ToLower(attr.Val), "bold") {
				return true
			}
		}
	}
	return false
}

// readabilityBlocks is the last resort: hand the whole document to the
// readability extractor and walk whatever content tree it keeps.
func readabilityBlocks(doc *goquery.Document, pageURL string) ([]rawBlock, []models.TableBlock, error) {
	htmlStr, err := doc.Html()
	if err != nil {
		return nil, nil, err
	}
	parsed, err := url.Parse(pageURL)
	if err != nil {
		parsed = nil
	}
	article, err := readability.FromReader(strings.NewReader(htmlStr), parsed)
	if err != nil {
		return nil, nil, err
	}
	cleaned, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, nil, err
	}
	body := cleaned.Find("body").First()
	if body.Length() == 0 {
		return nil, nil, nil
	}
	blocks, tables := walkBlocks(body)
	return blocks, tables, nil
}
