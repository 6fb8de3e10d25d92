package extract

import (
	"golang.org/x/net/html"

	"github.com/Ali-Choubdaran/corporate-news-extraction/pkg/models"
)

// parseTable converts a <table> node into a TableBlock, keeping every cell
// verbatim. HeaderRow is 0 when the table declares a header (a <thead>, or
// <th> cells in the first row) and -1 otherwise. Tables with no cells are
// dropped.
func parseTable(tableNode *html.Node) (models.TableBlock, bool) {
	var rows [][]string
	hasHeader := false

	var collect func(n *html.Node, inHead bool)
	collect = func(n *html.Node, inHead bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "thead":
				collect(c, true)
			case "tbody", "tfoot":
				collect(c, inHead)
			case "tr":
				cells, sawTH := rowCells(c)
				if len(cells) == 0 {
					continue
				}
				if len(rows) == 0 && (inHead || sawTH) {
					hasHeader = true
				}
				rows = append(rows, cells)
			}
		}
	}
	collect(tableNode, false)

	if len(rows) == 0 {
		return models.TableBlock{}, false
	}

	headerRow := -1
	if hasHeader {
		headerRow = 0
	}
	return models.TableBlock{Rows: rows, HeaderRow: headerRow}, true
}

func rowCells(tr *html.Node) (cells []string, sawTH bool) {
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "th":
			sawTH = true
			cells = append(cells, collapseSpace(nodeText(c)))
		case "td":
			cells = append(cells, collapseSpace(nodeText(c)))
		}
	}
	return cells, sawTH
}
