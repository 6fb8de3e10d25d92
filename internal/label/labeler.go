// Package label serializes an ArticleRecord into a normalized labeled tree:
// one line per block with a kind tag and boilerplate marker, tables rendered
// inline at their original positions. The output is byte-deterministic, so
// two extractions of identical markup always serialize identically.
package label

import (
	"fmt"
	"strings"

	"github.com/Ali-Choubdaran/corporate-news-extraction/pkg/models"
)

const boilerplateTag = " [boilerplate]"

// Tree renders the record as the labeled-content tree. Blocks appear in body
// order; each table is emitted after the block count recorded in its
// Position, keeping the original document interleaving.
func Tree(record *models.ArticleRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "article url=%s\n", record.URL)
	fmt.Fprintf(&b, "  title: %s\n", record.Title)
	if record.PublishedAt != nil {
		fmt.Fprintf(&b, "  published: %s\n", record.PublishedAt.UTC().Format("2006-01-02"))
	}
	if record.Author != "" {
		fmt.Fprintf(&b, "  author: %s\n", record.Author)
	}
	if record.Section != "" {
		fmt.Fprintf(&b, "  section: %s\n", record.Section)
	}
	if len(record.Keywords) > 0 {
		fmt.Fprintf(&b, "  keywords: %s\n", strings.Join(record.Keywords, ", "))
	}
	fmt.Fprintf(&b, "  confidence: %.2f\n", record.Confidence)
	b.WriteString("  body:\n")

	tableIdx := 0
	emitTables := func(pos int) {
		for tableIdx < len(record.Tables) && record.Tables[tableIdx].Position <= pos {
			writeTable(&b, record.Tables[tableIdx])
			tableIdx++
		}
	}

	for i, block := range record.Body {
		emitTables(i)
		writeBlock(&b, block)
	}
	// Tables positioned after the last block.
	emitTables(len(record.Body))

	return b.String()
}

func writeBlock(b *strings.Builder, block models.ContentBlock) {
	tag := string(block.Kind)
	if block.Kind == models.BlockHeading {
		tag = fmt.Sprintf("heading[%d]", block.HeadingLevel)
	}
	marker := ""
	if block.IsBoilerplate {
		marker = boilerplateTag
	}
	fmt.Fprintf(b, "    %s%s: %s\n", tag, marker, block.Text)
}

func writeTable(b *strings.Builder, table models.TableBlock) {
	fmt.Fprintf(b, "    table rows=%d header=%d:\n", len(table.Rows), table.HeaderRow)
	for _, row := range table.Rows {
		fmt.Fprintf(b, "      | %s |\n", strings.Join(row, " | "))
	}
}
