package output

import (
	"fmt"
	"os"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"

	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/urlutil"
	"github.com/Ali-Choubdaran/corporate-news-extraction/pkg/models"
)

// SaveMarkdown renders the record as a Markdown document and writes it to
// filepath. Each block's inner HTML is converted individually so inline
// formatting survives; tables are re-emitted from their preserved rows at
// their original positions.
func SaveMarkdown(record *models.ArticleRecord, filepath string) error {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	converter.AddRules(md.Rule{
		Filter: []string{"a"},
		Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
			href, exists := selec.Attr("href")
			if !exists {
				return nil
			}
			resolved := urlutil.Resolve(record.URL, href)
			if resolved == "" {
				resolved = href
			}
			str := fmt.Sprintf("[%s](%s)", selec.Text(), resolved)
			return &str
		},
	})

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", record.Title)
	if record.PublishedAt != nil {
		fmt.Fprintf(&b, "*%s*\n\n", record.PublishedAt.Format("January 2, 2006"))
	}

	tableIdx := 0
	emitTables := func(pos int) {
		for tableIdx < len(record.Tables) && record.Tables[tableIdx].Position <= pos {
			writeMarkdownTable(&b, record.Tables[tableIdx])
			tableIdx++
		}
	}

	for i, block := range record.Body {
		emitTables(i)
		text, err := converter.ConvertString(block.HTML)
		if err != nil || strings.TrimSpace(text) == "" {
			text = block.Text
		}
		switch block.Kind {
		case models.BlockHeading:
			fmt.Fprintf(&b, "%s %s\n\n", strings.Repeat("#", block.HeadingLevel+1), block.Text)
		case models.BlockListItem:
			fmt.Fprintf(&b, "- %s\n", strings.TrimSpace(text))
		case models.BlockQuote:
			fmt.Fprintf(&b, "> %s\n\n", strings.TrimSpace(text))
		default:
			fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(text))
		}
	}
	emitTables(len(record.Body))

	return os.WriteFile(filepath, []byte(b.String()), 0644)
}

func writeMarkdownTable(b *strings.Builder, table models.TableBlock) {
	cols := 0
	for _, row := range table.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	for i, row := range table.Rows {
		padded := make([]string, cols)
		copy(padded, row)
		fmt.Fprintf(b, "| %s |\n", strings.Join(padded, " | "))
		if i == 0 {
			sep := make([]string, cols)
			for j := range sep {
				sep[j] = "---"
			}
			fmt.Fprintf(b, "| %s |\n", strings.Join(sep, " | "))
		}
	}
	b.WriteString("\n")
}
