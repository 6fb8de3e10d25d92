package label

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ali-Choubdaran/corporate-news-extraction/pkg/models"
)

func sampleRecord() *models.ArticleRecord {
	published := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	return &models.ArticleRecord{
		URL:         "https://example.com/news/q3-results",
		Title:       "Q3 Results",
		PublishedAt: &published,
		Body: []models.ContentBlock{
			{Kind: models.BlockHeading, Text: "Q3 Results", HeadingLevel: 1},
			{Kind: models.BlockParagraph, Text: "Revenue grew twelve percent."},
			{Kind: models.BlockParagraph, Text: "Forward-Looking Statements", IsBoilerplate: true},
			{Kind: models.BlockParagraph, Text: "This release contains projections.", IsBoilerplate: true},
		},
		Tables: []models.TableBlock{
			{
				Rows:      [][]string{{"Metric", "Value"}, {"Revenue", "$4.2B"}},
				HeaderRow: 0,
				Position:  2,
			},
		},
		Confidence: 1.0,
	}
}

func TestTree_Deterministic(t *testing.T) {
	record := sampleRecord()
	first := Tree(record)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Tree(record), "serialization must be byte-identical across calls")
	}
}

func TestTree_Layout(t *testing.T) {
	out := Tree(sampleRecord())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.GreaterOrEqual(t, len(lines), 9)
	assert.Equal(t, "article url=https://example.com/news/q3-results", lines[0])
	assert.Equal(t, "  title: Q3 Results", lines[1])
	assert.Equal(t, "  published: 2024-10-01", lines[2])
	assert.Contains(t, out, "heading[1]: Q3 Results")
	assert.Contains(t, out, "paragraph [boilerplate]: Forward-Looking Statements")
}

func TestTree_TableInlineAtPosition(t *testing.T) {
	out := Tree(sampleRecord())

	// The table sits after two body blocks, before the boilerplate run.
	tableIdx := strings.Index(out, "table rows=2")
	require.Positive(t, tableIdx)
	assert.Greater(t, tableIdx, strings.Index(out, "Revenue grew twelve percent."))
	assert.Less(t, tableIdx, strings.Index(out, "Forward-Looking Statements"))
	assert.Contains(t, out, "| Metric | Value |")
	assert.Contains(t, out, "| Revenue | $4.2B |")
}

func TestTree_TrailingTable(t *testing.T) {
	record := sampleRecord()
	record.Tables[0].Position = len(record.Body)

	out := Tree(record)
	tableIdx := strings.Index(out, "table rows=2")
	lastBlockIdx := strings.Index(out, "This release contains projections.")
	assert.Greater(t, tableIdx, lastBlockIdx, "a trailing table renders after every block")
}
