package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ali-Choubdaran/corporate-news-extraction/pkg/models"
)

func TestURLList_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.json")
	urls := []string{
		"https://example.com/news/a",
		"https://example.com/news/b",
	}

	require.NoError(t, SaveURLList(urls, "exhausted", path))

	got, err := LoadURLList(path)
	require.NoError(t, err)
	assert.Equal(t, urls, got)
}

func TestSaveMarkdown_RendersTablesInline(t *testing.T) {
	published := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	record := &models.ArticleRecord{
		URL:         "https://example.com/news/q3",
		Title:       "Q3 Results",
		PublishedAt: &published,
		Body: []models.ContentBlock{
			{Kind: models.BlockParagraph, Text: "Revenue summary below.", HTML: "Revenue summary below."},
			{Kind: models.BlockParagraph, Text: "All figures unaudited.", HTML: "All figures unaudited."},
		},
		Tables: []models.TableBlock{
			{Rows: [][]string{{"Metric", "Value"}, {"Revenue", "$4.2B"}}, HeaderRow: 0, Position: 1},
		},
	}

	path := filepath.Join(t.TempDir(), "q3.md")
	require.NoError(t, SaveMarkdown(record, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	md := string(data)

	assert.Contains(t, md, "# Q3 Results")
	assert.Contains(t, md, "| Metric | Value |")
	assert.Contains(t, md, "| --- | --- |")

	// Table renders between the two paragraphs.
	first := indexOf(t, md, "Revenue summary below.")
	table := indexOf(t, md, "| Metric | Value |")
	last := indexOf(t, md, "All figures unaudited.")
	assert.Greater(t, table, first)
	assert.Less(t, table, last)
}

func TestSaveJSON_StripsBlockHTML(t *testing.T) {
	record := &models.ArticleRecord{
		URL:   "https://example.com/news/q3",
		Title: "Q3 Results",
		Body: []models.ContentBlock{
			{Kind: models.BlockParagraph, Text: "hello", HTML: "<b>hello</b>"},
		},
	}

	path := filepath.Join(t.TempDir(), "q3.json")
	require.NoError(t, SaveJSON(record, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "<b>")
	assert.Contains(t, string(data), "hello")

	// The caller's record is left untouched.
	assert.Equal(t, "<b>hello</b>", record.Body[0].HTML)
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	idx := strings.Index(haystack, needle)
	require.GreaterOrEqual(t, idx, 0, "missing %q", needle)
	return idx
}
