package extract

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ali-Choubdaran/corporate-news-extraction/pkg/models"
)

const articleURL = "https://example.com/news/2024/q3-results"

const structuredArticle = `<html>
<head>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "NewsArticle",
  "headline": "Q3 Results",
  "datePublished": "2024-10-01"
}
</script>
</head>
<body>
<article>
<h1>Q3 Results</h1>
<p>Acme Corporation today reported revenue of $4.2 billion for the third quarter.</p>
<p>Operating income grew 12 percent year over year on strong platform demand.</p>
</article>
</body>
</html>`

func TestExtract_StructuredPage(t *testing.T) {
	record, err := Extract(structuredArticle, articleURL)
	require.NoError(t, err)

	assert.Equal(t, "Q3 Results", record.Title)
	require.NotNil(t, record.PublishedAt)
	assert.Equal(t, 2024, record.PublishedAt.Year())
	assert.Equal(t, time.October, record.PublishedAt.Month())
	assert.Equal(t, 1, record.PublishedAt.Day())

	// No fallback level was needed anywhere, so confidence is exactly 1.0.
	assert.Equal(t, 1.0, record.Confidence)
}

const unstructuredArticle = `<html>
<body>
<div class="press-release-content">
<h1>Acme Opens New Facility</h1>
<p class="news-date">Published October 1, 2024</p>
<p>Acme Corporation opened a new manufacturing facility in Springfield today, adding four hundred jobs to the region and expanding production capacity significantly.</p>
<p>The facility will begin operations in the first quarter of next year with a phased hiring plan across engineering and operations roles.</p>
</div>
</body>
</html>`

func TestExtract_UnstructuredPageDegradesConfidence(t *testing.T) {
	record, err := Extract(unstructuredArticle, articleURL)
	require.NoError(t, err)

	assert.Equal(t, "Acme Opens New Facility", record.Title)
	require.NotNil(t, record.PublishedAt)
	assert.Equal(t, 2024, record.PublishedAt.Year())

	assert.Less(t, record.Confidence, 1.0,
		"heading title and scanned date must degrade confidence")
	assert.Greater(t, record.Confidence, 0.0)
}

func TestExtract_NoTitle(t *testing.T) {
	_, err := Extract(`<html><body><p>just text</p></body></html>`, articleURL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoTitleFound), "got %v", err)
}

func TestExtract_MissingDateLowersConfidenceOnly(t *testing.T) {
	html := `<html><body><article>
	<h1>Acme Names New Chief Executive Officer</h1>
	<p>The board of directors announced the appointment following an extensive search process.</p>
	</article></body></html>`

	record, err := Extract(html, articleURL)
	require.NoError(t, err)
	assert.Nil(t, record.PublishedAt)
	assert.Less(t, record.Confidence, 1.0)
}

const boilerplateArticle = `<html>
<head><script type="application/ld+json">{"@type":"PressRelease","headline":"Acme Reports Record Revenue","datePublished":"2024-07-15"}</script></head>
<body>
<article>
<p>Acme reported record revenue for the quarter, driven by subscription growth.</p>
<h2>Forward-Looking Statements</h2>
<p>This press release contains forward-looking statements within the meaning of the Private Securities Litigation Reform Act.</p>
<p>Actual results may differ materially from those projected due to risks described in our filings.</p>
<p>We undertake no obligation to update these statements except as required by law.</p>
</article>
</body>
</html>`

func TestExtract_BoilerplateFlaggedNotRemoved(t *testing.T) {
	record, err := Extract(boilerplateArticle, articleURL)
	require.NoError(t, err)

	// Every block survives extraction; flagging never deletes.
	require.Len(t, record.Body, 5)

	assert.False(t, record.Body[0].IsBoilerplate, "lead paragraph is content")
	for _, block := range record.Body[1:] {
		assert.True(t, block.IsBoilerplate, "block %q should be flagged", block.Text)
	}
}

const tableArticle = `<html>
<head><script type="application/ld+json">{"@type":"NewsArticle","headline":"Quarterly Financial Summary","datePublished":"2024-10-01"}</script></head>
<body>
<article>
<p>Summary financial results are presented below.</p>
<table>
<tr><th>Metric</th><th>Q3 2024</th><th>Q3 2023</th></tr>
<tr><td>Revenue</td><td>$4.2B</td><td>$3.8B</td></tr>
<tr><td>Operating income</td><td>$1.1B</td><td>$0.9B</td></tr>
<tr><td>Net income</td><td>$0.8B</td><td>$0.7B</td></tr>
<tr><td>EPS</td><td>$2.10</td><td>$1.85</td></tr>
</table>
<p>All figures are unaudited.</p>
</article>
</body>
</html>`

func TestExtract_TablePreserved(t *testing.T) {
	record, err := Extract(tableArticle, articleURL)
	require.NoError(t, err)

	require.Len(t, record.Tables, 1)
	table := record.Tables[0]

	assert.Len(t, table.Rows, 5, "all rows survive, never flattened to text")
	assert.Equal(t, 0, table.HeaderRow, "th cells mark the first row as header")
	assert.Equal(t, []string{"Revenue", "$4.2B", "$3.8B"}, table.Rows[1])
	assert.Equal(t, 1, table.Position, "table follows the first paragraph")

	// Cell text never leaks into paragraph blocks.
	for _, block := range record.Body {
		assert.NotContains(t, block.Text, "$4.2B")
	}
}

func TestExtract_Metadata(t *testing.T) {
	html := `<html>
<head>
<meta property="og:title" content="Acme Expands Into Europe">
<meta property="article:published_time" content="2024-05-20T09:00:00Z">
<meta name="author" content="Acme Press Office">
<meta name="keywords" content="expansion, europe, growth">
<meta property="article:section" content="Corporate News">
</head>
<body><article><p>Acme announced its expansion into European markets today.</p></article></body>
</html>`

	record, err := Extract(html, articleURL)
	require.NoError(t, err)

	assert.Equal(t, "Acme Expands Into Europe", record.Title)
	assert.Equal(t, "Acme Press Office", record.Author)
	assert.Equal(t, []string{"expansion", "europe", "growth"}, record.Keywords)
	assert.Equal(t, "Corporate News", record.Section)
	require.NotNil(t, record.PublishedAt)
	assert.Equal(t, time.May, record.PublishedAt.Month())
}

func TestExtractDate_RejectsFutureDates(t *testing.T) {
	future := time.Now().AddDate(2, 0, 0).Format("January 2, 2006")
	html := `<html><body><article>
	<h1>Acme Schedules Annual Shareholder Meeting</h1>
	<p class="news-date">` + future + `</p>
	<p>The meeting agenda and proxy materials will be distributed in advance.</p>
	</article></body></html>`

	record, err := Extract(html, articleURL)
	require.NoError(t, err)
	assert.Nil(t, record.PublishedAt, "a future date is event scheduling, not publication")
}

func TestExtract_HeadingLevels(t *testing.T) {
	record, err := Extract(structuredArticle, articleURL)
	require.NoError(t, err)

	require.NotEmpty(t, record.Body)
	assert.Equal(t, models.BlockHeading, record.Body[0].Kind)
	assert.Equal(t, 1, record.Body[0].HeadingLevel)
	assert.Equal(t, models.BlockParagraph, record.Body[1].Kind)
}
