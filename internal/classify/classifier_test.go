package classify

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ali-Choubdaran/corporate-news-extraction/pkg/models"
)

const baseURL = "https://example.com/newsroom"

func articleCandidate(href, text string) models.LinkCandidate {
	return models.LinkCandidate{
		Href:       href,
		AnchorText: text,
		Ancestry:   "html > body > div > ul > li",
	}
}

func TestClassify_ArticleLink(t *testing.T) {
	c := New(DefaultWeights())

	got := c.Classify([]models.LinkCandidate{
		articleCandidate(
			"https://example.com/news/2024-10-01/acme-announces-record-quarterly-results",
			"Acme Announces Record Quarterly Results for Fiscal 2024"),
	}, PageContext{BaseURL: baseURL})

	require.Len(t, got, 1)
	assert.Equal(t, models.LabelArticle, got[0].Label)
	assert.GreaterOrEqual(t, got[0].Score, DefaultWeights().ArticleThreshold)
}

func TestClassify_BoilerplateLink(t *testing.T) {
	c := New(DefaultWeights())

	got := c.Classify([]models.LinkCandidate{
		articleCandidate("https://example.com/legal/privacy", "Privacy Policy"),
	}, PageContext{BaseURL: baseURL})

	require.Len(t, got, 1)
	assert.Equal(t, models.LabelBoilerplate, got[0].Label)
}

func TestClassify_OffDomainPenalized(t *testing.T) {
	c := New(DefaultWeights())

	onSite := articleCandidate(
		"https://example.com/news/acme-launches-new-platform-today",
		"Acme Launches New Platform For Enterprise Customers")
	offSite := onSite
	offSite.Href = "https://other.com/news/acme-launches-new-platform-today"

	got := c.Classify([]models.LinkCandidate{onSite, offSite}, PageContext{BaseURL: baseURL})
	assert.Greater(t, got[0].Score, got[1].Score)
}

func TestClassify_NonHTMLPenalized(t *testing.T) {
	c := New(DefaultWeights())

	got := c.Classify([]models.LinkCandidate{
		articleCandidate(
			"https://example.com/assets/acme-announces-results-2024.pdf",
			"Acme Announces Record Quarterly Results Download"),
	}, PageContext{BaseURL: baseURL})

	assert.NotEqual(t, models.LabelArticle, got[0].Label)
}

// Adding boilerplate lexicon matches to anchor text must never raise a score.
func TestClassify_BoilerplateMonotonicity(t *testing.T) {
	c := New(DefaultWeights())
	page := PageContext{BaseURL: baseURL}

	clean := articleCandidate(
		"https://example.com/news/2024/acme-reports-strong-growth",
		"Acme Reports Strong Growth Across All Segments")
	polluted := clean
	polluted.AnchorText = clean.AnchorText + " subscribe contact"

	got := c.Classify([]models.LinkCandidate{clean, polluted}, page)
	assert.Greater(t, got[0].Score, got[1].Score,
		"boilerplate terms must only subtract")
}

func TestClassify_CoOccurrenceBoost(t *testing.T) {
	w := DefaultWeights()
	c := New(w)

	// Four near-threshold anchors sharing one list ancestry; a lone anchor
	// with an identical feature profile but different ancestry gets no boost.
	group := make([]models.LinkCandidate, 0, 5)
	for _, slug := range []string{"alpha", "beta", "gamma", "delta"} {
		group = append(group, models.LinkCandidate{
			Href:       "https://example.com/news/acme-announces-" + slug,
			AnchorText: "plain text",
			Ancestry:   "html > body > main > ul > li",
		})
	}
	lone := models.LinkCandidate{
		Href:       "https://example.com/news/acme-announces-lone",
		AnchorText: "plain text",
		Ancestry:   "html > body > footer > div",
	}

	got := c.Classify(append(group, lone), PageContext{BaseURL: baseURL})

	for _, cand := range got[:4] {
		assert.Equal(t, models.LabelArticle, cand.Label, cand.Href)
	}
	assert.NotEqual(t, models.LabelArticle, got[4].Label)
	assert.Equal(t, got[0].Score-w.CoOccurrence, got[4].Score)
}

func TestCollect_FiltersJunkHrefs(t *testing.T) {
	html := `<html><body>
		<a href="/news/2024/acme-announces-results">Acme Announces Record Results This Quarter</a>
		<a href="#top">Back to top</a>
		<a href="javascript:void(0)">Load</a>
		<a href="mailto:pr@example.com">Email us</a>
		<a href="tel:+15551234567">Call</a>
		<a href="https://twitter.com/acme">Twitter</a>
	</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	cands := Collect(doc, baseURL)
	require.Len(t, cands, 1)
	assert.Equal(t, "https://example.com/news/2024/acme-announces-results", cands[0].Href)
}

func TestCollect_DedupsWithinAncestry(t *testing.T) {
	html := `<html><body><ul>
		<li><a href="/news/a">First Mention Of The Story Headline</a></li>
		<li><a href="/news/a">First Mention Of The Story Headline</a></li>
		<li><a href="/news/b">A Different Story Headline Entirely Here</a></li>
	</ul></body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	cands := Collect(doc, baseURL)
	assert.Len(t, cands, 2)
}

func TestSlugHasVerb(t *testing.T) {
	assert.True(t, slugHasVerb("/news/acme-announces-new-product"))
	assert.True(t, slugHasVerb("/news/company-launched-platform"))
	assert.False(t, slugHasVerb("/news/annual-report"))
	assert.False(t, slugHasVerb("/announces")) // single-word slug carries no signal
}

func TestIsHeadlineText(t *testing.T) {
	assert.True(t, isHeadlineText("Acme Announces Record Results This Quarter"))
	assert.False(t, isHeadlineText("Read more"))
	assert.False(t, isHeadlineText("next page of results here")) // no sentence case
}
