package newscrawl

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ali-Choubdaran/corporate-news-extraction/pkg/models"
)

// pressRoom simulates a small corporate newsroom: a two-page numbered
// listing and one structured article per link.
func pressRoom() *httptest.Server {
	mux := http.NewServeMux()

	listing := func(from, to int) string {
		var b strings.Builder
		b.WriteString("<html><body><ul>")
		for i := from; i <= to; i++ {
			fmt.Fprintf(&b,
				`<li><a href="/news/2024/acme-announces-milestone-%d">Acme Announces Major Milestone Number %d</a></li>`,
				i, i)
		}
		b.WriteString(`</ul><div class="pagination"><a href="/newsroom?page=2">2</a></div></body></html>`)
		return b.String()
	}

	mux.HandleFunc("/newsroom", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, listing(4, 6))
			return
		}
		fmt.Fprint(w, listing(1, 3))
	})

	mux.HandleFunc("/news/2024/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html>
<head><script type="application/ld+json">{"@type":"NewsArticle","headline":"Acme Milestone","datePublished":"2024-06-10"}</script></head>
<body><article>
<h1>Acme Milestone</h1>
<p>Acme reached a significant milestone this quarter across all business lines.</p>
<p>Details follow in the <a href="/newsroom">newsroom</a>.</p>
</article></body></html>`)
	})

	return httptest.NewServer(mux)
}

func testService() *Service {
	// High per-host budget keeps the suite fast; production default is 1 rps.
	return New(WithRateLimit(1000, 100))
}

func TestDiscoverArticles(t *testing.T) {
	server := pressRoom()
	defer server.Close()

	svc := testService()
	result, err := svc.DiscoverArticles(context.Background(), server.URL+"/newsroom", DefaultDiscoverConfig())
	require.NoError(t, err)

	assert.Equal(t, models.StatusExhausted, result.Status)
	assert.Equal(t, models.ModeNumberedPages, result.Mode)
	assert.Len(t, result.URLs, 6)
	for _, u := range result.URLs {
		assert.Contains(t, u, "/news/2024/acme-announces-milestone-")
	}
}

func TestDiscoverArticles_InvalidBaseURL(t *testing.T) {
	svc := testService()
	_, err := svc.DiscoverArticles(context.Background(), "not-a-url", DefaultDiscoverConfig())
	assert.Error(t, err)
}

func TestExtractContent(t *testing.T) {
	server := pressRoom()
	defer server.Close()

	svc := testService()
	record, err := svc.ExtractContent(context.Background(),
		server.URL+"/news/2024/acme-announces-milestone-1", DefaultExtractConfig())
	require.NoError(t, err)

	assert.Equal(t, "Acme Milestone", record.Title)
	require.NotNil(t, record.PublishedAt)
	assert.Equal(t, 1.0, record.Confidence)
	assert.NotEmpty(t, record.Body)
}

func TestExtractContent_LinkFreePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Structured article with no hyperlinks anywhere on the page.
		fmt.Fprint(w, `<html>
<head><script type="application/ld+json">{"@type":"NewsArticle","headline":"Q3 Results","datePublished":"2024-10-01"}</script></head>
<body><article>
<h1>Q3 Results</h1>
<p>Revenue grew twelve percent year over year on strong product demand.</p>
</article></body></html>`)
	}))
	defer server.Close()

	svc := testService()
	record, err := svc.ExtractContent(context.Background(), server.URL+"/q3", DefaultExtractConfig())
	require.NoError(t, err, "a page without links must not read as a bot challenge")

	assert.Equal(t, "Q3 Results", record.Title)
	assert.Equal(t, 1.0, record.Confidence)
}

func TestExtractContent_MinConfidence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Heading-only title and no date: a low-confidence page.
		fmt.Fprint(w, `<html><body><article>
<h1>Acme Statement</h1>
<p>Acme issued a statement regarding recent press coverage of its operations.</p>
<p>See the <a href="/newsroom">newsroom</a> for details.</p>
</article></body></html>`)
	}))
	defer server.Close()

	svc := testService()
	cfg := DefaultExtractConfig()
	cfg.MinConfidence = 0.9

	_, err := svc.ExtractContent(context.Background(), server.URL+"/statement", cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLowConfidence)
}

func TestExtractContent_StripBoilerplate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>
<head><script type="application/ld+json">{"@type":"NewsArticle","headline":"Acme Update","datePublished":"2024-06-10"}</script></head>
<body><article>
<p>Acme shipped a product update. Details at the <a href="/newsroom">newsroom</a>.</p>
<h2>Forward-Looking Statements</h2>
<p>This release contains forward-looking statements.</p>
</article></body></html>`)
	}))
	defer server.Close()

	svc := testService()

	kept, err := svc.ExtractContent(context.Background(), server.URL+"/a", DefaultExtractConfig())
	require.NoError(t, err)
	assert.Len(t, kept.Body, 3, "boilerplate is preserved by default")

	// A zero-valued config must behave like the defaults: flagged blocks
	// stay in the record.
	zero, err := svc.ExtractContent(context.Background(), server.URL+"/a", ExtractConfig{})
	require.NoError(t, err)
	assert.Len(t, zero.Body, 3, "zero-value config must retain boilerplate")

	cfg := DefaultExtractConfig()
	cfg.StripBoilerplate = true
	stripped, err := svc.ExtractContent(context.Background(), server.URL+"/a", cfg)
	require.NoError(t, err)
	assert.Len(t, stripped.Body, 1)
	assert.False(t, stripped.Body[0].IsBoilerplate)
}

func TestExtractAll(t *testing.T) {
	server := pressRoom()
	defer server.Close()

	urls := []string{
		server.URL + "/news/2024/acme-announces-milestone-1",
		server.URL + "/news/2024/acme-announces-milestone-2",
		server.URL + "/news/2024/acme-announces-milestone-3",
	}

	svc := New(WithRateLimit(1000, 100), WithConcurrency(2))
	got := 0
	for result := range svc.ExtractAll(context.Background(), urls, DefaultExtractConfig()) {
		require.NoError(t, result.Err, result.URL)
		assert.Equal(t, "Acme Milestone", result.Record.Title)
		got++
	}
	assert.Equal(t, len(urls), got)
}

func TestLabelTree_Deterministic(t *testing.T) {
	server := pressRoom()
	defer server.Close()

	svc := testService()
	url := server.URL + "/news/2024/acme-announces-milestone-1"

	a, err := svc.ExtractContent(context.Background(), url, DefaultExtractConfig())
	require.NoError(t, err)
	b, err := svc.ExtractContent(context.Background(), url, DefaultExtractConfig())
	require.NoError(t, err)

	assert.Equal(t, svc.LabelTree(a), svc.LabelTree(b),
		"identical markup must serialize to byte-identical trees")
}
