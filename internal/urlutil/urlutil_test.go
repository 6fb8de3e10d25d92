package urlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("https://example.com/news"))
	assert.NoError(t, ValidateURL("http://example.com"))
	assert.Error(t, ValidateURL("ftp://example.com"))
	assert.Error(t, ValidateURL("not a url"))
	assert.Error(t, ValidateURL("https://"))
}

func TestNormalize_StripsFragment(t *testing.T) {
	assert.Equal(t,
		"https://example.com/news",
		Normalize("https://example.com/news#section-2"))
}

func TestNormalize_SortsQueryParams(t *testing.T) {
	a := Normalize("https://example.com/news?page=2&year=2024")
	b := Normalize("https://example.com/news?year=2024&page=2")
	assert.Equal(t, a, b)
}

func TestNormalize_TrailingSlash(t *testing.T) {
	assert.Equal(t,
		Normalize("https://example.com/news"),
		Normalize("https://example.com/news/"))
}

func TestNormalize_LowercasesSchemeAndHost(t *testing.T) {
	assert.Equal(t,
		Normalize("https://example.com/News"),
		Normalize("HTTPS://EXAMPLE.COM/News"))
}

func TestResolve(t *testing.T) {
	assert.Equal(t,
		"https://example.com/news/article-1",
		Resolve("https://example.com/news/", "article-1"))
	assert.Equal(t,
		"https://example.com/press/2024",
		Resolve("https://example.com/news/", "/press/2024"))
	assert.Equal(t,
		"https://other.com/x",
		Resolve("https://example.com/", "https://other.com/x"))
}

func TestSameHost_IgnoresWWW(t *testing.T) {
	assert.True(t, SameHost("https://www.example.com/a", "https://example.com/b"))
	assert.False(t, SameHost("https://example.com/a", "https://other.com/b"))
}

func TestWithParam(t *testing.T) {
	got := WithParam("https://example.com/news", "year", "2023")
	assert.Contains(t, got, "year=2023")

	// Existing value is replaced, not appended.
	got = WithParam("https://example.com/news?year=2024", "year", "2023")
	assert.Contains(t, got, "year=2023")
	assert.NotContains(t, got, "2024")
}
