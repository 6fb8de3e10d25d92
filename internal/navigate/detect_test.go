package navigate

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/Ali-Choubdaran/corporate-news-extraction/pkg/models"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestDetectMode_YearSelectWins(t *testing.T) {
	// Year selector takes priority even with numbered links present.
	doc := parseDoc(t, pageHTML(`
		<select name="year">
			<option value="2024">2024</option>
			<option value="2023">2023</option>
			<option value="2022">2022</option>
		</select>
		<a href="/newsroom?page=2">2</a>
		<a href="/newsroom?page=3">3</a>`))

	mode, cur := detectMode(doc, testBase, 500)
	if mode != models.ModeYearSelect {
		t.Fatalf("mode: got %s", mode)
	}

	key, url, ok := cur.Next()
	if !ok || key != "year:2024" {
		t.Errorf("first step: key=%q ok=%v", key, ok)
	}
	if !strings.Contains(url, "year=2024") {
		t.Errorf("year URL: got %s", url)
	}
}

func TestDetectYearSelect_RejectsMixedSelect(t *testing.T) {
	// Fewer than 70% year options means this is not a year filter.
	doc := parseDoc(t, pageHTML(`
		<select name="topic">
			<option value="2024">2024</option>
			<option value="products">Products</option>
			<option value="events">Events</option>
			<option value="press">Press</option>
		</select>`))

	if c := detectYearSelect(doc, testBase); c != nil {
		t.Error("mixed select should not qualify as a year selector")
	}
}

func TestDetectYearSelect_PrefersAllOption(t *testing.T) {
	doc := parseDoc(t, pageHTML(`
		<select name="year">
			<option value="all">All years</option>
			<option value="2024">2024</option>
			<option value="2023">2023</option>
			<option value="2022">2022</option>
		</select>`))

	cur := detectYearSelect(doc, testBase)
	if cur == nil {
		t.Fatal("expected a year cursor")
	}

	key, url, ok := cur.Next()
	if !ok || key != "year:all" {
		t.Fatalf("expected the all-years entry first, got key=%q", key)
	}
	if !strings.Contains(url, "year=all") {
		t.Errorf("all-years URL: got %s", url)
	}
	if _, _, ok := cur.Next(); ok {
		t.Error("all-years option should replace per-year walking")
	}
}

func TestDetectLoadMore(t *testing.T) {
	doc := parseDoc(t, pageHTML(`<button data-url="/api/news" class="more-btn">Show More</button>`))

	cur := detectLoadMore(doc, testBase)
	if cur == nil {
		t.Fatal("expected a load-more cursor")
	}

	key, url, ok := cur.Next()
	if !ok || key != "more:2" {
		t.Errorf("first step: key=%q ok=%v", key, ok)
	}
	if !strings.Contains(url, "/api/news") || !strings.Contains(url, "page=2") {
		t.Errorf("load-more URL: got %s", url)
	}
}

func TestDetectLoadMore_IgnoresLearnMore(t *testing.T) {
	doc := parseDoc(t, pageHTML(`<a href="/about" class="cta">Learn More</a>`))

	if c := detectLoadMore(doc, testBase); c != nil {
		t.Error("marketing Learn More link must not be treated as pagination")
	}
}

func TestDetectNumbered_RequiresTwoPages(t *testing.T) {
	doc := parseDoc(t, pageHTML(`<a href="/newsroom?page=1">1</a>`))

	if c := detectNumbered(doc, testBase, 500); c != nil {
		t.Error("a lone page-1 link is not pagination")
	}
}
