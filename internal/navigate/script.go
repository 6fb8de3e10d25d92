package navigate

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dop251/goja"
	"github.com/rs/zerolog/log"
)

// probeScripts executes the page's inline scripts in a stub DOM and harvests
// URL-shaped strings from the globals they leave behind. Listing pages that
// render their link list client-side usually embed the article URLs in a
// script variable; this recovers them without a full browser round trip.
func probeScripts(doc *goquery.Document, pageURL string) []string {
	vm := goja.New()

	// Minimal browser shims, just enough for data-assignment scripts to run.
	vm.Set("window", vm.GlobalObject())
	vm.Set("self", vm.GlobalObject())
	vm.Set("document", map[string]interface{}{
		"location": map[string]interface{}{"href": pageURL},
	})
	vm.Set("location", map[string]interface{}{"href": pageURL})
	vm.Set("console", map[string]interface{}{
		"log":   func(call goja.FunctionCall) goja.Value { return nil },
		"error": func(call goja.FunctionCall) goja.Value { return nil },
	})

	ran := 0
	doc.Find("script").Each(func(i int, sel *goquery.Selection) {
		if _, external := sel.Attr("src"); external {
			return
		}
		if t, ok := sel.Attr("type"); ok && t != "" && !strings.Contains(t, "javascript") {
			return
		}
		script := sel.Text()
		if script == "" {
			return
		}
		// Most inline scripts fail against the stub DOM; that is expected.
		if _, err := vm.RunString(script); err == nil {
			ran++
		}
	})

	var urls []string
	for _, key := range vm.GlobalObject().Keys() {
		if isStandardGlobal(key) {
			continue
		}
		val := vm.Get(key)
		if val == nil {
			continue
		}
		urls = append(urls, harvestURLs(val.Export())...)
	}

	if len(urls) > 0 {
		log.Debug().
			Int("scripts_ran", ran).
			Int("urls", len(urls)).
			Msg("Inline-script probe recovered embedded URLs")
	}

	return urls
}

var urlShapeRe = regexp.MustCompile(`^(https?://|/)[^\s"'<>]+$`)

// harvestURLs walks an exported JS value collecting strings that look like
// article URLs: absolute URLs or multi-segment site paths.
func harvestURLs(v interface{}) []string {
	var out []string
	switch val := v.(type) {
	case string:
		if urlShapeRe.MatchString(val) && strings.Count(val, "/") >= 2 {
			out = append(out, val)
		}
	case []interface{}:
		for _, item := range val {
			out = append(out, harvestURLs(item)...)
		}
	case map[string]interface{}:
		for _, item := range val {
			out = append(out, harvestURLs(item)...)
		}
	}
	return out
}

func isStandardGlobal(key string) bool {
	standards := map[string]bool{
		"window": true, "self": true, "document": true, "location": true, "console": true,
		"Object": true, "Array": true, "String": true, "Number": true, "Boolean": true,
		"Date": true, "Math": true, "JSON": true, "RegExp": true, "Error": true,
		"Function": true, "parseInt": true, "parseFloat": true, "isNaN": true,
		"isFinite": true, "encodeURI": true, "decodeURI": true, "encodeURIComponent": true,
		"decodeURIComponent": true, "undefined": true, "NaN": true, "Infinity": true,
	}
	return standards[key]
}
