package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type pageMeta struct {
	author   string
	keywords []string
	section  string
}

func extractMeta(doc *goquery.Document) pageMeta {
	var m pageMeta

	m.author = firstMetaContent(doc,
		`meta[name="author"]`,
		`meta[property="article:author"]`,
	)
	if m.author == "" {
		m.author = schemaAuthor(doc)
	}

	if kw := firstMetaContent(doc, `meta[name="keywords"]`, `meta[property="article:tag"]`); kw != "" {
		for _, part := range strings.Split(kw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				m.keywords = append(m.keywords, part)
			}
		}
	}

	m.section = firstMetaContent(doc,
		`meta[property="article:section"]`,
		`meta[name="section"]`,
	)

	return m
}

func firstMetaContent(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if content = strings.TrimSpace(content); content != "" {
				return content
			}
		}
	}
	return ""
}

func schemaAuthor(doc *goquery.Document) string {
	var result string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		var data interface{}
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			return true
		}
		if name := findAuthorName(data); name != "" {
			result = name
			return false
		}
		return true
	})
	return result
}

func findAuthorName(data interface{}) string {
	switch v := data.(type) {
	case map[string]interface{}:
		if author, ok := v["author"]; ok {
			switch a := author.(type) {
			case string:
				return strings.TrimSpace(a)
			case map[string]interface{}:
				if name, ok := a["name"].(string); ok {
					return strings.TrimSpace(name)
				}
			case []interface{}:
				if name := findAuthorName(map[string]interface{}{"author": first(a)}); name != "" {
					return name
				}
			}
		}
		if graph, ok := v["@graph"]; ok {
			return findAuthorName(graph)
		}
	case []interface{}:
		for _, item := range v {
			if name := findAuthorName(item); name != "" {
				return name
			}
		}
	}
	return ""
}

func first(items []interface{}) interface{} {
	if len(items) == 0 {
		return nil
	}
	return items[0]
}
