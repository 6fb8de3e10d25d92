// Package extract turns fetched article markup into structured records:
// title, publication date, ordered body blocks with boilerplate flags, and
// verbatim tables. Every field is recovered through a fallback chain and the
// record's confidence degrades with each fallback level used.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/Ali-Choubdaran/corporate-news-extraction/pkg/models"
)

// Per-level confidence penalties. A fully structured page (schema.org title
// and date, <article> body) scores exactly 1.0.
const (
	titleLevelPenalty = 0.15
	dateLevelPenalty  = 0.15
	dateMissPenalty   = 0.35
	bodyLevelPenalty  = 0.10
)

// Extract parses one article page into an ArticleRecord. It fails only when
// every fallback in a required chain is exhausted: a missing title or an
// empty body is a hard error, a missing date just lowers confidence.
func Extract(htmlStr, pageURL string) (*models.ArticleRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, &Error{URL: pageURL, Reason: ErrMalformedMarkup}
	}

	title, titleLevel, titleFound := extractTitle(doc)
	if !titleFound {
		return nil, &Error{URL: pageURL, Reason: ErrNoTitleFound}
	}

	date, dateLevel, dateFound := extractDate(doc)

	raw, tables, bodyLevel, err := extractBody(doc, pageURL)
	if err != nil {
		return nil, err
	}
	flagBoilerplate(raw)

	blocks := make([]models.ContentBlock, 0, len(raw))
	for _, rb := range raw {
		blocks = append(blocks, rb.block)
	}

	meta := extractMeta(doc)

	record := &models.ArticleRecord{
		URL:        pageURL,
		Title:      title,
		Body:       blocks,
		Tables:     tables,
		Author:     meta.author,
		Keywords:   meta.keywords,
		Section:    meta.section,
		Confidence: confidence(titleLevel, dateLevel, dateFound, bodyLevel),
	}
	if dateFound {
		d := date
		record.PublishedAt = &d
	}

	log.Debug().
		Str("url", pageURL).
		Int("blocks", len(blocks)).
		Int("tables", len(tables)).
		Float64("confidence", record.Confidence).
		Msg("article extracted")

	return record, nil
}

func confidence(titleLevel, dateLevel int, dateFound bool, bodyLevel int) float64 {
	c := 1.0
	c -= float64(titleLevel) * titleLevelPenalty
	if dateFound {
		c -= float64(dateLevel) * dateLevelPenalty
	} else {
		c -= dateMissPenalty
	}
	c -= float64(bodyLevel) * bodyLevelPenalty
	if c < 0 {
		return 0
	}
	return c
}
