// Package classify scores listing-page anchors to separate individual
// article links from navigation and boilerplate. Scoring is a pure weighted
// feature sum so individual heuristics stay independently testable.
package classify

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Ali-Choubdaran/corporate-news-extraction/internal/urlutil"
	"github.com/Ali-Choubdaran/corporate-news-extraction/pkg/models"
)

// Weights are the tunable feature weights and label thresholds. The seed
// values come from hand-tuning against a corpus of corporate press rooms;
// callers adjust them without touching control flow.
type Weights struct {
	DatePattern  float64 // href path contains a date or numeric ID
	HeadlineText float64 // anchor text shaped like a headline
	SlugVerb     float64 // URL slug contains a press-release verb
	CoOccurrence float64 // anchor sits in a list structure with other high scorers

	BoilerplateHit float64 // per boilerplate-lexicon match (subtracted)
	OffDomain      float64 // href leaves the site (subtracted)
	NonHTML        float64 // href is a pdf/image/other non-article resource (subtracted)

	ArticleThreshold    float64 // score >= this → ARTICLE
	NavigationThreshold float64 // score <= this → NAVIGATION/BOILERPLATE

	// CoOccurrenceMinPeers is the number of provisionally-high anchors an
	// ancestry group needs before its members get the co-occurrence boost.
	CoOccurrenceMinPeers int
}

// DefaultWeights returns the seed weight set.
func DefaultWeights() Weights {
	return Weights{
		DatePattern:          2.0,
		HeadlineText:         1.5,
		SlugVerb:             1.0,
		CoOccurrence:         1.5,
		BoilerplateHit:       2.0,
		OffDomain:            2.5,
		NonHTML:              3.0,
		ArticleThreshold:     2.0,
		NavigationThreshold:  -0.5,
		CoOccurrenceMinPeers: 3,
	}
}

// PageContext carries per-page facts the scorer needs.
type PageContext struct {
	BaseURL string
}

// Classifier labels link candidates. It holds no mutable state; Classify is
// a pure function of its input.
type Classifier struct {
	weights Weights
}

// New creates a Classifier with the given weights.
func New(w Weights) *Classifier {
	return &Classifier{weights: w}
}

var (
	datePathRe  = regexp.MustCompile(`(\d{4}[-/]\d{1,2}([-/]\d{1,2})?)|(\d{4,})`)
	sentenceRe  = regexp.MustCompile(`\b[A-Z][a-z]+`)
	wordSplitRe = regexp.MustCompile(`[\s\-_]+`)
)

// Classify scores and labels every candidate. UNKNOWN candidates are logged
// and kept in the returned slice; callers decide how to consume labels, and
// must never promote UNKNOWN to ARTICLE.
func (c *Classifier) Classify(candidates []models.LinkCandidate, page PageContext) []models.LinkCandidate {
	w := c.weights

	// First pass: per-anchor features.
	for i := range candidates {
		candidates[i].Score = c.baseScore(&candidates[i], page)
	}

	// Second pass: co-occurrence. Articles cluster inside repeating sibling
	// structures; navigation does not. Count provisionally-high anchors per
	// ancestry group and boost every member of qualifying groups.
	highPerGroup := make(map[string]int)
	for i := range candidates {
		if candidates[i].Score >= w.ArticleThreshold-w.CoOccurrence {
			highPerGroup[candidates[i].Ancestry]++
		}
	}
	for i := range candidates {
		if highPerGroup[candidates[i].Ancestry] >= w.CoOccurrenceMinPeers {
			candidates[i].Score += w.CoOccurrence
		}
	}

	// Label by thresholding.
	for i := range candidates {
		cand := &candidates[i]
		switch {
		case cand.Score >= w.ArticleThreshold:
			cand.Label = models.LabelArticle
		case cand.Score <= w.NavigationThreshold:
			if countBoilerplateHits(cand.AnchorText) > 0 {
				cand.Label = models.LabelBoilerplate
			} else {
				cand.Label = models.LabelNavigation
			}
		default:
			cand.Label = models.LabelUnknown
			log.Debug().
				Str("href", cand.Href).
				Str("text", truncate(cand.AnchorText, 60)).
				Float64("score", cand.Score).
				Msg("Anchor left unlabeled")
		}
	}

	return candidates
}

func (c *Classifier) baseScore(cand *models.LinkCandidate, page PageContext) float64 {
	w := c.weights
	score := 0.0

	path := strings.ToLower(pathOf(cand.Href))

	if datePathRe.MatchString(path) {
		score += w.DatePattern
	}

	if isHeadlineText(cand.AnchorText) {
		score += w.HeadlineText
	}

	if slugHasVerb(path) {
		score += w.SlugVerb
	}

	// Boilerplate lexicon matches only ever subtract, so adding matches can
	// never raise a score.
	score -= w.BoilerplateHit * float64(countBoilerplateHits(cand.AnchorText))

	if page.BaseURL != "" && !urlutil.SameHost(page.BaseURL, cand.Href) {
		score -= w.OffDomain
	}

	if hasNonHTMLExtension(path) {
		score -= w.NonHTML
	}

	return score
}

// isHeadlineText reports whether anchor text reads like a headline:
// 4-25 words with at least two sentence-case words.
func isHeadlineText(text string) bool {
	words := strings.Fields(text)
	if len(words) < 4 || len(words) > 25 {
		return false
	}
	return len(sentenceRe.FindAllString(text, 2)) >= 2
}

// slugHasVerb checks the last meaningful path segment for a press verb.
func slugHasVerb(path string) bool {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) == 0 {
		return false
	}

	slug := segments[len(segments)-1]
	if dot := strings.LastIndex(slug, "."); dot > 0 {
		// slug is a file name; the meaningful segment is one up
		if len(segments) < 2 {
			return false
		}
		slug = segments[len(segments)-2]
	}

	words := wordSplitRe.Split(slug, -1)
	if len(words) <= 1 {
		return false
	}
	for _, word := range words {
		if verbFormSet[strings.ToLower(word)] {
			return true
		}
	}
	return false
}

func countBoilerplateHits(text string) int {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return 0
	}
	hits := 0
	for _, term := range boilerplateTerms {
		if strings.Contains(term, " ") {
			if strings.Contains(lower, term) {
				hits++
			}
			continue
		}
		for _, word := range wordSplitRe.Split(lower, -1) {
			if word == term {
				hits++
				break
			}
		}
	}
	return hits
}

func hasNonHTMLExtension(path string) bool {
	for _, ext := range nonHTMLExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func pathOf(urlStr string) string {
	s := urlStr
	if idx := strings.Index(s, "://"); idx >= 0 {
		s = s[idx+3:]
	}
	if idx := strings.Index(s, "/"); idx >= 0 {
		return s[idx:]
	}
	return "/"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
