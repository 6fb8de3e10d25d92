package fetch

import "strings"

// challengeFingerprints are lowercase substrings that identify anti-bot
// interstitial pages (Cloudflare and similar).
var challengeFingerprints = []string{
	"challenge-form",
	"cf-browser-verification",
	"cf-challenge",
	"just a moment",
	"attention required",
	"checking your browser",
	"enable javascript and cookies to continue",
}

// looksLikeChallenge reports whether a response body carries a bot-challenge
// fingerprint, or is an HTML shell with no anchors at all (the expected DOM
// never arrived).
func looksLikeChallenge(status int, body string) bool {
	if classifyStatus(status) == KindBotChallenge {
		return true
	}

	lower := strings.ToLower(body)
	for _, fp := range challengeFingerprints {
		if strings.Contains(lower, fp) {
			return true
		}
	}

	// A body with no anchors and no content elements is a shell: the real
	// DOM is assembled client-side or was withheld. Anchorless pages that
	// still carry headings, paragraphs, or structured data are legitimate
	// articles and must pass through.
	if strings.Contains(lower, "<body") &&
		!strings.Contains(lower, "<a ") && !strings.Contains(lower, "<a\n") &&
		!hasContentShape(lower) {
		return true
	}

	return false
}

func hasContentShape(lower string) bool {
	for _, marker := range []string{
		"<article", "<h1", "<h2", "<p>", "<p ", "application/ld+json",
	} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
