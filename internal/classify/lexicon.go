package classify

import "strings"

// boilerplateTerms is the seed lexicon of words and phrases that mark
// navigation/utility links. Matches only ever subtract from a score.
var boilerplateTerms = []string{
	"privacy policy", "privacy", "legal", "terms", "conditions",
	"about us", "about", "contact us", "contact", "careers",
	"subscribe", "rss", "sign up", "sign in", "login", "log in", "register",
	"next page", "previous", "next", "prev", "back to top",
	"cookies", "cookie policy", "sitemap", "search", "faq", "help",
	"support", "investors", "investor relations", "media", "press kit",
	"locations", "settings", "account", "directory", "community", "company",
	"read more", "learn more", "view all", "see all", "home",
	"share this", "follow us", "events", "resources", "blog",
}

// socialHosts identifies links that point at social networks rather than
// articles.
var socialHosts = []string{
	"facebook.com", "twitter.com", "x.com", "instagram.com", "linkedin.com",
	"youtube.com", "tiktok.com", "pinterest.com", "reddit.com", "whatsapp.com",
}

// nonHTMLExtensions are resource types an article link never has.
var nonHTMLExtensions = []string{
	".pdf", ".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".ico",
	".zip", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
	".mp3", ".mp4", ".avi", ".mov", ".css", ".js", ".xml", ".rss",
}

// pressVerbs is the press-release verb vocabulary; URL slugs for articles
// very often contain one ("acme-announces-record-revenue").
var pressVerbs = []string{
	"announce", "start", "end", "finish", "open", "close", "report",
	"initiate", "terminate", "invest", "join", "collaborate", "hire",
	"agree", "surpass", "applaud", "raise", "deliver", "unveil", "plan",
	"showcase", "introduce", "present", "grant", "sign", "complete",
	"receive", "give", "select", "partner", "signal", "continue", "stop",
	"win", "launch", "set", "visit", "achieve", "dismiss", "take",
	"accelerate", "reach", "indicate", "enter", "exit", "produce",
	"create", "make", "move", "host", "locate", "expand", "appoint",
	"name", "secure", "acquire",
}

// irregularPast maps irregular press verbs to their past tense.
var irregularPast = map[string]string{
	"take":  "took",
	"give":  "gave",
	"make":  "made",
	"begin": "began",
	"win":   "won",
	"set":   "set",
}

// verbForms returns the base, -s, and past-tense forms of a verb.
func verbForms(verb string) []string {
	forms := []string{verb}

	// s-form
	if strings.HasSuffix(verb, "y") {
		forms = append(forms, verb[:len(verb)-1]+"ies")
	} else {
		forms = append(forms, verb+"s")
	}

	// past tense
	if past, ok := irregularPast[verb]; ok {
		forms = append(forms, past)
	} else if strings.HasSuffix(verb, "e") {
		forms = append(forms, verb+"d")
	} else if strings.HasSuffix(verb, "y") {
		forms = append(forms, verb[:len(verb)-1]+"ied")
	} else {
		forms = append(forms, verb+"ed")
	}

	return forms
}

// verbFormSet is all verb forms, precomputed for slug lookups.
var verbFormSet = func() map[string]bool {
	set := make(map[string]bool)
	for _, v := range pressVerbs {
		for _, form := range verbForms(v) {
			set[form] = true
		}
	}
	return set
}()

// isSocialHost reports whether host belongs to a social network.
func isSocialHost(host string) bool {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	for _, s := range socialHosts {
		if host == s || strings.HasSuffix(host, "."+s) {
			return true
		}
	}
	return false
}
