package extract

import "regexp"

// Strict section headers start a boilerplate run whenever they match,
// regardless of styling. Lenient ones are common phrases that only count
// when the block is a heading or rendered fully bold, so a body sentence
// that happens to start with "About" is left alone.
var strictSectionRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^forward[- ]looking statements?\b`),
	regexp.MustCompile(`(?i)^safe harbor\b`),
	regexp.MustCompile(`(?i)^cautionary (statement|note)`),
	regexp.MustCompile(`(?i)^(media|press|investor) (contact|relations|inquiries)`),
	regexp.MustCompile(`(?i)^contact(s| information| us)?:?$`),
}

var lenientSectionRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^about [A-Z0-9]`),
	regexp.MustCompile(`(?i)^disclaimer\b`),
	regexp.MustCompile(`(?i)^legal notice\b`),
	regexp.MustCompile(`(?i)^no offer or solicitation\b`),
}

// Basic patterns flag a single block without starting a run.
var basicBoilerplateRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^©|^\(c\) \d{4}|copyright \d{4}`),
	regexp.MustCompile(`(?i)all rights reserved`),
	regexp.MustCompile(`(?i)^source:`),
	regexp.MustCompile(`(?i)^###\s*$`),
	regexp.MustCompile(`(?i)^view (the )?(original|source) (content|release)`),
	regexp.MustCompile(`(?i)^(terms of (use|service)|privacy policy)\b`),
	regexp.MustCompile(`(?i)^(follow us|share this|subscribe to)\b`),
}

// flagBoilerplate marks blocks as boilerplate in place. Nothing is removed:
// a section header match flags the header and every following block until a
// heading of equal or higher rank ends the section, and basic patterns flag
// their own block only.
func flagBoilerplate(blocks []rawBlock) {
	inSection := false
	sectionLevel := 0

	for i := range blocks {
		b := &blocks[i]
		level := b.block.HeadingLevel
		isHeader := level > 0 || b.bold

		if inSection && level > 0 && level <= sectionLevel {
			inSection = false
		}

		if !inSection && sectionHeader(b.block.Text, isHeader) {
			inSection = true
			// Bold paragraphs rank like the deepest heading so any real
			// heading ends the run.
			sectionLevel = level
			if sectionLevel == 0 {
				sectionLevel = 6
			}
		}

		if inSection {
			b.block.IsBoilerplate = true
			continue
		}

		for _, re := range basicBoilerplateRes {
			if re.MatchString(b.block.Text) {
				b.block.IsBoilerplate = true
				break
			}
		}
	}
}

func sectionHeader(text string, emphasized bool) bool {
	for _, re := range strictSectionRes {
		if re.MatchString(text) {
			return true
		}
	}
	if !emphasized {
		return false
	}
	for _, re := range lenientSectionRes {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
