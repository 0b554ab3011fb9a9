package compose

import (
	"regexp"
	"strings"
	"unicode"
)

// Highlight brackets case-insensitive whole-word matches of the query
// words inside text. Words that normalize away entirely (stop words,
// punctuation) are never highlighted.
func (c *Composer) Highlight(text, rawQuery string) string {
	words := c.highlightWords(rawQuery)
	if len(words) == 0 {
		return text
	}

	pattern := regexp.MustCompile(`(?i)\b(` + strings.Join(words, "|") + `)\b`)
	return pattern.ReplaceAllString(text, "[$1]")
}

// highlightWords picks the content words of the raw query: pieces that
// survive normalization and are long enough to be worth marking.
func (c *Composer) highlightWords(rawQuery string) []string {
	seen := make(map[string]struct{})
	var words []string
	for _, piece := range strings.FieldsFunc(rawQuery, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len(piece) < 3 {
			continue
		}
		if len(c.normalizer.Normalize(piece)) == 0 {
			continue
		}
		lower := strings.ToLower(piece)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		words = append(words, regexp.QuoteMeta(piece))
	}
	return words
}
