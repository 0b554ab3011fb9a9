package compose

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/poiesic/askit/core"
)

var definedTermPattern = regexp.MustCompile(
	`(?i)^\s*(?:what\s+(?:is|are)\s+(?:a\s+|an\s+|the\s+)?|define\s+|meaning\s+of\s+|definition\s+of\s+)(.+?)\s*\??\s*$`)

// composeDefinition answers with the single best document that literally
// contains the defined term. When no ranked document mentions the term the
// main text degrades to a templated sentence built from the related-terms
// table, keeping the supports from the ranked list.
func (c *Composer) composeDefinition(raw string, ranked []core.RankedResult) core.Response {
	term := definedTerm(raw)

	main := ranked[0]
	found := term == ""
	if term != "" {
		for _, r := range ranked {
			if strings.Contains(strings.ToLower(r.Document.Text), term) {
				main = r
				found = true
				break
			}
		}
	}

	a := c.newAnswer(raw)
	var mainText string
	if found {
		mainText = a.cite(main.Document)
	} else {
		mainText = c.definitionFallback(term)
	}

	supporting := a.supports(remaining(ranked, main.Document))

	return core.Response{
		Topic:      main.Document.Topic,
		Category:   main.Document.Category,
		Main:       mainText,
		Supporting: supporting,
		Citations:  a.citations,
	}
}

// definedTerm extracts the term being defined from the raw query. It
// returns "" when the query doesn't match the definition phrasing.
func definedTerm(raw string) string {
	m := definedTermPattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(m[1]))
}

func (c *Composer) definitionFallback(term string) string {
	for _, token := range c.normalizer.Normalize(term) {
		if rel := c.related[token]; len(rel) > 0 {
			return fmt.Sprintf("I don't have a direct definition of %q, but it is closely related to %s.",
				term, strings.Join(rel, ", "))
		}
	}
	return fmt.Sprintf("I don't have a definition of %q in this corpus.", term)
}
