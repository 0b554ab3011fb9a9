package compose

import (
	"regexp"
	"strings"

	"github.com/poiesic/askit/core"
)

const noComparisonMessage = `I can't tell what to compare. Try "X vs Y" or "difference between X and Y".`

// Ordered: the vs/versus form is the most specific and wins when a query
// matches more than one phrasing.
var comparisonEntityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(.+?)\s+(?:vs\.?|versus)\s+(.+)$`),
	regexp.MustCompile(`(?i)\bcompar(?:e|ison\s+of)\s+(.+?)\s+(?:to|with|and)\s+(.+)$`),
	regexp.MustCompile(`(?i)\bdifference\s+between\s+(.+?)\s+and\s+(.+)$`),
}

// composeComparison picks one main document per compared entity, biased
// toward documents whose text or keywords literally contain the entity.
// Unparseable queries degrade to a fixed no-comparison message.
func (c *Composer) composeComparison(raw string, ranked []core.RankedResult) core.Response {
	left, right, ok := parseComparisonEntities(raw)
	if !ok {
		return core.Response{
			Topic:     ranked[0].Document.Topic,
			Category:  ranked[0].Document.Category,
			Main:      noComparisonMessage,
			Citations: map[int]core.ID{},
		}
	}

	first := pickForEntity(ranked, left, nil)
	second := pickForEntity(ranked, right, first)

	mains := make([]*core.Document, 0, 2)
	if first != nil {
		mains = append(mains, first)
	}
	if second != nil && second != first {
		mains = append(mains, second)
	}
	if len(mains) == 0 {
		mains = append(mains, ranked[0].Document)
	}

	a := c.newAnswer(raw)
	parts := make([]string, 0, len(mains))
	for _, d := range mains {
		parts = append(parts, a.cite(d))
	}

	supporting := a.supports(remaining(ranked, mains...))

	return core.Response{
		Topic:      mains[0].Topic,
		Category:   mains[0].Category,
		Main:       strings.Join(parts, " In contrast, "),
		Supporting: supporting,
		Citations:  a.citations,
	}
}

// parseComparisonEntities pulls the two compared entities out of the raw
// query using the same phrasings the comparison intent rule matches on.
func parseComparisonEntities(raw string) (left, right string, ok bool) {
	for _, p := range comparisonEntityPatterns {
		m := p.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		left = cleanEntity(m[1])
		right = cleanEntity(m[2])
		if left != "" && right != "" {
			return left, right, true
		}
	}
	return "", "", false
}

func cleanEntity(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Trim(s, "?!.,")
	for _, article := range []string{"a ", "an ", "the "} {
		s = strings.TrimPrefix(s, article)
	}
	return strings.TrimSpace(s)
}

// pickForEntity returns the best-ranked document containing the entity in
// its text or keywords, skipping an already-claimed document. Falls back to
// the best unclaimed document when nothing contains the entity.
func pickForEntity(ranked []core.RankedResult, entity string, claimed *core.Document) *core.Document {
	for _, r := range ranked {
		if r.Document == claimed {
			continue
		}
		if documentMentions(r.Document, entity) {
			return r.Document
		}
	}
	for _, r := range ranked {
		if r.Document != claimed {
			return r.Document
		}
	}
	return nil
}

func documentMentions(doc *core.Document, entity string) bool {
	if strings.Contains(strings.ToLower(doc.Text), entity) {
		return true
	}
	for _, kw := range doc.Keywords {
		if strings.Contains(strings.ToLower(kw), entity) {
			return true
		}
	}
	return false
}
