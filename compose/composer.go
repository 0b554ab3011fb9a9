package compose

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/askit/core"
	"github.com/poiesic/askit/query"
	"github.com/poiesic/askit/textnorm"
)

const (
	defaultWordBudget = 100
	supportBaseWords  = 50
)

// Option is a function that configures a Composer.
type Option func(*Composer) error

// WithWordBudget overrides the overall response word budget.
func WithWordBudget(budget int) Option {
	return func(c *Composer) error {
		if budget <= 0 {
			return fmt.Errorf("word budget must be positive, got %d", budget)
		}
		c.wordBudget = budget
		return nil
	}
}

// WithRelatedTerms overrides the related-terms table used for definition
// fallbacks.
func WithRelatedTerms(related map[string][]string) Option {
	return func(c *Composer) error {
		c.related = related
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// Composer renders ranked documents into a Response for one intent.
type Composer struct {
	normalizer *textnorm.Normalizer
	related    map[string][]string
	wordBudget int
	logger     *slog.Logger
}

// NewComposer creates a Composer with the default word budget and
// related-terms table.
func NewComposer(normalizer *textnorm.Normalizer, opts ...Option) (*Composer, error) {
	if normalizer == nil {
		return nil, ErrNormalizerRequired
	}

	c := &Composer{
		normalizer: normalizer,
		related:    query.DefaultRelatedTerms(),
		wordBudget: defaultWordBudget,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Compose dispatches to the strategy for the detected intent. An empty
// ranked list short-circuits to the not-found response for every intent.
func (c *Composer) Compose(raw string, intent core.Intent, ranked []core.RankedResult) core.Response {
	if len(ranked) == 0 {
		return c.notFound(raw)
	}

	switch intent {
	case core.IntentDefinition:
		return c.composeDefinition(raw, ranked)
	case core.IntentComparison:
		return c.composeComparison(raw, ranked)
	case core.IntentList:
		return c.composeList(raw, ranked)
	default:
		return c.composeGeneral(raw, ranked)
	}
}

func (c *Composer) notFound(raw string) core.Response {
	return core.Response{
		Main: fmt.Sprintf("I couldn't find anything about %q. Try rephrasing, or ask about another topic.",
			strings.TrimSpace(raw)),
		Citations: map[int]core.ID{},
	}
}

// answer accumulates composed text, the running word count, and the
// citation map while a strategy assembles its response.
type answer struct {
	composer  *Composer
	raw       string
	citations map[int]core.ID
	nextIndex int
	words     int
}

func (c *Composer) newAnswer(raw string) *answer {
	return &answer{
		composer:  c,
		raw:       raw,
		citations: make(map[int]core.ID),
		nextIndex: 1,
	}
}

// cite highlights a document's full text, assigns it the next citation
// index, and counts its words against the budget.
func (a *answer) cite(doc *core.Document) string {
	text := a.composer.Highlight(doc.Text, a.raw)
	idx := a.nextIndex
	a.nextIndex++
	a.citations[idx] = doc.Id
	a.words += wordCount(text)
	return fmt.Sprintf("%s [%d]", text, idx)
}

// supports appends truncated snippets from the remaining ranked documents
// while the running word count stays under the budget. Each snippet shrinks
// as the answer grows.
func (a *answer) supports(rest []core.RankedResult) []string {
	var out []string
	for _, r := range rest {
		if a.words >= a.composer.wordBudget {
			break
		}
		limit := supportBaseWords - a.words/2
		if limit < 1 {
			limit = 1
		}
		text := a.composer.Highlight(truncateWords(r.Document.Text, limit), a.raw)
		idx := a.nextIndex
		a.nextIndex++
		a.citations[idx] = r.Document.Id
		a.words += wordCount(text)
		out = append(out, fmt.Sprintf("%s [%d]", text, idx))
	}
	return out
}

// remaining filters ranked down to documents not already used as mains,
// preserving rank order.
func remaining(ranked []core.RankedResult, used ...*core.Document) []core.RankedResult {
	usedIDs := make(map[core.ID]struct{}, len(used))
	for _, d := range used {
		if d != nil {
			usedIDs[d.Id] = struct{}{}
		}
	}

	var rest []core.RankedResult
	for _, r := range ranked {
		if _, ok := usedIDs[r.Document.Id]; ok {
			continue
		}
		rest = append(rest, r)
	}
	return rest
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func truncateWords(s string, limit int) string {
	fields := strings.Fields(s)
	if len(fields) <= limit {
		return s
	}
	return strings.Join(fields[:limit], " ") + "..."
}
