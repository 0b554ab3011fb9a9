package suggest

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/poiesic/askit/core"
	"github.com/poiesic/askit/session"
)

const (
	maxSuggestions  = 8
	maxChipLength   = 50
	excerptWords    = 5
	excerptDocs     = 3
	baseWorkPrompts = 2
)

// Option is a function that configures a Generator.
type Option func(*Generator) error

// WithRand sets the random source used to shuffle the candidate pool.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) error {
		if rng == nil {
			return fmt.Errorf("rand source must not be nil")
		}
		g.rng = rng
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) error {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger
		return nil
	}
}

// Generator produces follow-up query chips.
type Generator struct {
	rng    *rand.Rand
	logger *slog.Logger
}

// NewGenerator creates a Generator seeded from the wall clock.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Input carries everything one query contributes to the candidate pool.
type Input struct {
	Tokens   []string
	Intent   core.Intent
	Concepts []string
	Ranked   []core.RankedResult
	Topic    string
}

// Generate builds the candidate pool, deduplicates it, drops chips over
// the length bound, shuffles, and returns at most maxSuggestions chips.
func (g *Generator) Generate(in Input, sess *session.Context) []string {
	var pool []string

	pool = append(pool, excerptChips(in.Ranked)...)
	pool = append(pool, g.workPrompts(in, sess)...)

	if in.Topic != "" {
		pool = append(pool, fmt.Sprintf("What is the future of %s?", in.Topic))
	}
	if last := sess.LastTopic(); last != "" && in.Topic != "" && !strings.EqualFold(last, in.Topic) {
		pool = append(pool, fmt.Sprintf("Compare %s to %s", in.Topic, last))
	}
	for _, concept := range in.Concepts {
		pool = append(pool, fmt.Sprintf("Tell me more about %s", concept))
	}
	pool = append(pool, intentNudge(sess.LeastUsedIntent()))

	chips := dedupe(pool)
	g.rng.Shuffle(len(chips), func(i, j int) {
		chips[i], chips[j] = chips[j], chips[i]
	})

	if len(chips) > maxSuggestions {
		chips = chips[:maxSuggestions]
	}
	return chips
}

// excerptChips turns the documents just below the top result into short
// follow-up prompts.
func excerptChips(ranked []core.RankedResult) []string {
	var chips []string
	for i := 1; i < len(ranked) && i <= excerptDocs; i++ {
		fields := strings.Fields(ranked[i].Document.Text)
		if len(fields) > excerptWords {
			fields = fields[:excerptWords]
		}
		excerpt := strings.TrimRight(strings.Join(fields, " "), ".,;:!?")
		if excerpt == "" {
			continue
		}
		chips = append(chips, excerpt+"?")
	}
	return chips
}

// workPrompts emits "How does X work?" chips over the query tokens. When
// the current intent dominates the session history the whole token list is
// used, steering the user toward fresh phrasings of a worn topic.
func (g *Generator) workPrompts(in Input, sess *session.Context) []string {
	limit := baseWorkPrompts
	if historyLen := len(sess.History()); historyLen > 0 && sess.IntentCount(in.Intent)*2 > historyLen {
		limit = len(in.Tokens)
	}

	var chips []string
	for i, token := range in.Tokens {
		if i >= limit {
			break
		}
		chips = append(chips, fmt.Sprintf("How does %s work?", token))
	}
	return chips
}

func intentNudge(intent core.Intent) string {
	switch intent {
	case core.IntentDefinition:
		return "Ask what something is"
	case core.IntentComparison:
		return "Try comparing two topics"
	case core.IntentList:
		return "Ask for a list of examples"
	default:
		return "Ask me anything"
	}
}

// dedupe removes case-insensitive duplicates and over-length chips,
// preserving first occurrence order.
func dedupe(pool []string) []string {
	seen := make(map[string]struct{}, len(pool))
	var out []string
	for _, chip := range pool {
		if len([]rune(chip)) > maxChipLength {
			continue
		}
		key := strings.ToLower(chip)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, chip)
	}
	return out
}
