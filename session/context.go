package session

import (
	"slices"

	"github.com/poiesic/askit/core"
)

const (
	defaultHistoryCapacity = 20
	initialConfidence      = 0.5

	confidenceStep  = 0.1
	confidenceDecay = 0.8
)

// Context is the process-lifetime state of one query session: topic
// tracking, a bounded history ring, per-intent frequency counters, and a
// confidence score in [0, 1]. A Context is never shared across sessions.
type Context struct {
	id              string
	currentTopic    string
	lastTopic       string
	currentCategory string
	history         []core.HistoryEntry
	historyCapacity int
	confidence      float64
	intentFrequency map[core.Intent]int
}

// Option configures a Context.
type Option func(*Context) error

// WithHistoryCapacity sets the history ring capacity.
// Default is 20 entries; the oldest entry is evicted first.
func WithHistoryCapacity(capacity int) Option {
	return func(c *Context) error {
		if capacity < 1 {
			capacity = 1
		}
		c.historyCapacity = capacity
		return nil
	}
}

// New creates a session context. The id is client-generated; the engine
// supplies one when the caller does not.
func New(id string, opts ...Option) (*Context, error) {
	c := &Context{
		id:              id,
		historyCapacity: defaultHistoryCapacity,
		confidence:      initialConfidence,
		intentFrequency: make(map[core.Intent]int),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// ID returns the session identifier.
func (c *Context) ID() string {
	return c.id
}

// CurrentTopic returns the topic of the most recent matched query.
func (c *Context) CurrentTopic() string {
	return c.currentTopic
}

// LastTopic returns the topic before the current one.
func (c *Context) LastTopic() string {
	return c.lastTopic
}

// CurrentCategory returns the category of the most recent matched query.
func (c *Context) CurrentCategory() string {
	return c.currentCategory
}

// Confidence returns the session confidence score in [0, 1].
func (c *Context) Confidence() float64 {
	return c.confidence
}

// History returns a copy of the history ring, oldest first.
func (c *Context) History() []core.HistoryEntry {
	return slices.Clone(c.history)
}

// Recent returns up to n most recent history entries, newest first.
func (c *Context) Recent(n int) []core.HistoryEntry {
	if n > len(c.history) {
		n = len(c.history)
	}
	recent := make([]core.HistoryEntry, 0, n)
	for i := len(c.history) - 1; i >= len(c.history)-n; i-- {
		recent = append(recent, c.history[i])
	}
	return recent
}

// IntentCount returns how often an intent has been seen this session.
func (c *Context) IntentCount(intent core.Intent) int {
	return c.intentFrequency[intent]
}

// LeastUsedIntent returns the corpus-served intent seen least often this
// session, for the suggestion generator's exploration nudge.
func (c *Context) LeastUsedIntent() core.Intent {
	least := core.IntentDefinition
	for _, intent := range []core.Intent{core.IntentDefinition, core.IntentComparison, core.IntentList, core.IntentGeneral} {
		if c.intentFrequency[intent] < c.intentFrequency[least] {
			least = intent
		}
	}
	return least
}

// Record appends a processed query to the session. A matched query (one
// with ranked results) nudges confidence up and rotates the topic pair;
// a miss decays confidence and leaves the topics untouched.
func (c *Context) Record(entry core.HistoryEntry, category string, matched bool) {
	c.history = append(c.history, entry)
	if len(c.history) > c.historyCapacity {
		c.history = c.history[1:]
	}

	c.intentFrequency[entry.Intent]++

	if matched {
		if entry.Topic != "" && entry.Topic != c.currentTopic {
			c.lastTopic = c.currentTopic
			c.currentTopic = entry.Topic
		}
		if category != "" {
			c.currentCategory = category
		}
		c.confidence += confidenceStep
		if c.confidence > 1 {
			c.confidence = 1
		}
		return
	}

	c.confidence *= confidenceDecay
}
