package session

import (
	"maps"
	"slices"

	"github.com/poiesic/askit/core"
)

// Snapshot is the serializable form of a session context, used by the
// persistence layer. Restoring a snapshot replaces the context state
// wholesale; an empty snapshot leaves the fresh defaults in place.
type Snapshot struct {
	CurrentTopic    string
	LastTopic       string
	CurrentCategory string
	Confidence      float64
	History         []core.HistoryEntry
	IntentFrequency map[core.Intent]int
}

// Snapshot captures the current session state.
func (c *Context) Snapshot() Snapshot {
	return Snapshot{
		CurrentTopic:    c.currentTopic,
		LastTopic:       c.lastTopic,
		CurrentCategory: c.currentCategory,
		Confidence:      c.confidence,
		History:         slices.Clone(c.history),
		IntentFrequency: maps.Clone(c.intentFrequency),
	}
}

// Restore replaces the context state with a previously captured snapshot.
func (c *Context) Restore(snap Snapshot) {
	c.currentTopic = snap.CurrentTopic
	c.lastTopic = snap.LastTopic
	c.currentCategory = snap.CurrentCategory

	c.confidence = snap.Confidence
	if c.confidence < 0 {
		c.confidence = 0
	}
	if c.confidence > 1 {
		c.confidence = 1
	}

	c.history = slices.Clone(snap.History)
	if len(c.history) > c.historyCapacity {
		c.history = c.history[len(c.history)-c.historyCapacity:]
	}

	c.intentFrequency = make(map[core.Intent]int)
	maps.Copy(c.intentFrequency, snap.IntentFrequency)
}
