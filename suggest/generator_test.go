package suggest

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/askit/core"
	"github.com/poiesic/askit/session"
)

func newGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := NewGenerator(WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	return g
}

func newSession(t *testing.T) *session.Context {
	t.Helper()
	sess, err := session.New("test-session")
	require.NoError(t, err)
	return sess
}

func rankedDoc(id core.ID, text string) core.RankedResult {
	return core.RankedResult{
		Document: &core.Document{Id: id, Text: text},
		Score:    1.0 / float64(id+1),
	}
}

func TestGenerate_CapAndLength(t *testing.T) {
	g := newGenerator(t)
	sess := newSession(t)

	in := Input{
		Tokens:   []string{"quantum", "entanglement", "superposition", "decoherence"},
		Intent:   core.IntentGeneral,
		Concepts: []string{"quantum", "computing", "physics"},
		Ranked: []core.RankedResult{
			rankedDoc(0, "Quantum computers use qubits."),
			rankedDoc(1, "Entanglement links particle states."),
			rankedDoc(2, "Superposition holds many states at once."),
			rankedDoc(3, "Decoherence destroys quantum behavior."),
		},
		Topic: "quantum",
	}

	chips := g.Generate(in, sess)

	assert.LessOrEqual(t, len(chips), maxSuggestions)
	assert.NotEmpty(t, chips)
	for _, chip := range chips {
		assert.LessOrEqual(t, len([]rune(chip)), maxChipLength, "chip %q too long", chip)
	}
}

func TestGenerate_Dedupe(t *testing.T) {
	g := newGenerator(t)
	sess := newSession(t)

	in := Input{
		Tokens: []string{"quantum"},
		Intent: core.IntentGeneral,
		Ranked: []core.RankedResult{
			rankedDoc(0, "Quantum computers use qubits."),
			rankedDoc(1, "Entanglement links particle states."),
			rankedDoc(2, "Entanglement links particle states."),
		},
	}

	chips := g.Generate(in, sess)

	seen := make(map[string]struct{})
	for _, chip := range chips {
		key := strings.ToLower(chip)
		_, dup := seen[key]
		assert.False(t, dup, "duplicate chip %q", chip)
		seen[key] = struct{}{}
	}
	assert.Contains(t, chips, "Entanglement links particle states?")
}

func TestGenerate_CrossTopicComparison(t *testing.T) {
	g := newGenerator(t)
	sess := newSession(t)

	now := time.Now()
	sess.Record(core.HistoryEntry{Query: "what is quantum", Topic: "quantum", Intent: core.IntentDefinition, Timestamp: now}, "science", true)
	sess.Record(core.HistoryEntry{Query: "tell me about biology", Topic: "biology", Intent: core.IntentGeneral, Timestamp: now}, "science", true)

	in := Input{
		Tokens: []string{"biologi"},
		Intent: core.IntentGeneral,
		Topic:  "biology",
	}

	chips := g.Generate(in, sess)

	assert.Contains(t, chips, "Compare biology to quantum")
}

func TestGenerate_NoComparisonWithoutTopicChange(t *testing.T) {
	g := newGenerator(t)
	sess := newSession(t)

	chips := g.Generate(Input{Tokens: []string{"quantum"}, Intent: core.IntentGeneral, Topic: "quantum"}, sess)

	for _, chip := range chips {
		assert.NotContains(t, chip, "Compare")
	}
}

func TestGenerate_IntentNudge(t *testing.T) {
	g := newGenerator(t)
	sess := newSession(t)

	now := time.Now()
	for _, intent := range []core.Intent{core.IntentDefinition, core.IntentComparison, core.IntentGeneral} {
		sess.Record(core.HistoryEntry{Query: "q", Intent: intent, Timestamp: now}, "", true)
	}

	chips := g.Generate(Input{Tokens: []string{"quantum"}, Intent: core.IntentGeneral}, sess)

	assert.Contains(t, chips, "Ask for a list of examples")
}

func TestGenerate_OverRepresentedIntentAddsPrompts(t *testing.T) {
	g := newGenerator(t)
	tokens := []string{"alpha", "beta", "gamma", "delta"}

	fresh := newSession(t)
	base := g.Generate(Input{Tokens: tokens, Intent: core.IntentGeneral}, fresh)
	assert.NotContains(t, base, "How does delta work?")

	worn := newSession(t)
	now := time.Now()
	for i := 0; i < 3; i++ {
		worn.Record(core.HistoryEntry{Query: "q", Intent: core.IntentGeneral, Timestamp: now}, "", true)
	}
	expanded := g.Generate(Input{Tokens: tokens, Intent: core.IntentGeneral}, worn)
	assert.Contains(t, expanded, "How does delta work?")
}

func TestGenerate_FutureOfTopic(t *testing.T) {
	g := newGenerator(t)
	sess := newSession(t)

	chips := g.Generate(Input{Tokens: []string{"quantum"}, Intent: core.IntentGeneral, Topic: "quantum"}, sess)

	assert.Contains(t, chips, "What is the future of quantum?")
}
