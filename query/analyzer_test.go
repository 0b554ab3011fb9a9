package query

import (
	"regexp"
	"testing"

	"github.com/poiesic/askit/core"
	"github.com/poiesic/askit/index"
	"github.com/poiesic/askit/session"
	"github.com/poiesic/askit/textnorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyzer(t *testing.T, opts ...Option) (*Analyzer, *textnorm.Normalizer) {
	t.Helper()
	normalizer, err := textnorm.NewNormalizer()
	require.NoError(t, err)
	analyzer, err := NewAnalyzer(normalizer, opts...)
	require.NoError(t, err)
	return analyzer, normalizer
}

func buildIndex(t *testing.T, normalizer *textnorm.Normalizer) *index.CorpusIndex {
	t.Helper()
	idx, err := index.Build(normalizer, []core.Fact{
		{Text: "Quantum computers use qubits.", Keywords: []string{"quantum", "qubit"}, Topic: "quantum"},
		{Text: "Photosynthesis converts sunlight into energy.", Keywords: []string{"photosynthesis"}, Topic: "biology"},
	})
	require.NoError(t, err)
	return idx
}

func TestNewAnalyzer(t *testing.T) {
	normalizer, err := textnorm.NewNormalizer()
	require.NoError(t, err)

	t.Run("nil normalizer", func(t *testing.T) {
		_, err := NewAnalyzer(nil)
		assert.Equal(t, ErrNormalizerRequired, err)
	})

	t.Run("empty rules rejected", func(t *testing.T) {
		_, err := NewAnalyzer(normalizer, WithRules(nil))
		assert.Equal(t, ErrNoIntentRules, err)
	})
}

func TestDetectIntent_FirstMatchWins(t *testing.T) {
	analyzer, _ := newAnalyzer(t)

	tests := []struct {
		query string
		want  core.Intent
		rule  string
	}{
		{"what is quantum", core.IntentDefinition, "definition"},
		{"Define photosynthesis", core.IntentDefinition, "definition"},
		{"quantum vs classical computing", core.IntentComparison, "comparison"},
		{"difference between AC and DC", core.IntentComparison, "comparison"},
		{"list the planets", core.IntentList, "list"},
		{"examples of algorithms", core.IntentList, "list"},
		{"what is the weather", core.IntentDefinition, "definition"},
		{"weather in paris", core.IntentService, "service"},
		{"tell me about black holes", core.IntentGeneral, "general"},
		{"", core.IntentGeneral, "general"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			intent, rule := analyzer.detectIntent(tt.query)
			assert.Equal(t, tt.want, intent)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestIntent_MatchesAnalyze(t *testing.T) {
	analyzer, _ := newAnalyzer(t)

	for _, query := range []string{
		"what is quantum computers",
		"quantum computers",
		"quantum vs classical",
		"weather in paris",
	} {
		t.Run(query, func(t *testing.T) {
			analysis := analyzer.Analyze(query, nil, nil)
			assert.Equal(t, analysis.Intent, analyzer.Intent(query))
		})
	}
}

func TestDetectIntent_OrderIsConfiguration(t *testing.T) {
	// Reversing the rule order changes the winner; ordering is policy,
	// not an artifact.
	analyzer, _ := newAnalyzer(t, WithRules([]IntentRule{
		{Name: "service", Intent: core.IntentService, Pattern: regexp.MustCompile(`(?i)\bweather\b`)},
		{Name: "definition", Intent: core.IntentDefinition, Pattern: regexp.MustCompile(`(?i)^what\s+is\b`)},
		{Name: "general", Intent: core.IntentGeneral},
	}))

	intent, rule := analyzer.detectIntent("what is the weather")
	assert.Equal(t, core.IntentService, intent)
	assert.Equal(t, "service", rule)
}

func TestAnalyze_TermWeights(t *testing.T) {
	analyzer, normalizer := newAnalyzer(t, WithRelatedTerms(nil))
	idx := buildIndex(t, normalizer)

	analysis := analyzer.Analyze("quantum quantum qubits", nil, idx)

	// Raw counts for repeated tokens.
	assert.Equal(t, 2.0, analysis.Vector.TermWeights["quantum"])
	assert.Equal(t, 1.0, analysis.Vector.TermWeights["qubit"])
}

func TestAnalyze_SemanticExpansion(t *testing.T) {
	analyzer, normalizer := newAnalyzer(t, WithRelatedTerms(map[string][]string{
		"quantum": {"superposition"},
	}))
	idx := buildIndex(t, normalizer)

	analysis := analyzer.Analyze("quantum", nil, idx)

	assert.Equal(t, 1.0, analysis.Vector.TermWeights["quantum"], "original token keeps full weight")
	assert.Equal(t, 0.5, analysis.Vector.TermWeights["superposition"], "related term added at partial weight")
}

func TestAnalyze_HistoryBlending(t *testing.T) {
	analyzer, normalizer := newAnalyzer(t, WithRelatedTerms(nil))
	idx := buildIndex(t, normalizer)

	sess, err := session.New("s")
	require.NoError(t, err)
	sess.Record(core.HistoryEntry{Query: "photosynthesis", Topic: "biology", Intent: core.IntentDefinition}, "", true)

	t.Run("short query blends history", func(t *testing.T) {
		analysis := analyzer.Analyze("quantum", sess, idx)
		weight, ok := analysis.Vector.TermWeights["photosynthesi"]
		require.True(t, ok)
		assert.InDelta(t, 0.4*sess.Confidence(), weight, 1e-9)
	})

	t.Run("long query does not blend", func(t *testing.T) {
		analysis := analyzer.Analyze("quantum computers qubits superposition entanglement", sess, idx)
		_, ok := analysis.Vector.TermWeights["photosynthesi"]
		assert.False(t, ok)
	})

	t.Run("terms unknown to corpus are not blended", func(t *testing.T) {
		sess2, err := session.New("s2")
		require.NoError(t, err)
		sess2.Record(core.HistoryEntry{Query: "xylophone concert", Intent: core.IntentGeneral}, "", true)

		analysis := analyzer.Analyze("quantum", sess2, idx)
		_, ok := analysis.Vector.TermWeights["xylophone"]
		assert.False(t, ok)
	})
}

func TestAnalyze_HistoryBlendOrdering(t *testing.T) {
	analyzer, normalizer := newAnalyzer(t, WithRelatedTerms(nil))
	idx := buildIndex(t, normalizer)

	sess, err := session.New("s")
	require.NoError(t, err)
	sess.Record(core.HistoryEntry{Query: "photosynthesis", Intent: core.IntentGeneral}, "", true)
	sess.Record(core.HistoryEntry{Query: "sunlight", Intent: core.IntentGeneral}, "", true)

	analysis := analyzer.Analyze("quantum", sess, idx)

	// Most recent history entry gets the highest blend factor.
	assert.Greater(t,
		analysis.Vector.TermWeights["sunlight"],
		analysis.Vector.TermWeights["photosynthesi"])
}

func TestAnalyze_Phrases(t *testing.T) {
	analyzer, normalizer := newAnalyzer(t)
	idx := buildIndex(t, normalizer)

	analysis := analyzer.Analyze("quantum computers use qubits", nil, idx)

	assert.Contains(t, analysis.Vector.Phrases, "quantum comput")
	assert.Contains(t, analysis.Vector.Phrases, "quantum comput use")
}

func TestAnalyze_ConceptTagging(t *testing.T) {
	analyzer, normalizer := newAnalyzer(t)
	idx := buildIndex(t, normalizer)

	t.Run("token in keyword list tags the concept", func(t *testing.T) {
		analysis := analyzer.Analyze("qubits and algorithms", nil, idx)
		assert.Equal(t, []string{"computing", "quantum"}, analysis.Concepts)
	})

	t.Run("no concepts is valid", func(t *testing.T) {
		analysis := analyzer.Analyze("hello there", nil, idx)
		assert.Empty(t, analysis.Concepts)
	})
}

func TestAnalyze_EmbeddingDeterministic(t *testing.T) {
	analyzer, normalizer := newAnalyzer(t)
	idx := buildIndex(t, normalizer)

	a := analyzer.Analyze("quantum computers", nil, idx)
	b := analyzer.Analyze("quantum computers", nil, idx)
	assert.Equal(t, a.Vector.Embedding, b.Vector.Embedding)
}

func TestAnalyze_EmptyQuery(t *testing.T) {
	analyzer, normalizer := newAnalyzer(t)
	idx := buildIndex(t, normalizer)

	analysis := analyzer.Analyze("", nil, idx)
	assert.Empty(t, analysis.Vector.Tokens)
	assert.Empty(t, analysis.Vector.TermWeights)
	assert.Equal(t, core.IntentGeneral, analysis.Intent)
}
