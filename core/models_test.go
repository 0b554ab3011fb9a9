package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromContent("what is quantum computing")
		id2 := IDFromContent("what is quantum computing")
		assert.Equal(t, id1, id2)
	})

	t.Run("distinct content distinct ids", func(t *testing.T) {
		id1 := IDFromContent("what is quantum computing")
		id2 := IDFromContent("what is classical computing")
		assert.NotEqual(t, id1, id2)
	})

	t.Run("empty content", func(t *testing.T) {
		assert.NotZero(t, IDFromContent(""))
	})
}

func TestIntentString(t *testing.T) {
	assert.Equal(t, "definition", IntentDefinition.String())
	assert.Equal(t, "comparison", IntentComparison.String())
	assert.Equal(t, "list", IntentList.String())
	assert.Equal(t, "service", IntentService.String())
	assert.Equal(t, "general", IntentGeneral.String())
	assert.Equal(t, "unknown", Intent(0).String())
}

func TestDocStatsClampWeight(t *testing.T) {
	stats := DocStats{Weight: 1.4}
	stats.ClampWeight()
	assert.Equal(t, WeightCeil, stats.Weight)

	stats.Weight = 0.2
	stats.ClampWeight()
	assert.Equal(t, WeightFloor, stats.Weight)

	stats.Weight = 0.85
	stats.ClampWeight()
	assert.Equal(t, 0.85, stats.Weight)
}

func TestDocumentHasPhrase(t *testing.T) {
	doc := &Document{Phrases: map[string]struct{}{"quantum computer": {}}}
	assert.True(t, doc.HasPhrase("quantum computer"))
	assert.False(t, doc.HasPhrase("classical computer"))
}
