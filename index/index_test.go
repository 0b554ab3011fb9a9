package index

import (
	"math"
	"testing"
	"time"

	"github.com/poiesic/askit/core"
	"github.com/poiesic/askit/textnorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNormalizer(t *testing.T) *textnorm.Normalizer {
	t.Helper()
	n, err := textnorm.NewNormalizer()
	require.NoError(t, err)
	return n
}

func sampleFacts() []core.Fact {
	return []core.Fact{
		{
			Text:     "Quantum computers use qubits to run calculations.",
			Keywords: []string{"quantum", "qubit"},
			Topic:    "quantum",
			Metadata: core.FactMetadata{
				Subtopics: []string{"hardware"},
				Category:  "technology",
			},
		},
		{
			Text:     "Classical computers store information in binary bits.",
			Keywords: []string{"classical", "binary"},
			Topic:    "computing",
			Metadata: core.FactMetadata{
				Subtopics: []string{"hardware", "storage"},
				Category:  "technology",
			},
		},
		{
			Text:     "Photosynthesis converts sunlight into chemical energy.",
			Keywords: []string{"photosynthesis", "energy"},
			Topic:    "biology",
			Metadata: core.FactMetadata{
				Category: "science",
			},
		},
	}
}

func TestBuild_Validation(t *testing.T) {
	normalizer := newNormalizer(t)

	t.Run("nil normalizer", func(t *testing.T) {
		_, err := Build(nil, sampleFacts())
		assert.ErrorIs(t, err, ErrNormalizerRequired)
	})

	t.Run("empty corpus", func(t *testing.T) {
		_, err := Build(normalizer, nil)
		assert.ErrorIs(t, err, ErrEmptyCorpus)
	})

	t.Run("malformed fact rejected at load", func(t *testing.T) {
		facts := sampleFacts()
		facts[1].Text = ""
		_, err := Build(normalizer, facts)
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrEmptyText)
		assert.Contains(t, err.Error(), "fact 1")
	})
}

func TestBuild_DocumentStatistics(t *testing.T) {
	idx, err := Build(newNormalizer(t), sampleFacts())
	require.NoError(t, err)
	require.Equal(t, 3, idx.Len())

	doc := idx.Documents()[0]
	assert.Equal(t, core.ID(0), doc.Id)
	assert.Equal(t, len(doc.Tokens), doc.DocLength)
	assert.NotEmpty(t, doc.TermFreq)
	assert.NotEmpty(t, doc.Phrases)

	// Tokens, their subwords, and bigrams all land in the term frequency map.
	assert.GreaterOrEqual(t, doc.TermFreq["quantum"], 1)
	assert.GreaterOrEqual(t, doc.TermFreq["qua"], 1)
	bigram := doc.Tokens[0] + " " + doc.Tokens[1]
	assert.GreaterOrEqual(t, doc.TermFreq[bigram], 1)
	assert.True(t, doc.HasPhrase(bigram))
}

func TestBuild_IDFAndAvgDocLength(t *testing.T) {
	idx, err := Build(newNormalizer(t), sampleFacts())
	require.NoError(t, err)

	// "comput" appears in two of three documents; "photosynthesi" in one.
	// A rarer term must carry the larger IDF.
	common := idx.IDF("comput")
	rare := idx.IDF("photosynthesi")
	require.Positive(t, common)
	require.Positive(t, rare)
	assert.Greater(t, rare, common)

	// BM25-style IDF: ln((N - df + 0.5)/(df + 0.5) + 1)
	want := math.Log((3-1+0.5)/(1+0.5) + 1)
	assert.InDelta(t, want, rare, 1e-9)

	assert.Zero(t, idx.IDF("nonexistentterm"))

	total := 0
	for _, doc := range idx.Documents() {
		total += doc.DocLength
	}
	assert.InDelta(t, float64(total)/3, idx.AvgDocLength(), 1e-9)
}

func TestBuild_WeightInitialization(t *testing.T) {
	facts := sampleFacts()
	facts[0].Metadata.Priority = 0.95
	facts[1].Metadata.Priority = 0.1 // Below floor, clamped up

	before := time.Now().UTC()
	idx, err := Build(newNormalizer(t), facts)
	require.NoError(t, err)

	docs := idx.Documents()
	assert.Equal(t, 0.95, docs[0].Stats.Weight)
	assert.Equal(t, core.WeightFloor, docs[1].Stats.Weight)
	assert.Equal(t, core.DefaultWeight, docs[2].Stats.Weight)

	for _, doc := range docs {
		assert.Zero(t, doc.Stats.ViewCount)
		assert.Zero(t, doc.Stats.FeedbackScore)
		assert.False(t, doc.Stats.LastViewedAt.Before(before))
	}
}

func TestBuild_TagIndexes(t *testing.T) {
	idx, err := Build(newNormalizer(t), sampleFacts())
	require.NoError(t, err)

	hardware := idx.BySubtopic("hardware")
	require.Len(t, hardware, 2)
	assert.Equal(t, core.ID(0), hardware[0].Id)
	assert.Equal(t, core.ID(1), hardware[1].Id)

	assert.Len(t, idx.ByCategory("technology"), 2)
	assert.Len(t, idx.ByCategory("TECHNOLOGY"), 2)
	assert.Empty(t, idx.ByCategory("sports"))

	assert.ElementsMatch(t, []string{"quantum", "computing", "biology"}, idx.Topics())
}

func TestBuild_Lookup(t *testing.T) {
	idx, err := Build(newNormalizer(t), sampleFacts())
	require.NoError(t, err)

	doc, ok := idx.Document(core.ID(2))
	require.True(t, ok)
	assert.Equal(t, "biology", doc.Topic)

	_, ok = idx.Document(core.ID(99))
	assert.False(t, ok)
}

func TestBuild_ParallelMatchesSerial(t *testing.T) {
	facts := sampleFacts()

	serial, err := Build(newNormalizer(t), facts, WithPoolSize(1))
	require.NoError(t, err)
	parallel, err := Build(newNormalizer(t), facts, WithPoolSize(8))
	require.NoError(t, err)

	for i := range serial.Documents() {
		a, b := serial.Documents()[i], parallel.Documents()[i]
		assert.Equal(t, a.TermFreq, b.TermFreq)
		assert.Equal(t, a.Phrases, b.Phrases)
		assert.Equal(t, a.Embedding, b.Embedding)
	}
	assert.Equal(t, serial.AvgDocLength(), parallel.AvgDocLength())
}
