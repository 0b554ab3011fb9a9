package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleCorpusRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	require.NoError(t, writeSampleCorpus(path))

	facts, err := loadCorpus(path)
	require.NoError(t, err)

	require.Len(t, facts, len(sampleCorpus()))
	for _, f := range facts {
		assert.NotEmpty(t, f.Text)
		assert.NotEmpty(t, f.Keywords)
		assert.NotEmpty(t, f.Topic)
	}
}

func TestLoadCorpus(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := loadCorpus(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		_, err := loadCorpus(path)
		assert.Error(t, err)
	})

	t.Run("metadata fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "corpus.json")
		payload := `[{"text":"Quantum computers use qubits.","keywords":["quantum"],"topic":"quantum","metadata":{"category":"science","subtopics":["hardware"],"priority":0.9}}]`
		require.NoError(t, os.WriteFile(path, []byte(payload), 0644))

		facts, err := loadCorpus(path)
		require.NoError(t, err)
		require.Len(t, facts, 1)
		assert.Equal(t, "science", facts[0].Metadata.Category)
		assert.Equal(t, []string{"hardware"}, facts[0].Metadata.Subtopics)
		assert.Equal(t, 0.9, facts[0].Metadata.Priority)
	})
}
