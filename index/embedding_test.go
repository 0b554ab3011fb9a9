package index

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubwords(t *testing.T) {
	assert.Equal(t, []string{"qua", "uan", "ant", "ntu", "tum"}, Subwords("quantum"))
	assert.Nil(t, Subwords("use"), "tokens of three characters or fewer have no subwords")
	assert.Nil(t, Subwords(""))
	assert.Equal(t, []string{"qua", "uad"}, Subwords("quad"))
}

func TestEmbedTokens_Deterministic(t *testing.T) {
	a := EmbedTokens([]string{"quantum", "comput"})
	b := EmbedTokens([]string{"quantum", "comput"})
	assert.Equal(t, a, b)
}

func TestEmbedTokens_Normalized(t *testing.T) {
	vec := EmbedTokens([]string{"quantum", "comput", "qubit"})
	require.Len(t, vec, EmbeddingDim)

	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(magnitude), 1e-5)
}

func TestEmbedTokens_NoSubwordsYieldsZeroVector(t *testing.T) {
	vec := EmbedTokens([]string{"use", "run", "it"})
	require.Len(t, vec, EmbeddingDim)
	for _, v := range vec {
		assert.Zero(t, v)
	}

	// Cosine with the zero vector is defined to be 0.
	other := EmbedTokens([]string{"quantum"})
	assert.Zero(t, Cosine(vec, other))
}

func TestCosine(t *testing.T) {
	t.Run("identical vectors", func(t *testing.T) {
		v := EmbedTokens([]string{"quantum", "comput"})
		assert.InDelta(t, 1.0, Cosine(v, v), 1e-6)
	})

	t.Run("orthogonal vectors", func(t *testing.T) {
		a := []float32{1, 0}
		b := []float32{0, 1}
		assert.Zero(t, Cosine(a, b))
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		assert.Zero(t, Cosine([]float32{1, 0}, []float32{1}))
	})

	t.Run("similar token sets score higher than unrelated", func(t *testing.T) {
		quantum := EmbedTokens([]string{"quantum", "qubit", "comput"})
		related := EmbedTokens([]string{"quantum", "comput"})
		unrelated := EmbedTokens([]string{"photosynthesi", "sunlight", "energi"})
		assert.Greater(t, Cosine(quantum, related), Cosine(quantum, unrelated))
	})
}

func TestNormalizeVector(t *testing.T) {
	t.Run("unit length", func(t *testing.T) {
		v := NormalizeVector([]float32{3, 4})
		assert.InDelta(t, 0.6, v[0], 1e-6)
		assert.InDelta(t, 0.8, v[1], 1e-6)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		v := NormalizeVector([]float32{0, 0, 0})
		assert.Equal(t, []float32{0, 0, 0}, v)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, NormalizeVector(nil))
	})
}
