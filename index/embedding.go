package index

// EmbeddingDim is the fixed dimensionality of pseudo-embeddings.
const EmbeddingDim = 100

// hashMask keeps the rolling hash non-negative without branching.
const hashMask = 0x7fffffff

// hashBucket maps a subword into [0, EmbeddingDim) with a rolling
// multiply-add hash. Deterministic and reproducible across runs; no
// learned model is involved anywhere in the embedding.
func hashBucket(subword string) int {
	h := 0
	for _, r := range subword {
		h = (h*31 + int(r)) & hashMask
	}
	return h % EmbeddingDim
}

// Subwords returns the 3-character windows of a token. Tokens of three or
// fewer characters yield no subwords.
func Subwords(token string) []string {
	runes := []rune(token)
	if len(runes) <= 3 {
		return nil
	}
	subs := make([]string, 0, len(runes)-2)
	for i := 0; i+3 <= len(runes); i++ {
		subs = append(subs, string(runes[i:i+3]))
	}
	return subs
}

// EmbedTokens accumulates hashed subword buckets into an L2-normalized
// pseudo-embedding. A token list with no eligible subwords yields a zero
// vector; cosine similarity against it is 0 by definition.
func EmbedTokens(tokens []string) []float32 {
	var subwords []string
	for _, token := range tokens {
		subwords = append(subwords, Subwords(token)...)
	}

	vec := make([]float32, EmbeddingDim)
	if len(subwords) == 0 {
		return vec
	}

	contribution := float32(1) / float32(len(subwords))
	for _, sub := range subwords {
		vec[hashBucket(sub)] += contribution
	}

	return NormalizeVector(vec)
}
