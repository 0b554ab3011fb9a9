package textnorm

import (
	"strings"
	"unicode"
)

const defaultCacheCapacity = 1000

// Normalizer turns raw text into a canonical token stream. It never fails;
// input that produces no tokens yields an empty slice.
type Normalizer struct {
	aliases  map[string][]string
	synonyms map[string][]string
	cache    *fifoCache
}

// Option configures a Normalizer.
type Option func(*Normalizer) error

// WithAliases replaces the abbreviation expansion table.
func WithAliases(aliases map[string][]string) Option {
	return func(n *Normalizer) error {
		if aliases == nil {
			aliases = map[string][]string{}
		}
		n.aliases = aliases
		return nil
	}
}

// WithSynonyms replaces the synonym injection table.
func WithSynonyms(synonyms map[string][]string) Option {
	return func(n *Normalizer) error {
		if synonyms == nil {
			synonyms = map[string][]string{}
		}
		n.synonyms = synonyms
		return nil
	}
}

// WithCacheCapacity sets the memoization cache capacity.
// Default is 1000 entries.
func WithCacheCapacity(capacity int) Option {
	return func(n *Normalizer) error {
		n.cache = newFIFOCache(capacity)
		return nil
	}
}

// NewNormalizer creates a Normalizer with the default tables and cache.
func NewNormalizer(opts ...Option) (*Normalizer, error) {
	n := &Normalizer{
		aliases:  DefaultAliases(),
		synonyms: DefaultSynonyms(),
		cache:    newFIFOCache(defaultCacheCapacity),
	}

	for _, opt := range opts {
		if err := opt(n); err != nil {
			return nil, err
		}
	}

	return n, nil
}

// Normalize tokenizes and canonicalizes text. Results are memoized by the
// exact input string.
func (n *Normalizer) Normalize(text string) []string {
	if tokens, ok := n.cache.get(text); ok {
		return tokens
	}

	tokens := n.normalize(text)
	n.cache.put(text, tokens)
	return tokens
}

// CacheLen reports how many inputs are currently memoized.
func (n *Normalizer) CacheLen() int {
	return n.cache.len()
}

func (n *Normalizer) normalize(text string) []string {
	pieces := splitBoundaries(text)

	tokens := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		lower := strings.ToLower(piece)

		// Alias expansion replaces the piece; synonym injection adds to it.
		expanded := []string{piece}
		if alias, ok := n.aliases[lower]; ok {
			expanded = alias
		}
		if syns, ok := n.synonyms[lower]; ok {
			expanded = append(expanded, syns...)
		}

		for _, token := range expanded {
			for _, sub := range splitComposite(token) {
				lowerSub := strings.ToLower(sub)
				// Stop words are checked before stemming too, so "this"
				// does not survive as the stem "thi".
				if stopWords[lowerSub] {
					continue
				}
				stemmed := stem(lowerSub)
				if len(stemmed) <= 1 || stopWords[stemmed] {
					continue
				}
				tokens = append(tokens, stemmed)
			}
		}
	}

	return tokens
}

// splitBoundaries splits text on runs of non-alphanumeric characters,
// preserving case for later composite splitting.
func splitBoundaries(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// splitComposite splits camelCase and separator-joined compounds into their
// parts. "parseHTML" yields ["parse", "HTML"], "snake_case" yields
// ["snake", "case"].
func splitComposite(token string) []string {
	var parts []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
	}

	runes := []rune(token)
	for i, r := range runes {
		if r == '_' || r == '-' || r == '.' || r == '/' {
			flush()
			continue
		}
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			flush()
		}
		current.WriteRune(r)
	}
	flush()

	return parts
}

// stem strips at most one suffix from the ordered suffix list; the first
// match wins. The stem must keep at least three characters.
func stem(token string) string {
	for _, suffix := range stemSuffixes {
		if strings.HasSuffix(token, suffix) && len(token)-len(suffix) >= 3 {
			return token[:len(token)-len(suffix)]
		}
	}
	return token
}
