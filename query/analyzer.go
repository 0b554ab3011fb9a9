// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package query turns a raw query plus session context into a weighted
// term vector, a detected intent, and concept tags.
package query

import (
	"log/slog"
	"sort"

	"github.com/poiesic/askit/core"
	"github.com/poiesic/askit/index"
	"github.com/poiesic/askit/session"
	"github.com/poiesic/askit/textnorm"
)

const (
	// relatedTermWeight is the partial weight for semantically expanded terms.
	relatedTermWeight = 0.5

	// shortQueryTokens is the token count below which session history is
	// blended into the term weights.
	shortQueryTokens = 4
)

// historyBlendWeights weight the last three history entries, most recent
// first; each is further scaled by the session confidence.
var historyBlendWeights = [3]float64{0.4, 0.3, 0.2}

// Analysis is the full result of analyzing one query.
type Analysis struct {
	Vector   core.QueryVector
	Intent   core.Intent
	RuleName string
	Concepts []string
}

// Analyzer vectorizes queries and classifies their intent.
type Analyzer struct {
	normalizer *textnorm.Normalizer
	rules      []IntentRule
	concepts   map[string][]string
	related    map[string][]string
	logger     *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer) error

// WithRules replaces the ordered intent rule list.
func WithRules(rules []IntentRule) Option {
	return func(a *Analyzer) error {
		if len(rules) == 0 {
			return ErrNoIntentRules
		}
		a.rules = rules
		return nil
	}
}

// WithConcepts replaces the concept keyword tables.
func WithConcepts(concepts map[string][]string) Option {
	return func(a *Analyzer) error {
		if concepts == nil {
			concepts = map[string][]string{}
		}
		a.concepts = concepts
		return nil
	}
}

// WithRelatedTerms replaces the semantic expansion table.
func WithRelatedTerms(related map[string][]string) Option {
	return func(a *Analyzer) error {
		if related == nil {
			related = map[string][]string{}
		}
		a.related = related
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAnalyzer creates an Analyzer with the default rule and concept tables.
func NewAnalyzer(normalizer *textnorm.Normalizer, opts ...Option) (*Analyzer, error) {
	if normalizer == nil {
		return nil, ErrNormalizerRequired
	}

	a := &Analyzer{
		normalizer: normalizer,
		rules:      DefaultIntentRules(),
		concepts:   DefaultConcepts(),
		related:    DefaultRelatedTerms(),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Analyze vectorizes a raw query. Short queries borrow weight from recent
// session history; every query picks up related terms at partial weight.
func (a *Analyzer) Analyze(raw string, sess *session.Context, idx *index.CorpusIndex) Analysis {
	tokens := a.normalizer.Normalize(raw)

	weights := make(map[string]float64, len(tokens)*2)
	for _, token := range tokens {
		weights[token]++
	}

	// Semantic expansion adds related terms alongside the original token.
	for _, token := range tokens {
		for _, rel := range a.related[token] {
			weights[rel] += relatedTermWeight
		}
	}

	if len(tokens) < shortQueryTokens {
		a.blendHistory(weights, sess, idx)
	}

	phrases := make(map[string]struct{})
	for i := 0; i+2 <= len(tokens); i++ {
		phrases[tokens[i]+" "+tokens[i+1]] = struct{}{}
	}
	for i := 0; i+3 <= len(tokens); i++ {
		phrases[tokens[i]+" "+tokens[i+1]+" "+tokens[i+2]] = struct{}{}
	}

	// Term keys are sorted before embedding so the accumulation order, and
	// with it the vector, is reproducible.
	termKeys := make([]string, 0, len(weights))
	for term := range weights {
		termKeys = append(termKeys, term)
	}
	sort.Strings(termKeys)

	intent, ruleName := a.detectIntent(raw)
	concepts := a.tagConcepts(tokens)

	a.logger.Debug("query analyzed",
		"intent", intent.String(),
		"rule", ruleName,
		"tokens", len(tokens),
		"terms", len(weights),
		"concepts", concepts)

	return Analysis{
		Vector: core.QueryVector{
			Raw:         raw,
			Tokens:      tokens,
			Phrases:     phrases,
			TermWeights: weights,
			Embedding:   index.EmbedTokens(termKeys),
		},
		Intent:   intent,
		RuleName: ruleName,
		Concepts: concepts,
	}
}

// blendHistory folds tokens from the last three history entries into the
// weight map, most recent weighted highest, scaled by session confidence.
// Only terms the corpus has seen are blended, so stale noise from missed
// queries does not leak into ranking.
func (a *Analyzer) blendHistory(weights map[string]float64, sess *session.Context, idx *index.CorpusIndex) {
	if sess == nil {
		return
	}

	recent := sess.Recent(len(historyBlendWeights))
	for i, entry := range recent {
		factor := historyBlendWeights[i] * sess.Confidence()
		if factor <= 0 {
			continue
		}
		for _, token := range a.normalizer.Normalize(entry.Query) {
			if idx != nil && idx.IDF(token) == 0 {
				continue
			}
			weights[token] += factor
		}
	}
}

// Intent classifies a raw query without building the term vector. The
// result always matches the intent a full Analyze of the same query
// would produce.
func (a *Analyzer) Intent(raw string) core.Intent {
	intent, _ := a.detectIntent(raw)
	return intent
}

// detectIntent evaluates the ordered rule list; the first match wins.
// A rule with a nil pattern matches everything.
func (a *Analyzer) detectIntent(raw string) (core.Intent, string) {
	for _, rule := range a.rules {
		if rule.Pattern == nil || rule.Pattern.MatchString(raw) {
			return rule.Intent, rule.Name
		}
	}
	return core.IntentGeneral, "general"
}

// tagConcepts returns the concepts whose keyword lists contain at least one
// query token, in sorted order for reproducibility.
func (a *Analyzer) tagConcepts(tokens []string) []string {
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		tokenSet[token] = struct{}{}
	}

	var tagged []string
	for concept, keywords := range a.concepts {
		for _, keyword := range keywords {
			if _, ok := tokenSet[keyword]; ok {
				tagged = append(tagged, concept)
				break
			}
		}
	}
	sort.Strings(tagged)
	return tagged
}
