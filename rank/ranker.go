package rank

import (
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/poiesic/askit/core"
	"github.com/poiesic/askit/index"
	"github.com/poiesic/askit/query"
	"github.com/poiesic/askit/session"
)

// BM25 parameters.
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

// Signal blend weights and boost policy constants.
const (
	weightBM25   = 0.45
	weightPhrase = 0.20
	weightFuzzy  = 0.15
	weightDense  = 0.10

	topicBoost           = 0.2
	categoryBoost        = 0.15
	conceptBoost         = 0.15
	subtopicLiteralBoost = 0.1
	categoryLiteralBoost = 0.1
	personalizationScale = 0.2

	// scoreThreshold drops documents that cleared no meaningful signal.
	scoreThreshold = 0.1

	fuzzySimilarityThreshold = 0.5
	fuzzyBonusCap            = 0.5
	fuzzyBonusRate           = 0.25

	// viewTopK results receive the adaptive weight side effect per query.
	viewTopK = 8

	viewWeightGain     = 0.04
	feedbackWeightGain = 0.02

	// viewDecayBase fades persisted view counts per day since last view.
	viewDecayBase = 0.95
)

// Ranker scores documents against analyzed queries and owns the two
// permitted write paths into document stats: the top-K view side effect
// and explicit feedback.
type Ranker struct {
	index    *index.CorpusIndex
	concepts map[string][]string
	logger   *slog.Logger
}

// Option configures a Ranker.
type Option func(*Ranker) error

// WithConcepts replaces the concept keyword tables used for concept and
// personalization boosts. Must match the analyzer's tables.
func WithConcepts(concepts map[string][]string) Option {
	return func(r *Ranker) error {
		if concepts == nil {
			concepts = map[string][]string{}
		}
		r.concepts = concepts
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRanker creates a Ranker over a built corpus index.
func NewRanker(idx *index.CorpusIndex, opts ...Option) (*Ranker, error) {
	if idx == nil {
		return nil, ErrIndexRequired
	}

	r := &Ranker{
		index:    idx,
		concepts: query.DefaultConcepts(),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Rank scores every document and returns the candidates above threshold,
// sorted by descending score. Equal scores keep corpus order.
func (r *Ranker) Rank(analysis query.Analysis, sess *session.Context) []core.RankedResult {
	return r.RankWithMonitor(analysis, sess, nil)
}

// RankWithMonitor ranks with observation hooks.
// The monitor receives a callback per scored document and one for the
// final result list.
func (r *Ranker) RankWithMonitor(analysis query.Analysis, sess *session.Context, monitor RankMonitor) []core.RankedResult {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(analysis.Vector.Raw)

	querySubwords := tokenSubwords(analysis.Vector.Tokens)
	docs := r.index.Documents()

	results := make([]core.RankedResult, 0, len(docs))
	for _, doc := range docs {
		breakdown := r.score(doc, analysis, sess, querySubwords)

		blended := weightBM25*breakdown.BM25 +
			weightPhrase*breakdown.Phrase +
			weightFuzzy*breakdown.Fuzzy +
			weightDense*breakdown.Dense +
			breakdown.Boosts

		// The adaptive weight multiplies the entire sum; it scales
		// relevance rather than adding to it.
		score := blended * breakdown.Weight
		monitor.DocumentScored(doc.Id, score, breakdown)

		if score > scoreThreshold {
			results = append(results, core.RankedResult{
				Document:  doc,
				Score:     score,
				Breakdown: breakdown,
			})
		}
	}
	monitor.Filtered(len(results), len(docs))

	// Stable: documents with equal scores retain corpus order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	r.recordViews(results)

	r.logger.Debug("ranking complete",
		"query", analysis.Vector.Raw,
		"scored", len(docs),
		"kept", len(results))

	monitor.Finish(results)
	return results
}

// score computes the raw signal breakdown for one document.
func (r *Ranker) score(doc *core.Document, analysis query.Analysis, sess *session.Context, querySubwords map[string][]string) core.ScoreBreakdown {
	vec := analysis.Vector

	breakdown := core.ScoreBreakdown{
		BM25:   r.bm25(doc, vec.TermWeights),
		Phrase: phraseOverlap(doc, vec.Phrases),
		Fuzzy:  r.fuzzyBonus(doc, vec.Tokens, querySubwords),
		Dense:  index.Cosine(vec.Embedding, doc.Embedding),
		Boosts: r.contextBoosts(doc, analysis, sess),
		Weight: doc.Stats.Weight,
	}
	return breakdown
}

// bm25 accumulates the BM25 contribution of every term shared by the query
// weight map and the document, scaled by the query-side term weight.
func (r *Ranker) bm25(doc *core.Document, termWeights map[string]float64) float64 {
	if doc.DocLength == 0 {
		return 0
	}

	lengthNorm := bm25K1 * (1 - bm25B + bm25B*float64(doc.DocLength)/r.index.AvgDocLength())

	var score float64
	for term, qWeight := range termWeights {
		tf := float64(doc.TermFreq[term])
		if tf == 0 {
			continue
		}
		idf := r.index.IDF(term)
		score += qWeight * idf * tf * (bm25K1 + 1) / (tf + lengthNorm)
	}
	return score
}

// phraseOverlap is the matched fraction of the query's phrase set.
func phraseOverlap(doc *core.Document, queryPhrases map[string]struct{}) float64 {
	if len(queryPhrases) == 0 {
		return 0
	}

	matched := 0
	for phrase := range queryPhrases {
		if doc.HasPhrase(phrase) {
			matched++
		}
	}
	return float64(matched) / float64(len(queryPhrases))
}

// fuzzyBonus counts query tokens with at least one near-matching document
// token, using IDF-weighted trigram Jaccard similarity.
func (r *Ranker) fuzzyBonus(doc *core.Document, queryTokens []string, querySubwords map[string][]string) float64 {
	if len(queryTokens) == 0 {
		return 0
	}

	matches := 0
	for _, qToken := range queryTokens {
		qSubs := querySubwords[qToken]
		if len(qSubs) == 0 {
			continue
		}
		for _, dToken := range doc.Tokens {
			if r.weightedJaccard(qSubs, index.Subwords(dToken)) > fuzzySimilarityThreshold {
				matches++
				break
			}
		}
	}

	bonus := fuzzyBonusRate * float64(matches) / float64(len(queryTokens))
	return math.Min(fuzzyBonusCap, bonus)
}

// weightedJaccard computes IDF-weighted trigram set similarity. Trigrams
// unknown to the corpus get a small floor weight so two out-of-corpus
// tokens can still resemble each other.
func (r *Ranker) weightedJaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	const unknownWeight = 0.1

	weight := func(sub string) float64 {
		if idf := r.index.IDF(sub); idf > 0 {
			return idf
		}
		return unknownWeight
	}

	setA := make(map[string]struct{}, len(a))
	for _, sub := range a {
		setA[sub] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, sub := range b {
		setB[sub] = struct{}{}
	}

	var intersection, union float64
	for sub := range setA {
		w := weight(sub)
		union += w
		if _, ok := setB[sub]; ok {
			intersection += w
		}
	}
	for sub := range setB {
		if _, ok := setA[sub]; !ok {
			union += weight(sub)
		}
	}

	if union == 0 {
		return 0
	}
	return intersection / union
}

// contextBoosts sums the session and concept boosts for one document.
func (r *Ranker) contextBoosts(doc *core.Document, analysis query.Analysis, sess *session.Context) float64 {
	var boost float64
	rawLower := strings.ToLower(analysis.Vector.Raw)

	if sess != nil {
		if sess.CurrentTopic() != "" && strings.EqualFold(doc.Topic, sess.CurrentTopic()) {
			boost += topicBoost
		}
		if sess.CurrentCategory() != "" && strings.EqualFold(doc.Category, sess.CurrentCategory()) {
			boost += categoryBoost
		}
	}

	docConcepts := r.documentConcepts(doc)
	for _, concept := range analysis.Concepts {
		if _, ok := docConcepts[concept]; ok {
			boost += conceptBoost
			break
		}
	}

	for _, subtopic := range doc.Subtopics {
		if subtopic != "" && strings.Contains(rawLower, strings.ToLower(subtopic)) {
			boost += subtopicLiteralBoost
			break
		}
	}
	if doc.Category != "" && strings.Contains(rawLower, strings.ToLower(doc.Category)) {
		boost += categoryLiteralBoost
	}

	if sess != nil {
		boost += r.personalization(docConcepts, sess)
	}

	return boost
}

// personalization is proportional to how often the document's concepts
// appeared across session history, normalized by history length.
func (r *Ranker) personalization(docConcepts map[string]struct{}, sess *session.Context) float64 {
	history := sess.History()
	if len(history) == 0 || len(docConcepts) == 0 {
		return 0
	}

	hits := 0
	for _, entry := range history {
		for _, entity := range entry.Entities {
			if _, ok := docConcepts[entity]; ok {
				hits++
				break
			}
		}
	}
	return personalizationScale * float64(hits) / float64(len(history))
}

// documentConcepts tags a document with every concept whose keyword list
// intersects its term frequencies.
func (r *Ranker) documentConcepts(doc *core.Document) map[string]struct{} {
	tagged := make(map[string]struct{})
	for concept, keywords := range r.concepts {
		for _, keyword := range keywords {
			if doc.TermFreq[keyword] > 0 {
				tagged[concept] = struct{}{}
				break
			}
		}
	}
	return tagged
}

// recordViews applies the adaptive weight side effect to the top results.
func (r *Ranker) recordViews(results []core.RankedResult) {
	now := time.Now().UTC()
	for i, result := range results {
		if i >= viewTopK {
			break
		}
		stats := &result.Document.Stats
		stats.ViewCount++
		stats.LastViewedAt = now
		stats.Weight += viewWeightGain*math.Log(1+stats.ViewCount) + feedbackWeightGain*float64(stats.FeedbackScore)
		stats.ClampWeight()
	}
}

// ApplyFeedback records explicit user feedback for a document and
// immediately re-clamps its weight. Positive feedback never lowers the
// weight and negative feedback never raises it.
func (r *Ranker) ApplyFeedback(docID core.ID, delta int) error {
	if delta != 1 && delta != -1 {
		return ErrInvalidFeedback
	}

	doc, ok := r.index.Document(docID)
	if !ok {
		return ErrDocumentNotFound
	}

	stats := &doc.Stats
	stats.FeedbackScore += delta
	stats.Weight += feedbackWeightGain * float64(delta)
	stats.ClampWeight()

	r.logger.Debug("feedback applied",
		"document", docID,
		"delta", delta,
		"feedback_score", stats.FeedbackScore,
		"weight", stats.Weight)

	return nil
}

// DecayViewCount fades a persisted view count by the time since the last
// view, so stale popularity fades continuously instead of resetting.
func DecayViewCount(stats *core.DocStats, now time.Time) {
	if stats.ViewCount == 0 || stats.LastViewedAt.IsZero() {
		return
	}
	days := now.Sub(stats.LastViewedAt).Hours() / 24
	if days <= 0 {
		return
	}
	stats.ViewCount *= math.Pow(viewDecayBase, days)
}

// tokenSubwords precomputes the trigram sets of the query tokens once per
// ranking pass.
func tokenSubwords(tokens []string) map[string][]string {
	subs := make(map[string][]string, len(tokens))
	for _, token := range tokens {
		if _, ok := subs[token]; !ok {
			subs[token] = index.Subwords(token)
		}
	}
	return subs
}
