package index

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/askit/core"
	"github.com/poiesic/askit/textnorm"
)

// CorpusIndex owns every indexed document and the corpus-wide statistics
// ranking needs. IDF and average document length are frozen after Build;
// only each document's Stats mutate afterwards, and only through the
// ranker's view side effect and the explicit feedback path.
type CorpusIndex struct {
	docs          []*core.Document
	byID          map[core.ID]*core.Document
	df            map[string]int
	idf           map[string]float64
	avgDocLength  float64
	subtopicIndex map[string][]*core.Document
	categoryIndex map[string][]*core.Document
	logger        *slog.Logger
}

// Option configures index building.
type Option func(*buildConfig) error

type buildConfig struct {
	poolSize int
	logger   *slog.Logger
}

// WithPoolSize sets the worker pool size used for per-document statistics.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(c *buildConfig) error {
		if size < 1 {
			size = 1
		}
		c.poolSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *buildConfig) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// Build indexes a corpus of raw facts. Every fact is validated first;
// a malformed fact rejects the whole load. Building over zero facts is a
// configuration error.
func Build(normalizer *textnorm.Normalizer, facts []core.Fact, opts ...Option) (*CorpusIndex, error) {
	if normalizer == nil {
		return nil, ErrNormalizerRequired
	}
	if len(facts) == 0 {
		return nil, ErrEmptyCorpus
	}

	cfg := &buildConfig{
		poolSize: max(1, runtime.NumCPU()/2),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	for i := range facts {
		if err := core.ValidateFact(&facts[i]); err != nil {
			return nil, fmt.Errorf("fact %d: %w", i, err)
		}
	}

	now := time.Now().UTC()
	docs := make([]*core.Document, len(facts))
	for i, fact := range facts {
		weight := fact.Metadata.Priority
		if weight == 0 {
			weight = core.DefaultWeight
		}
		doc := &core.Document{
			Id:        core.ID(i),
			Text:      fact.Text,
			Keywords:  fact.Keywords,
			Topic:     fact.Topic,
			Category:  fact.Metadata.Category,
			Subtopics: fact.Metadata.Subtopics,
			Stats: core.DocStats{
				Weight:       weight,
				LastViewedAt: now,
			},
		}
		doc.Stats.ClampWeight()

		// The normalizer cache is not synchronized, so tokenization stays
		// on this goroutine; only the derived statistics fan out below.
		doc.Tokens = normalizer.Normalize(indexableText(fact))
		docs[i] = doc
	}

	if err := buildStatistics(docs, cfg.poolSize); err != nil {
		return nil, err
	}

	idx := &CorpusIndex{
		docs:          docs,
		byID:          make(map[core.ID]*core.Document, len(docs)),
		df:            make(map[string]int),
		idf:           make(map[string]float64),
		subtopicIndex: make(map[string][]*core.Document),
		categoryIndex: make(map[string][]*core.Document),
		logger:        cfg.logger,
	}

	totalTokens := 0
	for _, doc := range docs {
		idx.byID[doc.Id] = doc
		totalTokens += doc.DocLength

		// Document frequency counts once per document per distinct term key.
		for term := range doc.TermFreq {
			idx.df[term]++
		}

		for _, subtopic := range doc.Subtopics {
			tag := strings.ToLower(subtopic)
			idx.subtopicIndex[tag] = append(idx.subtopicIndex[tag], doc)
		}
		if doc.Category != "" {
			tag := strings.ToLower(doc.Category)
			idx.categoryIndex[tag] = append(idx.categoryIndex[tag], doc)
		}
	}

	n := float64(len(docs))
	for term, df := range idx.df {
		idx.idf[term] = math.Log((n-float64(df)+0.5)/(float64(df)+0.5) + 1)
	}
	idx.avgDocLength = float64(totalTokens) / n

	idx.logger.Debug("corpus indexed",
		"documents", len(docs),
		"terms", len(idx.idf),
		"avg_doc_length", idx.avgDocLength)

	return idx, nil
}

// indexableText joins the fields that contribute to a document's tokens.
func indexableText(fact core.Fact) string {
	parts := make([]string, 0, 3)
	parts = append(parts, fact.Text)
	if len(fact.Keywords) > 0 {
		parts = append(parts, strings.Join(fact.Keywords, " "))
	}
	if len(fact.Metadata.Subtopics) > 0 {
		parts = append(parts, strings.Join(fact.Metadata.Subtopics, " "))
	}
	return strings.Join(parts, " ")
}

// buildStatistics computes per-document term statistics on a worker pool.
// Each document is independent, so the fan-out is safe.
func buildStatistics(docs []*core.Document, poolSize int) error {
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, doc := range docs {
		wg.Add(1)
		doc := doc
		if submitErr := pool.Submit(func() {
			defer wg.Done()
			buildDocumentStats(doc)
		}); submitErr != nil {
			// Pool rejected the task; do the work inline.
			buildDocumentStats(doc)
			wg.Done()
		}
	}
	wg.Wait()

	return nil
}

// buildDocumentStats derives term frequencies, phrases, and the
// pseudo-embedding for one document.
func buildDocumentStats(doc *core.Document) {
	tokens := doc.Tokens

	termFreq := make(map[string]int, len(tokens)*3)
	for _, token := range tokens {
		termFreq[token]++
		for _, sub := range Subwords(token) {
			termFreq[sub]++
		}
	}
	for i := 0; i+2 <= len(tokens); i++ {
		termFreq[tokens[i]+" "+tokens[i+1]]++
	}

	// Phrases are a set: a repeated phrase counts once toward later
	// matched-phrase ratios.
	phrases := make(map[string]struct{})
	for i := 0; i+2 <= len(tokens); i++ {
		phrases[tokens[i]+" "+tokens[i+1]] = struct{}{}
	}
	for i := 0; i+3 <= len(tokens); i++ {
		phrases[tokens[i]+" "+tokens[i+1]+" "+tokens[i+2]] = struct{}{}
	}

	doc.TermFreq = termFreq
	doc.Phrases = phrases
	doc.Embedding = EmbedTokens(tokens)
	doc.DocLength = len(tokens)
}

// Documents returns all indexed documents in corpus order.
func (idx *CorpusIndex) Documents() []*core.Document {
	return idx.docs
}

// Document returns the document with the given ID.
func (idx *CorpusIndex) Document(id core.ID) (*core.Document, bool) {
	doc, ok := idx.byID[id]
	return doc, ok
}

// Len returns the number of indexed documents.
func (idx *CorpusIndex) Len() int {
	return len(idx.docs)
}

// IDF returns the inverse document frequency of a term, or 0 for a term
// the corpus has never seen.
func (idx *CorpusIndex) IDF(term string) float64 {
	return idx.idf[term]
}

// AvgDocLength returns the mean token count across all documents.
func (idx *CorpusIndex) AvgDocLength() float64 {
	return idx.avgDocLength
}

// BySubtopic returns the documents tagged with the given subtopic.
func (idx *CorpusIndex) BySubtopic(tag string) []*core.Document {
	return idx.subtopicIndex[strings.ToLower(tag)]
}

// ByCategory returns the documents in the given category.
func (idx *CorpusIndex) ByCategory(tag string) []*core.Document {
	return idx.categoryIndex[strings.ToLower(tag)]
}

// Subtopics returns every subtopic tag present in the corpus.
func (idx *CorpusIndex) Subtopics() []string {
	tags := make([]string, 0, len(idx.subtopicIndex))
	for tag := range idx.subtopicIndex {
		tags = append(tags, tag)
	}
	return tags
}

// Categories returns every category tag present in the corpus.
func (idx *CorpusIndex) Categories() []string {
	tags := make([]string, 0, len(idx.categoryIndex))
	for tag := range idx.categoryIndex {
		tags = append(tags, tag)
	}
	return tags
}

// Topics returns the distinct document topics in corpus order.
func (idx *CorpusIndex) Topics() []string {
	seen := make(map[string]struct{})
	topics := make([]string, 0)
	for _, doc := range idx.docs {
		if doc.Topic == "" {
			continue
		}
		if _, ok := seen[doc.Topic]; ok {
			continue
		}
		seen[doc.Topic] = struct{}{}
		topics = append(topics, doc.Topic)
	}
	return topics
}
