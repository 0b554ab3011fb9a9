package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities. Document IDs are assigned
// sequentially at index build time; bookmark IDs are content-hashed.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Intent classifies the purpose of a query.
type Intent int

const (
	// IntentDefinition asks what something is.
	IntentDefinition Intent = iota + 1
	// IntentComparison asks how two things relate.
	IntentComparison
	// IntentList asks for an enumeration.
	IntentList
	// IntentService is answered by an external service, not the corpus.
	IntentService
	// IntentGeneral is the catch-all.
	IntentGeneral
)

// String returns the intent name used in rule tables and suggestions.
func (i Intent) String() string {
	switch i {
	case IntentDefinition:
		return "definition"
	case IntentComparison:
		return "comparison"
	case IntentList:
		return "list"
	case IntentService:
		return "service"
	case IntentGeneral:
		return "general"
	}
	return "unknown"
}

// FactMetadata carries optional corpus metadata for a raw fact.
type FactMetadata struct {
	Subtopics []string
	Category  string
	Priority  float64 // Initial document weight; 0 means use the default
	UpdatedAt time.Time
}

// Fact is a raw corpus entry as supplied by the corpus source, before indexing.
type Fact struct {
	Text     string
	Keywords []string
	Topic    string
	Metadata FactMetadata
}

// Document weight policy. The floor is deliberately above zero so a heavily
// down-voted document never disappears from ranking entirely.
const (
	WeightFloor   = 0.7
	WeightCeil    = 1.0
	DefaultWeight = 0.8
)

// DocStats is the mutable relevance state of an indexed document.
// It is the only part of a document that changes after index build,
// and the only part that is persisted between sessions.
type DocStats struct {
	ViewCount     float64
	FeedbackScore int
	LastViewedAt  time.Time
	Weight        float64
}

// ClampWeight forces the weight back into [WeightFloor, WeightCeil].
// Every weight mutation must re-clamp through this method.
func (s *DocStats) ClampWeight() {
	if s.Weight < WeightFloor {
		s.Weight = WeightFloor
	}
	if s.Weight > WeightCeil {
		s.Weight = WeightCeil
	}
}

// Document is a corpus fact enriched with index-time statistics.
// Everything except Stats is frozen once the index is built.
type Document struct {
	Id        ID
	Text      string
	Keywords  []string
	Topic     string
	Category  string
	Subtopics []string

	Tokens    []string
	TermFreq  map[string]int
	Phrases   map[string]struct{}
	Embedding []float32 // L2-normalized pseudo-embedding; zero vector when no subwords
	DocLength int

	Stats DocStats
}

// HasPhrase reports whether the document contains the given token n-gram.
func (d *Document) HasPhrase(phrase string) bool {
	_, ok := d.Phrases[phrase]
	return ok
}

// QueryVector is the ephemeral vectorized form of a query. It is discarded
// after the query completes, except for the parts copied into history.
type QueryVector struct {
	Raw         string
	Tokens      []string
	Phrases     map[string]struct{}
	TermWeights map[string]float64
	Embedding   []float32
}

// RankedResult pairs a document with its relevance score for one query.
// It is a transient view and is never persisted.
type RankedResult struct {
	Document  *Document
	Score     float64
	Breakdown ScoreBreakdown
}

// ScoreBreakdown records the individual signals that produced a score.
type ScoreBreakdown struct {
	BM25   float64
	Phrase float64
	Fuzzy  float64
	Dense  float64
	Boosts float64
	Weight float64 // Adaptive document weight the blended sum was multiplied by
}

// HistoryEntry is one processed query as remembered by the session.
type HistoryEntry struct {
	Query     string
	Topic     string
	Intent    Intent
	Entities  []string
	Timestamp time.Time
}

// Bookmark is a query saved by the user for later.
type Bookmark struct {
	Id      ID
	Text    string
	SavedAt time.Time
}

// Response is the canonical answer shape returned for every query,
// regardless of which intent strategy composed it.
type Response struct {
	Topic       string
	Category    string
	Main        string
	Supporting  []string
	Citations   map[int]ID // citation index -> document; values are opaque reference numbers
	Suggestions []string
}
