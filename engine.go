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


package askit

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/poiesic/askit/compose"
	"github.com/poiesic/askit/core"
	"github.com/poiesic/askit/index"
	"github.com/poiesic/askit/query"
	"github.com/poiesic/askit/rank"
	"github.com/poiesic/askit/router"
	"github.com/poiesic/askit/session"
	"github.com/poiesic/askit/storage"
	"github.com/poiesic/askit/suggest"
	"github.com/poiesic/askit/textnorm"
)

const (
	responseCacheSize = 128
	responseCacheTTL  = 5 * time.Minute
	bookmarkCapacity  = 50

	greetingMessage           = `Ask me anything. Try "what is ..." or "compare X and Y".`
	serviceUnavailableMessage = "The service is unavailable right now. Please try again later."
)

// ErrCorpusRequired is returned when New is called without an index.
var ErrCorpusRequired = errors.New("corpus index required")

// Engine wires the query pipeline together: one analyzer, ranker,
// composer, and suggestion generator over a shared corpus index and
// session. Queries are processed one at a time; the engine is not safe
// for concurrent use.
type Engine struct {
	corpus     *index.CorpusIndex
	normalizer *textnorm.Normalizer
	analyzer   *query.Analyzer
	ranker     *rank.Ranker
	composer   *compose.Composer
	suggester  *suggest.Generator

	sess      *session.Context
	store     storage.Store
	handler   router.QueryHandler
	respCache *expirable.LRU[string, core.Response]
	bookmarks []core.Bookmark

	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	sessionID  string
	normalizer *textnorm.Normalizer
	handler    router.QueryHandler
	logger     *slog.Logger
}

// WithSessionID resumes the named session instead of generating a fresh ID.
func WithSessionID(id string) Option {
	return func(o *engineOptions) {
		o.sessionID = id
	}
}

// WithNormalizer sets the normalizer shared across the pipeline. It should
// be configured the same way as the one the corpus index was built with.
func WithNormalizer(normalizer *textnorm.Normalizer) Option {
	return func(o *engineOptions) {
		o.normalizer = normalizer
	}
}

// WithRouter sets the external handler for service intents. Without a
// handler, service queries degrade to a service-unavailable response.
func WithRouter(handler router.QueryHandler) Option {
	return func(o *engineOptions) {
		o.handler = handler
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// New creates an Engine over a built corpus index. The store may be nil
// for in-memory-only operation; a reachable store restores the session
// snapshot, decayed document stats, and bookmarks before the first query.
func New(corpus *index.CorpusIndex, store storage.Store, opts ...Option) (*Engine, error) {
	if corpus == nil {
		return nil, ErrCorpusRequired
	}

	options := &engineOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.sessionID == "" {
		options.sessionID = uuid.NewString()
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	normalizer := options.normalizer
	if normalizer == nil {
		var err error
		normalizer, err = textnorm.NewNormalizer()
		if err != nil {
			return nil, err
		}
	}

	analyzer, err := query.NewAnalyzer(normalizer, query.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}
	ranker, err := rank.NewRanker(corpus, rank.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}
	composer, err := compose.NewComposer(normalizer, compose.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}
	suggester, err := suggest.NewGenerator(suggest.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}
	sess, err := session.New(options.sessionID)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		corpus:     corpus,
		normalizer: normalizer,
		analyzer:   analyzer,
		ranker:     ranker,
		composer:   composer,
		suggester:  suggester,
		sess:       sess,
		store:      store,
		handler:    options.handler,
		respCache:  expirable.NewLRU[string, core.Response](responseCacheSize, nil, responseCacheTTL),
		logger:     options.logger,
	}

	if store != nil {
		e.restore(context.Background())
	}

	return e, nil
}

// restore loads persisted state. A missing key means a fresh session;
// a store failure is logged and treated the same way.
func (e *Engine) restore(ctx context.Context) {
	snap, err := e.store.LoadSession(ctx, e.sess.ID())
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		e.logger.Warn("session restore failed", "err", err)
	default:
		e.sess.Restore(snap)
	}

	stats, err := e.store.LoadDocStats(ctx, e.sess.ID())
	if err != nil {
		e.logger.Warn("doc stats restore failed", "err", err)
	} else {
		now := time.Now()
		for id, st := range stats {
			doc, ok := e.corpus.Document(id)
			if !ok {
				continue
			}
			rank.DecayViewCount(&st, now)
			doc.Stats = st
		}
	}

	bookmarks, err := e.store.LoadBookmarks(ctx, e.sess.ID())
	if err != nil {
		e.logger.Warn("bookmark restore failed", "err", err)
	} else {
		e.bookmarks = bookmarks
	}
}

// ProcessQuery runs one query through the pipeline and returns the
// composed response. Every failure mode degrades to a textual response;
// the session is never terminated by a query.
func (e *Engine) ProcessQuery(ctx context.Context, raw string) core.Response {
	if strings.TrimSpace(raw) == "" {
		return core.Response{Main: greetingMessage, Citations: map[int]core.ID{}}
	}

	key := e.cacheKey(raw, e.analyzer.Intent(raw))
	if resp, ok := e.respCache.Get(key); ok {
		return resp
	}

	analysis := e.analyzer.Analyze(raw, e.sess, e.corpus)

	if analysis.Intent == core.IntentService {
		return e.routeService(ctx, raw)
	}

	results := e.ranker.Rank(analysis, e.sess)
	resp := e.composer.Compose(raw, analysis.Intent, results)

	e.sess.Record(core.HistoryEntry{
		Query:     raw,
		Topic:     resp.Topic,
		Intent:    analysis.Intent,
		Entities:  analysis.Concepts,
		Timestamp: time.Now(),
	}, resp.Category, len(results) > 0)

	resp.Suggestions = e.suggester.Generate(suggest.Input{
		Tokens:   analysis.Vector.Tokens,
		Intent:   analysis.Intent,
		Concepts: analysis.Concepts,
		Ranked:   results,
		Topic:    resp.Topic,
	}, e.sess)

	e.respCache.Add(key, resp)
	e.persist(ctx)

	return resp
}

// routeService hands a service-intent query to the external handler.
// Handler absence or failure degrades to a fixed response; the corpus
// path is unaffected.
func (e *Engine) routeService(ctx context.Context, raw string) core.Response {
	if e.handler == nil {
		return core.Response{Topic: "service", Main: serviceUnavailableMessage, Citations: map[int]core.ID{}}
	}

	resp, err := e.handler.HandleQuery(ctx, raw)
	if err != nil {
		e.logger.Warn("service query failed", "err", err)
		return core.Response{Topic: "service", Main: serviceUnavailableMessage, Citations: map[int]core.ID{}}
	}
	return resp
}

// ApplyFeedback forwards a user feedback signal to the ranker and
// persists the updated stats.
func (e *Engine) ApplyFeedback(ctx context.Context, docID core.ID, delta int) error {
	if err := e.ranker.ApplyFeedback(docID, delta); err != nil {
		return err
	}
	e.persist(ctx)
	return nil
}

// SaveQuery bookmarks a query. The list is bounded; the oldest bookmark
// is evicted first. Re-saving the same text refreshes nothing and keeps
// the original position.
func (e *Engine) SaveQuery(ctx context.Context, text string) core.Bookmark {
	id := core.IDFromContent(text)
	for _, b := range e.bookmarks {
		if b.Id == id {
			return b
		}
	}

	bookmark := core.Bookmark{Id: id, Text: text, SavedAt: time.Now()}
	e.bookmarks = append(e.bookmarks, bookmark)
	if len(e.bookmarks) > bookmarkCapacity {
		e.bookmarks = e.bookmarks[len(e.bookmarks)-bookmarkCapacity:]
	}

	if e.store != nil {
		if err := e.store.SaveBookmarks(ctx, e.sess.ID(), e.bookmarks); err != nil {
			e.logger.Warn("bookmark persist failed", "err", err)
		}
	}
	return bookmark
}

// Bookmarks returns the saved queries, oldest first.
func (e *Engine) Bookmarks() []core.Bookmark {
	return e.bookmarks
}

// Session returns the engine's session context.
func (e *Engine) Session() *session.Context {
	return e.sess
}

// Corpus returns the engine's corpus index.
func (e *Engine) Corpus() *index.CorpusIndex {
	return e.corpus
}

// Close persists the final state and closes the store.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	e.persist(context.Background())
	return e.store.Close()
}

// persist writes doc stats and the session snapshot. Store failures are
// logged, never surfaced; the engine keeps operating in memory.
func (e *Engine) persist(ctx context.Context) {
	if e.store == nil {
		return
	}

	stats := make(map[core.ID]core.DocStats, e.corpus.Len())
	for _, doc := range e.corpus.Documents() {
		stats[doc.Id] = doc.Stats
	}
	if err := e.store.SaveDocStats(ctx, e.sess.ID(), stats); err != nil {
		e.logger.Warn("doc stats persist failed", "err", err)
	}

	if err := e.store.SaveSession(ctx, e.sess.ID(), e.sess.Snapshot()); err != nil {
		e.logger.Warn("session persist failed", "err", err)
	}
}

// cacheKey hashes the normalized form of a query so trivially different
// phrasings of the same words share a cache slot. The detected intent is
// part of the key: interrogatives are stop words, so "X" and "what is X"
// normalize identically while their responses do not match.
func (e *Engine) cacheKey(raw string, intent core.Intent) string {
	tokens := e.normalizer.Normalize(raw)
	if len(tokens) == 0 {
		return intent.String() + ":" + strings.ToLower(strings.TrimSpace(raw))
	}
	joined := strings.Join(tokens, " ")
	return intent.String() + ":" + strconv.FormatUint(uint64(core.IDFromContent(joined)), 16)
}
