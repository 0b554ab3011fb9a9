package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/askit/core"
	"github.com/poiesic/askit/session"
	"github.com/poiesic/askit/storage"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestDocStats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("unknown session yields empty map", func(t *testing.T) {
		stats, err := store.LoadDocStats(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, stats)
	})

	t.Run("round trip", func(t *testing.T) {
		viewed := time.UnixMicro(1700000000000000).UTC()
		stats := map[core.ID]core.DocStats{
			0: {ViewCount: 2, FeedbackScore: 1, LastViewedAt: viewed, Weight: 0.9},
			3: {ViewCount: 5, FeedbackScore: -1, LastViewedAt: viewed, Weight: core.WeightFloor},
		}
		require.NoError(t, store.SaveDocStats(ctx, "sess-1", stats))

		got, err := store.LoadDocStats(ctx, "sess-1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, stats[0].Weight, got[0].Weight)
		assert.Equal(t, stats[3].FeedbackScore, got[3].FeedbackScore)
	})

	t.Run("save replaces previous state", func(t *testing.T) {
		require.NoError(t, store.SaveDocStats(ctx, "sess-2", map[core.ID]core.DocStats{
			0: {Weight: 0.8},
			1: {Weight: 0.8},
		}))
		require.NoError(t, store.SaveDocStats(ctx, "sess-2", map[core.ID]core.DocStats{
			0: {Weight: 0.95},
		}))

		got, err := store.LoadDocStats(ctx, "sess-2")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 0.95, got[0].Weight)
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		require.NoError(t, store.SaveDocStats(ctx, "sess-a", map[core.ID]core.DocStats{0: {Weight: 0.8}}))

		got, err := store.LoadDocStats(ctx, "sess-b")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestSession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("unknown session returns ErrNotFound", func(t *testing.T) {
		_, err := store.LoadSession(ctx, "nobody")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("round trip", func(t *testing.T) {
		snap := session.Snapshot{
			CurrentTopic: "quantum",
			LastTopic:    "biology",
			Confidence:   0.7,
			History: []core.HistoryEntry{
				{Query: "what is quantum", Topic: "quantum", Intent: core.IntentDefinition, Timestamp: time.UnixMicro(1700000000000000).UTC()},
			},
			IntentFrequency: map[core.Intent]int{core.IntentDefinition: 1},
		}
		require.NoError(t, store.SaveSession(ctx, "sess-1", snap))

		got, err := store.LoadSession(ctx, "sess-1")
		require.NoError(t, err)
		assert.Equal(t, snap.CurrentTopic, got.CurrentTopic)
		assert.Equal(t, snap.Confidence, got.Confidence)
		require.Len(t, got.History, 1)
		assert.Equal(t, snap.History[0].Query, got.History[0].Query)
	})
}

func TestBookmarks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("unknown session yields empty list", func(t *testing.T) {
		bookmarks, err := store.LoadBookmarks(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, bookmarks)
	})

	t.Run("round trip preserves order", func(t *testing.T) {
		saved := time.UnixMicro(1700000000000000).UTC()
		bookmarks := []core.Bookmark{
			{Id: core.IDFromContent("first"), Text: "first", SavedAt: saved},
			{Id: core.IDFromContent("second"), Text: "second", SavedAt: saved.Add(time.Second)},
		}
		require.NoError(t, store.SaveBookmarks(ctx, "sess-1", bookmarks))

		got, err := store.LoadBookmarks(ctx, "sess-1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "first", got[0].Text)
		assert.Equal(t, "second", got[1].Text)
	})
}
