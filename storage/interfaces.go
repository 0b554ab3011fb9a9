package storage

import (
	"context"

	"github.com/poiesic/askit/core"
	"github.com/poiesic/askit/session"
)

// StatsRepository persists per-document view and feedback statistics,
// scoped by session.
type StatsRepository interface {
	// SaveDocStats stores the full stats map for a session, replacing
	// whatever was stored before.
	SaveDocStats(ctx context.Context, sessionID string, stats map[core.ID]core.DocStats) error

	// LoadDocStats returns the stats map for a session. An unknown
	// session yields an empty map, not an error.
	LoadDocStats(ctx context.Context, sessionID string) (map[core.ID]core.DocStats, error)
}

// SessionRepository persists session snapshots.
type SessionRepository interface {
	// SaveSession stores a session snapshot, replacing any previous one.
	SaveSession(ctx context.Context, sessionID string, snap session.Snapshot) error

	// LoadSession returns the snapshot for a session.
	// Returns ErrNotFound when no snapshot has been stored.
	LoadSession(ctx context.Context, sessionID string) (session.Snapshot, error)
}

// BookmarkRepository persists the bookmarked-query list, scoped by session.
type BookmarkRepository interface {
	// SaveBookmarks stores the bookmark list for a session, replacing
	// whatever was stored before. Ordering is preserved.
	SaveBookmarks(ctx context.Context, sessionID string, bookmarks []core.Bookmark) error

	// LoadBookmarks returns the bookmark list for a session in stored
	// order. An unknown session yields an empty list, not an error.
	LoadBookmarks(ctx context.Context, sessionID string) ([]core.Bookmark, error)
}

// Store combines all persistence operations behind one handle.
// Implementations must be safe for concurrent use.
type Store interface {
	StatsRepository
	SessionRepository
	BookmarkRepository

	// Close closes the storage backend and releases resources.
	Close() error
}
