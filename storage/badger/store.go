package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/askit/core"
	"github.com/poiesic/askit/session"
	"github.com/poiesic/askit/storage"
)

// Store implements storage.Store on a BadgerDB backend.
type Store struct {
	backend *Backend
}

var _ storage.Store = (*Store)(nil)

// NewStore opens a BadgerDB-backed store at the given path.
func NewStore(path string) (storage.Store, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return &Store{backend: backend}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.backend.Close()
}

// SaveDocStats stores the full stats map for a session.
func (s *Store) SaveDocStats(ctx context.Context, sessionID string, stats map[core.ID]core.DocStats) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeDocStatsKey(sessionID), storage.MarshalDocStats(stats)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadDocStats returns the stats map for a session, empty when none is stored.
func (s *Store) LoadDocStats(ctx context.Context, sessionID string) (map[core.ID]core.DocStats, error) {
	stats := make(map[core.ID]core.DocStats)
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDocStatsKey(sessionID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			stats, err = storage.UnmarshalDocStats(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// SaveSession stores a session snapshot.
func (s *Store) SaveSession(ctx context.Context, sessionID string, snap session.Snapshot) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeSessionKey(sessionID), storage.MarshalSnapshot(snap)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadSession returns the stored snapshot, or storage.ErrNotFound when the
// session has never been persisted.
func (s *Store) LoadSession(ctx context.Context, sessionID string) (session.Snapshot, error) {
	var snap session.Snapshot
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeSessionKey(sessionID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			snap, err = storage.UnmarshalSnapshot(val)
			return err
		})
	}, false)
	return snap, err
}

// SaveBookmarks stores the bookmark list for a session.
func (s *Store) SaveBookmarks(ctx context.Context, sessionID string, bookmarks []core.Bookmark) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeBookmarkKey(sessionID), storage.MarshalBookmarks(bookmarks)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadBookmarks returns the bookmark list for a session, empty when none
// is stored.
func (s *Store) LoadBookmarks(ctx context.Context, sessionID string) ([]core.Bookmark, error) {
	var bookmarks []core.Bookmark
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeBookmarkKey(sessionID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			bookmarks, err = storage.UnmarshalBookmarks(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return bookmarks, nil
}
