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


package storage

import (
	"github.com/mus-format/mus-go/ord"

	"github.com/poiesic/askit/core"
	"github.com/poiesic/askit/session"
)

var (
	docStatsMapMUS   = ord.NewMapSer[core.ID, core.DocStats](core.IDMUS, core.DocStatsMUS)
	bookmarkSliceMUS = ord.NewSliceSer[core.Bookmark](core.BookmarkMUS)
)

// MarshalDocStats serializes a per-session stats map to bytes.
func MarshalDocStats(stats map[core.ID]core.DocStats) []byte {
	buf := make([]byte, docStatsMapMUS.Size(stats))
	docStatsMapMUS.Marshal(stats, buf)
	return buf
}

// UnmarshalDocStats deserializes a per-session stats map from bytes.
func UnmarshalDocStats(data []byte) (map[core.ID]core.DocStats, error) {
	stats, _, err := docStatsMapMUS.Unmarshal(data)
	return stats, err
}

// MarshalSnapshot serializes a session snapshot to bytes.
func MarshalSnapshot(snap session.Snapshot) []byte {
	buf := make([]byte, session.SnapshotMUS.Size(snap))
	session.SnapshotMUS.Marshal(snap, buf)
	return buf
}

// UnmarshalSnapshot deserializes a session snapshot from bytes.
func UnmarshalSnapshot(data []byte) (session.Snapshot, error) {
	snap, _, err := session.SnapshotMUS.Unmarshal(data)
	return snap, err
}

// MarshalBookmarks serializes a bookmark list to bytes.
func MarshalBookmarks(bookmarks []core.Bookmark) []byte {
	buf := make([]byte, bookmarkSliceMUS.Size(bookmarks))
	bookmarkSliceMUS.Marshal(bookmarks, buf)
	return buf
}

// UnmarshalBookmarks deserializes a bookmark list from bytes.
func UnmarshalBookmarks(data []byte) ([]core.Bookmark, error) {
	bookmarks, _, err := bookmarkSliceMUS.Unmarshal(data)
	return bookmarks, err
}
