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


// Package storage provides the persistence abstraction layer for askit.
//
// This package defines repository interfaces that decouple storage
// implementation from the query engine. Persisted state is scoped per
// session: document view and feedback statistics, the session snapshot,
// and the bookmarked-query list.
//
// # Constructor Return Type Pattern
//
// Public backend constructors return the storage.Store interface rather
// than a concrete type:
//
//	store, err := badger.NewStore(path)  // returns storage.Store
//
// so the engine never couples to BadgerDB specifics and tests can swap in
// an in-memory store.
//
// # Absence Semantics
//
// A missing key is not an error for list- or map-shaped state: loading
// stats or bookmarks for an unknown session yields empty collections.
// Only LoadSession distinguishes absence, via storage.ErrNotFound, so the
// caller can tell a fresh session from a persisted empty one.
//
// # Serialization
//
// All values are encoded with the MUS binary format (mus-go). The
// serializers live next to the types they encode, in core and session.
package storage
