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


// Package index builds and owns the in-memory corpus index.
//
// Building an index derives, per document: normalized tokens, term
// frequencies over tokens, 3-character subwords and token bigrams, a phrase
// set, and a deterministic hashed-trigram pseudo-embedding. Corpus-wide
// document frequency, BM25-style inverse document frequency, and average
// document length are computed once at build time and frozen afterwards;
// only each document's mutable relevance stats change after that.
//
// Per-document statistics work is spread over an ants worker pool at build
// time. The query path never touches the pool and stays single-threaded.
package index
