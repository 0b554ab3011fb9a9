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


// Package rank scores every corpus document against an analyzed query.
//
// The per-document score is a weighted blend of four signals:
//   - BM25 over the shared terms of query and document
//   - phrase overlap between query and document n-grams
//   - a fuzzy bonus from IDF-weighted trigram similarity
//   - dense cosine similarity between pseudo-embeddings
//
// plus session-context boosts, with the whole sum multiplied by the
// document's adaptive weight. Results below the score threshold are
// dropped; an empty result list is a valid outcome, not an error.
//
// Ranking has one deliberate side effect: the top results get their view
// counters and adaptive weights updated. Together with the explicit
// feedback path these are the only two writers of document stats.
package rank
