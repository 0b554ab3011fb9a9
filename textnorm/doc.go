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


// Package textnorm tokenizes and canonicalizes raw text for indexing and
// query analysis.
//
// The normalization pipeline, in order:
//   - split on non-alphanumeric boundaries
//   - expand abbreviations through the alias table
//   - inject related terms through the synonym table
//   - split composite tokens (camelCase, snake_case) into sub-tokens
//   - suffix-stem each sub-token (first matching suffix wins)
//   - lowercase, then drop stop words and single-character tokens
//
// Results are memoized in a capacity-bounded cache keyed by the exact input
// string. Eviction is insertion-order (FIFO), not true LRU; a key that is
// read often is still evicted when its turn comes. This approximation is
// deliberate and load-bearing for reproducibility.
package textnorm
