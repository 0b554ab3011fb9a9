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


// Package suggest derives follow-up query chips from ranked results,
// query tokens, and session history.
//
// The candidate pool mixes excerpts of lower-ranked documents, templated
// prompts over query tokens and concepts, a cross-topic comparison when
// the topic just changed, and a nudge toward the session's least-used
// intent. The pool is deduplicated, length-bounded, and shuffled before
// truncation; chip order is deliberately not reproducible.
package suggest
