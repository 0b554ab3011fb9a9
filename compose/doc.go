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


// Package compose turns ranked documents into a templated, cited answer.
//
// Each intent has its own strategy: definition picks one main document,
// comparison up to two biased toward the compared entities, list and
// general up to three with a topic-diversity constraint for general.
// Supporting snippets are appended from the remaining ranked documents
// while the running word count stays under the response budget. Every
// emitted fact is highlighted against the query and tagged with a
// sequential citation index.
//
// Composition never fails: a missing definition match, unparseable
// comparison entities, or an empty ranked list each degrade to a specific
// fallback response.
package compose
