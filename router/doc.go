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


// Package router defines the escape hatch for queries the corpus cannot
// answer. Service intents (weather, time, news, prices) are handed to an
// external query-handling service and its answer is rendered through the
// same Response shape as corpus-backed answers.
//
// The llm subpackage implements the handler against OpenAI-compatible
// chat APIs; the mock subpackage provides a test double. A handler
// failure is never fatal to the engine, which degrades to a
// service-unavailable response and keeps serving the corpus path.
package router
