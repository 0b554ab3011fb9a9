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


package rank

import "errors"

var (
	// ErrIndexRequired is returned when a corpus index is not provided.
	ErrIndexRequired = errors.New("corpus index required")

	// ErrDocumentNotFound is returned when feedback targets an unknown document.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidFeedback is returned when a feedback delta is not +1 or -1.
	ErrInvalidFeedback = errors.New("feedback delta must be +1 or -1")
)
