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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidFact indicates a corpus fact failed validation.
	ErrInvalidFact = errors.New("invalid fact")

	// ErrEmptyText indicates the Text field is empty.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrNoKeywords indicates the Keywords field is empty.
	ErrNoKeywords = errors.New("at least one keyword is required")

	// ErrInvalidIntent indicates an invalid Intent value.
	ErrInvalidIntent = errors.New("invalid intent")

	// ErrInvalidWeight indicates a document weight outside its allowed range.
	ErrInvalidWeight = errors.New("weight out of range")
)
