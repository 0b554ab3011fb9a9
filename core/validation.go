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

import (
	"fmt"
	"strings"
)

// ValidateFact validates a raw corpus fact according to domain rules.
//
// Validation rules:
//   - Text must not be empty or whitespace-only
//   - At least one keyword is required
//
// NOT validated (defaulted at index build):
//   - Topic, Category, Subtopics (may be empty)
//   - Priority (0 means use the default weight)
//
// Malformed facts are rejected here, at load time, never at query time.
func ValidateFact(fact *Fact) error {
	if fact == nil {
		return fmt.Errorf("%w: fact is nil", ErrInvalidFact)
	}

	if strings.TrimSpace(fact.Text) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFact, ErrEmptyText)
	}

	if len(fact.Keywords) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidFact, ErrNoKeywords)
	}

	return nil
}

// ValidateIntent validates that an Intent has a valid value.
func ValidateIntent(intent Intent) error {
	if intent < IntentDefinition || intent > IntentGeneral {
		return fmt.Errorf("%w: value %d", ErrInvalidIntent, intent)
	}
	return nil
}

// ValidateWeight checks that a document weight is within policy range.
func ValidateWeight(weight float64) error {
	if weight < WeightFloor || weight > WeightCeil {
		return fmt.Errorf("%w: %0.3f not in [%0.1f, %0.1f]", ErrInvalidWeight, weight, WeightFloor, WeightCeil)
	}
	return nil
}
