package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFact(t *testing.T) {
	tests := []struct {
		name    string
		fact    *Fact
		wantErr error
	}{
		{
			name: "valid fact",
			fact: &Fact{
				Text:     "Quantum computers use qubits.",
				Keywords: []string{"quantum", "qubit"},
				Topic:    "quantum",
			},
			wantErr: nil,
		},
		{
			name:    "nil fact",
			fact:    nil,
			wantErr: ErrInvalidFact,
		},
		{
			name: "empty text",
			fact: &Fact{
				Keywords: []string{"quantum"},
			},
			wantErr: ErrEmptyText,
		},
		{
			name: "whitespace-only text",
			fact: &Fact{
				Text:     "   \t\n",
				Keywords: []string{"quantum"},
			},
			wantErr: ErrEmptyText,
		},
		{
			name: "no keywords",
			fact: &Fact{
				Text: "Quantum computers use qubits.",
			},
			wantErr: ErrNoKeywords,
		},
		{
			name: "missing topic is allowed",
			fact: &Fact{
				Text:     "Quantum computers use qubits.",
				Keywords: []string{"quantum"},
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFact(tt.fact)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantErr != ErrInvalidFact {
				assert.ErrorIs(t, err, ErrInvalidFact)
			}
		})
	}
}

func TestValidateIntent(t *testing.T) {
	for _, intent := range []Intent{IntentDefinition, IntentComparison, IntentList, IntentService, IntentGeneral} {
		assert.NoError(t, ValidateIntent(intent))
	}

	assert.ErrorIs(t, ValidateIntent(Intent(0)), ErrInvalidIntent)
	assert.ErrorIs(t, ValidateIntent(Intent(99)), ErrInvalidIntent)
}

func TestValidateWeight(t *testing.T) {
	assert.NoError(t, ValidateWeight(WeightFloor))
	assert.NoError(t, ValidateWeight(DefaultWeight))
	assert.NoError(t, ValidateWeight(WeightCeil))
	assert.ErrorIs(t, ValidateWeight(0.5), ErrInvalidWeight)
	assert.ErrorIs(t, ValidateWeight(1.2), ErrInvalidWeight)
}
