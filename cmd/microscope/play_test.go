package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/microscope-solo/internal/application/handlers"
)

func TestParseCharacter(t *testing.T) {
	tests := []struct {
		raw  string
		want handlers.CharacterInput
	}{
		{"Captain", handlers.CharacterInput{Name: "Captain"}},
		{"Captain|Tired", handlers.CharacterInput{Name: "Captain", Description: "Tired"}},
		{" Captain | Tired | We should turn back ", handlers.CharacterInput{
			Name:        "Captain",
			Description: "Tired",
			Thought:     "We should turn back",
		}},
		{"Pilot||Is this it?", handlers.CharacterInput{Name: "Pilot", Thought: "Is this it?"}},
		{"Bard|Sings|of|pipes", handlers.CharacterInput{Name: "Bard", Description: "Sings", Thought: "of|pipes"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseCharacter(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCharacter_NoName(t *testing.T) {
	for _, raw := range []string{"", "  ", "|desc"} {
		_, err := parseCharacter(raw)
		assert.Error(t, err, raw)
	}
}
