// Package entities contains core domain data structures.
package entities

import (
	"fmt"
	"strings"
)

// Tone marks a Period or Event as Light or Dark.
type Tone string

const (
	ToneLight Tone = "Light"
	ToneDark  Tone = "Dark"
)

// IsValid reports whether t is one of the known tones.
func (t Tone) IsValid() bool {
	return t == ToneLight || t == ToneDark
}

// ParseTone converts user input to a Tone, ignoring case and surrounding spaces.
func ParseTone(s string) (Tone, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return ToneLight, nil
	case "dark":
		return ToneDark, nil
	default:
		return "", fmt.Errorf("invalid tone %q (want Light or Dark)", s)
	}
}
