package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPalette_AddDeduplicates(t *testing.T) {
	p := NewPalette()

	assert.True(t, p.AddYes("AI"))
	assert.False(t, p.AddYes("AI"))
	assert.True(t, p.AddYes("Ancient ruins"))
	assert.True(t, p.AddNo("AI"), "lists are independent")

	assert.Equal(t, []string{"AI", "Ancient ruins"}, p.YesItems())
	assert.Equal(t, []string{"AI"}, p.NoItems())
}

func TestPalette_IgnoresBlankItems(t *testing.T) {
	p := NewPalette()

	assert.False(t, p.AddYes(""))
	assert.False(t, p.AddNo("   "))
	assert.True(t, p.AddNo("  Time travel "))

	assert.Empty(t, p.YesItems())
	assert.Equal(t, []string{"Time travel"}, p.NoItems())
}

func TestPalette_LockedRejectsAdditions(t *testing.T) {
	p := NewPalette()
	p.AddYes("Dragons")
	p.Lock()

	assert.True(t, p.Locked())
	assert.False(t, p.AddYes("Elves"))
	assert.False(t, p.AddNo("Guns"))
	assert.Equal(t, []string{"Dragons"}, p.YesItems())
	assert.Empty(t, p.NoItems())
}

func TestPalette_ItemsAreCopies(t *testing.T) {
	p := NewPalette()
	p.AddYes("Dragons")

	items := p.YesItems()
	items[0] = "changed"

	assert.Equal(t, []string{"Dragons"}, p.YesItems())
}

func TestPalette_Violations(t *testing.T) {
	p := NewPalette()
	p.AddNo("FTL")
	p.AddNo("time travel")

	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{name: "clean content", content: "The colony ship drifts for centuries", expected: nil},
		{name: "case insensitive", content: "An ftl drive is discovered", expected: []string{"FTL"}},
		{name: "substring match", content: "Their Time Travelers arrive", expected: []string{"time travel"}},
		{name: "multiple", content: "FTL and time travel", expected: []string{"FTL", "time travel"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.Violations(tt.content))
		})
	}
}
