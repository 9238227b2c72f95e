package entities

import (
	"slices"
	"strings"
)

// Palette holds the Yes and No lists that bound what the history may contain.
// Items keep insertion order and are unique within each list.
type Palette struct {
	yes    []string
	no     []string
	locked bool
}

// NewPalette returns an empty, unlocked palette.
func NewPalette() *Palette {
	return &Palette{
		yes: []string{},
		no:  []string{},
	}
}

// AddYes appends item to the Yes list. It reports whether the list changed.
func (p *Palette) AddYes(item string) bool {
	return p.add(&p.yes, item)
}

// AddNo appends item to the No list. It reports whether the list changed.
func (p *Palette) AddNo(item string) bool {
	return p.add(&p.no, item)
}

func (p *Palette) add(list *[]string, item string) bool {
	item = strings.TrimSpace(item)
	if p.locked || item == "" || slices.Contains(*list, item) {
		return false
	}
	*list = append(*list, item)
	return true
}

// Lock freezes both lists.
func (p *Palette) Lock() {
	p.locked = true
}

// Locked reports whether the palette accepts further items.
func (p *Palette) Locked() bool {
	return p.locked
}

// YesItems returns a copy of the Yes list.
func (p *Palette) YesItems() []string {
	return slices.Clone(p.yes)
}

// NoItems returns a copy of the No list.
func (p *Palette) NoItems() []string {
	return slices.Clone(p.no)
}

// Violations returns the No items that occur in content, compared case-insensitively.
func (p *Palette) Violations(content string) []string {
	lower := strings.ToLower(content)
	var found []string
	for _, item := range p.no {
		if strings.Contains(lower, strings.ToLower(item)) {
			found = append(found, item)
		}
	}
	return found
}
