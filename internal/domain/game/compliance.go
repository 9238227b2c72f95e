package game

import "fmt"

// CheckPaletteCompliance reports whether content avoids every item on the
// palette's No list. The check is advisory: it never blocks an operation.
// An unlocked palette is still being built and constrains nothing.
// When content is not compliant the message names the first offending item.
func (g *Game) CheckPaletteCompliance(content string) (bool, string) {
	palette := g.history.Palette()
	if !palette.Locked() {
		return true, ""
	}
	violations := palette.Violations(content)
	if len(violations) == 0 {
		return true, ""
	}
	return false, fmt.Sprintf("content violates the palette: %q is on the No list", violations[0])
}
