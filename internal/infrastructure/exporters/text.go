package exporters

import (
	"io"

	"github.com/ersonp/microscope-solo/internal/domain/game"
)

// TextExporter renders a session as indented plain text.
type TextExporter struct{}

// Export writes g as plain text.
func (e *TextExporter) Export(w io.Writer, g *game.Game) error {
	o := g.Outline()
	ew := &errWriter{w: w}

	ew.printf("%s\n", title(o))
	ew.printf("Phase: %s\nTurn: %d\n", g.Phase(), o.TurnCounter)
	ew.printf("Yes: %s\nNo: %s\n", listOrNone(o.YesItems), listOrNone(o.NoItems))

	for _, p := range o.Periods {
		ew.printf("\n[%s] %s\n", p.Tone, p.Title)
		if p.Description != "" {
			ew.printf("    %s\n", p.Description)
		}
		for _, ev := range p.Events {
			ew.printf("  [%s] %s\n", ev.Tone, ev.Title)
			if ev.Description != "" {
				ew.printf("      %s\n", ev.Description)
			}
			for _, s := range ev.Scenes {
				ew.printf("    ? %s\n", s.Question)
				for _, c := range s.Characters {
					ew.printf("      %s\n", c.Name)
				}
				if s.Answer != "" {
					ew.printf("    = %s\n", s.Answer)
				}
			}
		}
	}

	for _, f := range o.Foci {
		ew.printf("\nFocus (turn %d): %s\n", f.ChosenAtTurn, f.Description)
	}
	for _, l := range o.Legacies {
		ew.printf("Legacy: %s", l.Description)
		if origin := legacyOrigin(o, l); origin != "" {
			ew.printf(" [%s]", origin)
		}
		ew.printf("\n")
	}

	return ew.err
}
