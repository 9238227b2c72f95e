package exporters

import (
	"io"
	"strings"

	"github.com/ersonp/microscope-solo/internal/domain/entities"
	"github.com/ersonp/microscope-solo/internal/domain/game"
)

// MarkdownExporter renders a session as a Markdown document.
type MarkdownExporter struct{}

// Export writes g as Markdown.
func (e *MarkdownExporter) Export(w io.Writer, g *game.Game) error {
	o := g.Outline()
	ew := &errWriter{w: w}

	ew.printf("# %s\n\n", title(o))
	ew.printf("_Phase: %s. Turn %d._\n\n", g.Phase(), o.TurnCounter)

	ew.printf("## Palette\n\n")
	ew.printf("- **Yes:** %s\n", listOrNone(o.YesItems))
	ew.printf("- **No:** %s\n\n", listOrNone(o.NoItems))

	ew.printf("## Timeline\n")
	for _, p := range o.Periods {
		ew.printf("\n### %s (%s)", p.Title, p.Tone)
		if p.Bookend {
			ew.printf(" _bookend_")
		}
		ew.printf("\n")
		if p.Description != "" {
			ew.printf("\n%s\n", p.Description)
		}
		for _, ev := range p.Events {
			ew.printf("\n#### %s (%s)\n", ev.Title, ev.Tone)
			if ev.Description != "" {
				ew.printf("\n%s\n", ev.Description)
			}
			for _, s := range ev.Scenes {
				writeMarkdownScene(ew, s)
			}
		}
	}

	if len(o.Foci) > 0 {
		ew.printf("\n## Foci\n\n")
		for i, f := range o.Foci {
			ew.printf("%d. %s (turn %d)\n", i+1, f.Description, f.ChosenAtTurn)
		}
	}

	if len(o.Legacies) > 0 {
		ew.printf("\n## Legacies\n\n")
		for _, l := range o.Legacies {
			ew.printf("- %s", l.Description)
			if origin := legacyOrigin(o, l); origin != "" {
				ew.printf(" (%s)", origin)
			}
			if f := focusDescription(o, l.OriginFocusID); f != "" {
				ew.printf(", from focus %q", f)
			}
			ew.printf("\n")
		}
	}

	return ew.err
}

func writeMarkdownScene(ew *errWriter, s entities.SceneOutline) {
	ew.printf("\n- **Scene:** %s", s.Question)
	if s.Dictated {
		ew.printf(" _(dictated)_")
	}
	ew.printf("\n")
	if s.StageDescription != "" {
		ew.printf("  - Setting: %s\n", s.StageDescription)
	}
	for _, c := range s.Characters {
		ew.printf("  - %s", c.Name)
		if c.Description != "" {
			ew.printf(", %s", c.Description)
		}
		if c.HasThought {
			ew.printf(": _\"%s\"_", c.Thought)
		}
		ew.printf("\n")
	}
	if s.Answer != "" {
		ew.printf("  - **Answer:** %s\n", s.Answer)
	}
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
