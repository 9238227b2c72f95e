package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/ersonp/microscope-solo/internal/application/handlers"
	"github.com/ersonp/microscope-solo/internal/domain/entities"
)

// shortID is the id prefix shown to users; it is accepted back as a reference.
func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

func printResult(w io.Writer, what string, res *handlers.PlayResult) {
	if res.ElementID != uuid.Nil {
		fmt.Fprintf(w, "%s [%s]\n", what, shortID(res.ElementID))
	} else {
		fmt.Fprintln(w, what)
	}
	fmt.Fprintf(w, "Phase: %s (turn %d)\n", res.Phase, res.Turn)
	if res.Warning != "" {
		fmt.Fprintf(w, "Warning: %s\n", res.Warning)
	}
}

func printStatus(w io.Writer, st *handlers.StatusResult) {
	o := st.Outline

	fmt.Fprintf(w, "Session: %s\n", st.Session)
	fmt.Fprintf(w, "Phase:   %s\n", st.Phase)
	fmt.Fprintf(w, "Turn:    %d\n", st.Turn)
	if o.BigPicture != "" {
		fmt.Fprintf(w, "Big picture: %s\n", o.BigPicture)
	}
	if st.CurrentFocus != "" {
		fmt.Fprintf(w, "Focus: %s\n", st.CurrentFocus)
	}
	if st.PendingLegacy != "" {
		fmt.Fprintf(w, "Legacy to explore: %s\n", st.PendingLegacy)
	}
	if len(o.YesItems) > 0 || len(o.NoItems) > 0 {
		fmt.Fprintf(w, "Palette: yes [%s] no [%s]", strings.Join(o.YesItems, ", "), strings.Join(o.NoItems, ", "))
		if o.PaletteLocked {
			fmt.Fprint(w, " (locked)")
		}
		fmt.Fprintln(w)
	}

	if len(o.Periods) > 0 {
		fmt.Fprintln(w)
		printTimeline(w, o)
	}

	fmt.Fprintf(w, "\n%s\n", st.Instructions)
	if len(st.Actions) > 0 {
		fmt.Fprintf(w, "\nAvailable: %s\n", strings.Join(st.Actions, ", "))
	}
}

func printTimeline(w io.Writer, o entities.Outline) {
	for _, p := range o.Periods {
		marker := ""
		if p.Bookend {
			marker = " *"
		}
		fmt.Fprintf(w, "%s  %-5s %s%s\n", shortID(p.ID), p.Tone, p.Title, marker)
		for _, e := range p.Events {
			fmt.Fprintf(w, "%s    %-5s %s\n", shortID(e.ID), e.Tone, e.Title)
			for _, s := range e.Scenes {
				answer := ""
				if s.Complete {
					answer = " -> " + s.Answer
				}
				fmt.Fprintf(w, "%s      ? %s%s\n", shortID(s.ID), s.Question, answer)
			}
		}
	}
}

func printPassages(w io.Writer, passages []entities.Passage) {
	if len(passages) == 0 {
		fmt.Fprintln(w, "No matching passages.")
		return
	}
	for i, p := range passages {
		id := p.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(w, "%d. [%s] %s (%.3f) %s\n", i+1, p.Kind, p.Label, p.Score, id)
	}
}
