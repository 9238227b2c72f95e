package entities

import (
	"fmt"
	"strings"
)

// PassageKind is the kind of history element a passage was cut from.
type PassageKind string

const (
	PassagePeriod PassageKind = "period"
	PassageEvent  PassageKind = "event"
	PassageScene  PassageKind = "scene"
	PassageFocus  PassageKind = "focus"
	PassageLegacy PassageKind = "legacy"
)

// ValidPassageKinds returns every passage kind.
func ValidPassageKinds() []PassageKind {
	return []PassageKind{PassagePeriod, PassageEvent, PassageScene, PassageFocus, PassageLegacy}
}

// ParsePassageKind converts user input to a PassageKind.
func ParsePassageKind(s string) (PassageKind, error) {
	k := PassageKind(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range ValidPassageKinds() {
		if k == valid {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown passage kind %q", s)
}

// Passage is a searchable piece of text taken from a history. ID is the id of
// the element it describes, so re-indexing overwrites rather than duplicates.
type Passage struct {
	ID        string      `json:"id"`
	Session   string      `json:"session"`
	Kind      PassageKind `json:"kind"`
	Label     string      `json:"label"`
	Text      string      `json:"text"`
	Tone      Tone        `json:"tone,omitempty"`
	Embedding []float32   `json:"embedding,omitempty"`
	Score     float32     `json:"score,omitempty"`
}

// Passages cuts the outline into one passage per period, event, scene, focus
// and legacy. Embeddings are left empty.
func (o Outline) Passages(session string) []Passage {
	var out []Passage
	add := func(id, label, text string, kind PassageKind, tone Tone) {
		out = append(out, Passage{
			ID:      id,
			Session: session,
			Kind:    kind,
			Label:   label,
			Text:    strings.TrimSpace(text),
			Tone:    tone,
		})
	}

	for _, p := range o.Periods {
		add(p.ID.String(), "Period: "+p.Title, p.Title+"\n"+p.Description, PassagePeriod, p.Tone)
		for _, e := range p.Events {
			add(e.ID.String(), "Event: "+e.Title, e.Title+"\n"+e.Description, PassageEvent, e.Tone)
			for _, s := range e.Scenes {
				var b strings.Builder
				b.WriteString(s.Question)
				if s.StageDescription != "" {
					b.WriteString("\n" + s.StageDescription)
				}
				for _, c := range s.Characters {
					b.WriteString("\n" + c.Name)
					if c.Thought != "" {
						b.WriteString(": " + c.Thought)
					}
				}
				if s.Answer != "" {
					b.WriteString("\n" + s.Answer)
				}
				add(s.ID.String(), "Scene: "+s.Question, b.String(), PassageScene, "")
			}
		}
	}
	for _, f := range o.Foci {
		add(f.ID.String(), "Focus: "+f.Description, f.Description, PassageFocus, "")
	}
	for _, l := range o.Legacies {
		add(l.ID.String(), "Legacy: "+l.Description, l.Description, PassageLegacy, "")
	}
	return out
}
