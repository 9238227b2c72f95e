package entities

import "github.com/google/uuid"

// Outline is a detached, read-only copy of a History. Exporters and indexers
// walk it instead of the live aggregate so they cannot mutate the session.
type Outline struct {
	BigPicture    string
	YesItems      []string
	NoItems       []string
	PaletteLocked bool
	Periods       []PeriodOutline
	Foci          []FocusOutline
	Legacies      []LegacyOutline
	TurnCounter   int
}

// PeriodOutline is the read-only view of a Period.
type PeriodOutline struct {
	ID          uuid.UUID
	Title       string
	Description string
	Tone        Tone
	Index       int64
	Bookend     bool
	Events      []EventOutline
}

// EventOutline is the read-only view of an Event.
type EventOutline struct {
	ID          uuid.UUID
	Title       string
	Description string
	Tone        Tone
	Index       int64
	Scenes      []SceneOutline
}

// SceneOutline is the read-only view of a Scene.
type SceneOutline struct {
	ID               uuid.UUID
	Question         string
	Dictated         bool
	StageDescription string
	Characters       []CharacterOutline
	Answer           string
	Complete         bool
}

// CharacterOutline is a scene character together with any revealed thought.
type CharacterOutline struct {
	ID          uuid.UUID
	Name        string
	Description string
	Thought     string
	HasThought  bool
}

// FocusOutline is the read-only view of a Focus.
type FocusOutline struct {
	ID           uuid.UUID
	Description  string
	ChosenAtTurn int
}

// LegacyOutline is the read-only view of a Legacy.
type LegacyOutline struct {
	ID              uuid.UUID
	Description     string
	OriginFocusID   uuid.UUID
	OriginElementID uuid.UUID
}

// Outline builds a deep copy of the history.
func (h *History) Outline() Outline {
	o := Outline{
		BigPicture:    h.bigPicture,
		YesItems:      h.palette.YesItems(),
		NoItems:       h.palette.NoItems(),
		PaletteLocked: h.palette.locked,
		Periods:       make([]PeriodOutline, 0, len(h.periods)),
		Foci:          make([]FocusOutline, 0, len(h.foci)),
		Legacies:      make([]LegacyOutline, 0, len(h.legacies)),
		TurnCounter:   h.turnCounter,
	}

	for _, p := range h.periods {
		po := PeriodOutline{
			ID:          p.id,
			Title:       p.Title,
			Description: p.Description,
			Tone:        p.Tone,
			Index:       p.index,
			Bookend:     p.bookend,
			Events:      make([]EventOutline, 0, len(p.events)),
		}
		for _, e := range p.events {
			eo := EventOutline{
				ID:          e.id,
				Title:       e.Title,
				Description: e.Description,
				Tone:        e.Tone,
				Index:       e.index,
				Scenes:      make([]SceneOutline, 0, len(e.scenes)),
			}
			for _, s := range e.scenes {
				eo.Scenes = append(eo.Scenes, s.outline())
			}
			po.Events = append(po.Events, eo)
		}
		o.Periods = append(o.Periods, po)
	}

	for _, f := range h.foci {
		o.Foci = append(o.Foci, FocusOutline{
			ID:           f.id,
			Description:  f.description,
			ChosenAtTurn: f.chosenAtTurn,
		})
	}
	for _, l := range h.legacies {
		o.Legacies = append(o.Legacies, LegacyOutline{
			ID:              l.id,
			Description:     l.description,
			OriginFocusID:   l.originFocusID,
			OriginElementID: l.originElementID,
		})
	}

	return o
}

func (s *Scene) outline() SceneOutline {
	so := SceneOutline{
		ID:               s.id,
		Question:         s.Question,
		Dictated:         s.Dictated,
		StageDescription: s.StageDescription,
		Characters:       make([]CharacterOutline, 0, len(s.characters)),
		Answer:           s.Answer,
		Complete:         s.Complete,
	}
	for _, c := range s.characters {
		thought, ok := s.thoughts[c.id]
		so.Characters = append(so.Characters, CharacterOutline{
			ID:          c.id,
			Name:        c.Name,
			Description: c.Description,
			Thought:     thought,
			HasThought:  ok,
		})
	}
	return so
}

// Label returns a short human label for the period, event or scene with the
// given id, e.g. "Event: The Long Night".
func (o Outline) Label(id uuid.UUID) (string, bool) {
	for _, p := range o.Periods {
		if p.ID == id {
			return "Period: " + p.Title, true
		}
		for _, e := range p.Events {
			if e.ID == id {
				return "Event: " + e.Title, true
			}
			for _, s := range e.Scenes {
				if s.ID == id {
					return "Scene: " + s.Question, true
				}
			}
		}
	}
	return "", false
}
