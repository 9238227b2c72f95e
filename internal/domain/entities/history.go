package entities

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
)

// History is the aggregate root of a session: the big picture, the palette
// and the sorted timeline of periods.
type History struct {
	bigPicture    string
	startPeriodID uuid.UUID
	endPeriodID   uuid.UUID
	palette       *Palette
	periods       []*Period
	foci          []*Focus
	legacies      []*Legacy
	turnCounter   int
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{
		palette:  NewPalette(),
		periods:  []*Period{},
		foci:     []*Focus{},
		legacies: []*Legacy{},
	}
}

// BigPicture returns the one-line summary of the whole history.
func (h *History) BigPicture() string { return h.bigPicture }

// SetBigPicture replaces the big picture.
func (h *History) SetBigPicture(text string) { h.bigPicture = text }

// Palette returns the history's palette.
func (h *History) Palette() *Palette { return h.palette }

// TurnCounter returns the number of events and scenes created so far.
func (h *History) TurnCounter() int { return h.turnCounter }

// AdvanceTurn increments the turn counter and returns the new value.
func (h *History) AdvanceTurn() int {
	h.turnCounter++
	return h.turnCounter
}

// StartPeriodID returns the start bookend, if created.
func (h *History) StartPeriodID() (uuid.UUID, bool) {
	return h.startPeriodID, h.startPeriodID != uuid.Nil
}

// EndPeriodID returns the end bookend, if created.
func (h *History) EndPeriodID() (uuid.UUID, bool) {
	return h.endPeriodID, h.endPeriodID != uuid.Nil
}

// AddPeriod inserts period and keeps the timeline sorted by index.
func (h *History) AddPeriod(period *Period) {
	h.periods = append(h.periods, period)
	slices.SortStableFunc(h.periods, func(a, b *Period) int {
		return cmp.Compare(a.index, b.index)
	})
}

// AddBookend inserts a bookend period and records it as the start or end.
func (h *History) AddBookend(period *Period, start bool) {
	h.AddPeriod(period)
	if start {
		h.startPeriodID = period.id
	} else {
		h.endPeriodID = period.id
	}
}

// AddFocus appends a focus.
func (h *History) AddFocus(focus *Focus) {
	h.foci = append(h.foci, focus)
}

// AddLegacy appends a legacy.
func (h *History) AddLegacy(legacy *Legacy) {
	h.legacies = append(h.legacies, legacy)
}

// Periods returns the timeline in chronological order.
func (h *History) Periods() []*Period { return slices.Clone(h.periods) }

// Foci returns all declared foci in declaration order.
func (h *History) Foci() []*Focus { return slices.Clone(h.foci) }

// Legacies returns all legacies in creation order.
func (h *History) Legacies() []*Legacy { return slices.Clone(h.legacies) }

// Period finds a period by id.
func (h *History) Period(id uuid.UUID) *Period {
	for _, p := range h.periods {
		if p.id == id {
			return p
		}
	}
	return nil
}

// PeriodPosition returns the position of a period on the timeline, or -1.
func (h *History) PeriodPosition(id uuid.UUID) int {
	return slices.IndexFunc(h.periods, func(p *Period) bool { return p.id == id })
}

// Event finds an event by id across all periods.
func (h *History) Event(id uuid.UUID) *Event {
	for _, p := range h.periods {
		if e := p.Event(id); e != nil {
			return e
		}
	}
	return nil
}

// Scene finds a scene by id across all events.
func (h *History) Scene(id uuid.UUID) *Scene {
	for _, p := range h.periods {
		for _, e := range p.events {
			if s := e.Scene(id); s != nil {
				return s
			}
		}
	}
	return nil
}

// Focus finds a focus by id.
func (h *History) Focus(id uuid.UUID) *Focus {
	for _, f := range h.foci {
		if f.id == id {
			return f
		}
	}
	return nil
}

// Legacy finds a legacy by id.
func (h *History) Legacy(id uuid.UUID) *Legacy {
	for _, l := range h.legacies {
		if l.id == id {
			return l
		}
	}
	return nil
}

// ContainsElement reports whether id names a period, event or scene.
func (h *History) ContainsElement(id uuid.UUID) bool {
	return h.Period(id) != nil || h.Event(id) != nil || h.Scene(id) != nil
}
