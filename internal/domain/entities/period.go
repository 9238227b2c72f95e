package entities

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
)

// Period is a labeled span of time on the timeline.
type Period struct {
	id          uuid.UUID
	Title       string
	Description string
	Tone        Tone
	index       int64
	events      []*Event
	bookend     bool
}

// NewPeriod creates a period that will sort at index on the timeline.
func NewPeriod(title, description string, tone Tone, index int64) *Period {
	return &Period{
		id:          uuid.New(),
		Title:       title,
		Description: description,
		Tone:        tone,
		index:       index,
		events:      []*Event{},
	}
}

// NewBookendPeriod creates the first (start) or last period of a history.
func NewBookendPeriod(title, description string, tone Tone, start bool) *Period {
	index := EndBookendIndex
	if start {
		index = StartBookendIndex
	}
	p := NewPeriod(title, description, tone, index)
	p.bookend = true
	return p
}

// ID returns the period's identifier.
func (p *Period) ID() uuid.UUID {
	return p.id
}

// Index returns the period's chronological index.
func (p *Period) Index() int64 {
	return p.index
}

// IsBookend reports whether the period frames the history.
func (p *Period) IsBookend() bool {
	return p.bookend
}

// AddEvent attaches event to this period and keeps events sorted by index.
func (p *Period) AddEvent(event *Event) {
	event.periodID = p.id
	p.events = append(p.events, event)
	slices.SortStableFunc(p.events, func(a, b *Event) int {
		return cmp.Compare(a.index, b.index)
	})
}

// Events returns the period's events in chronological order.
func (p *Period) Events() []*Event {
	return slices.Clone(p.events)
}

// Event returns the event with the given id, or nil.
func (p *Period) Event(id uuid.UUID) *Event {
	for _, e := range p.events {
		if e.id == id {
			return e
		}
	}
	return nil
}

// NextEventIndex returns the index a newly appended event should take.
func (p *Period) NextEventIndex() (int64, error) {
	indices := make([]int64, len(p.events))
	for i, e := range p.events {
		indices[i] = e.index
	}
	return NextSiblingIndex(indices)
}
