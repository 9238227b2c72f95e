package entities

import (
	"slices"

	"github.com/google/uuid"
)

// Event is a concrete happening inside a Period.
type Event struct {
	id          uuid.UUID
	Title       string
	Description string
	Tone        Tone
	periodID    uuid.UUID
	index       int64
	scenes      []*Scene
}

// NewEvent creates an event that will sort at index within its period.
func NewEvent(title, description string, tone Tone, index int64) *Event {
	return &Event{
		id:          uuid.New(),
		Title:       title,
		Description: description,
		Tone:        tone,
		index:       index,
		scenes:      []*Scene{},
	}
}

// ID returns the event's identifier.
func (e *Event) ID() uuid.UUID {
	return e.id
}

// PeriodID returns the owning period, if the event has been attached to one.
func (e *Event) PeriodID() (uuid.UUID, bool) {
	return e.periodID, e.periodID != uuid.Nil
}

// Index returns the event's chronological index within its period.
func (e *Event) Index() int64 {
	return e.index
}

// AddScene attaches scene to this event. Scenes keep insertion order.
func (e *Event) AddScene(scene *Scene) {
	scene.eventID = e.id
	e.scenes = append(e.scenes, scene)
}

// Scenes returns the event's scenes in insertion order.
func (e *Event) Scenes() []*Scene {
	return slices.Clone(e.scenes)
}

// Scene returns the scene with the given id, or nil.
func (e *Event) Scene(id uuid.UUID) *Scene {
	for _, s := range e.scenes {
		if s.id == id {
			return s
		}
	}
	return nil
}
