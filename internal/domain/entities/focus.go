package entities

import "github.com/google/uuid"

// Focus is the theme or question explored during one round of play.
type Focus struct {
	id           uuid.UUID
	description  string
	chosenAtTurn int
}

// NewFocus creates a focus declared when the turn counter was at turn.
func NewFocus(description string, turn int) *Focus {
	return &Focus{
		id:           uuid.New(),
		description:  description,
		chosenAtTurn: turn,
	}
}

// ID returns the focus identifier.
func (f *Focus) ID() uuid.UUID { return f.id }

// Description returns the focus text.
func (f *Focus) Description() string { return f.description }

// ChosenAtTurn returns the turn counter value at declaration.
func (f *Focus) ChosenAtTurn() int { return f.chosenAtTurn }

// Legacy bookmarks content created during a Focus for later revisiting.
type Legacy struct {
	id              uuid.UUID
	description     string
	originFocusID   uuid.UUID
	originElementID uuid.UUID
}

// NewLegacy creates a legacy. elementID may be uuid.Nil when the legacy is
// not tied to a specific Period, Event or Scene.
func NewLegacy(description string, focusID, elementID uuid.UUID) *Legacy {
	return &Legacy{
		id:              uuid.New(),
		description:     description,
		originFocusID:   focusID,
		originElementID: elementID,
	}
}

// ID returns the legacy identifier.
func (l *Legacy) ID() uuid.UUID { return l.id }

// Description returns the legacy text.
func (l *Legacy) Description() string { return l.description }

// OriginFocusID returns the focus during which the legacy was created.
func (l *Legacy) OriginFocusID() uuid.UUID { return l.originFocusID }

// OriginElementID returns the Period, Event or Scene the legacy points at.
func (l *Legacy) OriginElementID() (uuid.UUID, bool) {
	return l.originElementID, l.originElementID != uuid.Nil
}
