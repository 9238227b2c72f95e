package entities

import (
	"maps"
	"slices"

	"github.com/google/uuid"
)

// Character is a participant in a single Scene.
type Character struct {
	id          uuid.UUID
	Name        string
	Description string
}

// NewCharacter creates a character with a fresh id.
func NewCharacter(name, description string) *Character {
	return &Character{
		id:          uuid.New(),
		Name:        name,
		Description: description,
	}
}

// ID returns the character's identifier.
func (c *Character) ID() uuid.UUID {
	return c.id
}

// Scene dramatizes a moment inside an Event to answer one Question.
type Scene struct {
	id               uuid.UUID
	Question         string
	eventID          uuid.UUID
	Dictated         bool
	StageDescription string
	characters       []*Character
	thoughts         map[uuid.UUID]string
	Answer           string
	Complete         bool
}

// NewScene creates an unattached scene asking question.
func NewScene(question string) *Scene {
	return &Scene{
		id:         uuid.New(),
		Question:   question,
		characters: []*Character{},
		thoughts:   map[uuid.UUID]string{},
	}
}

// ID returns the scene's identifier.
func (s *Scene) ID() uuid.UUID {
	return s.id
}

// EventID returns the owning event, if the scene has been attached to one.
func (s *Scene) EventID() (uuid.UUID, bool) {
	return s.eventID, s.eventID != uuid.Nil
}

// AddCharacter creates a character owned by this scene.
func (s *Scene) AddCharacter(name, description string) *Character {
	c := NewCharacter(name, description)
	s.characters = append(s.characters, c)
	return c
}

// Characters returns the scene's characters in the order they were added.
func (s *Scene) Characters() []*Character {
	return slices.Clone(s.characters)
}

// Character returns the character with the given id, or nil.
func (s *Scene) Character(id uuid.UUID) *Character {
	for _, c := range s.characters {
		if c.id == id {
			return c
		}
	}
	return nil
}

// RevealThought records what a character is thinking.
// Thoughts for characters that are not in the scene are dropped.
func (s *Scene) RevealThought(characterID uuid.UUID, thought string) bool {
	if s.Character(characterID) == nil {
		return false
	}
	s.thoughts[characterID] = thought
	return true
}

// Thought returns the revealed thought of a character.
func (s *Scene) Thought(characterID uuid.UUID) (string, bool) {
	t, ok := s.thoughts[characterID]
	return t, ok
}

// Thoughts returns a copy of all revealed thoughts keyed by character id.
func (s *Scene) Thoughts() map[uuid.UUID]string {
	return maps.Clone(s.thoughts)
}

// Resolve answers the scene's question and marks it complete.
func (s *Scene) Resolve(answer string) {
	s.Answer = answer
	s.Complete = true
}
