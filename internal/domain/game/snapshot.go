package game

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/ersonp/microscope-solo/internal/domain/entities"
)

// Snapshot is the persisted form of a whole game. The key names are the save
// file format.
type Snapshot struct {
	History       entities.HistoryRecord `json:"history"`
	CurrentPhase  string                 `json:"current_phase"`
	CurrentFocus  *entities.FocusRecord  `json:"current_focus"`
	PendingLegacy *entities.LegacyRecord `json:"pending_legacy"`
}

var requiredKeys = []string{"history", "current_phase"}

// Snapshot captures the game's full state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		History:      g.history.Record(),
		CurrentPhase: string(g.phase),
	}
	if g.currentFocus != nil {
		rec := g.currentFocus.Record()
		s.CurrentFocus = &rec
	}
	if g.pendingLegacy != nil {
		rec := g.pendingLegacy.Record()
		s.PendingLegacy = &rec
	}
	return s
}

// FromSnapshot rebuilds a game. Either the complete game is returned or an
// error; nothing partial escapes.
func FromSnapshot(s Snapshot) (*Game, error) {
	phase, err := ParsePhase(s.CurrentPhase)
	if err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	history, err := entities.HistoryFromRecord(s.History)
	if err != nil {
		return nil, fmt.Errorf("decoding history: %w", err)
	}

	var focusID, legacyID uuid.UUID
	if s.CurrentFocus != nil {
		focus, err := entities.FocusFromRecord(*s.CurrentFocus)
		if err != nil {
			return nil, fmt.Errorf("decoding current focus: %w", err)
		}
		focusID = focus.ID()
	}
	if s.PendingLegacy != nil {
		legacy, err := entities.LegacyFromRecord(*s.PendingLegacy)
		if err != nil {
			return nil, fmt.Errorf("decoding pending legacy: %w", err)
		}
		legacyID = legacy.ID()
	}

	return Restore(history, phase, focusID, legacyID)
}

// Encode writes the game as indented JSON.
func Encode(g *Game) ([]byte, error) {
	data, err := json.MarshalIndent(g.Snapshot(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding game: %w", err)
	}
	return data, nil
}

// Decode parses a game written by Encode. Unknown keys are ignored.
func Decode(data []byte) (*Game, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	for _, key := range requiredKeys {
		raw, ok := top[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil, fmt.Errorf("decoding snapshot: missing %q", key)
		}
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return FromSnapshot(s)
}

// ToPlainObject converts the game to nested maps, slices, strings, numbers,
// bools and nils. Numbers are json.Number so large indices keep full precision.
func ToPlainObject(g *Game) (map[string]any, error) {
	data, err := Encode(g)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("converting game to plain object: %w", err)
	}
	return obj, nil
}

// FromPlainObject is the inverse of ToPlainObject.
func FromPlainObject(obj map[string]any) (*Game, error) {
	if obj == nil {
		return nil, fmt.Errorf("decoding snapshot: nil object")
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return Decode(data)
}
