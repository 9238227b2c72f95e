package entities

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// The record types below are the persisted shape of a History. Field names are
// part of the save-file format and must not change. Optional ids are pointers
// so that absence is written as an explicit null.

// PaletteRecord is the persisted form of a Palette.
type PaletteRecord struct {
	YesItems []string `json:"yes_items" validate:"dive,required"`
	NoItems  []string `json:"no_items" validate:"dive,required"`
	IsLocked bool     `json:"is_locked"`
}

// CharacterRecord is the persisted form of a Character.
type CharacterRecord struct {
	ID          string `json:"id" validate:"required,uuid"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SceneRecord is the persisted form of a Scene.
type SceneRecord struct {
	ID               string            `json:"id" validate:"required,uuid"`
	Question         string            `json:"question"`
	EventID          *string           `json:"event_id" validate:"omitempty,uuid"`
	IsDictated       bool              `json:"is_dictated"`
	StageDescription string            `json:"stage_description"`
	Characters       []CharacterRecord `json:"characters" validate:"dive"`
	RevealedThoughts map[string]string `json:"revealed_thoughts" validate:"dive,keys,uuid,endkeys"`
	Answer           string            `json:"answer"`
	IsComplete       bool              `json:"is_complete"`
}

// EventRecord is the persisted form of an Event.
type EventRecord struct {
	ID                 string        `json:"id" validate:"required,uuid"`
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	Tone               string        `json:"tone" validate:"oneof=Light Dark"`
	PeriodID           *string       `json:"period_id" validate:"omitempty,uuid"`
	ChronologicalIndex int64         `json:"chronological_index"`
	Scenes             []SceneRecord `json:"scenes" validate:"dive"`
}

// PeriodRecord is the persisted form of a Period.
type PeriodRecord struct {
	ID                 string        `json:"id" validate:"required,uuid"`
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	Tone               string        `json:"tone" validate:"oneof=Light Dark"`
	ChronologicalIndex int64         `json:"chronological_index"`
	Events             []EventRecord `json:"events" validate:"dive"`
	IsBookend          bool          `json:"is_bookend"`
}

// FocusRecord is the persisted form of a Focus.
type FocusRecord struct {
	ID           string `json:"id" validate:"required,uuid"`
	Description  string `json:"description"`
	ChosenAtTurn int    `json:"chosen_at_turn" validate:"gte=0"`
}

// LegacyRecord is the persisted form of a Legacy.
type LegacyRecord struct {
	ID              string  `json:"id" validate:"required,uuid"`
	Description     string  `json:"description"`
	OriginFocusID   string  `json:"origin_focus_id" validate:"required,uuid"`
	OriginElementID *string `json:"origin_element_id" validate:"omitempty,uuid"`
}

// HistoryRecord is the persisted form of a History.
type HistoryRecord struct {
	BigPicture    string         `json:"big_picture"`
	StartPeriodID *string        `json:"start_period_id" validate:"omitempty,uuid"`
	EndPeriodID   *string        `json:"end_period_id" validate:"omitempty,uuid"`
	Palette       PaletteRecord  `json:"palette"`
	Periods       []PeriodRecord `json:"periods" validate:"dive"`
	Foci          []FocusRecord  `json:"foci" validate:"dive"`
	Legacies      []LegacyRecord `json:"legacies" validate:"dive"`
	TurnCounter   int            `json:"turn_counter" validate:"gte=0"`
}

// ValidateRecord checks the structural tags of a record type.
func ValidateRecord(rec any) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(rec); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Namespace()))
		case "uuid":
			msgs = append(msgs, fmt.Sprintf("%s is not a valid id", fe.Namespace()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Namespace(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid record: %s", strings.Join(msgs, "; "))
}

func nullableID(id uuid.UUID) *string {
	if id == uuid.Nil {
		return nil
	}
	s := id.String()
	return &s
}

func parseNullableID(s *string) (uuid.UUID, error) {
	if s == nil || *s == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(*s)
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Record converts the palette to its persisted form.
func (p *Palette) Record() PaletteRecord {
	return PaletteRecord{
		YesItems: slices.Clone(p.yes),
		NoItems:  slices.Clone(p.no),
		IsLocked: p.locked,
	}
}

// Record converts the focus to its persisted form.
func (f *Focus) Record() FocusRecord {
	return FocusRecord{
		ID:           f.id.String(),
		Description:  f.description,
		ChosenAtTurn: f.chosenAtTurn,
	}
}

// Record converts the legacy to its persisted form.
func (l *Legacy) Record() LegacyRecord {
	return LegacyRecord{
		ID:              l.id.String(),
		Description:     l.description,
		OriginFocusID:   l.originFocusID.String(),
		OriginElementID: nullableID(l.originElementID),
	}
}

func (s *Scene) record() SceneRecord {
	rec := SceneRecord{
		ID:               s.id.String(),
		Question:         s.Question,
		EventID:          nullableID(s.eventID),
		IsDictated:       s.Dictated,
		StageDescription: s.StageDescription,
		Characters:       make([]CharacterRecord, 0, len(s.characters)),
		RevealedThoughts: make(map[string]string, len(s.thoughts)),
		Answer:           s.Answer,
		IsComplete:       s.Complete,
	}
	for _, c := range s.characters {
		rec.Characters = append(rec.Characters, CharacterRecord{
			ID:          c.id.String(),
			Name:        c.Name,
			Description: c.Description,
		})
	}
	for id, thought := range s.thoughts {
		rec.RevealedThoughts[id.String()] = thought
	}
	return rec
}

func (e *Event) record() EventRecord {
	rec := EventRecord{
		ID:                 e.id.String(),
		Title:              e.Title,
		Description:        e.Description,
		Tone:               string(e.Tone),
		PeriodID:           nullableID(e.periodID),
		ChronologicalIndex: e.index,
		Scenes:             make([]SceneRecord, 0, len(e.scenes)),
	}
	for _, s := range e.scenes {
		rec.Scenes = append(rec.Scenes, s.record())
	}
	return rec
}

func (p *Period) record() PeriodRecord {
	rec := PeriodRecord{
		ID:                 p.id.String(),
		Title:              p.Title,
		Description:        p.Description,
		Tone:               string(p.Tone),
		ChronologicalIndex: p.index,
		Events:             make([]EventRecord, 0, len(p.events)),
		IsBookend:          p.bookend,
	}
	for _, e := range p.events {
		rec.Events = append(rec.Events, e.record())
	}
	return rec
}

// Record converts the whole history to its persisted form.
func (h *History) Record() HistoryRecord {
	rec := HistoryRecord{
		BigPicture:    h.bigPicture,
		StartPeriodID: nullableID(h.startPeriodID),
		EndPeriodID:   nullableID(h.endPeriodID),
		Palette:       h.palette.Record(),
		Periods:       make([]PeriodRecord, 0, len(h.periods)),
		Foci:          make([]FocusRecord, 0, len(h.foci)),
		Legacies:      make([]LegacyRecord, 0, len(h.legacies)),
		TurnCounter:   h.turnCounter,
	}
	for _, p := range h.periods {
		rec.Periods = append(rec.Periods, p.record())
	}
	for _, f := range h.foci {
		rec.Foci = append(rec.Foci, f.Record())
	}
	for _, l := range h.legacies {
		rec.Legacies = append(rec.Legacies, l.Record())
	}
	return rec
}

// idSet tracks every id seen while rebuilding a history so duplicates are rejected.
type idSet map[uuid.UUID]struct{}

func (s idSet) parse(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s id %q: %w", what, raw, err)
	}
	if _, dup := s[id]; dup {
		return uuid.Nil, fmt.Errorf("duplicate %s id %s", what, id)
	}
	s[id] = struct{}{}
	return id, nil
}

// HistoryFromRecord rebuilds a history. It either returns a complete, consistent
// history or an error; no partially built value escapes.
func HistoryFromRecord(rec HistoryRecord) (*History, error) {
	if err := ValidateRecord(rec); err != nil {
		return nil, err
	}

	ids := idSet{}
	h := NewHistory()
	h.bigPicture = rec.BigPicture
	h.turnCounter = rec.TurnCounter
	h.palette = &Palette{
		yes:    slices.Clone(orEmpty(rec.Palette.YesItems)),
		no:     slices.Clone(orEmpty(rec.Palette.NoItems)),
		locked: rec.Palette.IsLocked,
	}

	for _, pr := range rec.Periods {
		p, err := periodFromRecord(pr, ids)
		if err != nil {
			return nil, err
		}
		h.AddPeriod(p)
	}

	var err error
	if h.startPeriodID, err = bookendFromRecord(h, rec.StartPeriodID, "start"); err != nil {
		return nil, err
	}
	if h.endPeriodID, err = bookendFromRecord(h, rec.EndPeriodID, "end"); err != nil {
		return nil, err
	}

	for _, fr := range rec.Foci {
		f, err := FocusFromRecord(fr)
		if err != nil {
			return nil, err
		}
		if _, err := ids.parse(fr.ID, "focus"); err != nil {
			return nil, err
		}
		h.foci = append(h.foci, f)
	}

	for _, lr := range rec.Legacies {
		l, err := LegacyFromRecord(lr)
		if err != nil {
			return nil, err
		}
		if _, err := ids.parse(lr.ID, "legacy"); err != nil {
			return nil, err
		}
		if h.Focus(l.originFocusID) == nil {
			return nil, fmt.Errorf("legacy %s: unknown origin focus %s", l.id, l.originFocusID)
		}
		if l.originElementID != uuid.Nil && !h.ContainsElement(l.originElementID) {
			return nil, fmt.Errorf("legacy %s: unknown origin element %s", l.id, l.originElementID)
		}
		h.legacies = append(h.legacies, l)
	}

	return h, nil
}

func bookendFromRecord(h *History, raw *string, which string) (uuid.UUID, error) {
	id, err := parseNullableID(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s bookend id: %w", which, err)
	}
	if id == uuid.Nil {
		return uuid.Nil, nil
	}
	p := h.Period(id)
	if p == nil {
		return uuid.Nil, fmt.Errorf("%s bookend %s is not on the timeline", which, id)
	}
	if !p.bookend {
		return uuid.Nil, fmt.Errorf("%s bookend %s is not marked as a bookend", which, id)
	}
	return id, nil
}

func periodFromRecord(rec PeriodRecord, ids idSet) (*Period, error) {
	id, err := ids.parse(rec.ID, "period")
	if err != nil {
		return nil, err
	}
	p := &Period{
		id:          id,
		Title:       rec.Title,
		Description: rec.Description,
		Tone:        Tone(rec.Tone),
		index:       rec.ChronologicalIndex,
		events:      []*Event{},
		bookend:     rec.IsBookend,
	}
	seen := make(map[int64]uuid.UUID, len(rec.Events))
	for _, er := range rec.Events {
		e, err := eventFromRecord(er, p.id, ids)
		if err != nil {
			return nil, err
		}
		if other, dup := seen[e.index]; dup {
			return nil, fmt.Errorf("events %s and %s in period %s share chronological index %d", other, e.id, p.id, e.index)
		}
		seen[e.index] = e.id
		p.AddEvent(e)
	}
	return p, nil
}

func eventFromRecord(rec EventRecord, owner uuid.UUID, ids idSet) (*Event, error) {
	id, err := ids.parse(rec.ID, "event")
	if err != nil {
		return nil, err
	}
	periodID, err := parseNullableID(rec.PeriodID)
	if err != nil {
		return nil, fmt.Errorf("event %s period id: %w", id, err)
	}
	if periodID != uuid.Nil && periodID != owner {
		return nil, fmt.Errorf("event %s claims period %s but is stored under %s", id, periodID, owner)
	}
	e := &Event{
		id:          id,
		Title:       rec.Title,
		Description: rec.Description,
		Tone:        Tone(rec.Tone),
		index:       rec.ChronologicalIndex,
		scenes:      []*Scene{},
	}
	for _, sr := range rec.Scenes {
		s, err := sceneFromRecord(sr, e.id, ids)
		if err != nil {
			return nil, err
		}
		e.AddScene(s)
	}
	return e, nil
}

func sceneFromRecord(rec SceneRecord, owner uuid.UUID, ids idSet) (*Scene, error) {
	id, err := ids.parse(rec.ID, "scene")
	if err != nil {
		return nil, err
	}
	eventID, err := parseNullableID(rec.EventID)
	if err != nil {
		return nil, fmt.Errorf("scene %s event id: %w", id, err)
	}
	if eventID != uuid.Nil && eventID != owner {
		return nil, fmt.Errorf("scene %s claims event %s but is stored under %s", id, eventID, owner)
	}
	s := &Scene{
		id:               id,
		Question:         rec.Question,
		Dictated:         rec.IsDictated,
		StageDescription: rec.StageDescription,
		characters:       make([]*Character, 0, len(rec.Characters)),
		thoughts:         make(map[uuid.UUID]string, len(rec.RevealedThoughts)),
		Answer:           rec.Answer,
		Complete:         rec.IsComplete,
	}
	for _, cr := range rec.Characters {
		cid, err := ids.parse(cr.ID, "character")
		if err != nil {
			return nil, err
		}
		s.characters = append(s.characters, &Character{
			id:          cid,
			Name:        cr.Name,
			Description: cr.Description,
		})
	}
	for _, key := range slices.Sorted(maps.Keys(rec.RevealedThoughts)) {
		cid, err := uuid.Parse(key)
		if err != nil {
			return nil, fmt.Errorf("scene %s thought key %q: %w", id, key, err)
		}
		if s.Character(cid) == nil {
			return nil, fmt.Errorf("scene %s has a thought for unknown character %s", id, cid)
		}
		s.thoughts[cid] = rec.RevealedThoughts[key]
	}
	return s, nil
}

// FocusFromRecord rebuilds a single focus.
func FocusFromRecord(rec FocusRecord) (*Focus, error) {
	if err := ValidateRecord(rec); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("focus id %q: %w", rec.ID, err)
	}
	return &Focus{
		id:           id,
		description:  rec.Description,
		chosenAtTurn: rec.ChosenAtTurn,
	}, nil
}

// LegacyFromRecord rebuilds a single legacy.
func LegacyFromRecord(rec LegacyRecord) (*Legacy, error) {
	if err := ValidateRecord(rec); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("legacy id %q: %w", rec.ID, err)
	}
	focusID, err := uuid.Parse(rec.OriginFocusID)
	if err != nil {
		return nil, fmt.Errorf("legacy %s origin focus: %w", id, err)
	}
	elementID, err := parseNullableID(rec.OriginElementID)
	if err != nil {
		return nil, fmt.Errorf("legacy %s origin element: %w", id, err)
	}
	return &Legacy{
		id:              id,
		description:     rec.Description,
		originFocusID:   focusID,
		originElementID: elementID,
	}, nil
}
