package entities

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHistory(t *testing.T) *History {
	t.Helper()

	h := NewHistory()
	h.SetBigPicture("Rise and fall of an empire")
	h.AddBookend(NewBookendPeriod("Dawn", "First light", ToneLight, true), true)
	h.AddBookend(NewBookendPeriod("Dusk", "Last light", ToneDark, false), false)
	h.Palette().AddYes("AI")
	h.Palette().AddNo("Time travel")
	h.Palette().Lock()

	middle := NewPeriod("Expansion", "Colonies spread", ToneLight, 500_000)
	h.AddPeriod(middle)

	event := NewEvent("First colony", "A ship lands", ToneLight, 0)
	middle.AddEvent(event)
	h.AdvanceTurn()

	scene := NewScene("Who gives the order?")
	scene.Dictated = true
	scene.StageDescription = "The bridge"
	captain := scene.AddCharacter("Captain", "Weary")
	scene.AddCharacter("Pilot", "")
	scene.RevealThought(captain.ID(), "We should turn back")
	scene.Resolve("The captain")
	event.AddScene(scene)
	h.AdvanceTurn()

	focus := NewFocus("The cost of expansion", 0)
	h.AddFocus(focus)
	h.AddLegacy(NewLegacy("The captain's line", focus.ID(), scene.ID()))
	h.AddLegacy(NewLegacy("Unanchored", focus.ID(), uuid.Nil))

	return h
}

func TestHistoryRecord_RoundTrip(t *testing.T) {
	h := sampleHistory(t)

	data, err := json.Marshal(h.Record())
	require.NoError(t, err)

	var rec HistoryRecord
	require.NoError(t, json.Unmarshal(data, &rec))

	restored, err := HistoryFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, h, restored)
}

func TestHistoryRecord_EmptyRoundTrip(t *testing.T) {
	h := NewHistory()

	data, err := json.Marshal(h.Record())
	require.NoError(t, err)

	var rec HistoryRecord
	require.NoError(t, json.Unmarshal(data, &rec))

	restored, err := HistoryFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, h, restored)
}

func TestHistoryRecord_ExplicitNulls(t *testing.T) {
	data, err := json.Marshal(NewHistory().Record())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{"start_period_id", "end_period_id"} {
		value, present := raw[key]
		assert.True(t, present, "key %s must be present", key)
		assert.Nil(t, value)
	}
	assert.Equal(t, []any{}, raw["periods"])
}

func TestHistoryFromRecord_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(rec *HistoryRecord)
		errMsg string
	}{
		{
			name:   "bad tone",
			mutate: func(rec *HistoryRecord) { rec.Periods[0].Tone = "Grey" },
			errMsg: "must be one of",
		},
		{
			name:   "bad period id",
			mutate: func(rec *HistoryRecord) { rec.Periods[0].ID = "not-a-uuid" },
			errMsg: "not a valid id",
		},
		{
			name: "dangling bookend",
			mutate: func(rec *HistoryRecord) {
				id := uuid.NewString()
				rec.EndPeriodID = &id
			},
			errMsg: "not on the timeline",
		},
		{
			name: "duplicate ids",
			mutate: func(rec *HistoryRecord) {
				rec.Periods[1].ID = rec.Periods[0].ID
			},
			errMsg: "duplicate period id",
		},
		{
			name: "event under wrong period",
			mutate: func(rec *HistoryRecord) {
				other := rec.Periods[0].ID
				rec.Periods[1].Events[0].PeriodID = &other
			},
			errMsg: "claims period",
		},
		{
			name: "duplicate event index in a period",
			mutate: func(rec *HistoryRecord) {
				twin := rec.Periods[1].Events[0]
				twin.ID = uuid.NewString()
				twin.Scenes = []SceneRecord{}
				rec.Periods[1].Events = append(rec.Periods[1].Events, twin)
			},
			errMsg: "share chronological index",
		},
		{
			name: "thought for unknown character",
			mutate: func(rec *HistoryRecord) {
				rec.Periods[1].Events[0].Scenes[0].RevealedThoughts[uuid.NewString()] = "?"
			},
			errMsg: "unknown character",
		},
		{
			name:   "legacy with unknown focus",
			mutate: func(rec *HistoryRecord) { rec.Legacies[0].OriginFocusID = uuid.NewString() },
			errMsg: "unknown origin focus",
		},
		{
			name:   "negative turn counter",
			mutate: func(rec *HistoryRecord) { rec.TurnCounter = -1 },
			errMsg: "TurnCounter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := sampleHistory(t).Record()
			tt.mutate(&rec)

			h, err := HistoryFromRecord(rec)
			require.Error(t, err)
			assert.Nil(t, h)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestHistoryFromRecord_AcceptsMissingBackReferences(t *testing.T) {
	rec := sampleHistory(t).Record()
	rec.Periods[1].Events[0].PeriodID = nil
	rec.Periods[1].Events[0].Scenes[0].EventID = nil

	h, err := HistoryFromRecord(rec)
	require.NoError(t, err)

	event := h.Periods()[1].Events()[0]
	owner, ok := event.PeriodID()
	require.True(t, ok)
	assert.Equal(t, h.Periods()[1].ID(), owner)
}
