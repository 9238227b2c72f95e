package game

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/microscope-solo/internal/domain/entities"
)

func TestSnapshot_RoundTripEveryPhase(t *testing.T) {
	for _, phase := range AllPhases() {
		t.Run(string(phase), func(t *testing.T) {
			g := playTo(t, phase)

			obj, err := ToPlainObject(g)
			require.NoError(t, err)

			restored, err := FromPlainObject(obj)
			require.NoError(t, err)
			assert.Equal(t, g, restored)

			data, err := Encode(g)
			require.NoError(t, err)
			decoded, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, g, decoded)
		})
	}
}

func TestSnapshot_RestoredGameKeepsPlaying(t *testing.T) {
	g := playTo(t, PhasePlayExploreLegacy)

	data, err := Encode(g)
	require.NoError(t, err)
	restored, err := Decode(data)
	require.NoError(t, err)

	require.NotNil(t, restored.PendingLegacy())
	require.NoError(t, restored.CompleteLegacyExploration())
	_, err = restored.DeclareFocus("The next round")
	require.NoError(t, err)
	assert.Equal(t, PhasePlayMakeHistory, restored.Phase())
}

func TestSnapshot_Layout(t *testing.T) {
	g := playTo(t, PhasePlayMakeHistory)

	obj, err := ToPlainObject(g)
	require.NoError(t, err)

	assert.Equal(t, string(PhasePlayMakeHistory), obj["current_phase"])
	assert.Nil(t, obj["pending_legacy"])
	assert.Contains(t, obj, "pending_legacy", "absent optionals are written as null")

	focus, ok := obj["current_focus"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "The cost of expansion", focus["description"])

	history, ok := obj["history"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"big_picture", "start_period_id", "end_period_id", "palette", "periods", "foci", "legacies", "turn_counter"} {
		assert.Contains(t, history, key)
	}

	periods := history["periods"].([]any)
	end := periods[len(periods)-1].(map[string]any)
	assert.Equal(t, json.Number("1000000"), end["chronological_index"])
	assert.Equal(t, "Dark", end["tone"])
}

func TestSnapshot_EncodeIsDeterministic(t *testing.T) {
	g := playTo(t, PhasePlayExploreLegacy)

	first, err := Encode(g)
	require.NoError(t, err)
	second, err := Encode(g)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestDecode_IgnoresUnknownKeys(t *testing.T) {
	data, err := Encode(playTo(t, PhaseSetupPalette))
	require.NoError(t, err)

	var obj map[string]any
	require.NoError(t, json.Unmarshal(data, &obj))
	obj["ui_state"] = map[string]any{"zoom": 2}

	g, err := FromPlainObject(obj)
	require.NoError(t, err)
	assert.Equal(t, PhaseSetupPalette, g.Phase())
}

func TestDecode_Rejects(t *testing.T) {
	valid, err := ToPlainObject(playTo(t, PhasePlayExploreLegacy))
	require.NoError(t, err)

	history := func(obj map[string]any) map[string]any { return obj["history"].(map[string]any) }
	firstPeriod := func(obj map[string]any) map[string]any {
		return history(obj)["periods"].([]any)[0].(map[string]any)
	}

	tests := []struct {
		name   string
		mutate func(obj map[string]any)
		errMsg string
	}{
		{
			name:   "missing history",
			mutate: func(obj map[string]any) { delete(obj, "history") },
			errMsg: `missing "history"`,
		},
		{
			name:   "null phase",
			mutate: func(obj map[string]any) { obj["current_phase"] = nil },
			errMsg: `missing "current_phase"`,
		},
		{
			name:   "unknown phase",
			mutate: func(obj map[string]any) { obj["current_phase"] = "Play: Lens" },
			errMsg: "unknown phase",
		},
		{
			name:   "bad uuid",
			mutate: func(obj map[string]any) { firstPeriod(obj)["id"] = "nope" },
			errMsg: "not a valid id",
		},
		{
			name:   "bad tone",
			mutate: func(obj map[string]any) { firstPeriod(obj)["tone"] = "Grey" },
			errMsg: "must be one of",
		},
		{
			name:   "wrong type",
			mutate: func(obj map[string]any) { history(obj)["turn_counter"] = "three" },
			errMsg: "decoding snapshot",
		},
		{
			name: "dangling focus",
			mutate: func(obj map[string]any) {
				obj["current_focus"].(map[string]any)["id"] = uuid.NewString()
			},
			errMsg: "current focus",
		},
		{
			name: "dangling bookend",
			mutate: func(obj map[string]any) {
				history(obj)["end_period_id"] = uuid.NewString()
			},
			errMsg: "not on the timeline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := deepCopy(t, valid)
			tt.mutate(obj)

			g, err := FromPlainObject(obj)
			require.Error(t, err)
			assert.Nil(t, g)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDecode_MalformedJSON(t *testing.T) {
	_, err := Decode([]byte(`{"history": `))
	assert.Error(t, err)

	_, err = Decode([]byte(`[]`))
	assert.Error(t, err)
}

func TestFromPlainObject_Nil(t *testing.T) {
	_, err := FromPlainObject(nil)
	assert.Error(t, err)
}

func TestSnapshot_LargeIndexKeepsPrecision(t *testing.T) {
	h := entities.NewHistory()
	p := entities.NewPeriod("Far future", "", entities.ToneLight, 1<<60+1)
	h.AddPeriod(p)
	g, err := Restore(h, PhaseSetupFirstPass, uuid.Nil, uuid.Nil)
	require.NoError(t, err)

	obj, err := ToPlainObject(g)
	require.NoError(t, err)
	restored, err := FromPlainObject(obj)
	require.NoError(t, err)
	assert.Equal(t, int64(1<<60+1), restored.Outline().Periods[0].Index)
}

func deepCopy(t *testing.T, obj map[string]any) map[string]any {
	t.Helper()
	data, err := json.Marshal(obj)
	require.NoError(t, err)

	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var out map[string]any
	require.NoError(t, dec.Decode(&out))
	return out
}
