package exporters

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/microscope-solo/internal/domain/entities"
	"github.com/ersonp/microscope-solo/internal/domain/game"
)

// playedGame builds a game with one of everything.
func playedGame(t *testing.T) *game.Game {
	t.Helper()
	g := game.New()

	require.NoError(t, g.SetBigPicture("A star empire"))
	start, err := g.CreateBookendPeriod("Dawn", "First light", entities.ToneLight, true)
	require.NoError(t, err)
	_, err = g.CreateBookendPeriod("Dusk", "", entities.ToneDark, false)
	require.NoError(t, err)
	_, err = g.AddToPalette("AI", true)
	require.NoError(t, err)
	_, err = g.AddToPalette("Time travel", false)
	require.NoError(t, err)
	require.NoError(t, g.CompletePalette())
	require.NoError(t, g.CompleteFirstPass())

	_, err = g.DeclareFocus("The cost of expansion")
	require.NoError(t, err)
	eventID, err := g.CreateEvent("First colony", "Ships leave", entities.ToneLight, start)
	require.NoError(t, err)

	scene := entities.NewScene("Who gives the order?")
	scene.Dictated = true
	scene.StageDescription = "The bridge"
	captain := scene.AddCharacter("Captain", "Tired")
	scene.RevealThought(captain.ID(), "We should turn back")
	scene.Resolve("The captain")
	sceneID, err := g.CreateScene(scene, eventID)
	require.NoError(t, err)

	require.NoError(t, g.CompleteFocus())
	_, err = g.CreateLegacy("The captain's line", sceneID)
	require.NoError(t, err)
	return g
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format string
		want   Exporter
		ext    string
	}{
		{"markdown", &MarkdownExporter{}, ".md"},
		{"MD", &MarkdownExporter{}, ".md"},
		{"text", &TextExporter{}, ".txt"},
		{"json", &JSONExporter{}, ".json"},
		{"pdf", nil, ".txt"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			assert.Equal(t, tt.want, ForFormat(tt.format))
			assert.Equal(t, tt.ext, Extension(tt.format))
		})
	}
	for _, f := range Formats() {
		assert.NotNil(t, ForFormat(f), f)
	}
}

func TestMarkdownExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&MarkdownExporter{}).Export(&buf, playedGame(t)))
	out := buf.String()

	for _, want := range []string{
		"# A star empire\n",
		"_Phase: Play: Explore Legacy. Turn 2._",
		"- **Yes:** AI\n",
		"- **No:** Time travel\n",
		"### Dawn (Light) _bookend_\n",
		"#### First colony (Light)\n",
		"- **Scene:** Who gives the order? _(dictated)_\n",
		"  - Setting: The bridge\n",
		"  - Captain, Tired: _\"We should turn back\"_\n",
		"  - **Answer:** The captain\n",
		"1. The cost of expansion (turn 0)\n",
		"- The captain's line (Scene: Who gives the order?), from focus \"The cost of expansion\"\n",
	} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Dawn")), bytes.Index(buf.Bytes(), []byte("Dusk")))
}

func TestMarkdownExporter_EmptyGame(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&MarkdownExporter{}).Export(&buf, game.New()))

	out := buf.String()
	assert.Contains(t, out, "# Untitled History\n")
	assert.Contains(t, out, "- **Yes:** none\n")
	assert.NotContains(t, out, "## Foci")
	assert.NotContains(t, out, "## Legacies")
}

func TestTextExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TextExporter{}).Export(&buf, playedGame(t)))
	out := buf.String()

	assert.Contains(t, out, "[Light] Dawn\n")
	assert.Contains(t, out, "  [Light] First colony\n")
	assert.Contains(t, out, "    ? Who gives the order?\n")
	assert.Contains(t, out, "    = The captain\n")
	assert.Contains(t, out, "Legacy: The captain's line [Scene: Who gives the order?]\n")
}

func TestJSONExporter_RoundTrips(t *testing.T) {
	g := playedGame(t)

	var buf bytes.Buffer
	require.NoError(t, (&JSONExporter{}).Export(&buf, g))

	restored, err := game.Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, g, restored)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestExporters_PropagateWriteErrors(t *testing.T) {
	g := playedGame(t)
	for _, f := range Formats() {
		t.Run(f, func(t *testing.T) {
			require.Error(t, ForFormat(f).Export(failingWriter{}, g))
		})
	}
}

func TestLegacyOrigin(t *testing.T) {
	o := entities.Outline{}
	assert.Empty(t, legacyOrigin(o, entities.LegacyOutline{}))

	id := uuid.New()
	assert.Equal(t, id.String(), legacyOrigin(o, entities.LegacyOutline{OriginElementID: id}))
}
