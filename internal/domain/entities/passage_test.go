package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutline_Passages(t *testing.T) {
	h := sampleHistory(t)

	passages := h.Outline().Passages("empire")

	kinds := map[PassageKind]int{}
	for _, p := range passages {
		kinds[p.Kind]++
		assert.Equal(t, "empire", p.Session)
		assert.NotEmpty(t, p.Text)
		assert.Empty(t, p.Embedding)
	}
	assert.Equal(t, 3, kinds[PassagePeriod])
	assert.Equal(t, 1, kinds[PassageEvent])
	assert.Equal(t, 1, kinds[PassageScene])
	assert.Equal(t, 1, kinds[PassageFocus])
	assert.Equal(t, 2, kinds[PassageLegacy])

	var scene Passage
	for _, p := range passages {
		if p.Kind == PassageScene {
			scene = p
		}
	}
	require.NotEmpty(t, scene.ID)
	assert.Equal(t, "Scene: Who gives the order?", scene.Label)
	assert.Contains(t, scene.Text, "Captain: We should turn back")
	assert.Contains(t, scene.Text, "The bridge")
}

func TestParsePassageKind(t *testing.T) {
	k, err := ParsePassageKind(" Scene ")
	require.NoError(t, err)
	assert.Equal(t, PassageScene, k)

	_, err = ParsePassageKind("chapter")
	assert.Error(t, err)
}
