package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/microscope-solo/internal/domain/game"
)

func TestArchiveHandler(t *testing.T) {
	f := newFixture(t)
	_, err := f.play.SetBigPicture(t.Context(), "Empire")
	require.NoError(t, err)
	_, err = f.play.CompletePalette(t.Context())
	require.Error(t, err)

	h := NewArchiveHandler(f.sessions)

	versions, err := h.Versions(t.Context(), 0)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, "set_big_picture", versions[0].Action)

	v, status, err := h.Version(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Version)
	assert.Equal(t, game.PhaseSetupBigPicture, status.Phase)

	g, err := h.Snapshot(t.Context(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Empire", g.Outline().BigPicture)

	log, err := h.AuditLog(t.Context(), "complete_palette", 10)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Contains(t, log[0].Details, "error")
}
