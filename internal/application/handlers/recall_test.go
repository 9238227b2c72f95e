package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/microscope-solo/internal/domain/entities"
	"github.com/ersonp/microscope-solo/internal/domain/mocks"
	"github.com/ersonp/microscope-solo/internal/domain/services"
)

func newRecallFixture(t *testing.T) (*RecallHandler, *mocks.VectorDB) {
	t.Helper()
	f := newFixture(t)
	f.setup(t)

	emb := &mocks.Embedder{EmbeddingResult: []float32{0.1, 0.2, 0.3}}
	db := &mocks.VectorDB{}
	recall := services.NewRecallService(emb, db, &mocks.CollectionManager{}, 3, nil)
	return NewRecallHandler(f.sessions, recall), db
}

func TestRecallHandler_Index(t *testing.T) {
	h, db := newRecallFixture(t)

	result, err := h.Index(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Indexed)
	require.Len(t, db.Passages, 2)
	assert.Equal(t, "empire", db.Passages[0].Session)
}

func TestRecallHandler_Search(t *testing.T) {
	h, db := newRecallFixture(t)
	_, err := h.Index(t.Context())
	require.NoError(t, err)

	result, err := h.Search(t.Context(), "the beginning", "", 5)
	require.NoError(t, err)
	assert.Equal(t, "the beginning", result.Query)
	assert.Len(t, result.Passages, 2)

	result, err = h.Search(t.Context(), "the beginning", "Scene", 5)
	require.NoError(t, err)
	assert.Empty(t, result.Passages)
	assert.Equal(t, entities.PassageScene, db.SearchLastKind)

	_, err = h.Search(t.Context(), "x", "planet", 5)
	require.Error(t, err)
}
