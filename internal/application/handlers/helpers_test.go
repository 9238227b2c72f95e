package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ersonp/microscope-solo/internal/domain/mocks"
	"github.com/ersonp/microscope-solo/internal/domain/services"
)

type fixture struct {
	store    *mocks.SessionStore
	archive  *mocks.Archive
	sessions *services.SessionService
	play     *PlayHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := mocks.NewSessionStore()
	archive := mocks.NewArchive()
	sessions := services.NewSessionService("empire", store, archive, 0, nil)
	_, err := sessions.Start(t.Context())
	require.NoError(t, err)
	return &fixture{
		store:    store,
		archive:  archive,
		sessions: sessions,
		play:     NewPlayHandler(sessions, nil),
	}
}
