package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/microscope-solo/internal/domain/entities"
	"github.com/ersonp/microscope-solo/internal/domain/game"
	"github.com/ersonp/microscope-solo/internal/domain/mocks"
	"github.com/ersonp/microscope-solo/internal/domain/ports"
)

func newTestSession(t *testing.T, keep int) (*SessionService, *mocks.SessionStore, *mocks.Archive) {
	t.Helper()
	store := mocks.NewSessionStore()
	archive := mocks.NewArchive()
	svc := NewSessionService("empire", store, archive, keep, nil)
	_, err := svc.Start(context.Background())
	require.NoError(t, err)
	return svc, store, archive
}

func setBigPicture(text string) Mutation {
	return func(g *game.Game) (uuid.UUID, error) {
		return uuid.Nil, g.SetBigPicture(text)
	}
}

func TestSessionService_Start(t *testing.T) {
	svc, store, archive := newTestSession(t, 0)

	assert.Contains(t, store.Data, "empire")
	require.Len(t, archive.Versions, 1)
	assert.Equal(t, 1, archive.Versions[0].Version)
	assert.Equal(t, ActionStart, archive.Versions[0].Action)
	assert.Equal(t, game.PhaseSetupBigPicture.String(), archive.Versions[0].Phase)

	t.Run("twice", func(t *testing.T) {
		_, err := svc.Start(context.Background())
		require.ErrorIs(t, err, ErrSessionExists)
	})

	t.Run("store failure", func(t *testing.T) {
		broken := mocks.NewSessionStore()
		broken.LoadErr = errors.New("disk on fire")
		_, err := NewSessionService("x", broken, nil, 0, nil).Start(context.Background())
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrSessionExists)
	})
}

func TestSessionService_Load_Missing(t *testing.T) {
	svc := NewSessionService("ghost", mocks.NewSessionStore(), nil, 0, nil)

	_, err := svc.Load(context.Background())
	require.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionService_Apply(t *testing.T) {
	ctx := context.Background()
	svc, store, archive := newTestSession(t, 0)

	res, err := svc.Apply(ctx, game.OpSetBigPicture, map[string]any{"text": "Empire"}, setBigPicture("Empire"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Version)
	assert.Equal(t, game.PhaseSetupBookends, res.Game.Phase())

	loaded, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Empire", loaded.Outline().BigPicture)
	assert.Equal(t, 2, store.SaveCallCount)

	require.Len(t, archive.Audit, 2)
	assert.Equal(t, "set_big_picture", archive.Audit[1].Action)
	assert.Equal(t, "Empire", archive.Audit[1].Details["text"])

	var start uuid.UUID
	res, err = svc.Apply(ctx, game.OpCreateBookendPeriod, nil, func(g *game.Game) (uuid.UUID, error) {
		id, err := g.CreateBookendPeriod("Dawn", "", entities.ToneLight, true)
		start = id
		return id, err
	})
	require.NoError(t, err)
	assert.Equal(t, start, res.ElementID)
	assert.Equal(t, start.String(), archive.Audit[2].ElementID)
}

func TestSessionService_Apply_Rejected(t *testing.T) {
	ctx := context.Background()
	svc, store, archive := newTestSession(t, 0)
	before := store.Data["empire"]

	_, err := svc.Apply(ctx, game.OpCompletePalette, nil, func(g *game.Game) (uuid.UUID, error) {
		return uuid.Nil, g.CompletePalette()
	})
	require.ErrorIs(t, err, game.ErrIllegalPhase)

	assert.Equal(t, before, store.Data["empire"])
	assert.Equal(t, 1, store.SaveCallCount)
	assert.Len(t, archive.Versions, 1)

	require.Len(t, archive.Audit, 2)
	failed := archive.Audit[1]
	assert.Equal(t, "complete_palette", failed.Action)
	assert.Contains(t, failed.Details["error"], "not allowed")
}

func TestSessionService_Apply_SaveFails(t *testing.T) {
	svc, store, archive := newTestSession(t, 0)
	store.SaveErr = errors.New("read-only")

	_, err := svc.Apply(context.Background(), game.OpSetBigPicture, nil, setBigPicture("Empire"))
	require.Error(t, err)
	assert.Len(t, archive.Versions, 1)
}

func TestSessionService_Apply_ArchiveFailureIsNotFatal(t *testing.T) {
	svc, store, archive := newTestSession(t, 0)
	archive.Err = errors.New("locked")

	res, err := svc.Apply(context.Background(), game.OpSetBigPicture, nil, setBigPicture("Empire"))
	require.NoError(t, err)
	assert.Zero(t, res.Version)

	loaded, err := game.Decode(store.Data["empire"])
	require.NoError(t, err)
	assert.Equal(t, game.PhaseSetupBookends, loaded.Phase())
}

func TestSessionService_Apply_WithoutArchive(t *testing.T) {
	store := mocks.NewSessionStore()
	svc := NewSessionService("empire", store, nil, 0, nil)
	_, err := svc.Start(context.Background())
	require.NoError(t, err)

	res, err := svc.Apply(context.Background(), game.OpSetBigPicture, nil, setBigPicture("Empire"))
	require.NoError(t, err)
	assert.Zero(t, res.Version)

	versions, err := svc.Versions(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, versions)

	_, _, err = svc.Version(context.Background(), 1)
	require.Error(t, err)
}

func TestSessionService_PrunesVersions(t *testing.T) {
	ctx := context.Background()
	svc, _, archive := newTestSession(t, 2)

	_, err := svc.Apply(ctx, game.OpSetBigPicture, nil, setBigPicture("Empire"))
	require.NoError(t, err)
	for _, start := range []bool{true, false} {
		_, err := svc.Apply(ctx, game.OpCreateBookendPeriod, nil, func(g *game.Game) (uuid.UUID, error) {
			return g.CreateBookendPeriod("Bookend", "", entities.ToneDark, start)
		})
		require.NoError(t, err)
	}

	versions, err := svc.Versions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 4, versions[0].Version)
	assert.Equal(t, 3, versions[1].Version)
	assert.Len(t, archive.Audit, 4)
}

func TestSessionService_Version(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestSession(t, 0)
	_, err := svc.Apply(ctx, game.OpSetBigPicture, nil, setBigPicture("Empire"))
	require.NoError(t, err)

	v, g, err := svc.Version(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, ActionStart, v.Action)
	assert.Equal(t, game.PhaseSetupBigPicture, g.Phase())

	_, _, err = svc.Version(ctx, 99)
	require.Error(t, err)
}

func TestSessionService_AuditLog(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestSession(t, 0)
	_, err := svc.Apply(ctx, game.OpSetBigPicture, nil, setBigPicture(""))
	require.Error(t, err)
	_, err = svc.Apply(ctx, game.OpSetBigPicture, nil, setBigPicture("Empire"))
	require.NoError(t, err)

	all, err := svc.AuditLog(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	bp, err := svc.AuditLog(ctx, "set_big_picture", 1)
	require.NoError(t, err)
	require.Len(t, bp, 1)
	assert.NotContains(t, bp[0].Details, "error")
}

func TestSessionService_Delete(t *testing.T) {
	svc, store, _ := newTestSession(t, 0)

	require.NoError(t, svc.Delete(context.Background()))
	assert.NotContains(t, store.Data, "empire")
}
