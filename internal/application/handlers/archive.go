package handlers

import (
	"context"

	"github.com/ersonp/microscope-solo/internal/domain/entities"
	"github.com/ersonp/microscope-solo/internal/domain/game"
	"github.com/ersonp/microscope-solo/internal/domain/services"
)

// ArchiveHandler reads a session's version history and audit log.
type ArchiveHandler struct {
	sessions *services.SessionService
}

// NewArchiveHandler creates a new archive handler.
func NewArchiveHandler(sessions *services.SessionService) *ArchiveHandler {
	return &ArchiveHandler{sessions: sessions}
}

// Versions lists archived snapshots, newest first.
func (h *ArchiveHandler) Versions(ctx context.Context, limit int) ([]entities.SessionVersion, error) {
	return h.sessions.Versions(ctx, limit)
}

// Version returns one archived snapshot described like a live session.
func (h *ArchiveHandler) Version(ctx context.Context, version int) (*entities.SessionVersion, *StatusResult, error) {
	v, g, err := h.sessions.Version(ctx, version)
	if err != nil {
		return nil, nil, err
	}
	return v, Describe(h.sessions.Session(), g), nil
}

// Snapshot returns the archived game itself, for export.
func (h *ArchiveHandler) Snapshot(ctx context.Context, version int) (*game.Game, error) {
	_, g, err := h.sessions.Version(ctx, version)
	return g, err
}

// AuditLog lists logged actions, newest first. An empty action lists all.
func (h *ArchiveHandler) AuditLog(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	return h.sessions.AuditLog(ctx, action, limit)
}
