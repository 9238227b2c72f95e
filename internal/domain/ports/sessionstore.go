package ports

import (
	"context"
	"errors"

	"github.com/ersonp/microscope-solo/internal/domain/game"
)

// ErrSessionNotFound is returned when a session has never been saved.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore loads and saves the live state of named sessions.
type SessionStore interface {
	// Load reads a session. It returns ErrSessionNotFound if nothing was saved yet.
	Load(ctx context.Context, session string) (*game.Game, error)

	// Save writes a session, replacing any previous state.
	Save(ctx context.Context, session string, g *game.Game) error

	// Delete removes a session's saved state.
	Delete(ctx context.Context, session string) error
}
