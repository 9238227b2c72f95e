package mocks

import (
	"context"

	"github.com/ersonp/microscope-solo/internal/domain/game"
	"github.com/ersonp/microscope-solo/internal/domain/ports"
)

// SessionStore keeps encoded sessions in memory, so every Load returns a
// fresh Game exactly as a file-backed store would.
type SessionStore struct {
	Data    map[string][]byte
	LoadErr error
	SaveErr error

	SaveCallCount int
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{Data: make(map[string][]byte)}
}

// Load decodes a stored session.
func (m *SessionStore) Load(_ context.Context, session string) (*game.Game, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	data, ok := m.Data[session]
	if !ok {
		return nil, ports.ErrSessionNotFound
	}
	return game.Decode(data)
}

// Save encodes and stores a session.
func (m *SessionStore) Save(_ context.Context, session string, g *game.Game) error {
	m.SaveCallCount++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := game.Encode(g)
	if err != nil {
		return err
	}
	m.Data[session] = data
	return nil
}

// Delete removes a stored session.
func (m *SessionStore) Delete(_ context.Context, session string) error {
	delete(m.Data, session)
	return nil
}
