// Package sessionfile stores each session as one JSON snapshot on disk.
package sessionfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ersonp/microscope-solo/internal/domain/game"
	"github.com/ersonp/microscope-solo/internal/domain/ports"
	"github.com/ersonp/microscope-solo/internal/infrastructure/config"
)

// Store implements ports.SessionStore on the file system under a
// .microscope directory.
type Store struct {
	basePath string
}

// NewStore creates a store rooted at basePath.
func NewStore(basePath string) *Store {
	return &Store{basePath: basePath}
}

// Path returns the snapshot file of a session.
func (s *Store) Path(session string) string {
	return config.SessionFilePathFor(s.basePath, session)
}

// Load reads and decodes a session snapshot.
func (s *Store) Load(ctx context.Context, session string) (*game.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.Path(session)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ports.ErrSessionNotFound, session)
	}
	if err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	g, err := game.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("loading session %s from %s: %w", session, path, err)
	}
	return g, nil
}

// Save encodes the game and replaces the snapshot atomically: the data is
// written next to the target and renamed over it.
func (s *Store) Save(ctx context.Context, session string, g *game.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := game.Encode(g)
	if err != nil {
		return err
	}

	path := s.Path(session)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing session file: %w", err)
	}
	return nil
}

// Delete removes the session directory with everything in it.
func (s *Store) Delete(ctx context.Context, session string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.RemoveAll(config.SessionDir(s.basePath, session)); err != nil {
		return fmt.Errorf("deleting session %s: %w", session, err)
	}
	return nil
}
