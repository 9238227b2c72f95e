package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ersonp/microscope-solo/internal/domain/entities"
	"github.com/ersonp/microscope-solo/internal/domain/game"
	"github.com/ersonp/microscope-solo/internal/domain/ports"
)

// ErrSessionExists is returned when starting a session that was already saved.
var ErrSessionExists = errors.New("session already exists")

// ActionStart is the archive action recorded when a session is created.
const ActionStart = "start_session"

// Mutation is one operation applied to a loaded game. It returns the id of
// the element it created, or uuid.Nil.
type Mutation func(g *game.Game) (uuid.UUID, error)

// Result describes a successfully applied mutation.
type Result struct {
	Game      *game.Game
	ElementID uuid.UUID
	// Version is the archived snapshot version, or 0 when archiving is off.
	Version int
}

// SessionService runs operations against one named session: load, apply,
// save, then archive.
type SessionService struct {
	session      string
	store        ports.SessionStore
	archive      ports.Archive
	keepVersions int
	logger       *zap.Logger
}

// NewSessionService creates a session service. archive may be nil to disable
// version history, and a nil logger discards output.
func NewSessionService(session string, store ports.SessionStore, archive ports.Archive, keepVersions int, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		session:      session,
		store:        store,
		archive:      archive,
		keepVersions: keepVersions,
		logger:       logger.With(zap.String("session", session)),
	}
}

// Session returns the session name.
func (s *SessionService) Session() string {
	return s.session
}

// Start saves a fresh game for the session.
func (s *SessionService) Start(ctx context.Context) (*game.Game, error) {
	_, err := s.store.Load(ctx, s.session)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", ErrSessionExists, s.session)
	case !errors.Is(err, ports.ErrSessionNotFound):
		return nil, fmt.Errorf("checking session %s: %w", s.session, err)
	}

	g := game.New()
	if err := s.store.Save(ctx, s.session, g); err != nil {
		return nil, fmt.Errorf("saving new session: %w", err)
	}
	s.record(ctx, ActionStart, g, uuid.Nil, nil)

	s.logger.Info("session started", zap.String("phase", g.Phase().String()))
	return g, nil
}

// Load returns the current state of the session.
func (s *SessionService) Load(ctx context.Context) (*game.Game, error) {
	g, err := s.store.Load(ctx, s.session)
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", s.session, err)
	}
	return g, nil
}

// Apply loads the session, runs m and saves the result. A failed mutation
// leaves the game unchanged, so nothing is saved; the failure is still
// written to the audit log.
func (s *SessionService) Apply(ctx context.Context, op game.Operation, details map[string]any, m Mutation) (*Result, error) {
	g, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	id, err := m(g)
	if err != nil {
		s.logger.Debug("operation rejected",
			zap.String("action", string(op)),
			zap.String("phase", g.Phase().String()),
			zap.Error(err),
		)
		s.audit(ctx, string(op), uuid.Nil, withError(details, err))
		return nil, err
	}

	if err := s.store.Save(ctx, s.session, g); err != nil {
		return nil, fmt.Errorf("saving session %s: %w", s.session, err)
	}

	version := s.record(ctx, string(op), g, id, details)

	s.logger.Info("operation applied",
		zap.String("action", string(op)),
		zap.String("phase", g.Phase().String()),
		zap.Int("turn", g.TurnCounter()),
		zap.Stringer("element_id", id),
	)
	return &Result{Game: g, ElementID: id, Version: version}, nil
}

// Delete removes the session's saved state.
func (s *SessionService) Delete(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.session); err != nil {
		return fmt.Errorf("deleting session %s: %w", s.session, err)
	}
	return nil
}

// Versions lists archived snapshots, newest first.
func (s *SessionService) Versions(ctx context.Context, limit int) ([]entities.SessionVersion, error) {
	if s.archive == nil {
		return []entities.SessionVersion{}, nil
	}
	versions, err := s.archive.FindVersions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}
	return versions, nil
}

// Version returns one archived snapshot decoded into a game.
func (s *SessionService) Version(ctx context.Context, version int) (*entities.SessionVersion, *game.Game, error) {
	if s.archive == nil {
		return nil, nil, errors.New("archive is disabled")
	}
	v, err := s.archive.FindVersion(ctx, version)
	if err != nil {
		return nil, nil, fmt.Errorf("finding version %d: %w", version, err)
	}
	if v == nil {
		return nil, nil, fmt.Errorf("version %d not found", version)
	}
	g, err := game.Decode(v.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding version %d: %w", version, err)
	}
	return v, g, nil
}

// AuditLog lists logged actions, newest first. An empty action lists all.
func (s *SessionService) AuditLog(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	if s.archive == nil {
		return []entities.AuditEntry{}, nil
	}
	var (
		entries []entities.AuditEntry
		err     error
	)
	if action == "" {
		entries, err = s.archive.FindAuditLog(ctx, limit)
	} else {
		entries, err = s.archive.FindAuditLogByAction(ctx, action, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	return entries, nil
}

// record archives a snapshot of g and audits the action. The session file is
// the source of truth, so archive failures are logged and not returned.
func (s *SessionService) record(ctx context.Context, action string, g *game.Game, id uuid.UUID, details map[string]any) int {
	if s.archive == nil {
		return 0
	}

	version, err := s.archiveVersion(ctx, action, g)
	if err != nil {
		s.logger.Warn("archiving snapshot failed", zap.String("action", action), zap.Error(err))
	}
	s.audit(ctx, action, id, details)
	return version
}

func (s *SessionService) archiveVersion(ctx context.Context, action string, g *game.Game) (int, error) {
	data, err := game.Encode(g)
	if err != nil {
		return 0, fmt.Errorf("encoding snapshot: %w", err)
	}

	latest, err := s.archive.FindLatestVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("finding latest version: %w", err)
	}
	next := 1
	if latest != nil {
		next = latest.Version + 1
	}

	v := &entities.SessionVersion{
		Version:     next,
		Action:      action,
		Phase:       g.Phase().String(),
		TurnCounter: g.TurnCounter(),
		Data:        data,
	}
	if err := s.archive.SaveVersion(ctx, v); err != nil {
		return 0, fmt.Errorf("saving version %d: %w", next, err)
	}

	if s.keepVersions > 0 {
		removed, err := s.archive.PruneVersions(ctx, s.keepVersions)
		if err != nil {
			return next, fmt.Errorf("pruning versions: %w", err)
		}
		if removed > 0 {
			s.logger.Debug("pruned versions", zap.Int("removed", removed))
		}
	}
	return next, nil
}

func (s *SessionService) audit(ctx context.Context, action string, id uuid.UUID, details map[string]any) {
	if s.archive == nil {
		return
	}
	elementID := ""
	if id != uuid.Nil {
		elementID = id.String()
	}
	if err := s.archive.LogAction(ctx, action, elementID, details); err != nil {
		s.logger.Warn("writing audit log failed", zap.String("action", action), zap.Error(err))
	}
}

func withError(details map[string]any, err error) map[string]any {
	out := make(map[string]any, len(details)+1)
	for k, v := range details {
		out[k] = v
	}
	out["error"] = err.Error()
	return out
}
