package handlers

import (
	"context"

	"github.com/ersonp/microscope-solo/internal/domain/entities"
	"github.com/ersonp/microscope-solo/internal/domain/game"
	"github.com/ersonp/microscope-solo/internal/domain/services"
)

// StatusHandler reports where a session stands.
type StatusHandler struct {
	sessions *services.SessionService
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(sessions *services.SessionService) *StatusHandler {
	return &StatusHandler{sessions: sessions}
}

// StatusResult is a read-only view of a session.
type StatusResult struct {
	Session       string
	Phase         game.Phase
	Turn          int
	CurrentFocus  string
	PendingLegacy string
	Actions       []string
	Instructions  string
	Outline       entities.Outline
}

// Handle loads the session and describes it.
func (h *StatusHandler) Handle(ctx context.Context) (*StatusResult, error) {
	g, err := h.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	return Describe(h.sessions.Session(), g), nil
}

// Describe builds a status view of g.
func Describe(session string, g *game.Game) *StatusResult {
	res := &StatusResult{
		Session:      session,
		Phase:        g.Phase(),
		Turn:         g.TurnCounter(),
		Actions:      g.AvailableActions(),
		Instructions: g.PhaseInstructions(),
		Outline:      g.Outline(),
	}
	if f := g.CurrentFocus(); f != nil {
		res.CurrentFocus = f.Description()
	}
	if l := g.PendingLegacy(); l != nil {
		res.PendingLegacy = l.Description()
	}
	return res
}
