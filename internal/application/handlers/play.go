package handlers

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ersonp/microscope-solo/internal/domain/entities"
	"github.com/ersonp/microscope-solo/internal/domain/game"
	"github.com/ersonp/microscope-solo/internal/domain/services"
)

var timelineKinds = []entities.PassageKind{entities.PassagePeriod, entities.PassageEvent, entities.PassageScene}

// PlayHandler runs game operations against a session.
type PlayHandler struct {
	sessions *services.SessionService
	logger   *zap.Logger
}

// NewPlayHandler creates a new play handler.
func NewPlayHandler(sessions *services.SessionService, logger *zap.Logger) *PlayHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlayHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// PlayResult describes the state after a successful operation.
type PlayResult struct {
	Action    game.Operation
	ElementID uuid.UUID
	Phase     game.Phase
	Turn      int
	Version   int
	// Added is set by AddToPalette when the list grew.
	Added bool
	// Warning is a palette compliance warning for the submitted text.
	Warning string
}

// PeriodInput describes a period or bookend to create.
type PeriodInput struct {
	Title       string
	Description string
	Tone        entities.Tone
	// After references the period the new one follows (id, id prefix or title).
	After string
}

// EventInput describes an event to create.
type EventInput struct {
	Title       string
	Description string
	Tone        entities.Tone
	Period      string
}

// CharacterInput is a scene character with an optional revealed thought.
type CharacterInput struct {
	Name        string
	Description string
	Thought     string
}

// SceneInput describes a scene to create.
type SceneInput struct {
	Question         string
	Event            string
	Dictated         bool
	StageDescription string
	Characters       []CharacterInput
	Answer           string
}

func (h *PlayHandler) run(ctx context.Context, op game.Operation, details map[string]any, text []string, m services.Mutation) (*PlayResult, error) {
	res, err := h.sessions.Apply(ctx, op, details, m)
	if err != nil {
		return nil, err
	}

	out := &PlayResult{
		Action:    op,
		ElementID: res.ElementID,
		Phase:     res.Game.Phase(),
		Turn:      res.Game.TurnCounter(),
		Version:   res.Version,
	}
	if len(text) > 0 {
		if ok, warning := res.Game.CheckPaletteCompliance(strings.Join(text, "\n")); !ok {
			out.Warning = warning
			h.logger.Warn("palette violation",
				zap.String("session", h.sessions.Session()),
				zap.String("action", string(op)),
				zap.String("warning", warning),
			)
		}
	}
	return out, nil
}

// SetBigPicture enters the big picture.
func (h *PlayHandler) SetBigPicture(ctx context.Context, text string) (*PlayResult, error) {
	return h.run(ctx, game.OpSetBigPicture, map[string]any{"text": text}, []string{text},
		func(g *game.Game) (uuid.UUID, error) {
			return uuid.Nil, g.SetBigPicture(text)
		})
}

// CreateBookend creates the start or end bookend. in.After is ignored.
func (h *PlayHandler) CreateBookend(ctx context.Context, in PeriodInput, isStart bool) (*PlayResult, error) {
	details := map[string]any{"title": in.Title, "tone": string(in.Tone), "start": isStart}
	return h.run(ctx, game.OpCreateBookendPeriod, details, []string{in.Title, in.Description},
		func(g *game.Game) (uuid.UUID, error) {
			return g.CreateBookendPeriod(in.Title, in.Description, in.Tone, isStart)
		})
}

// AddToPalette adds an item to the Yes or No list.
func (h *PlayHandler) AddToPalette(ctx context.Context, item string, isYes bool) (*PlayResult, error) {
	var added bool
	res, err := h.run(ctx, game.OpAddToPalette, map[string]any{"item": item, "yes": isYes}, nil,
		func(g *game.Game) (uuid.UUID, error) {
			var err error
			added, err = g.AddToPalette(item, isYes)
			return uuid.Nil, err
		})
	if err != nil {
		return nil, err
	}
	res.Added = added
	return res, nil
}

// CompletePalette locks the palette.
func (h *PlayHandler) CompletePalette(ctx context.Context) (*PlayResult, error) {
	return h.run(ctx, game.OpCompletePalette, nil, nil, func(g *game.Game) (uuid.UUID, error) {
		return uuid.Nil, g.CompletePalette()
	})
}

// CompleteFirstPass ends setup.
func (h *PlayHandler) CompleteFirstPass(ctx context.Context) (*PlayResult, error) {
	return h.run(ctx, game.OpCompleteFirstPass, nil, nil, func(g *game.Game) (uuid.UUID, error) {
		return uuid.Nil, g.CompleteFirstPass()
	})
}

// DeclareFocus declares the focus for the next round.
func (h *PlayHandler) DeclareFocus(ctx context.Context, description string) (*PlayResult, error) {
	return h.run(ctx, game.OpDeclareFocus, map[string]any{"description": description}, []string{description},
		func(g *game.Game) (uuid.UUID, error) {
			return g.DeclareFocus(description)
		})
}

// CreatePeriod inserts a period after in.After.
func (h *PlayHandler) CreatePeriod(ctx context.Context, in PeriodInput) (*PlayResult, error) {
	details := map[string]any{"title": in.Title, "tone": string(in.Tone), "after": in.After}
	return h.run(ctx, game.OpCreatePeriod, details, []string{in.Title, in.Description},
		func(g *game.Game) (uuid.UUID, error) {
			after, err := resolveRef(g.Outline(), in.After, entities.PassagePeriod)
			if err != nil {
				return uuid.Nil, err
			}
			return g.CreatePeriod(in.Title, in.Description, in.Tone, after)
		})
}

// CreateEvent adds an event to in.Period.
func (h *PlayHandler) CreateEvent(ctx context.Context, in EventInput) (*PlayResult, error) {
	details := map[string]any{"title": in.Title, "tone": string(in.Tone), "period": in.Period}
	return h.run(ctx, game.OpCreateEvent, details, []string{in.Title, in.Description},
		func(g *game.Game) (uuid.UUID, error) {
			periodID, err := resolveRef(g.Outline(), in.Period, entities.PassagePeriod)
			if err != nil {
				return uuid.Nil, err
			}
			return g.CreateEvent(in.Title, in.Description, in.Tone, periodID)
		})
}

// CreateScene builds a scene from in and adds it to in.Event.
func (h *PlayHandler) CreateScene(ctx context.Context, in SceneInput) (*PlayResult, error) {
	details := map[string]any{"question": in.Question, "event": in.Event, "dictated": in.Dictated}
	text := []string{in.Question, in.StageDescription, in.Answer}
	for _, c := range in.Characters {
		text = append(text, c.Name, c.Description, c.Thought)
	}

	return h.run(ctx, game.OpCreateScene, details, text, func(g *game.Game) (uuid.UUID, error) {
		eventID, err := resolveRef(g.Outline(), in.Event, entities.PassageEvent)
		if err != nil {
			return uuid.Nil, err
		}

		scene := entities.NewScene(in.Question)
		scene.Dictated = in.Dictated
		scene.StageDescription = in.StageDescription
		for _, c := range in.Characters {
			ch := scene.AddCharacter(c.Name, c.Description)
			if c.Thought != "" {
				scene.RevealThought(ch.ID(), c.Thought)
			}
		}
		if in.Answer != "" {
			scene.Resolve(in.Answer)
		}
		return g.CreateScene(scene, eventID)
	})
}

// CompleteFocus ends the make-history phase for the current focus.
func (h *PlayHandler) CompleteFocus(ctx context.Context) (*PlayResult, error) {
	return h.run(ctx, game.OpCompleteFocus, nil, nil, func(g *game.Game) (uuid.UUID, error) {
		return uuid.Nil, g.CompleteFocus()
	})
}

// CreateLegacy records a legacy. origin may be empty.
func (h *PlayHandler) CreateLegacy(ctx context.Context, description, origin string) (*PlayResult, error) {
	details := map[string]any{"description": description, "origin": origin}
	return h.run(ctx, game.OpCreateLegacy, details, []string{description},
		func(g *game.Game) (uuid.UUID, error) {
			originID, err := resolveRef(g.Outline(), origin, timelineKinds...)
			if err != nil {
				return uuid.Nil, err
			}
			return g.CreateLegacy(description, originID)
		})
}

// SkipLegacy skips legacy creation for this round.
func (h *PlayHandler) SkipLegacy(ctx context.Context) (*PlayResult, error) {
	return h.run(ctx, game.OpSkipLegacyCreation, nil, nil, func(g *game.Game) (uuid.UUID, error) {
		return uuid.Nil, g.SkipLegacyCreation()
	})
}

// CompleteLegacyExploration finishes exploring the pending legacy.
func (h *PlayHandler) CompleteLegacyExploration(ctx context.Context) (*PlayResult, error) {
	return h.run(ctx, game.OpCompleteLegacyExploration, nil, nil, func(g *game.Game) (uuid.UUID, error) {
		return uuid.Nil, g.CompleteLegacyExploration()
	})
}

// Check tests content against the session's palette without changing anything.
func (h *PlayHandler) Check(ctx context.Context, content string) (bool, string, error) {
	g, err := h.sessions.Load(ctx)
	if err != nil {
		return false, "", err
	}
	ok, warning := g.CheckPaletteCompliance(content)
	return ok, warning, nil
}
