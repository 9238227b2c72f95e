package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ersonp/microscope-solo/internal/domain/entities"
)

// Game owns one history and the phase it is in. Every mutating method checks
// the phase table and all of its arguments before touching state, so a call
// that returns an error leaves the Game exactly as it was.
type Game struct {
	history       *entities.History
	phase         Phase
	currentFocus  *entities.Focus
	pendingLegacy *entities.Legacy
}

// New starts a fresh game at the big picture step.
func New() *Game {
	return &Game{
		history: entities.NewHistory(),
		phase:   PhaseSetupBigPicture,
	}
}

// Restore rebuilds a game from previously saved parts. The current focus and
// pending legacy, when non-nil, must be members of the history.
func Restore(history *entities.History, phase Phase, currentFocusID, pendingLegacyID uuid.UUID) (*Game, error) {
	if history == nil {
		return nil, fmt.Errorf("restoring game: history is required")
	}
	if !phase.IsValid() {
		return nil, fmt.Errorf("restoring game: unknown phase %q", phase)
	}

	g := &Game{history: history, phase: phase}
	if currentFocusID != uuid.Nil {
		g.currentFocus = history.Focus(currentFocusID)
		if g.currentFocus == nil {
			return nil, fmt.Errorf("restoring game: current focus %s is not in the history", currentFocusID)
		}
	}
	if pendingLegacyID != uuid.Nil {
		g.pendingLegacy = history.Legacy(pendingLegacyID)
		if g.pendingLegacy == nil {
			return nil, fmt.Errorf("restoring game: pending legacy %s is not in the history", pendingLegacyID)
		}
	}
	return g, nil
}

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// Outline returns a detached copy of the history for display and export.
func (g *Game) Outline() entities.Outline { return g.history.Outline() }

// CurrentFocus returns the focus being played, or nil.
func (g *Game) CurrentFocus() *entities.Focus { return g.currentFocus }

// PendingLegacy returns the legacy being explored, or nil.
func (g *Game) PendingLegacy() *entities.Legacy { return g.pendingLegacy }

// TurnCounter returns the number of events and scenes created so far.
func (g *Game) TurnCounter() int { return g.history.TurnCounter() }

func (g *Game) advance(op Operation) {
	g.phase = g.next(op)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func requireText(field, value string) error {
	if blank(value) {
		return fmt.Errorf("%w: %s must not be blank", ErrValidation, field)
	}
	return nil
}

func requireTone(tone entities.Tone) error {
	if !tone.IsValid() {
		return fmt.Errorf("%w: tone must be %s or %s, got %q", ErrValidation, entities.ToneLight, entities.ToneDark, tone)
	}
	return nil
}

// SetBigPicture records the one-line summary of the history.
func (g *Game) SetBigPicture(text string) error {
	if err := g.require(OpSetBigPicture); err != nil {
		return err
	}
	if err := requireText("big picture", text); err != nil {
		return err
	}

	g.history.SetBigPicture(text)
	g.advance(OpSetBigPicture)
	return nil
}

// CreateBookendPeriod creates the start or end period. The game moves on to
// the palette once both exist.
func (g *Game) CreateBookendPeriod(title, description string, tone entities.Tone, isStart bool) (uuid.UUID, error) {
	if err := g.require(OpCreateBookendPeriod); err != nil {
		return uuid.Nil, err
	}
	if err := requireText("title", title); err != nil {
		return uuid.Nil, err
	}
	if err := requireTone(tone); err != nil {
		return uuid.Nil, err
	}

	which, exists := "end", false
	if isStart {
		which = "start"
		_, exists = g.history.StartPeriodID()
	} else {
		_, exists = g.history.EndPeriodID()
	}
	if exists {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrBookendExists, which)
	}

	period := entities.NewBookendPeriod(title, description, tone, isStart)
	g.history.AddBookend(period, isStart)
	g.advance(OpCreateBookendPeriod)
	return period.ID(), nil
}

// AddToPalette adds item to the Yes or No list. Adding to a locked palette, a
// blank item or a duplicate is accepted and changes nothing; the returned
// bool reports whether the list grew.
func (g *Game) AddToPalette(item string, isYes bool) (bool, error) {
	if err := g.require(OpAddToPalette); err != nil {
		return false, err
	}

	var added bool
	if isYes {
		added = g.history.Palette().AddYes(item)
	} else {
		added = g.history.Palette().AddNo(item)
	}
	g.advance(OpAddToPalette)
	return added, nil
}

// CompletePalette locks the palette.
func (g *Game) CompletePalette() error {
	if err := g.require(OpCompletePalette); err != nil {
		return err
	}

	g.history.Palette().Lock()
	g.advance(OpCompletePalette)
	return nil
}

// CompleteFirstPass ends setup.
func (g *Game) CompleteFirstPass() error {
	if err := g.require(OpCompleteFirstPass); err != nil {
		return err
	}

	g.advance(OpCompleteFirstPass)
	return nil
}

// DeclareFocus starts a round of play around description.
func (g *Game) DeclareFocus(description string) (uuid.UUID, error) {
	if err := g.require(OpDeclareFocus); err != nil {
		return uuid.Nil, err
	}
	if err := requireText("focus", description); err != nil {
		return uuid.Nil, err
	}

	focus := entities.NewFocus(description, g.history.TurnCounter())
	g.history.AddFocus(focus)
	g.currentFocus = focus
	g.advance(OpDeclareFocus)
	return focus.ID(), nil
}

// CreatePeriod inserts a period directly after afterPeriodID. It lands
// halfway to the following period, or one gap later when it is the last.
func (g *Game) CreatePeriod(title, description string, tone entities.Tone, afterPeriodID uuid.UUID) (uuid.UUID, error) {
	if err := g.require(OpCreatePeriod); err != nil {
		return uuid.Nil, err
	}
	if err := requireText("title", title); err != nil {
		return uuid.Nil, err
	}
	if err := requireTone(tone); err != nil {
		return uuid.Nil, err
	}

	periods := g.history.Periods()
	pos := g.history.PeriodPosition(afterPeriodID)
	if pos < 0 {
		return uuid.Nil, fmt.Errorf("%w: period %s", ErrUnknownReference, afterPeriodID)
	}
	if end, ok := g.history.EndPeriodID(); ok && end == afterPeriodID {
		return uuid.Nil, fmt.Errorf("%w: nothing can follow the end bookend", ErrInvalidPlacement)
	}

	prev := periods[pos]
	var (
		index int64
		err   error
	)
	if pos+1 < len(periods) {
		index, err = entities.IndexBetween(prev.Index(), periods[pos+1].Index())
	} else {
		index, err = entities.IndexAfter(prev.Index())
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("placing period after %q: %w", prev.Title, err)
	}

	period := entities.NewPeriod(title, description, tone, index)
	g.history.AddPeriod(period)
	g.advance(OpCreatePeriod)
	return period.ID(), nil
}

// CreateEvent appends an event to the period and advances the turn counter.
func (g *Game) CreateEvent(title, description string, tone entities.Tone, periodID uuid.UUID) (uuid.UUID, error) {
	if err := g.require(OpCreateEvent); err != nil {
		return uuid.Nil, err
	}
	if err := requireText("title", title); err != nil {
		return uuid.Nil, err
	}
	if err := requireTone(tone); err != nil {
		return uuid.Nil, err
	}

	period := g.history.Period(periodID)
	if period == nil {
		return uuid.Nil, fmt.Errorf("%w: period %s", ErrUnknownReference, periodID)
	}

	index, err := period.NextEventIndex()
	if err != nil {
		return uuid.Nil, fmt.Errorf("placing event in period %s: %w", periodID, err)
	}

	event := entities.NewEvent(title, description, tone, index)
	period.AddEvent(event)
	g.history.AdvanceTurn()
	g.advance(OpCreateEvent)
	return event.ID(), nil
}

// CreateScene attaches a prepared scene to an event and advances the turn counter.
func (g *Game) CreateScene(scene *entities.Scene, eventID uuid.UUID) (uuid.UUID, error) {
	if err := g.require(OpCreateScene); err != nil {
		return uuid.Nil, err
	}
	if scene == nil {
		return uuid.Nil, fmt.Errorf("%w: scene is required", ErrValidation)
	}
	if err := requireText("question", scene.Question); err != nil {
		return uuid.Nil, err
	}
	if owner, attached := scene.EventID(); attached {
		return uuid.Nil, fmt.Errorf("%w: scene %s already belongs to event %s", ErrValidation, scene.ID(), owner)
	}
	if g.history.ContainsElement(scene.ID()) {
		return uuid.Nil, fmt.Errorf("%w: id %s is already in use", ErrValidation, scene.ID())
	}

	event := g.history.Event(eventID)
	if event == nil {
		return uuid.Nil, fmt.Errorf("%w: event %s", ErrUnknownReference, eventID)
	}

	event.AddScene(scene)
	g.history.AdvanceTurn()
	g.advance(OpCreateScene)
	return scene.ID(), nil
}

// CompleteFocus ends the make-history step of the round.
func (g *Game) CompleteFocus() error {
	if err := g.require(OpCompleteFocus); err != nil {
		return err
	}

	g.advance(OpCompleteFocus)
	return nil
}

// CreateLegacy bookmarks originID (a period, event or scene, or uuid.Nil for
// none) under the current focus.
func (g *Game) CreateLegacy(description string, originID uuid.UUID) (uuid.UUID, error) {
	if err := g.require(OpCreateLegacy); err != nil {
		return uuid.Nil, err
	}
	if g.currentFocus == nil {
		return uuid.Nil, ErrNoCurrentFocus
	}
	if err := requireText("legacy", description); err != nil {
		return uuid.Nil, err
	}
	if originID != uuid.Nil && !g.history.ContainsElement(originID) {
		return uuid.Nil, fmt.Errorf("%w: element %s", ErrUnknownReference, originID)
	}

	legacy := entities.NewLegacy(description, g.currentFocus.ID(), originID)
	g.history.AddLegacy(legacy)
	g.pendingLegacy = legacy
	g.advance(OpCreateLegacy)
	return legacy.ID(), nil
}

// SkipLegacyCreation drops the current focus without bookmarking anything.
func (g *Game) SkipLegacyCreation() error {
	if err := g.require(OpSkipLegacyCreation); err != nil {
		return err
	}

	g.currentFocus = nil
	g.advance(OpSkipLegacyCreation)
	return nil
}

// CompleteLegacyExploration closes the round.
func (g *Game) CompleteLegacyExploration() error {
	if err := g.require(OpCompleteLegacyExploration); err != nil {
		return err
	}

	g.pendingLegacy = nil
	g.currentFocus = nil
	g.advance(OpCompleteLegacyExploration)
	return nil
}
