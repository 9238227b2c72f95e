package game

import "fmt"

// Operation names a mutating call on a Game.
type Operation string

const (
	OpSetBigPicture             Operation = "set_big_picture"
	OpCreateBookendPeriod       Operation = "create_bookend_period"
	OpAddToPalette              Operation = "add_to_palette"
	OpCompletePalette           Operation = "complete_palette"
	OpCompleteFirstPass         Operation = "complete_first_pass"
	OpDeclareFocus              Operation = "declare_focus"
	OpCreatePeriod              Operation = "create_period"
	OpCreateEvent               Operation = "create_event"
	OpCreateScene               Operation = "create_scene"
	OpCompleteFocus             Operation = "complete_focus"
	OpCreateLegacy              Operation = "create_legacy"
	OpSkipLegacyCreation        Operation = "skip_legacy_creation"
	OpCompleteLegacyExploration Operation = "complete_legacy_exploration"
)

// transition is one row of the phase table. Rows for the same (from, op) pair
// are tried in order after the operation succeeds; the first row whose guard
// passes (or has no guard) decides the next phase.
type transition struct {
	from  Phase
	op    Operation
	to    Phase
	guard func(g *Game) bool
}

// transitions is the complete set of legal (phase, operation) pairs. Anything
// not listed here is rejected.
var transitions = []transition{
	{from: PhaseSetupBigPicture, op: OpSetBigPicture, to: PhaseSetupBookends},

	{from: PhaseSetupBookends, op: OpCreateBookendPeriod, to: PhaseSetupPalette, guard: bothBookends},
	{from: PhaseSetupBookends, op: OpCreateBookendPeriod, to: PhaseSetupBookends},

	{from: PhaseSetupPalette, op: OpAddToPalette, to: PhaseSetupPalette},
	{from: PhaseSetupPalette, op: OpCompletePalette, to: PhaseSetupFirstPass},

	{from: PhaseSetupFirstPass, op: OpCreatePeriod, to: PhaseSetupFirstPass},
	{from: PhaseSetupFirstPass, op: OpCreateEvent, to: PhaseSetupFirstPass},
	{from: PhaseSetupFirstPass, op: OpCompleteFirstPass, to: PhasePlayDeclareFocus},

	{from: PhasePlayDeclareFocus, op: OpDeclareFocus, to: PhasePlayMakeHistory},

	{from: PhasePlayMakeHistory, op: OpCreatePeriod, to: PhasePlayMakeHistory},
	{from: PhasePlayMakeHistory, op: OpCreateEvent, to: PhasePlayMakeHistory},
	{from: PhasePlayMakeHistory, op: OpCreateScene, to: PhasePlayMakeHistory},
	{from: PhasePlayMakeHistory, op: OpCompleteFocus, to: PhasePlayCreateLegacy},

	{from: PhasePlayCreateLegacy, op: OpCreateLegacy, to: PhasePlayExploreLegacy},
	{from: PhasePlayCreateLegacy, op: OpSkipLegacyCreation, to: PhasePlayDeclareFocus},

	{from: PhasePlayExploreLegacy, op: OpCompleteLegacyExploration, to: PhasePlayDeclareFocus},
}

// actionLabels are the human labels shown for each operation. Operations with
// several labels expose each variant as a separate action.
var actionLabels = map[Operation][]string{
	OpSetBigPicture:             {"Enter Big Picture"},
	OpCreateBookendPeriod:       {"Create Start Period", "Create End Period"},
	OpAddToPalette:              {"Add to Yes List", "Add to No List"},
	OpCompletePalette:           {"Complete Palette"},
	OpCompleteFirstPass:         {"Complete First Pass"},
	OpDeclareFocus:              {"Declare Focus"},
	OpCreatePeriod:              {"Create Period"},
	OpCreateEvent:               {"Create Event"},
	OpCreateScene:               {"Create Scene"},
	OpCompleteFocus:             {"Complete Focus"},
	OpCreateLegacy:              {"Create Legacy"},
	OpSkipLegacyCreation:        {"Skip Legacy"},
	OpCompleteLegacyExploration: {"Complete Legacy Exploration"},
}

func bothBookends(g *Game) bool {
	_, start := g.history.StartPeriodID()
	_, end := g.history.EndPeriodID()
	return start && end
}

// Allowed reports whether op is legal in phase.
func Allowed(phase Phase, op Operation) bool {
	for _, t := range transitions {
		if t.from == phase && t.op == op {
			return true
		}
	}
	return false
}

// Operations returns the operations legal in phase, in table order.
func Operations(phase Phase) []Operation {
	var ops []Operation
	seen := make(map[Operation]bool)
	for _, t := range transitions {
		if t.from != phase || seen[t.op] {
			continue
		}
		seen[t.op] = true
		ops = append(ops, t.op)
	}
	return ops
}

// next picks the phase that follows a successful op.
func (g *Game) next(op Operation) Phase {
	for _, t := range transitions {
		if t.from != g.phase || t.op != op {
			continue
		}
		if t.guard == nil || t.guard(g) {
			return t.to
		}
	}
	return g.phase
}

func (g *Game) require(op Operation) error {
	if !Allowed(g.phase, op) {
		return fmt.Errorf("%w: %s during %q", ErrIllegalPhase, op, g.phase)
	}
	return nil
}
