// Package game implements the phase-gated state machine that drives a
// session: which operation is legal when, and where each one leads.
package game

import "fmt"

// Phase is a named step of play. The string values are persisted verbatim.
type Phase string

const (
	PhaseSetupBigPicture   Phase = "Setup: Big Picture"
	PhaseSetupBookends     Phase = "Setup: Bookend Periods"
	PhaseSetupPalette      Phase = "Setup: Palette"
	PhaseSetupFirstPass    Phase = "Setup: First Pass"
	PhasePlayDeclareFocus  Phase = "Play: Declare Focus"
	PhasePlayMakeHistory   Phase = "Play: Make History"
	PhasePlayCreateLegacy  Phase = "Play: Create Legacy"
	PhasePlayExploreLegacy Phase = "Play: Explore Legacy"
	PhaseGameComplete      Phase = "Game Complete"
)

// AllPhases lists every phase in forward order.
func AllPhases() []Phase {
	return []Phase{
		PhaseSetupBigPicture,
		PhaseSetupBookends,
		PhaseSetupPalette,
		PhaseSetupFirstPass,
		PhasePlayDeclareFocus,
		PhasePlayMakeHistory,
		PhasePlayCreateLegacy,
		PhasePlayExploreLegacy,
		PhaseGameComplete,
	}
}

// IsValid reports whether p is a known phase.
func (p Phase) IsValid() bool {
	for _, known := range AllPhases() {
		if p == known {
			return true
		}
	}
	return false
}

// IsSetup reports whether p belongs to the setup stage.
func (p Phase) IsSetup() bool {
	switch p {
	case PhaseSetupBigPicture, PhaseSetupBookends, PhaseSetupPalette, PhaseSetupFirstPass:
		return true
	}
	return false
}

func (p Phase) String() string { return string(p) }

// ParsePhase converts a persisted phase string.
func ParsePhase(s string) (Phase, error) {
	p := Phase(s)
	if !p.IsValid() {
		return "", fmt.Errorf("unknown phase %q", s)
	}
	return p, nil
}
