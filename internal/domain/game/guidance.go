package game

import (
	"fmt"

	"github.com/ersonp/microscope-solo/internal/domain/entities"
)

// AvailableActions lists the labels of every operation the phase allows.
func AvailableActions(phase Phase) []string {
	actions := []string{}
	for _, op := range Operations(phase) {
		actions = append(actions, actionLabels[op]...)
	}
	return actions
}

// AvailableActions lists what can be done in the game's current phase.
func (g *Game) AvailableActions() []string {
	return AvailableActions(g.phase)
}

// PhaseInstructions returns guidance for phase. The make-history text names
// the focus being played.
func PhaseInstructions(phase Phase, currentFocus *entities.Focus) string {
	switch phase {
	case PhaseSetupBigPicture:
		return "THE BIG PICTURE\n\n" +
			"Sum up the whole history in one or two sentences. Think in centuries:\n" +
			"  - The rise and fall of a drowned kingdom\n" +
			"  - A thousand-year curse and those who tried to lift it\n"
	case PhaseSetupBookends:
		return "BOOKEND PERIODS\n\n" +
			"Create the two periods that frame the history:\n" +
			"  START: how does it begin?\n" +
			"  END: how does it end?\n\n" +
			"Each one needs a title, a description and a tone (Light or Dark).\n"
	case PhaseSetupPalette:
		return "THE PALETTE\n\n" +
			"  YES: things that must or may appear\n" +
			"  NO: things that can never appear\n\n" +
			"Add a few items to each list, then complete the palette to lock it.\n"
	case PhaseSetupFirstPass:
		return "FIRST PASS\n\n" +
			"Sketch the timeline between the bookends with a few periods and\n" +
			"an event or two in each. Leave gaps to fill during play.\n\n" +
			"Complete the first pass when you are ready to play.\n"
	case PhasePlayDeclareFocus:
		return "DECLARE A FOCUS\n\n" +
			"Pick a theme, a question or an element to explore this round.\n" +
			"Everything created until the focus is complete should relate to it.\n"
	case PhasePlayMakeHistory:
		focus := "[None]"
		if currentFocus != nil {
			focus = currentFocus.Description()
		}
		return "MAKE HISTORY\n\n" +
			fmt.Sprintf("Focus: %s\n\n", focus) +
			"  PERIOD: insert a new span of time\n" +
			"  EVENT: add something that happens in a period\n" +
			"  SCENE: zoom in on one moment and answer a question\n\n" +
			"Create a few items, then complete the focus.\n"
	case PhasePlayCreateLegacy:
		return "CREATE A LEGACY\n\n" +
			"Did something emerge this round that deserves a return visit?\n" +
			"Bookmark it as a legacy, or skip and declare the next focus.\n"
	case PhasePlayExploreLegacy:
		return "EXPLORE THE LEGACY\n\n" +
			"Take a moment with the legacy you just created, then mark the\n" +
			"exploration complete to start a new focus.\n"
	case PhaseGameComplete:
		return "The history is complete.\n"
	}
	return ""
}

// PhaseInstructions returns guidance for the current phase.
func (g *Game) PhaseInstructions() string {
	return PhaseInstructions(g.phase, g.currentFocus)
}
