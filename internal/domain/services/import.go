package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ersonp/microscope-solo/internal/domain/game"
	"github.com/ersonp/microscope-solo/internal/infrastructure/parsers"
)

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool // Validate and count without saving
}

// ImportError represents an error for a specific palette item during import.
type ImportError struct {
	Line    int    // Line number (1-indexed, 0 if unknown)
	Field   string // Which field has the error
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Added   int
	Skipped int // duplicates already on the list
	Errors  []ImportError
	Version int
}

// PaletteImportService adds palette items read from files.
type PaletteImportService struct {
	sessions *SessionService
}

// NewPaletteImportService creates a new palette import service.
func NewPaletteImportService(sessions *SessionService) *PaletteImportService {
	return &PaletteImportService{sessions: sessions}
}

type paletteItem struct {
	item  string
	isYes bool
}

// Import validates raw items and adds the valid ones in a single operation.
// Invalid lines are reported and skipped; the rest are still imported.
func (s *PaletteImportService) Import(ctx context.Context, raw []parsers.RawPaletteItem, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}

	items := make([]paletteItem, 0, len(raw))
	for i := range raw {
		item, ierr := validatePaletteItem(&raw[i], i+1)
		if ierr != nil {
			result.Errors = append(result.Errors, *ierr)
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return result, nil
	}

	added, skipped := 0, 0
	apply := func(g *game.Game) (uuid.UUID, error) {
		added, skipped = 0, 0
		for _, it := range items {
			ok, err := g.AddToPalette(it.item, it.isYes)
			if err != nil {
				return uuid.Nil, err
			}
			if ok {
				added++
			} else {
				skipped++
			}
		}
		return uuid.Nil, nil
	}

	if opts.DryRun {
		g, err := s.sessions.Load(ctx)
		if err != nil {
			return nil, err
		}
		if _, err := apply(g); err != nil {
			return nil, fmt.Errorf("importing palette: %w", err)
		}
	} else {
		res, err := s.sessions.Apply(ctx, game.OpAddToPalette, map[string]any{"items": len(items), "source": "import"}, apply)
		if err != nil {
			return nil, fmt.Errorf("importing palette: %w", err)
		}
		result.Version = res.Version
	}

	result.Added = added
	result.Skipped = skipped
	return result, nil
}

// validatePaletteItem checks a single raw item.
func validatePaletteItem(raw *parsers.RawPaletteItem, index int) (paletteItem, *ImportError) {
	line := raw.LineNum
	if line == 0 {
		line = index
	}

	var isYes bool
	switch strings.ToLower(strings.TrimSpace(raw.List)) {
	case "yes", "y":
		isYes = true
	case "no", "n":
		isYes = false
	case "":
		return paletteItem{}, &ImportError{Line: line, Field: "list", Message: "missing required field: list"}
	default:
		return paletteItem{}, &ImportError{
			Line:    line,
			Field:   "list",
			Value:   raw.List,
			Message: fmt.Sprintf("invalid list %q (valid: yes, no)", raw.List),
		}
	}

	item := strings.TrimSpace(raw.Item)
	if item == "" {
		return paletteItem{}, &ImportError{Line: line, Field: "item", Message: "missing required field: item"}
	}

	return paletteItem{item: item, isYes: isYes}, nil
}
