package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/ersonp/microscope-solo/internal/domain/services"
	"github.com/ersonp/microscope-solo/internal/infrastructure/parsers"
)

// ImportHandler handles importing palette items from files.
type ImportHandler struct {
	service *services.PaletteImportService
}

// NewImportHandler creates a new import handler.
func NewImportHandler(service *services.PaletteImportService) *ImportHandler {
	return &ImportHandler{
		service: service,
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	Format string // "json", "csv", or "auto"
	DryRun bool   // Validate without saving
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Added   int
	Skipped int
	Errors  []services.ImportError
}

// Handle imports palette items from a file.
func (h *ImportHandler) Handle(ctx context.Context, filePath string, opts ImportOptions) (*ImportResult, error) {
	var parser parsers.Parser
	if opts.Format == "" || opts.Format == "auto" {
		parser = parsers.ForFile(filePath)
	} else {
		parser = parsers.ForFormat(opts.Format)
	}

	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	items, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	if len(items) == 0 {
		return &ImportResult{}, nil
	}

	serviceResult, err := h.service.Import(ctx, items, services.ImportOptions{DryRun: opts.DryRun})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Added:   serviceResult.Added,
		Skipped: serviceResult.Skipped,
		Errors:  serviceResult.Errors,
	}, nil
}
