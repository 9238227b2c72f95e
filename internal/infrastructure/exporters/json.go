package exporters

import (
	"fmt"
	"io"

	"github.com/ersonp/microscope-solo/internal/domain/game"
)

// JSONExporter writes the full session snapshot.
type JSONExporter struct{}

// Export writes g in its persisted JSON layout.
func (e *JSONExporter) Export(w io.Writer, g *game.Game) error {
	data, err := game.Encode(g)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}
