// Package exporters renders a session for reading outside the tool.
package exporters

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/ersonp/microscope-solo/internal/domain/entities"
	"github.com/ersonp/microscope-solo/internal/domain/game"
)

// Exporter writes a game in some format.
type Exporter interface {
	Export(w io.Writer, g *game.Game) error
}

// Formats lists the supported export formats.
func Formats() []string {
	return []string{"markdown", "text", "json"}
}

// ForFormat returns the exporter for format, or nil.
func ForFormat(format string) Exporter {
	switch strings.ToLower(format) {
	case "markdown", "md":
		return &MarkdownExporter{}
	case "text", "txt":
		return &TextExporter{}
	case "json":
		return &JSONExporter{}
	default:
		return nil
	}
}

// Extension returns the usual file extension for format.
func Extension(format string) string {
	switch strings.ToLower(format) {
	case "markdown", "md":
		return ".md"
	case "json":
		return ".json"
	default:
		return ".txt"
	}
}

func title(o entities.Outline) string {
	if strings.TrimSpace(o.BigPicture) == "" {
		return "Untitled History"
	}
	return o.BigPicture
}

func focusDescription(o entities.Outline, id uuid.UUID) string {
	for _, f := range o.Foci {
		if f.ID == id {
			return f.Description
		}
	}
	return ""
}

// legacyOrigin describes where a legacy came from, or "" when it has no
// element origin.
func legacyOrigin(o entities.Outline, l entities.LegacyOutline) string {
	if l.OriginElementID == uuid.Nil {
		return ""
	}
	if label, ok := o.Label(l.OriginElementID); ok {
		return label
	}
	return l.OriginElementID.String()
}

// errWriter remembers the first write error so renderers can write freely
// and check once.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, fmt.Sprintf(format, args...))
}
