// Package parsers reads palette items from files for bulk import.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawPaletteItem is a palette entry as read from a file, before validation.
type RawPaletteItem struct {
	List    string `json:"list"`
	Item    string `json:"item"`
	LineNum int    `json:"-"` // set by the parser
}

// Parser reads palette items from some format.
type Parser interface {
	Parse(r io.Reader) ([]RawPaletteItem, error)
}

// ForFormat returns the parser for format ("json" or "csv"), or nil.
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile picks a parser from the file extension, or returns nil.
func ForFile(filename string) Parser {
	return ForFormat(strings.TrimPrefix(filepath.Ext(filename), "."))
}
