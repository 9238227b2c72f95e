package parsers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser reads palette items from JSON. Two shapes are accepted:
//
//	[{"list": "yes", "item": "AI"}, ...]
//	{"yes": ["AI"], "no": ["Time travel"]}
type JSONParser struct{}

type paletteLists struct {
	Yes []string `json:"yes"`
	No  []string `json:"no"`
}

// Parse reads JSON from the reader and returns parsed items.
func (p *JSONParser) Parse(r io.Reader) ([]RawPaletteItem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading JSON: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var lists paletteLists
		if err := json.Unmarshal(trimmed, &lists); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
		items := make([]RawPaletteItem, 0, len(lists.Yes)+len(lists.No))
		for _, item := range lists.Yes {
			items = append(items, RawPaletteItem{List: "yes", Item: item, LineNum: len(items) + 1})
		}
		for _, item := range lists.No {
			items = append(items, RawPaletteItem{List: "no", Item: item, LineNum: len(items) + 1})
		}
		return items, nil
	}

	var items []RawPaletteItem
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	// Array index + 1 stands in for a line number.
	for i := range items {
		items[i].LineNum = i + 1
	}

	return items, nil
}
