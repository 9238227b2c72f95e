package handlers

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/ersonp/microscope-solo/internal/domain/entities"
	"github.com/ersonp/microscope-solo/internal/domain/game"
)

// ErrAmbiguousReference is returned when a reference matches several elements.
var ErrAmbiguousReference = errors.New("ambiguous reference")

// minPrefixLen is the shortest id prefix accepted as a reference.
const minPrefixLen = 4

type candidate struct {
	id   uuid.UUID
	kind entities.PassageKind
	name string
}

func candidates(o entities.Outline) []candidate {
	var out []candidate
	for _, p := range o.Periods {
		out = append(out, candidate{p.ID, entities.PassagePeriod, p.Title})
		for _, e := range p.Events {
			out = append(out, candidate{e.ID, entities.PassageEvent, e.Title})
			for _, s := range e.Scenes {
				out = append(out, candidate{s.ID, entities.PassageScene, s.Question})
			}
		}
	}
	return out
}

// resolveRef turns a user reference into an element id. A full uuid is
// returned as is and left for the game to validate. Otherwise ref must match
// exactly one element of the given kinds by id prefix or by title (case
// insensitive). An empty ref resolves to uuid.Nil.
func resolveRef(o entities.Outline, ref string, kinds ...entities.PassageKind) (uuid.UUID, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return uuid.Nil, nil
	}
	if id, err := uuid.Parse(ref); err == nil {
		return id, nil
	}

	var matches []candidate
	for _, c := range candidates(o) {
		if !slices.Contains(kinds, c.kind) {
			continue
		}
		byPrefix := len(ref) >= minPrefixLen && strings.HasPrefix(c.id.String(), strings.ToLower(ref))
		if byPrefix || strings.EqualFold(c.name, ref) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return uuid.Nil, fmt.Errorf("%w: no %s matches %q", game.ErrUnknownReference, kindList(kinds), ref)
	case 1:
		return matches[0].id, nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = fmt.Sprintf("%s %q (%s)", m.kind, m.name, m.id.String()[:8])
		}
		return uuid.Nil, fmt.Errorf("%w: %q matches %s", ErrAmbiguousReference, ref, strings.Join(names, ", "))
	}
}

func kindList(kinds []entities.PassageKind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, " or ")
}
