package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/microscope-solo/internal/domain/entities"
	"github.com/ersonp/microscope-solo/internal/domain/services"
)

// RecallHandler indexes and searches a session's history.
type RecallHandler struct {
	sessions *services.SessionService
	recall   *services.RecallService
}

// NewRecallHandler creates a new recall handler.
func NewRecallHandler(sessions *services.SessionService, recall *services.RecallService) *RecallHandler {
	return &RecallHandler{
		sessions: sessions,
		recall:   recall,
	}
}

// RecallResult contains the result of a search.
type RecallResult struct {
	Query    string
	Passages []entities.Passage
}

// Index rebuilds the session's recall index from its current state.
func (h *RecallHandler) Index(ctx context.Context) (*services.IndexResult, error) {
	g, err := h.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}

	result, err := h.recall.Index(ctx, h.sessions.Session(), g.Outline())
	if err != nil {
		return nil, fmt.Errorf("indexing session: %w", err)
	}
	return result, nil
}

// Search finds passages similar to query. An empty kind searches all kinds.
func (h *RecallHandler) Search(ctx context.Context, query, kind string, limit int) (*RecallResult, error) {
	var (
		passages []entities.Passage
		err      error
	)
	if kind == "" {
		passages, err = h.recall.Search(ctx, query, limit)
	} else {
		k, perr := entities.ParsePassageKind(kind)
		if perr != nil {
			return nil, perr
		}
		passages, err = h.recall.SearchByKind(ctx, query, k, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("searching passages: %w", err)
	}

	return &RecallResult{
		Query:    query,
		Passages: passages,
	}, nil
}
