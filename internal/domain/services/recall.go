package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ersonp/microscope-solo/internal/domain/entities"
	"github.com/ersonp/microscope-solo/internal/domain/ports"
)

// DefaultSearchLimit is the default number of results to return.
const DefaultSearchLimit = 10

// IndexResult summarizes one indexing run.
type IndexResult struct {
	Indexed int
	ByKind  map[entities.PassageKind]int
}

// RecallService indexes a history's passages and searches them.
type RecallService struct {
	embedder    ports.Embedder
	vectorDB    ports.VectorDB
	collections ports.CollectionManager
	vectorSize  uint64
	logger      *zap.Logger
}

// NewRecallService creates a new recall service.
func NewRecallService(embedder ports.Embedder, vectorDB ports.VectorDB, collections ports.CollectionManager, vectorSize uint64, logger *zap.Logger) *RecallService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecallService{
		embedder:    embedder,
		vectorDB:    vectorDB,
		collections: collections,
		vectorSize:  vectorSize,
		logger:      logger,
	}
}

// Index replaces the stored passages with the ones cut from outline.
func (s *RecallService) Index(ctx context.Context, session string, outline entities.Outline) (*IndexResult, error) {
	result := &IndexResult{ByKind: make(map[entities.PassageKind]int)}

	if err := s.collections.EnsureCollection(ctx, s.vectorSize); err != nil {
		return nil, fmt.Errorf("ensuring collection: %w", err)
	}

	passages := outline.Passages(session)
	if len(passages) == 0 {
		if err := s.vectorDB.DeleteAll(ctx); err != nil {
			return nil, fmt.Errorf("clearing passages: %w", err)
		}
		return result, nil
	}

	// A failed embedding leaves the previous index in place.
	texts := make([]string, len(passages))
	for i := range passages {
		texts[i] = passages[i].Text
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("generating embeddings: %w", err)
	}
	if len(embeddings) != len(passages) {
		return nil, fmt.Errorf("generating embeddings: got %d for %d passages", len(embeddings), len(passages))
	}

	for i := range passages {
		passages[i].Embedding = embeddings[i]
		result.ByKind[passages[i].Kind]++
	}

	if err := s.vectorDB.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("clearing passages: %w", err)
	}
	if err := s.vectorDB.SaveBatch(ctx, passages); err != nil {
		return nil, fmt.Errorf("saving passages: %w", err)
	}

	result.Indexed = len(passages)
	s.logger.Info("recall index rebuilt", zap.String("session", session), zap.Int("passages", result.Indexed))
	return result, nil
}

// Search finds passages semantically similar to the query.
func (s *RecallService) Search(ctx context.Context, query string, limit int) ([]entities.Passage, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("generating query embedding: %w", err)
	}

	passages, err := s.vectorDB.Search(ctx, embedding, limit)
	if err != nil {
		return nil, fmt.Errorf("searching passages: %w", err)
	}

	return passages, nil
}

// SearchByKind finds passages of one kind.
func (s *RecallService) SearchByKind(ctx context.Context, query string, kind entities.PassageKind, limit int) ([]entities.Passage, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("generating query embedding: %w", err)
	}

	passages, err := s.vectorDB.SearchByKind(ctx, embedding, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("searching passages by kind: %w", err)
	}

	return passages, nil
}

// Count returns the number of indexed passages.
func (s *RecallService) Count(ctx context.Context) (uint64, error) {
	n, err := s.vectorDB.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting passages: %w", err)
	}
	return n, nil
}

// Drop removes the collection entirely.
func (s *RecallService) Drop(ctx context.Context) error {
	if err := s.collections.DeleteCollection(ctx); err != nil {
		return fmt.Errorf("dropping collection: %w", err)
	}
	return nil
}
