package mocks

import (
	"context"

	"github.com/ersonp/microscope-solo/internal/domain/entities"
)

// VectorDB is a mock implementation of ports.VectorDB.
type VectorDB struct {
	Passages []entities.Passage
	Err      error

	// Call tracking
	SaveBatchCallCount    int
	SaveBatchLastPassages []entities.Passage
	DeleteAllCallCount    int
	SearchLastLimit       int
	SearchLastKind        entities.PassageKind
}

// SaveBatch upserts passages by id.
func (m *VectorDB) SaveBatch(_ context.Context, passages []entities.Passage) error {
	m.SaveBatchCallCount++
	m.SaveBatchLastPassages = passages
	if m.Err != nil {
		return m.Err
	}
	for _, p := range passages {
		replaced := false
		for i := range m.Passages {
			if m.Passages[i].ID == p.ID {
				m.Passages[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			m.Passages = append(m.Passages, p)
		}
	}
	return nil
}

// Search returns the first limit stored passages.
func (m *VectorDB) Search(_ context.Context, _ []float32, limit int) ([]entities.Passage, error) {
	m.SearchLastLimit = limit
	if m.Err != nil {
		return nil, m.Err
	}
	return head(m.Passages, limit), nil
}

// SearchByKind returns the first limit stored passages of kind.
func (m *VectorDB) SearchByKind(_ context.Context, _ []float32, kind entities.PassageKind, limit int) ([]entities.Passage, error) {
	m.SearchLastLimit = limit
	m.SearchLastKind = kind
	if m.Err != nil {
		return nil, m.Err
	}
	var matched []entities.Passage
	for _, p := range m.Passages {
		if p.Kind == kind {
			matched = append(matched, p)
		}
	}
	return head(matched, limit), nil
}

// DeleteAll clears stored passages.
func (m *VectorDB) DeleteAll(_ context.Context) error {
	m.DeleteAllCallCount++
	if m.Err != nil {
		return m.Err
	}
	m.Passages = nil
	return nil
}

// Count returns the number of stored passages.
func (m *VectorDB) Count(_ context.Context) (uint64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return uint64(len(m.Passages)), nil
}

func head(passages []entities.Passage, limit int) []entities.Passage {
	if limit > 0 && len(passages) > limit {
		return passages[:limit]
	}
	return passages
}
