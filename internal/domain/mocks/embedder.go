// Package mocks provides in-memory implementations of the ports for tests.
package mocks

import "context"

// Embedder is a mock implementation of ports.Embedder. Every text embeds to
// EmbeddingResult.
type Embedder struct {
	EmbeddingResult []float32
	Err             error

	// EmbeddedTexts records every text passed in, in order.
	EmbeddedTexts []string
}

// Embed returns the configured embedding or error.
func (m *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.EmbeddedTexts = append(m.EmbeddedTexts, text)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.EmbeddingResult, nil
}

// EmbedBatch returns one embedding per text.
func (m *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	m.EmbeddedTexts = append(m.EmbeddedTexts, texts...)
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([][]float32, len(texts))
	for i := range texts {
		result[i] = m.EmbeddingResult
	}
	return result, nil
}
