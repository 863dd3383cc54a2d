package mocks

import "context"

// Embedder is a mock implementation of ports.Embedder. Every text gets EmbeddingResult.
type Embedder struct {
	EmbeddingResult []float32
	Err             error

	// Call tracking
	EmbedCallCount      int
	EmbedBatchCallCount int
	LastText            string
	Texts               []string
}

// Embed records the text and returns EmbeddingResult.
func (m *Embedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.EmbedCallCount++
	m.LastText = text
	m.Texts = append(m.Texts, text)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.EmbeddingResult, nil
}

// EmbedBatch records the texts and returns one EmbeddingResult per text.
func (m *Embedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.EmbedBatchCallCount++
	m.Texts = append(m.Texts, texts...)
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = m.EmbeddingResult
	}
	return out, nil
}
