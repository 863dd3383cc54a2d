// Package openai provides an Embedder implementation using OpenAI.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/config"
)

// VectorSize is the dimension of text-embedding-3-small vectors.
const VectorSize = 1536

// MaxInputs is the number of texts sent in one embeddings request.
const MaxInputs = 256

// Embedder embeds review comments with the OpenAI embeddings API, or any
// server compatible with it when BaseURL is set.
type Embedder struct {
	client    *openai.Client
	model     openai.EmbeddingModel
	batchSize int
}

// NewEmbedder creates a new OpenAI embedder.
func NewEmbedder(cfg config.EmbedderConfig) (*Embedder, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required (set embedder.api_key or OPENAI_API_KEY)")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := openai.SmallEmbedding3
	if cfg.Model != "" {
		model = openai.EmbeddingModel(cfg.Model)
	}

	return &Embedder{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     model,
		batchSize: MaxInputs,
	}, nil
}

// Embed returns the vector of a single text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	if len(embeddings) == 0 {
		return nil, errors.New("no embeddings returned")
	}

	return embeddings[0], nil
}

// EmbedBatch generates vector embeddings for multiple texts, in input order.
// Long inputs are split into requests of at most MaxInputs texts. Blank texts
// are sent as a single space since the API rejects empty input.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	embeddings := make([][]float32, 0, len(texts))
	for _, chunk := range chunks(texts, e.batchSize) {
		resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Model: e.model,
			Input: nonBlank(chunk),
		})
		if err != nil {
			return nil, fmt.Errorf("creating embeddings: %w", err)
		}
		if len(resp.Data) != len(chunk) {
			return nil, fmt.Errorf("expected %d embeddings, got %d", len(chunk), len(resp.Data))
		}

		ordered := make([][]float32, len(chunk))
		for _, data := range resp.Data {
			if data.Index < 0 || data.Index >= len(chunk) {
				return nil, fmt.Errorf("embedding index %d out of range", data.Index)
			}
			ordered[data.Index] = data.Embedding
		}
		embeddings = append(embeddings, ordered...)
	}

	return embeddings, nil
}

func nonBlank(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			t = " "
		}
		out[i] = t
	}
	return out
}

func chunks(texts []string, size int) [][]string {
	var out [][]string
	for start := 0; start < len(texts); start += size {
		end := min(start+size, len(texts))
		out = append(out, texts[start:end])
	}
	return out
}
