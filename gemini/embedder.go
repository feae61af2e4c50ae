// Package gemini implements embedding, token counting, and question
// answering on top of the Google Gemini API.
package gemini

import (
	"context"

	"github.com/fwojciec/knowbase"
	"google.golang.org/genai"
)

// Embedding defaults.
const (
	DefaultEmbeddingModel      = "gemini-embedding-001"
	DefaultEmbeddingDimensions = 768
)

// Ensure Embedder implements knowbase.Embedder at compile time.
var _ knowbase.Embedder = (*Embedder)(nil)

// Embedder produces embedding vectors via the Gemini embedding API.
type Embedder struct {
	client     *genai.Client
	model      string
	dimensions int
}

// EmbedderOption configures an Embedder.
type EmbedderOption func(*Embedder)

// WithModel overrides the embedding model.
func WithModel(model string) EmbedderOption {
	return func(e *Embedder) {
		e.model = model
	}
}

// WithDimensions overrides the output vector dimensionality.
func WithDimensions(d int) EmbedderOption {
	return func(e *Embedder) {
		e.dimensions = d
	}
}

// NewEmbedder creates an Embedder backed by the given client.
func NewEmbedder(client *genai.Client, opts ...EmbedderOption) *Embedder {
	e := &Embedder{
		client:     client,
		model:      DefaultEmbeddingModel,
		dimensions: DefaultEmbeddingDimensions,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Embed returns the embedding vector for one text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds several texts in a single API call.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		contents[i] = genai.NewContentFromText(t, genai.RoleUser)
	}

	dims := int32(e.dimensions)
	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, &genai.EmbedContentConfig{
		OutputDimensionality: &dims,
	})
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, knowbase.Errorf(knowbase.EINTERNAL, "gemini returned %d embeddings for %d texts", embeddingCount(result), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for i, emb := range result.Embeddings {
		vectors[i] = emb.Values
	}
	return vectors, nil
}

// Model returns the embedding model identifier.
func (e *Embedder) Model() string {
	return e.model
}

// Dimensions returns the configured output dimensionality.
func (e *Embedder) Dimensions() int {
	return e.dimensions
}

func embeddingCount(r *genai.EmbedContentResponse) int {
	if r == nil {
		return 0
	}
	return len(r.Embeddings)
}
