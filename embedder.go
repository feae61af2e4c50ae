package knowbase

import "context"

// Embedder turns text into a numeric vector for similarity comparison.
// Implementations hide the provider API (Gemini, Ollama) behind a single
// capability so tests can substitute a deterministic stub.
type Embedder interface {
	// Embed returns the embedding vector for one text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch embeds several texts in one provider call where the API
	// supports it. The result has one vector per input, in order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Model returns the provider's model identifier. Indexes record it so a
	// later search detects model mismatch.
	Model() string

	// Dimensions returns the vector dimensionality, or 0 if unknown until
	// the first call.
	Dimensions() int
}
