package knowbase

import "context"

// Asker answers natural language questions over a knowledge base, using
// search results as bounded context for a downstream model call.
type Asker interface {
	// Ask searches the knowledge base for the question and generates an
	// answer grounded in the retrieved chunks.
	// Returns ENOTINDEXED if the knowledge base has not been indexed.
	Ask(ctx context.Context, kbID string, question string) (string, error)
}
