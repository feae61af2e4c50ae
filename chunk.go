package knowbase

import (
	"context"
	"time"
)

// Chunk represents a bounded span of page text, the atomic unit of retrieval.
// StartIdx and EndIdx are byte offsets into the source page's text, kept for
// citation and debugging, not for re-chunking.
type Chunk struct {
	ID        int    `json:"id"`
	PageHash  string `json:"pageHash"`
	PageURL   string `json:"pageUrl"`
	PageTitle string `json:"pageTitle"`
	Text      string `json:"text"`
	StartIdx  int    `json:"startIdx"`
	EndIdx    int    `json:"endIdx"`
}

// EmbeddedChunk is a chunk together with its embedding vector.
// The vector is empty in keyword mode.
type EmbeddedChunk struct {
	Chunk

	Vector []float32 `json:"vector,omitempty"`
}

// IndexMode identifies the algorithm that produced an index. Search must
// apply the matching ranking algorithm.
type IndexMode string

// Index modes.
const (
	IndexModeSemantic IndexMode = "semantic"
	IndexModeKeyword  IndexMode = "keyword"
)

// ChunkIndex is the persisted index of one knowledge base. Model and
// Dimensions pin the index to an embedding provider version: a query embedded
// with a different model must not be compared against these vectors.
type ChunkIndex struct {
	Model      string          `json:"model"`
	Dimensions int             `json:"dimensions"`
	Mode       IndexMode       `json:"mode"`
	IndexedAt  time.Time       `json:"indexedAt"`
	Chunks     []EmbeddedChunk `json:"chunks"`
}

// IndexStats summarizes the state of a knowledge base's index.
type IndexStats struct {
	Indexed    bool       `json:"indexed"`
	ChunkCount int        `json:"chunkCount"`
	IndexedAt  *time.Time `json:"indexedAt,omitempty"`
	Mode       IndexMode  `json:"mode,omitempty"`
	Model      string     `json:"model,omitempty"`
}

// IndexStore persists chunk indexes.
type IndexStore interface {
	// WriteIndex atomically replaces the knowledge base's index.
	WriteIndex(ctx context.Context, kbID string, idx *ChunkIndex) error

	// ReadIndex loads the index. Returns ENOTINDEXED if no index exists,
	// ECORRUPT if the index file cannot be parsed.
	ReadIndex(ctx context.Context, kbID string) (*ChunkIndex, error)

	// IsIndexed reports whether a readable index exists.
	IsIndexed(ctx context.Context, kbID string) (bool, error)

	// IndexStats returns index metadata without loading chunk vectors into
	// the caller's hands. An unindexed knowledge base yields Indexed=false.
	IndexStats(ctx context.Context, kbID string) (*IndexStats, error)
}

// SearchResult represents one ranked chunk. Score is a similarity measure in
// a comparable, monotonic range: cosine in [-1, 1] for semantic indexes,
// [0, 1] for keyword indexes.
type SearchResult struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}
