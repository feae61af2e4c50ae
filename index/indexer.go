// Package index builds and searches chunk indexes for knowledge bases.
// Indexing is a full rebuild: the new index replaces the old one atomically,
// so a failed run never corrupts what was there before.
package index

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fwojciec/knowbase"
)

// Indexing defaults.
const (
	DefaultBatchSize   = 16
	DefaultConcurrency = 4
)

// Phase identifies a stage of an indexing run.
type Phase string

// Indexing phases, in order.
const (
	PhaseChunking  Phase = "chunking"
	PhaseEmbedding Phase = "embedding"
	PhaseSaving    Phase = "saving"
)

// Progress reports indexing progress within a phase.
type Progress struct {
	Phase   Phase
	Current int
	Total   int
}

// ProgressFunc is called as indexing advances.
type ProgressFunc func(Progress)

// Indexer builds chunk indexes from stored pages. With an Embedder it
// produces a semantic index; without one it falls back to a keyword index
// that stores no vectors.
type Indexer struct {
	Pages   knowbase.PageStore
	Indexes knowbase.IndexStore

	// Embedder is optional. When nil the index is built in keyword mode.
	Embedder knowbase.Embedder

	ChunkOptions knowbase.ChunkOptions
	BatchSize    int
	Concurrency  int
}

// IndexKnowledgeBase rebuilds the knowledge base's index from scratch.
// A knowledge base with no pages indexes successfully to an empty index.
// Returns ENOTFOUND if the knowledge base does not exist.
func (ix *Indexer) IndexKnowledgeBase(ctx context.Context, kbID string, progress ProgressFunc) (*knowbase.IndexStats, error) {
	pages, err := ix.Pages.LoadPages(ctx, kbID)
	if err != nil {
		return nil, err
	}

	chunks := ix.chunkPages(pages, progress)

	idx := &knowbase.ChunkIndex{
		Mode:      knowbase.IndexModeKeyword,
		IndexedAt: time.Now().UTC(),
	}
	if ix.Embedder != nil {
		embedded, err := ix.embedChunks(ctx, chunks, progress)
		if err != nil {
			return nil, err
		}
		idx.Mode = knowbase.IndexModeSemantic
		idx.Model = ix.Embedder.Model()
		idx.Chunks = embedded
		if len(embedded) > 0 {
			idx.Dimensions = len(embedded[0].Vector)
		} else {
			idx.Dimensions = ix.Embedder.Dimensions()
		}
	} else {
		for _, c := range chunks {
			idx.Chunks = append(idx.Chunks, knowbase.EmbeddedChunk{Chunk: c})
		}
	}

	notify(progress, Progress{Phase: PhaseSaving, Current: 0, Total: 1})
	if err := ix.Indexes.WriteIndex(ctx, kbID, idx); err != nil {
		return nil, err
	}
	notify(progress, Progress{Phase: PhaseSaving, Current: 1, Total: 1})

	at := idx.IndexedAt
	return &knowbase.IndexStats{
		Indexed:    true,
		ChunkCount: len(idx.Chunks),
		IndexedAt:  &at,
		Mode:       idx.Mode,
		Model:      idx.Model,
	}, nil
}

// chunkPages splits every page into chunks with IDs sequential across the
// whole knowledge base.
func (ix *Indexer) chunkPages(pages []*knowbase.PageRecord, progress ProgressFunc) []knowbase.Chunk {
	var chunks []knowbase.Chunk
	for i, page := range pages {
		chunks = append(chunks, knowbase.ChunkPage(page, ix.ChunkOptions, len(chunks))...)
		notify(progress, Progress{Phase: PhaseChunking, Current: i + 1, Total: len(pages)})
	}
	return chunks
}

// embedChunks embeds all chunks in batches. Batches run concurrently; each
// batch writes into its own region of the result slice, so chunk order is
// preserved regardless of completion order.
func (ix *Indexer) embedChunks(ctx context.Context, chunks []knowbase.Chunk, progress ProgressFunc) ([]knowbase.EmbeddedChunk, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	batchSize := ix.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	concurrency := ix.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	embedded := make([]knowbase.EmbeddedChunk, len(chunks))

	var mu sync.Mutex
	done := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for start := 0; start < len(chunks); start += batchSize {
		end := start + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]
		offset := start

		g.Go(func() error {
			texts := make([]string, len(batch))
			for i, c := range batch {
				texts[i] = c.Text
			}
			vectors, err := ix.Embedder.EmbedBatch(ctx, texts)
			if err != nil {
				return err
			}
			if len(vectors) != len(batch) {
				return knowbase.Errorf(knowbase.EINTERNAL, "embedder returned %d vectors for %d texts", len(vectors), len(batch))
			}
			for i, c := range batch {
				embedded[offset+i] = knowbase.EmbeddedChunk{Chunk: c, Vector: vectors[i]}
			}

			mu.Lock()
			done += len(batch)
			notify(progress, Progress{Phase: PhaseEmbedding, Current: done, Total: len(chunks)})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return embedded, nil
}

func notify(progress ProgressFunc, p Progress) {
	if progress == nil {
		return
	}
	progress(p)
}
