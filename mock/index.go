package mock

import (
	"context"

	"github.com/fwojciec/knowbase"
)

var _ knowbase.IndexStore = (*IndexStore)(nil)

// IndexStore is a mock implementation of knowbase.IndexStore.
type IndexStore struct {
	WriteIndexFn func(ctx context.Context, kbID string, idx *knowbase.ChunkIndex) error
	ReadIndexFn  func(ctx context.Context, kbID string) (*knowbase.ChunkIndex, error)
	IsIndexedFn  func(ctx context.Context, kbID string) (bool, error)
	IndexStatsFn func(ctx context.Context, kbID string) (*knowbase.IndexStats, error)
}

func (s *IndexStore) WriteIndex(ctx context.Context, kbID string, idx *knowbase.ChunkIndex) error {
	return s.WriteIndexFn(ctx, kbID, idx)
}

func (s *IndexStore) ReadIndex(ctx context.Context, kbID string) (*knowbase.ChunkIndex, error) {
	return s.ReadIndexFn(ctx, kbID)
}

func (s *IndexStore) IsIndexed(ctx context.Context, kbID string) (bool, error) {
	return s.IsIndexedFn(ctx, kbID)
}

func (s *IndexStore) IndexStats(ctx context.Context, kbID string) (*knowbase.IndexStats, error) {
	return s.IndexStatsFn(ctx, kbID)
}
