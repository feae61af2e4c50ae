package fs

import (
	"context"
	"encoding/json"
	"os"

	"github.com/fwojciec/knowbase"
)

// WriteIndex atomically replaces the knowledge base's index file. A rebuild
// either lands in full or leaves the previous index untouched.
func (s *Store) WriteIndex(ctx context.Context, kbID string, idx *knowbase.ChunkIndex) error {
	if _, err := s.readManifest(kbID); err != nil {
		return err
	}

	data, err := json.Marshal(idx)
	if err != nil {
		return err
	}
	return writeFileAtomic(s.indexPath(kbID), data)
}

// ReadIndex loads the persisted chunk index. A missing index is ENOTINDEXED;
// an unparsable one is ECORRUPT because a direct read of a known knowledge
// base must surface corruption, never hide it.
func (s *Store) ReadIndex(ctx context.Context, kbID string) (*knowbase.ChunkIndex, error) {
	if _, err := s.readManifest(kbID); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.indexPath(kbID))
	if os.IsNotExist(err) {
		return nil, knowbase.Errorf(knowbase.ENOTINDEXED, "knowledge base %q has not been indexed", kbID)
	}
	if err != nil {
		return nil, err
	}

	var idx knowbase.ChunkIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, knowbase.Errorf(knowbase.ECORRUPT, "index for knowledge base %q is unreadable: %v", kbID, err)
	}
	return &idx, nil
}

// IsIndexed reports whether an index file exists for the knowledge base.
func (s *Store) IsIndexed(ctx context.Context, kbID string) (bool, error) {
	if _, err := s.readManifest(kbID); err != nil {
		return false, err
	}

	if _, err := os.Stat(s.indexPath(kbID)); os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}

// IndexStats summarizes the index without exposing chunk vectors.
func (s *Store) IndexStats(ctx context.Context, kbID string) (*knowbase.IndexStats, error) {
	idx, err := s.ReadIndex(ctx, kbID)
	if knowbase.ErrorCode(err) == knowbase.ENOTINDEXED {
		return &knowbase.IndexStats{Indexed: false}, nil
	}
	if err != nil {
		return nil, err
	}

	indexedAt := idx.IndexedAt
	return &knowbase.IndexStats{
		Indexed:    true,
		ChunkCount: len(idx.Chunks),
		IndexedAt:  &indexedAt,
		Mode:       idx.Mode,
		Model:      idx.Model,
	}, nil
}
