package fs

import (
	"context"
	"os"
	"sort"
	"time"

	"github.com/fwojciec/knowbase"
	"github.com/google/uuid"
)

// CreateKnowledgeBase allocates a new knowledge base with a generated ID.
// The crawl depth is clamped into the valid range rather than rejected.
func (s *Store) CreateKnowledgeBase(ctx context.Context, name string, crawlDepth int) (*knowbase.KnowledgeBase, error) {
	kb := &knowbase.KnowledgeBase{
		ID:         uuid.New().String(),
		Name:       name,
		CreatedAt:  time.Now().UTC(),
		Sources:    []*knowbase.Source{},
		CrawlDepth: knowbase.ClampCrawlDepth(crawlDepth),
	}
	if err := kb.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.pagesDir(kb.ID), 0o755); err != nil {
		return nil, err
	}
	if err := s.writeManifest(kb); err != nil {
		return nil, err
	}
	return kb, nil
}

// FindKnowledgeBaseByID retrieves a knowledge base by ID. A corrupt manifest
// for a directly requested ID is a hard error, never silently substituted.
func (s *Store) FindKnowledgeBaseByID(ctx context.Context, id string) (*knowbase.KnowledgeBase, error) {
	return s.readManifest(id)
}

// ListKnowledgeBases reads every subdirectory's manifest. A manifest that
// fails to read or parse is skipped so one corrupted knowledge base never
// breaks the listing.
func (s *Store) ListKnowledgeBases(ctx context.Context) ([]*knowbase.KnowledgeBase, error) {
	entries, err := os.ReadDir(s.root)
	if os.IsNotExist(err) {
		return []*knowbase.KnowledgeBase{}, nil
	}
	if err != nil {
		return nil, err
	}

	kbs := make([]*knowbase.KnowledgeBase, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		kb, err := s.readManifest(entry.Name())
		if err != nil {
			continue
		}
		kbs = append(kbs, kb)
	}

	sort.Slice(kbs, func(i, j int) bool {
		if !kbs[i].CreatedAt.Equal(kbs[j].CreatedAt) {
			return kbs[i].CreatedAt.Before(kbs[j].CreatedAt)
		}
		return kbs[i].ID < kbs[j].ID
	})
	return kbs, nil
}

// DeleteKnowledgeBase recursively removes the knowledge base's subtree.
// Deleting an absent knowledge base returns false, never an error.
func (s *Store) DeleteKnowledgeBase(ctx context.Context, id string) (bool, error) {
	if _, err := os.Stat(s.kbDir(id)); os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	if err := os.RemoveAll(s.kbDir(id)); err != nil {
		return false, err
	}
	return true, nil
}

// AddSource registers a URL with a knowledge base. Invalid and duplicate URLs
// are rejected without mutating stored state.
func (s *Store) AddSource(ctx context.Context, kbID, rawURL string) (*knowbase.Source, error) {
	kb, err := s.readManifest(kbID)
	if err != nil {
		return nil, err
	}

	if err := knowbase.ValidateSourceURL(rawURL); err != nil {
		return nil, err
	}
	if kb.HasSourceURL(rawURL) {
		return nil, knowbase.Errorf(knowbase.ECONFLICT, "source URL %q already added", rawURL)
	}

	src := &knowbase.Source{
		ID:      uuid.New().String(),
		URL:     rawURL,
		AddedAt: time.Now().UTC(),
		Status:  knowbase.SourceStatusPending,
	}
	kb.Sources = append(kb.Sources, src)
	kb.RecomputeTotalPages()

	if err := s.writeManifest(kb); err != nil {
		return nil, err
	}
	return src, nil
}

// RemoveSource deletes all pages attributed to the source before removing the
// source entry, then recomputes the page total.
func (s *Store) RemoveSource(ctx context.Context, kbID, sourceID string) (bool, error) {
	kb, err := s.readManifest(kbID)
	if err != nil {
		return false, err
	}

	if kb.FindSource(sourceID) == nil {
		return false, nil
	}

	if _, err := s.DeletePagesBySource(ctx, kbID, sourceID); err != nil {
		return false, err
	}

	kept := kb.Sources[:0]
	for _, src := range kb.Sources {
		if src.ID != sourceID {
			kept = append(kept, src)
		}
	}
	kb.Sources = kept
	kb.RecomputeTotalPages()

	if err := s.writeManifest(kb); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateSource applies a partial update to a source's crawl state.
func (s *Store) UpdateSource(ctx context.Context, kbID, sourceID string, upd knowbase.SourceUpdate) (*knowbase.Source, error) {
	kb, err := s.readManifest(kbID)
	if err != nil {
		return nil, err
	}

	src := kb.FindSource(sourceID)
	if src == nil {
		return nil, knowbase.Errorf(knowbase.ENOTFOUND, "source %q not found in knowledge base %q", sourceID, kbID)
	}

	if upd.Status != nil {
		src.Status = *upd.Status
	}
	if upd.PageCount != nil {
		src.PageCount = *upd.PageCount
	}
	if upd.Error != nil {
		src.Error = *upd.Error
	}
	if upd.LastCrawledAt != nil {
		src.LastCrawledAt = upd.LastCrawledAt
	}
	kb.RecomputeTotalPages()

	if err := s.writeManifest(kb); err != nil {
		return nil, err
	}
	return src, nil
}
