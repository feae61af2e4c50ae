package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/knowbase"
)

// SavePage writes or overwrites a page keyed by the hash of its URL.
// Overwriting an existing page on recrawl is allowed and expected.
func (s *Store) SavePage(ctx context.Context, kbID, sourceID string, page *knowbase.PageContent) error {
	if err := page.Validate(); err != nil {
		return err
	}
	if _, err := s.readManifest(kbID); err != nil {
		return err
	}

	record := knowbase.PageRecord{
		PageContent: *page,
		SourceID:    sourceID,
		SavedAt:     time.Now().UTC(),
		ContentHash: fmt.Sprintf("%x", xxhash.Sum64String(page.Text)),
	}

	data, err := json.MarshalIndent(&record, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(s.pagesDir(kbID), knowbase.PageHash(page.URL)+".json")
	return writeFileAtomic(path, data)
}

// LoadPages returns all readable pages of a knowledge base, ordered by URL.
// A page file that fails to parse is skipped; bulk reads stay resilient to
// one corrupted page.
func (s *Store) LoadPages(ctx context.Context, kbID string) ([]*knowbase.PageRecord, error) {
	if _, err := s.readManifest(kbID); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.pagesDir(kbID))
	if os.IsNotExist(err) {
		return []*knowbase.PageRecord{}, nil
	}
	if err != nil {
		return nil, err
	}

	pages := make([]*knowbase.PageRecord, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		record, err := s.readPage(kbID, entry.Name())
		if err != nil {
			continue
		}
		pages = append(pages, record)
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].URL < pages[j].URL })
	return pages, nil
}

// LoadContent returns the raw concatenation of all pages, capped at
// knowbase.ContextSizeCap with a truncation marker when the cap is hit.
func (s *Store) LoadContent(ctx context.Context, kbID string) (string, error) {
	pages, err := s.LoadPages(ctx, kbID)
	if err != nil {
		return "", err
	}
	return knowbase.FormatPageContent(pages), nil
}

// DeletePagesBySource removes all pages attributed to the given source and
// returns the number removed.
func (s *Store) DeletePagesBySource(ctx context.Context, kbID, sourceID string) (int, error) {
	entries, err := os.ReadDir(s.pagesDir(kbID))
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		record, err := s.readPage(kbID, entry.Name())
		if err != nil || record.SourceID != sourceID {
			continue
		}
		if err := os.Remove(filepath.Join(s.pagesDir(kbID), entry.Name())); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (s *Store) readPage(kbID, filename string) (*knowbase.PageRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.pagesDir(kbID), filename))
	if err != nil {
		return nil, err
	}
	var record knowbase.PageRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, knowbase.Errorf(knowbase.ECORRUPT, "page file %q is unreadable: %v", filename, err)
	}
	return &record, nil
}
