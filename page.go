package knowbase

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"time"
)

// PageContent represents one harvested page.
type PageContent struct {
	URL   string   `json:"url"`
	Title string   `json:"title"`
	Text  string   `json:"text"` // Markdown
	Links []string `json:"links,omitempty"`
}

// Validate returns an error if the page contains invalid fields.
func (p *PageContent) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// PageRecord is the persisted form of a page: the content plus storage
// attribution used for per-source cleanup and recrawl change detection.
type PageRecord struct {
	PageContent

	SourceID    string    `json:"sourceId"`
	SavedAt     time.Time `json:"savedAt"`
	ContentHash string    `json:"contentHash,omitempty"`
}

// PageHash returns the stable storage key for a page URL. Pages are
// content-addressed by URL, not by body, so a recrawl overwrites in place.
func PageHash(rawURL string) string {
	sum := md5.Sum([]byte(rawURL))
	return hex.EncodeToString(sum[:])
}

// PageStore persists harvested pages under a knowledge base.
type PageStore interface {
	// SavePage writes or overwrites the page keyed by the hash of its URL.
	SavePage(ctx context.Context, kbID, sourceID string, page *PageContent) error

	// LoadPages returns every readable page of a knowledge base, ordered by URL.
	// Returns ENOTFOUND if the knowledge base does not exist.
	LoadPages(ctx context.Context, kbID string) ([]*PageRecord, error)

	// LoadContent returns the raw concatenation of all pages, capped at
	// ContextSizeCap with a single truncation marker when the cap is hit.
	LoadContent(ctx context.Context, kbID string) (string, error)

	// DeletePagesBySource removes all pages attributed to a source and
	// returns the number removed.
	DeletePagesBySource(ctx context.Context, kbID, sourceID string) (int, error)
}
