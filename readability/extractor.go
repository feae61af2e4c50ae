// Package readability provides an alternative content extractor built on
// go-readability's article heuristics.
package readability

import (
	"strings"

	"github.com/fwojciec/knowbase"
	readability "github.com/go-shiori/go-readability"
)

// Ensure Extractor implements knowbase.Extractor at compile time.
var _ knowbase.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*knowbase.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, knowbase.Errorf(knowbase.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &knowbase.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
