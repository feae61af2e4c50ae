package mock

import "github.com/fwojciec/knowbase"

var _ knowbase.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of knowbase.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*knowbase.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*knowbase.ExtractResult, error) {
	return e.ExtractFn(html)
}
