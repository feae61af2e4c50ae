package mock

import "github.com/fwojciec/knowbase"

var _ knowbase.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of knowbase.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]knowbase.DiscoveredLink, error)
}

func (l *LinkExtractor) ExtractLinks(html string, baseURL string) ([]knowbase.DiscoveredLink, error) {
	return l.ExtractLinksFn(html, baseURL)
}
