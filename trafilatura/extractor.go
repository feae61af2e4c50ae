// Package trafilatura extracts the main content of documentation pages,
// stripping navigation, sidebars and boilerplate.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/knowbase"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements knowbase.Extractor at compile time.
var _ knowbase.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. Pages with no
// detectable metadata title fall back to the document's <title> element.
func (e *Extractor) Extract(rawHTML string) (*knowbase.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, knowbase.Errorf(knowbase.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		contentHTML = buf.String()
	}

	title := result.Metadata.Title
	if title == "" {
		title = documentTitle(rawHTML)
	}

	return &knowbase.ExtractResult{
		Title:       title,
		ContentHTML: contentHTML,
	}, nil
}

// documentTitle pulls the text of the first <title> element, or "".
func documentTitle(rawHTML string) string {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}
	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title
}
