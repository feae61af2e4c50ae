package knowbase

import (
	"fmt"
	"strings"
)

// ContextSizeCap bounds any text block built for prompt injection.
const ContextSizeCap = 100 * 1024

// TruncationMarker is appended exactly once when content exceeds the cap.
const TruncationMarker = "\n\n[content truncated]"

// FormatSearchResults concatenates results as citation-tagged text blocks,
// capped at ContextSizeCap. An empty result list formats to an empty string.
func FormatSearchResults(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for _, res := range results {
		header := res.Chunk.PageTitle
		if header == "" {
			header = res.Chunk.PageURL
		}
		parts = append(parts, fmt.Sprintf("## %s\nSource: %s\n\n%s", header, res.Chunk.PageURL, res.Chunk.Text))
	}

	return CapContext(strings.Join(parts, "\n\n"), ContextSizeCap)
}

// FormatPageContent concatenates raw pages, capped at ContextSizeCap.
// Uses the page title if available, falling back to the URL.
func FormatPageContent(pages []*PageRecord) string {
	if len(pages) == 0 {
		return ""
	}

	parts := make([]string, 0, len(pages))
	for _, page := range pages {
		header := page.Title
		if header == "" {
			header = page.URL
		}
		parts = append(parts, "## Page: "+header+"\n"+page.Text)
	}

	return CapContext(strings.Join(parts, "\n\n"), ContextSizeCap)
}

// CapContext enforces a size budget on s. Output never exceeds max bytes,
// and the truncation marker appears exactly once when s would exceed it.
func CapContext(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - len(TruncationMarker)
	if cut < 0 {
		cut = 0
	}
	// Back up to a rune boundary so the cut never splits a character.
	for cut > 0 && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut] + TruncationMarker
}
