package knowbase

import (
	"unicode"
	"unicode/utf8"
)

// Default chunking geometry: window size and overlap in bytes.
const (
	DefaultChunkSize    = 1200
	DefaultChunkOverlap = 200
)

// ChunkOptions configures the sliding-window chunker.
type ChunkOptions struct {
	// Size is the window width in bytes.
	Size int

	// Overlap is how many bytes consecutive windows share. Must be smaller
	// than Size; invalid values fall back to defaults.
	Overlap int
}

func (o ChunkOptions) withDefaults() ChunkOptions {
	if o.Size <= 0 {
		o.Size = DefaultChunkSize
	}
	// Overlap beyond half the window would let boundary adjustment stall
	// near the start of the next chunk, so such values fall back too.
	if o.Overlap < 0 || o.Overlap > o.Size/2 {
		o.Overlap = o.Size / 6
	}
	return o
}

// ChunkPage splits a page's text into fixed-size overlapping chunks.
// IDs are assigned sequentially starting at firstID; they are scoped to one
// indexing run and a rebuild legitimately reassigns them. Each chunk carries
// page back-references so results can be cited without re-reading the page.
//
// Window boundaries prefer the nearest whitespace so words are not split,
// but every byte of the text belongs to at least one chunk.
func ChunkPage(page *PageRecord, opts ChunkOptions, firstID int) []Chunk {
	opts = opts.withDefaults()

	spans := splitSpans(page.Text, opts.Size, opts.Overlap)
	if len(spans) == 0 {
		return nil
	}

	hash := PageHash(page.URL)
	chunks := make([]Chunk, 0, len(spans))
	for i, sp := range spans {
		chunks = append(chunks, Chunk{
			ID:        firstID + i,
			PageHash:  hash,
			PageURL:   page.URL,
			PageTitle: page.Title,
			Text:      page.Text[sp.start:sp.end],
			StartIdx:  sp.start,
			EndIdx:    sp.end,
		})
	}
	return chunks
}

type span struct {
	start, end int
}

// splitSpans computes the chunk boundaries for text. Consecutive spans always
// overlap by roughly `overlap` bytes and together cover every byte exactly:
// span N+1 starts before span N ends, and the last span ends at len(text).
func splitSpans(text string, size, overlap int) []span {
	if len(text) == 0 {
		return nil
	}

	var spans []span
	start := 0
	for {
		end := start + size
		if end >= len(text) {
			spans = append(spans, span{start, len(text)})
			return spans
		}

		end = adjustBoundary(text, start, end, overlap)
		spans = append(spans, span{start, end})

		// Backing up to a rune boundary only widens the overlap, so
		// coverage is preserved.
		start = end - overlap
		for start > 0 && !utf8.RuneStart(text[start]) {
			start--
		}
	}
}

// adjustBoundary moves a window end backward to the nearest whitespace, or
// failing that to a rune boundary, so a chunk does not cut a word or a
// multi-byte rune in half. It never moves the end so far back that the next
// window would fail to make forward progress.
func adjustBoundary(text string, start, end, overlap int) int {
	// The next window starts at end-overlap, which must stay ahead of start.
	floor := start + overlap + 1
	tolerance := end - (end-start)/8
	if tolerance < floor {
		tolerance = floor
	}

	for i := end; i > tolerance; i-- {
		r, _ := utf8.DecodeRuneInString(text[i-1:])
		if unicode.IsSpace(r) {
			return i
		}
	}

	// No whitespace nearby; back up to a rune boundary.
	for end > floor && !utf8.RuneStart(text[end]) {
		end--
	}
	return end
}
