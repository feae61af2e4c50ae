package crawl

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/knowbase"
)

// Frontier sizing for Bloom filter deduplication.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// Frontier is an in-memory FIFO crawl queue with Bloom filter deduplication
// keyed by normalized URL. FIFO order makes the traversal breadth-first:
// links discovered at depth N are all processed before links at depth N+1.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.BloomFilter
	queue []knowbase.DiscoveredLink
}

// NewFrontier creates a Frontier sized for n expected URLs with the given
// false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		seen: bloom.NewWithEstimates(n, fpRate),
	}
}

// Push adds a link to the frontier. The URL is normalized first; Push returns
// false if the normalized URL has already been seen or cannot be parsed.
func (f *Frontier) Push(link knowbase.DiscoveredLink) bool {
	normalized, err := NormalizeURL(link.URL)
	if err != nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen.TestString(normalized) {
		return false
	}
	f.seen.AddString(normalized)

	link.URL = normalized
	f.queue = append(f.queue, link)
	return true
}

// Pop returns the oldest queued link. The bool result is false if the
// frontier is empty.
func (f *Frontier) Pop() (knowbase.DiscoveredLink, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return knowbase.DiscoveredLink{}, false
	}
	link := f.queue[0]
	f.queue = f.queue[1:]
	return link, true
}

// Len returns the number of links waiting in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has been queued or processed.
func (f *Frontier) Seen(rawURL string) bool {
	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.TestString(normalized)
}
