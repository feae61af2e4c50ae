package crawl_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/knowbase"
	"github.com/fwojciec/knowbase/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontier_fifo_order(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(100, 0.01)
	f.Push(knowbase.DiscoveredLink{URL: "https://example.com/a", Depth: 1})
	f.Push(knowbase.DiscoveredLink{URL: "https://example.com/b", Depth: 1})
	f.Push(knowbase.DiscoveredLink{URL: "https://example.com/c", Depth: 2})

	var urls []string
	for {
		link, ok := f.Pop()
		if !ok {
			break
		}
		urls = append(urls, link.URL)
	}
	assert.Equal(t, []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
	}, urls)
}

func TestFrontier_dedupes_normalized_variants(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(100, 0.01)
	require.True(t, f.Push(knowbase.DiscoveredLink{URL: "https://example.com/docs"}))
	assert.False(t, f.Push(knowbase.DiscoveredLink{URL: "https://EXAMPLE.com/docs/"}))
	assert.False(t, f.Push(knowbase.DiscoveredLink{URL: "https://example.com/docs#intro"}))
	assert.Equal(t, 1, f.Len())
}

func TestFrontier_seen_includes_popped(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(100, 0.01)
	f.Push(knowbase.DiscoveredLink{URL: "https://example.com/a"})
	_, ok := f.Pop()
	require.True(t, ok)

	assert.True(t, f.Seen("https://example.com/a"))
	assert.False(t, f.Push(knowbase.DiscoveredLink{URL: "https://example.com/a"}))
	assert.Equal(t, 0, f.Len())
}

func TestFrontier_rejects_unparseable_url(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(100, 0.01)
	assert.False(t, f.Push(knowbase.DiscoveredLink{URL: "http://exa mple.com/%zz"}))
	assert.Equal(t, 0, f.Len())
}

func TestFrontier_concurrent_push_pop(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			f.Push(knowbase.DiscoveredLink{URL: fmt.Sprintf("https://example.com/page-%d", i)})
		}
	}()
	for i := 0; i < 100; i++ {
		f.Pop()
	}
	<-done
}
