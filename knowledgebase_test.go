package knowbase_test

import (
	"testing"

	"github.com/fwojciec/knowbase"
	"github.com/stretchr/testify/assert"
)

func TestClampCrawlDepth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		depth int
		want  int
	}{
		{"below minimum", -5, 1},
		{"zero", 0, 1},
		{"minimum", 1, 1},
		{"in range", 2, 2},
		{"maximum", 3, 3},
		{"above maximum", 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, knowbase.ClampCrawlDepth(tt.depth))
		})
	}
}

func TestKnowledgeBase_Validate(t *testing.T) {
	t.Parallel()

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()
		kb := &knowbase.KnowledgeBase{CrawlDepth: 2}
		err := kb.Validate()
		assert.Equal(t, knowbase.EINVALID, knowbase.ErrorCode(err))
	})

	t.Run("depth out of range", func(t *testing.T) {
		t.Parallel()
		kb := &knowbase.KnowledgeBase{Name: "docs", CrawlDepth: 4}
		err := kb.Validate()
		assert.Equal(t, knowbase.EINVALID, knowbase.ErrorCode(err))
	})

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		kb := &knowbase.KnowledgeBase{Name: "docs", CrawlDepth: 2}
		assert.NoError(t, kb.Validate())
	})
}

func TestKnowledgeBase_RecomputeTotalPages(t *testing.T) {
	t.Parallel()

	kb := &knowbase.KnowledgeBase{
		Sources: []*knowbase.Source{
			{ID: "a", PageCount: 17},
			{ID: "b", PageCount: 3},
			{ID: "c", PageCount: 0},
		},
		TotalPages: 999, // stale
	}

	kb.RecomputeTotalPages()

	assert.Equal(t, 20, kb.TotalPages)
}

func TestKnowledgeBase_HasSourceURL(t *testing.T) {
	t.Parallel()

	kb := &knowbase.KnowledgeBase{
		Sources: []*knowbase.Source{{URL: "https://example.com/docs"}},
	}

	assert.True(t, kb.HasSourceURL("https://example.com/docs"))
	assert.False(t, kb.HasSourceURL("https://example.com/other"))
}

func TestValidateSourceURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid https", "https://example.com/docs", false},
		{"valid http", "http://example.com", false},
		{"empty", "", true},
		{"no scheme", "example.com/docs", true},
		{"bad scheme", "ftp://example.com", true},
		{"no host", "https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := knowbase.ValidateSourceURL(tt.url)
			if tt.wantErr {
				assert.Equal(t, knowbase.EINVALID, knowbase.ErrorCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPageHash_is_stable(t *testing.T) {
	t.Parallel()

	a := knowbase.PageHash("https://example.com/docs")
	b := knowbase.PageHash("https://example.com/docs")
	c := knowbase.PageHash("https://example.com/other")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 32)
}
