package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical vectors", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"opposite vectors", []float32{1, 0}, []float32{-1, 0}, -1},
		{"orthogonal vectors", []float32{1, 0}, []float32{0, 1}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 2}, 0},
		{"mismatched lengths", []float32{1, 2}, []float32{1, 2, 3}, 0},
		{"empty vectors", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, cosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCosineSimilarity_scale_invariant(t *testing.T) {
	t.Parallel()

	a := []float32{0.3, 0.7, 0.1}
	b := []float32{0.6, 1.4, 0.2} // a scaled by 2
	assert.InDelta(t, 1, cosineSimilarity(a, b), 1e-6)
}

func TestKeywordScore(t *testing.T) {
	t.Parallel()

	terms := tokenize("goroutine channel")

	t.Run("no terms present", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, keywordScore(terms, "maps and slices"))
	})

	t.Run("one term once", func(t *testing.T) {
		t.Parallel()
		// tf/(tf+1) = 1/2 for one term, normalized by two query terms.
		assert.InDelta(t, 0.25, keywordScore(terms, "start a goroutine"), 1e-9)
	})

	t.Run("repetition increases score sublinearly", func(t *testing.T) {
		t.Parallel()
		once := keywordScore(terms, "goroutine")
		thrice := keywordScore(terms, "goroutine goroutine goroutine")
		assert.Greater(t, thrice, once)
		assert.Less(t, thrice, 2*once)
	})

	t.Run("all terms beat one term", func(t *testing.T) {
		t.Parallel()
		one := keywordScore(terms, "a goroutine runs")
		both := keywordScore(terms, "a goroutine reads a channel")
		assert.Greater(t, both, one)
	})

	t.Run("matching is case insensitive", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t,
			keywordScore(terms, "Goroutine and CHANNEL"),
			keywordScore(terms, "goroutine and channel"))
	})

	t.Run("empty query scores zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, keywordScore(nil, "anything"))
	})
}

func TestTokenize_splits_on_punctuation(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]string{"ctx", "err", "http2", "server"},
		tokenize("ctx.Err(), HTTP2-Server!"))
}
