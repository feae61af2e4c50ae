package index

import (
	"context"
	"sort"

	"github.com/fwojciec/knowbase"
)

// DefaultTopK is the number of results returned when the caller asks for
// zero or fewer.
const DefaultTopK = 5

// Searcher ranks indexed chunks against a query. Semantic indexes require an
// Embedder whose model matches the one that built the index; keyword indexes
// need no embedder at all.
type Searcher struct {
	Indexes  knowbase.IndexStore
	Embedder knowbase.Embedder
}

// Search returns the topK chunks most relevant to the query, ordered by
// score descending with chunk ID ascending on ties. Returns ENOTINDEXED if
// the knowledge base has no index and EINVALID if the query is empty or the
// index's embedding model does not match the configured embedder.
func (s *Searcher) Search(ctx context.Context, kbID, query string, topK int) ([]knowbase.SearchResult, error) {
	if query == "" {
		return nil, knowbase.Errorf(knowbase.EINVALID, "search query must not be empty")
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	idx, err := s.Indexes.ReadIndex(ctx, kbID)
	if err != nil {
		return nil, err
	}

	var results []knowbase.SearchResult
	switch idx.Mode {
	case knowbase.IndexModeSemantic:
		results, err = s.searchSemantic(ctx, idx, query)
		if err != nil {
			return nil, err
		}
	case knowbase.IndexModeKeyword:
		results = searchKeyword(idx, query)
	default:
		return nil, knowbase.Errorf(knowbase.ECORRUPT, "index has unknown mode %q", idx.Mode)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Chunk.ID < results[j].Chunk.ID
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

func (s *Searcher) searchSemantic(ctx context.Context, idx *knowbase.ChunkIndex, query string) ([]knowbase.SearchResult, error) {
	if s.Embedder == nil {
		return nil, knowbase.Errorf(knowbase.EINVALID, "index was built with embedding model %q but no embedding provider is configured", idx.Model)
	}
	if model := s.Embedder.Model(); model != idx.Model {
		return nil, knowbase.Errorf(knowbase.EINVALID, "index was built with embedding model %q, not %q; re-index to switch models", idx.Model, model)
	}

	queryVec, err := s.Embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	if idx.Dimensions > 0 && len(queryVec) != idx.Dimensions {
		return nil, knowbase.Errorf(knowbase.EINVALID, "query embedding has %d dimensions, index has %d", len(queryVec), idx.Dimensions)
	}

	results := make([]knowbase.SearchResult, 0, len(idx.Chunks))
	for _, c := range idx.Chunks {
		results = append(results, knowbase.SearchResult{
			Chunk: c.Chunk,
			Score: cosineSimilarity(queryVec, c.Vector),
		})
	}
	return results, nil
}

// searchKeyword scores chunks by query term frequency. Chunks matching no
// query term are dropped rather than ranked at zero.
func searchKeyword(idx *knowbase.ChunkIndex, query string) []knowbase.SearchResult {
	terms := tokenize(query)

	var results []knowbase.SearchResult
	for _, c := range idx.Chunks {
		score := keywordScore(terms, c.Text)
		if score == 0 {
			continue
		}
		results = append(results, knowbase.SearchResult{Chunk: c.Chunk, Score: score})
	}
	return results
}
