package main

import (
	"fmt"

	"github.com/fwojciec/knowbase"
	"github.com/fwojciec/knowbase/index"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	if deps.Indexer.Embedder == nil {
		fmt.Fprintln(deps.Stdout, "No embedding provider configured; building a keyword index. Set GEMINI_API_KEY or KNOWBASE_OLLAMA_HOST for semantic search.")
	}

	var lastPhase index.Phase
	progress := func(p index.Progress) {
		if p.Phase != lastPhase {
			lastPhase = p.Phase
			fmt.Fprintf(deps.Stdout, "%s...\n", p.Phase)
		}
	}

	stats, err := deps.Indexer.IndexKnowledgeBase(deps.Ctx, c.ID, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", knowbase.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d chunks (%s mode)\n", stats.ChunkCount, stats.Mode)
	return nil
}
