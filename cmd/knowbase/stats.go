package main

import (
	"fmt"

	"github.com/fwojciec/knowbase"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	kb, err := deps.KBs.FindKnowledgeBaseByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", knowbase.ErrorMessage(err))
		return err
	}

	stats, err := deps.Indexes.IndexStats(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", knowbase.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s (%s)\n", kb.Name, kb.ID)
	fmt.Fprintf(deps.Stdout, "  sources: %d\n", len(kb.Sources))
	fmt.Fprintf(deps.Stdout, "  pages:   %d\n", kb.TotalPages)
	if !stats.Indexed {
		fmt.Fprintf(deps.Stdout, "  index:   none. Run 'knowbase index %s' to build one.\n", c.ID)
		return nil
	}
	fmt.Fprintf(deps.Stdout, "  index:   %d chunks, %s mode", stats.ChunkCount, stats.Mode)
	if stats.Model != "" {
		fmt.Fprintf(deps.Stdout, ", model %s", stats.Model)
	}
	fmt.Fprintln(deps.Stdout)
	if stats.IndexedAt != nil {
		fmt.Fprintf(deps.Stdout, "  indexed: %s\n", stats.IndexedAt.Format("2006-01-02 15:04:05 MST"))
	}

	if deps.Tokens != nil {
		content, err := deps.Pages.LoadContent(deps.Ctx, c.ID)
		if err == nil && content != "" {
			if tokens, err := deps.Tokens.CountTokens(deps.Ctx, content); err == nil {
				fmt.Fprintf(deps.Stdout, "  tokens:  %s\n", formatTokens(tokens))
			}
		}
	}
	return nil
}

// formatTokens formats a token count in human-readable form.
func formatTokens(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("~%d tokens", tokens)
	}
	return fmt.Sprintf("~%dk tokens", (tokens+500)/1000)
}
