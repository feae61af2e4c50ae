package main

import (
	"fmt"

	"github.com/fwojciec/knowbase"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Searcher.Search(deps.Ctx, c.ID, c.Query, c.TopK)
	if err != nil {
		if knowbase.ErrorCode(err) == knowbase.ENOTINDEXED {
			fmt.Fprintf(deps.Stderr, "error: knowledge base is not indexed. Run 'knowbase index %s' first.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", knowbase.ErrorMessage(err))
		}
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results.")
		return nil
	}

	for i, res := range results {
		title := res.Chunk.PageTitle
		if title == "" {
			title = res.Chunk.PageURL
		}
		fmt.Fprintf(deps.Stdout, "%d. %s (score %.3f)\n   %s\n   %s\n", i+1, title, res.Score, res.Chunk.PageURL, snippet(res.Chunk.Text))
	}
	return nil
}

// snippet returns the first line of text, shortened for terminal display.
func snippet(text string) string {
	const maxLen = 160
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			text = text[:i]
			break
		}
	}
	if len(text) > maxLen {
		cut := maxLen
		for cut > 0 && text[cut]&0xC0 == 0x80 {
			cut--
		}
		text = text[:cut] + "..."
	}
	return text
}
