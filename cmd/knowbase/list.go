package main

import (
	"fmt"

	"github.com/fwojciec/knowbase"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	kbs, err := deps.KBs.ListKnowledgeBases(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", knowbase.ErrorMessage(err))
		return err
	}

	if len(kbs) == 0 {
		fmt.Fprintln(deps.Stdout, "No knowledge bases found. Use 'knowbase create' to create one.")
		return nil
	}

	for _, kb := range kbs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d sources  %d pages\n", kb.ID, kb.Name, len(kb.Sources), kb.TotalPages)
		for _, src := range kb.Sources {
			line := fmt.Sprintf("  %s  %s  [%s]  %d pages", src.ID, src.URL, src.Status, src.PageCount)
			if src.Error != "" {
				line += "  (" + src.Error + ")"
			}
			fmt.Fprintln(deps.Stdout, line)
		}
	}
	return nil
}
