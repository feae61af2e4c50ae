package main

import (
	"fmt"

	"github.com/fwojciec/knowbase"
)

// Run executes the create command.
func (c *CreateCmd) Run(deps *Dependencies) error {
	kb, err := deps.KBs.CreateKnowledgeBase(deps.Ctx, c.Name, c.Depth)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", knowbase.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Created knowledge base %q (%s), crawl depth %d\n", kb.Name, kb.ID, kb.CrawlDepth)
	return nil
}
