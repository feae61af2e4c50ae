package main

import (
	"fmt"

	"github.com/fwojciec/knowbase"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	deleted, err := deps.KBs.DeleteKnowledgeBase(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", knowbase.ErrorMessage(err))
		return err
	}

	if !deleted {
		fmt.Fprintf(deps.Stdout, "Knowledge base %s was already gone\n", c.ID)
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Deleted knowledge base %s\n", c.ID)
	return nil
}
