package main

import (
	"fmt"

	"github.com/fwojciec/knowbase"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer, err := deps.Asker.Ask(deps.Ctx, c.ID, c.Question)
	if err != nil {
		if knowbase.ErrorCode(err) == knowbase.ENOTINDEXED {
			fmt.Fprintf(deps.Stderr, "error: knowledge base is not indexed. Run 'knowbase index %s' first.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", knowbase.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
