package main

import (
	"fmt"

	"github.com/fwojciec/knowbase"
)

// Run executes the content command.
func (c *ContentCmd) Run(deps *Dependencies) error {
	content, err := deps.Pages.LoadContent(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", knowbase.ErrorMessage(err))
		return err
	}

	if content == "" {
		fmt.Fprintln(deps.Stdout, "No pages stored. Run 'knowbase crawl' first.")
		return nil
	}
	fmt.Fprintln(deps.Stdout, content)
	return nil
}
