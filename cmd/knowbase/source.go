package main

import (
	"fmt"

	"github.com/fwojciec/knowbase"
)

// Run executes the source add command.
func (c *SourceAddCmd) Run(deps *Dependencies) error {
	src, err := deps.KBs.AddSource(deps.Ctx, c.ID, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", knowbase.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added source %s (%s). Run 'knowbase crawl %s' to fetch its pages.\n", src.URL, src.ID, c.ID)
	return nil
}

// Run executes the source rm command.
func (c *SourceRmCmd) Run(deps *Dependencies) error {
	removed, err := deps.KBs.RemoveSource(deps.Ctx, c.ID, c.SourceID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", knowbase.ErrorMessage(err))
		return err
	}

	if !removed {
		fmt.Fprintf(deps.Stdout, "Source %s was already gone\n", c.SourceID)
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Removed source %s and its pages\n", c.SourceID)
	return nil
}
