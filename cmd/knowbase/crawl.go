package main

import (
	"fmt"

	"github.com/fwojciec/knowbase"
	"github.com/fwojciec/knowbase/crawl"
)

// Run executes the crawl command. Without a source ID every source of the
// knowledge base is crawled in turn; a source that fails does not stop the
// remaining ones.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	kb, err := deps.KBs.FindKnowledgeBaseByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", knowbase.ErrorMessage(err))
		return err
	}

	sourceIDs := make([]string, 0, len(kb.Sources))
	if c.SourceID != "" {
		sourceIDs = append(sourceIDs, c.SourceID)
	} else {
		for _, src := range kb.Sources {
			sourceIDs = append(sourceIDs, src.ID)
		}
	}
	if len(sourceIDs) == 0 {
		fmt.Fprintln(deps.Stdout, "No sources to crawl. Use 'knowbase source add' first.")
		return nil
	}

	var failures int
	for _, sourceID := range sourceIDs {
		progress := func(ev crawl.ProgressEvent) {
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", ev.Crawled, ev.Total, ev.URL)
		}

		src, err := deps.Crawler.CrawlSource(deps.Ctx, c.ID, sourceID, progress)
		if err != nil {
			failures++
			fmt.Fprintf(deps.Stderr, "error crawling source %s: %s\n", sourceID, knowbase.ErrorMessage(err))
			continue
		}

		summary := fmt.Sprintf("Crawled %s: %d pages", src.URL, src.PageCount)
		if src.Error != "" {
			summary += " (" + src.Error + ")"
		}
		fmt.Fprintln(deps.Stdout, summary)
	}

	if failures == len(sourceIDs) {
		return knowbase.Errorf(knowbase.EUNAVAILABLE, "all %d sources failed to crawl", failures)
	}
	fmt.Fprintf(deps.Stdout, "Run 'knowbase index %s' to make the new pages searchable.\n", c.ID)
	return nil
}
