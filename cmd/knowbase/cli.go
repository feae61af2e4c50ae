package main

import (
	"context"
	"io"

	"github.com/fwojciec/knowbase"
	"github.com/fwojciec/knowbase/crawl"
	"github.com/fwojciec/knowbase/index"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	KBs      knowbase.KnowledgeBaseService
	Pages    knowbase.PageStore
	Indexes  knowbase.IndexStore
	Sitemaps knowbase.SitemapService
	Crawler  *crawl.Crawler
	Indexer  *index.Indexer
	Searcher *index.Searcher
	Asker    knowbase.Asker
	Tokens   knowbase.TokenCounter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log service calls to stderr"`

	Create  CreateCmd  `cmd:"" help:"Create a knowledge base"`
	List    ListCmd    `cmd:"" help:"List knowledge bases"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a knowledge base and everything under it"`
	Source  SourceCmd  `cmd:"" help:"Manage a knowledge base's sources"`
	Crawl   CrawlCmd   `cmd:"" help:"Crawl a knowledge base's sources"`
	Index   IndexCmd   `cmd:"" help:"Build the knowledge base's search index"`
	Search  SearchCmd  `cmd:"" help:"Search an indexed knowledge base"`
	Ask     AskCmd     `cmd:"" help:"Ask a question about a knowledge base"`
	Content ContentCmd `cmd:"" help:"Print a knowledge base's raw page content"`
	Stats   StatsCmd   `cmd:"" help:"Show index statistics"`
}

// CreateCmd is the "create" subcommand.
type CreateCmd struct {
	Name  string `arg:"" help:"Knowledge base name"`
	Depth int    `short:"d" default:"2" help:"Crawl depth (1-3)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Knowledge base ID"`
}

// SourceCmd groups source management subcommands.
type SourceCmd struct {
	Add SourceAddCmd `cmd:"" help:"Add a source URL to a knowledge base"`
	Rm  SourceRmCmd  `cmd:"" help:"Remove a source and its pages"`
}

// SourceAddCmd is the "source add" subcommand.
type SourceAddCmd struct {
	ID  string `arg:"" help:"Knowledge base ID"`
	URL string `arg:"" help:"Source URL (http or https)"`
}

// SourceRmCmd is the "source rm" subcommand.
type SourceRmCmd struct {
	ID       string `arg:"" help:"Knowledge base ID"`
	SourceID string `arg:"" help:"Source ID"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	ID          string `arg:"" help:"Knowledge base ID"`
	SourceID    string `arg:"" optional:"" help:"Source ID (default: all sources)"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent fetch limit"`
	MaxPages    int    `default:"100" help:"Page cap per source"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	ID string `arg:"" help:"Knowledge base ID"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	ID    string `arg:"" help:"Knowledge base ID"`
	Query string `arg:"" help:"Search query"`
	TopK  int    `short:"k" default:"5" help:"Maximum number of results"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	ID       string `arg:"" help:"Knowledge base ID"`
	Question string `arg:"" help:"Question to ask"`
}

// ContentCmd is the "content" subcommand.
type ContentCmd struct {
	ID string `arg:"" help:"Knowledge base ID"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	ID string `arg:"" help:"Knowledge base ID"`
}
