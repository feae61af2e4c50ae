package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/knowbase"
	"github.com/fwojciec/knowbase/crawl"
	"github.com/fwojciec/knowbase/fs"
	"github.com/fwojciec/knowbase/gemini"
	"github.com/fwojciec/knowbase/goquery"
	"github.com/fwojciec/knowbase/htmltomarkdown"
	kbhttp "github.com/fwojciec/knowbase/http"
	"github.com/fwojciec/knowbase/index"
	"github.com/fwojciec/knowbase/ollama"
	kbslog "github.com/fwojciec/knowbase/slog"
	"github.com/fwojciec/knowbase/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Storage root directory. Set before calling Run().
	Dir string

	// Store backs all three storage services once Run has opened it.
	Store *fs.Store
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Dir: defaultDir(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("knowbase"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'knowbase --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// The selected command comes from the parser, not from args[0]: global
	// flags like -v may precede the command name.
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	if err := os.MkdirAll(m.Dir, 0755); err != nil {
		fmt.Fprintln(stderr, "Hint: Set KNOWBASE_DIR to use a different storage directory")
		return fmt.Errorf("failed to prepare storage directory %q: %w", m.Dir, err)
	}

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	m.Store = fs.NewStore(m.Dir)
	deps.KBs = m.Store
	deps.Pages = m.Store
	deps.Indexes = m.Store
	deps.Sitemaps = kbhttp.NewSitemapService(nil)
	if logger != nil {
		deps.Sitemaps = kbslog.NewLoggingSitemapService(deps.Sitemaps, logger)
	}

	if cmd == "crawl" {
		var fetcher knowbase.Fetcher = kbhttp.NewFetcher()
		if logger != nil {
			fetcher = kbslog.NewLoggingFetcher(fetcher, logger)
		}
		defer fetcher.Close()

		deps.Crawler = &crawl.Crawler{
			Fetcher:     fetcher,
			Extractor:   trafilatura.NewExtractor(),
			Converter:   htmltomarkdown.NewConverter(),
			Links:       goquery.NewLinkExtractor(),
			Sitemaps:    deps.Sitemaps,
			RateLimiter: crawl.NewDomainLimiter(2.0, 2),
			KBs:         deps.KBs,
			Pages:       deps.Pages,
			Concurrency: cli.Crawl.Concurrency,
			MaxPages:    cli.Crawl.MaxPages,
		}
	}

	if cmd == "index" || cmd == "search" || cmd == "ask" {
		embedder, err := m.newEmbedder(ctx)
		if err != nil {
			return err
		}
		if embedder != nil && logger != nil {
			embedder = kbslog.NewLoggingEmbedder(embedder, logger)
		}

		deps.Indexer = &index.Indexer{
			Pages:    deps.Pages,
			Indexes:  deps.Indexes,
			Embedder: embedder,
		}
		deps.Searcher = &index.Searcher{
			Indexes:  deps.Indexes,
			Embedder: embedder,
		}
	}

	if cmd == "stats" {
		// Token counting is best-effort: stats still work without the
		// tokenizer model.
		if tc, err := gemini.NewTokenCounter(tokenizerModel); err == nil {
			deps.Tokens = tc
		}
	}

	if cmd == "ask" {
		client, err := m.newGeminiClient(ctx, stderr)
		if err != nil {
			return err
		}
		deps.Asker = gemini.NewAsker(client, deps.Searcher)
	}

	return kongCtx.Run(deps)
}

// newEmbedder picks an embedding provider from the environment: Gemini when
// GEMINI_API_KEY is set, otherwise Ollama when KNOWBASE_OLLAMA_HOST is set,
// otherwise none (keyword indexing).
func (m *Main) newEmbedder(ctx context.Context) (knowbase.Embedder, error) {
	if os.Getenv("GEMINI_API_KEY") != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  os.Getenv("GEMINI_API_KEY"),
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewEmbedder(client), nil
	}
	if host := os.Getenv("KNOWBASE_OLLAMA_HOST"); host != "" {
		return ollama.NewEmbedder(host, os.Getenv("KNOWBASE_OLLAMA_MODEL")), nil
	}
	return nil, nil
}

func (m *Main) newGeminiClient(ctx context.Context, stderr io.Writer) (*genai.Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return client, nil
}

// tokenizerModel picks which tokenizer vocabulary sizes the token estimate.
const tokenizerModel = "gemini-2.5-flash"

func defaultDir() string {
	if dir := os.Getenv("KNOWBASE_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".knowbase"
	}
	return filepath.Join(home, ".knowbase")
}
