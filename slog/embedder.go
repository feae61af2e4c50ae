package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/knowbase"
)

// Ensure LoggingEmbedder implements knowbase.Embedder.
var _ knowbase.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with logging. Batch calls log the batch
// size so slow indexing runs can be diagnosed per provider call.
type LoggingEmbedder struct {
	next   knowbase.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next knowbase.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Embed delegates to the wrapped embedder and logs the operation.
func (e *LoggingEmbedder) Embed(ctx context.Context, text string) (vector []float32, err error) {
	defer func(begin time.Time) {
		e.logger.Info("embed",
			"model", e.next.Model(),
			"chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Embed(ctx, text)
}

// EmbedBatch delegates to the wrapped embedder and logs the operation.
func (e *LoggingEmbedder) EmbedBatch(ctx context.Context, texts []string) (vectors [][]float32, err error) {
	defer func(begin time.Time) {
		e.logger.Info("embed batch",
			"model", e.next.Model(),
			"batch", len(texts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.EmbedBatch(ctx, texts)
}

// Model delegates to the wrapped embedder.
func (e *LoggingEmbedder) Model() string {
	return e.next.Model()
}

// Dimensions delegates to the wrapped embedder.
func (e *LoggingEmbedder) Dimensions() int {
	return e.next.Dimensions()
}
