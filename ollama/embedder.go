// Package ollama implements knowbase.Embedder against a local Ollama server,
// for fully offline semantic indexing.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/fwojciec/knowbase"
)

// Defaults for a stock local Ollama install.
const (
	DefaultHost  = "http://localhost:11434"
	DefaultModel = "nomic-embed-text"
)

// Ensure Embedder implements knowbase.Embedder at compile time.
var _ knowbase.Embedder = (*Embedder)(nil)

// Embedder produces embedding vectors via Ollama's /api/embed endpoint.
type Embedder struct {
	host       string
	model      string
	httpClient *http.Client

	// mu guards dimensions: EmbedBatch is called from concurrent indexing
	// goroutines and the first response sets it.
	mu         sync.Mutex
	dimensions int
}

// NewEmbedder creates an Embedder. Empty host or model fall back to the
// local defaults.
func NewEmbedder(host, model string) *Embedder {
	if host == "" {
		host = DefaultHost
	}
	if model == "" {
		model = DefaultModel
	}
	return &Embedder{
		host:  host,
		model: model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Embed returns the embedding vector for one text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds several texts in one request.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(embedRequest{Model: e.model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("marshal embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.host+"/api/embed", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, knowbase.Errorf(knowbase.EUNAVAILABLE, "ollama embed request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, knowbase.Errorf(knowbase.EUNAVAILABLE, "ollama embed: status %d", resp.StatusCode)
	}

	var result embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode embed response: %w", err)
	}
	if len(result.Embeddings) != len(texts) {
		return nil, knowbase.Errorf(knowbase.EINTERNAL, "ollama returned %d embeddings for %d texts", len(result.Embeddings), len(texts))
	}
	if len(result.Embeddings[0]) > 0 {
		e.mu.Lock()
		if e.dimensions == 0 {
			e.dimensions = len(result.Embeddings[0])
		}
		e.mu.Unlock()
	}
	return result.Embeddings, nil
}

// Model returns the Ollama model identifier.
func (e *Embedder) Model() string {
	return e.model
}

// Dimensions returns the vector dimensionality observed on the first
// response, or 0 before any call.
func (e *Embedder) Dimensions() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dimensions
}

// IsHealthy reports whether the Ollama server answers at all.
func (e *Embedder) IsHealthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.host+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := e.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
