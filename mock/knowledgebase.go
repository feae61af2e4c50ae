package mock

import (
	"context"

	"github.com/fwojciec/knowbase"
)

var _ knowbase.KnowledgeBaseService = (*KnowledgeBaseService)(nil)

// KnowledgeBaseService is a mock implementation of knowbase.KnowledgeBaseService.
type KnowledgeBaseService struct {
	CreateKnowledgeBaseFn   func(ctx context.Context, name string, crawlDepth int) (*knowbase.KnowledgeBase, error)
	FindKnowledgeBaseByIDFn func(ctx context.Context, id string) (*knowbase.KnowledgeBase, error)
	ListKnowledgeBasesFn    func(ctx context.Context) ([]*knowbase.KnowledgeBase, error)
	DeleteKnowledgeBaseFn   func(ctx context.Context, id string) (bool, error)
	AddSourceFn             func(ctx context.Context, kbID, rawURL string) (*knowbase.Source, error)
	RemoveSourceFn          func(ctx context.Context, kbID, sourceID string) (bool, error)
	UpdateSourceFn          func(ctx context.Context, kbID, sourceID string, upd knowbase.SourceUpdate) (*knowbase.Source, error)
}

func (s *KnowledgeBaseService) CreateKnowledgeBase(ctx context.Context, name string, crawlDepth int) (*knowbase.KnowledgeBase, error) {
	return s.CreateKnowledgeBaseFn(ctx, name, crawlDepth)
}

func (s *KnowledgeBaseService) FindKnowledgeBaseByID(ctx context.Context, id string) (*knowbase.KnowledgeBase, error) {
	return s.FindKnowledgeBaseByIDFn(ctx, id)
}

func (s *KnowledgeBaseService) ListKnowledgeBases(ctx context.Context) ([]*knowbase.KnowledgeBase, error) {
	return s.ListKnowledgeBasesFn(ctx)
}

func (s *KnowledgeBaseService) DeleteKnowledgeBase(ctx context.Context, id string) (bool, error) {
	return s.DeleteKnowledgeBaseFn(ctx, id)
}

func (s *KnowledgeBaseService) AddSource(ctx context.Context, kbID, rawURL string) (*knowbase.Source, error) {
	return s.AddSourceFn(ctx, kbID, rawURL)
}

func (s *KnowledgeBaseService) RemoveSource(ctx context.Context, kbID, sourceID string) (bool, error) {
	return s.RemoveSourceFn(ctx, kbID, sourceID)
}

func (s *KnowledgeBaseService) UpdateSource(ctx context.Context, kbID, sourceID string, upd knowbase.SourceUpdate) (*knowbase.Source, error) {
	return s.UpdateSourceFn(ctx, kbID, sourceID, upd)
}
