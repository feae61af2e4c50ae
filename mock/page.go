package mock

import (
	"context"

	"github.com/fwojciec/knowbase"
)

var _ knowbase.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of knowbase.PageStore.
type PageStore struct {
	SavePageFn            func(ctx context.Context, kbID, sourceID string, page *knowbase.PageContent) error
	LoadPagesFn           func(ctx context.Context, kbID string) ([]*knowbase.PageRecord, error)
	LoadContentFn         func(ctx context.Context, kbID string) (string, error)
	DeletePagesBySourceFn func(ctx context.Context, kbID, sourceID string) (int, error)
}

func (s *PageStore) SavePage(ctx context.Context, kbID, sourceID string, page *knowbase.PageContent) error {
	return s.SavePageFn(ctx, kbID, sourceID, page)
}

func (s *PageStore) LoadPages(ctx context.Context, kbID string) ([]*knowbase.PageRecord, error) {
	return s.LoadPagesFn(ctx, kbID)
}

func (s *PageStore) LoadContent(ctx context.Context, kbID string) (string, error) {
	return s.LoadContentFn(ctx, kbID)
}

func (s *PageStore) DeletePagesBySource(ctx context.Context, kbID, sourceID string) (int, error) {
	return s.DeletePagesBySourceFn(ctx, kbID, sourceID)
}
