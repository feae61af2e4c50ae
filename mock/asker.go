package mock

import (
	"context"

	"github.com/fwojciec/knowbase"
)

var _ knowbase.Asker = (*Asker)(nil)

// Asker is a mock implementation of knowbase.Asker.
type Asker struct {
	AskFn func(ctx context.Context, kbID, question string) (string, error)
}

func (a *Asker) Ask(ctx context.Context, kbID, question string) (string, error) {
	return a.AskFn(ctx, kbID, question)
}
