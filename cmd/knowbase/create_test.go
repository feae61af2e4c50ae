package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/knowbase"
	main "github.com/fwojciec/knowbase/cmd/knowbase"
	"github.com/fwojciec/knowbase/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("creates and reports the clamped depth", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.KBs = &mock.KnowledgeBaseService{
			CreateKnowledgeBaseFn: func(ctx context.Context, name string, crawlDepth int) (*knowbase.KnowledgeBase, error) {
				return &knowbase.KnowledgeBase{
					ID:         "kb-1",
					Name:       name,
					CrawlDepth: knowbase.ClampCrawlDepth(crawlDepth),
				}, nil
			},
		}

		cmd := &main.CreateCmd{Name: "go-docs", Depth: 9}
		err := cmd.Run(deps)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "go-docs")
		assert.Contains(t, output, "kb-1")
		assert.Contains(t, output, "depth 3")
	})

	t.Run("reports validation errors on stderr", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.KBs = &mock.KnowledgeBaseService{
			CreateKnowledgeBaseFn: func(ctx context.Context, name string, crawlDepth int) (*knowbase.KnowledgeBase, error) {
				return nil, knowbase.Errorf(knowbase.EINVALID, "knowledge base name required")
			},
		}

		cmd := &main.CreateCmd{Name: ""}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "name required")
	})
}
