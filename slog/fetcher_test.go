package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/knowbase/mock"
	kbslog "github.com/fwojciec/knowbase/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_logs_bytes_and_duration(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "<html>content</html>", nil
		},
	}

	fetcher := kbslog.NewLoggingFetcher(inner, logger)
	html, err := fetcher.Fetch(context.Background(), "https://example.com/docs")

	require.NoError(t, err)
	assert.Equal(t, "<html>content</html>", html)
	output := buf.String()
	assert.Contains(t, output, "fetch")
	assert.Contains(t, output, "url=https://example.com/docs")
	assert.Contains(t, output, "bytes=20")
	assert.Contains(t, output, "duration=")
}

func TestLoggingFetcher_logs_error(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "", errors.New("network error")
		},
	}

	fetcher := kbslog.NewLoggingFetcher(inner, logger)
	_, err := fetcher.Fetch(context.Background(), "https://example.com/docs")

	require.Error(t, err)
	assert.Contains(t, buf.String(), "err=\"network error\"")
}

func TestLoggingFetcher_close_delegates(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	closed := false
	inner := &mock.Fetcher{
		CloseFn: func() error {
			closed = true
			return nil
		},
	}

	fetcher := kbslog.NewLoggingFetcher(inner, logger)
	require.NoError(t, fetcher.Close())
	assert.True(t, closed)
}
