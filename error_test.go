package knowbase_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/knowbase"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := knowbase.Errorf(knowbase.ENOTFOUND, "knowledge base %q not found", "test")

	assert.Equal(t, knowbase.ENOTFOUND, knowbase.ErrorCode(err))
	assert.Equal(t, "knowledge base \"test\" not found", knowbase.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, knowbase.ErrorCode(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	inner := knowbase.Errorf(knowbase.ECONFLICT, "source already exists")
	wrapped := fmt.Errorf("adding source: %w", inner)

	assert.Equal(t, knowbase.ECONFLICT, knowbase.ErrorCode(wrapped))
	assert.Equal(t, "source already exists", knowbase.ErrorMessage(wrapped))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, knowbase.EINTERNAL, knowbase.ErrorCode(errors.New("boom")))
	assert.Equal(t, "Internal error.", knowbase.ErrorMessage(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, knowbase.ErrorMessage(nil))
}
