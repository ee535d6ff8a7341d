//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"facility-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestMarkAndIs(t *testing.T) {
	cause := errors.New("slot end before start")

	marked := errs.Wrap(errs.Mark(cause, errs.ErrValidation), "create reservation")

	assert.True(t, errs.Is(marked, errs.ErrValidation))
	assert.True(t, errs.Is(marked, cause))
	assert.False(t, errs.Is(marked, errs.ErrConflict))
}

func TestMarkNilReturnsReference(t *testing.T) {
	assert.Equal(t, errs.ErrNotFound, errs.Mark(nil, errs.ErrNotFound))
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, errs.Wrap(nil, "noop"))
	assert.NoError(t, errs.Wrapf(nil, "noop %d", 1))
}

func TestExtractStackLines(t *testing.T) {
	err := errs.New("boom")

	lines := errs.ExtractStackLines(err, 2)

	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "boom")
	assert.Nil(t, errs.ExtractStackLines(nil, 2))
}
