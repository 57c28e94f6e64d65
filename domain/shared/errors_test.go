package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrorUnwrapsToSentinel(t *testing.T) {
	err := NewEntityNotFoundError("event", 7)

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "event not found: 7", err.Error())

	var stacker Stacker
	require.True(t, errors.As(err, &stacker))
	assert.NotEmpty(t, stacker.Stack())
}

func TestNewDomainErrorWithFeatureSentinel(t *testing.T) {
	featureErr := fmt.Errorf("%w: already there", ErrConflict)
	err := NewDomainError(featureErr, "thing", "thing already there")

	assert.True(t, errors.Is(err, featureErr))
	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestStackStartsAtCaller(t *testing.T) {
	err := NewValidationError("event", "title", "title must not be blank")

	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "title", de.Field)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	stack := de.Stack()
	require.NotEmpty(t, stack)
	assert.Contains(t, stack[0], "TestStackStartsAtCaller")
	assert.LessOrEqual(t, len(stack), maxStackFrames)
}
