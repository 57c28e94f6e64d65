package friend

import (
	"errors"
	"testing"
	"time"

	"greencity/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendRequestLifecycle(t *testing.T) {
	f, err := NewFriendRequest(1, 2, time.Now())
	require.NoError(t, err)
	assert.True(t, f.IsPending())

	require.NoError(t, f.Accept())
	assert.True(t, f.IsAccepted())

	assert.True(t, errors.Is(f.Accept(), shared.ErrNotFound), "accepting twice")
}

func TestFriendRequestToSelf(t *testing.T) {
	_, err := NewFriendRequest(4, 4, time.Now())
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}
