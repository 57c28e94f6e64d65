package subscription

import (
	"errors"
	"testing"

	"greencity/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNewsSubscription(t *testing.T) {
	s, err := NewNewsSubscription("  Eco.Fan@Example.COM ")
	require.NoError(t, err)

	assert.Equal(t, "eco.fan@example.com", s.Email())
	assert.Len(t, s.Token(), 36)
}

func TestNormalizeEmailRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "not-an-email", "Name <a@b.com>"} {
		_, err := NormalizeEmail(in)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput), in)
	}
}
