package errors

import (
	"fmt"
	"testing"

	"greencity/domain/attendee"
	"greencity/domain/event"
	"greencity/domain/friend"
	"greencity/domain/shared"
	"greencity/domain/subscription"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDomainError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code ErrorCode
	}{
		{"not found", shared.NewEntityNotFoundError("event", 1), CodeNotFound},
		{"validation", shared.NewValidationError("event", "title", "blank"), CodeBadRequest},
		{"forbidden", shared.NewForbiddenError("event comment", "not yours"), CodeForbidden},
		{"conflict", shared.NewConflictError("user", "duplicate"), CodeConflict},
		{"already attached", attendee.NewUserAlreadyAttachedError(1, 2), CodeUserAlreadyAttached},
		{"downgrade", attendee.NewStatusCannotBeUpdatedError(attendee.StatusAttended, attendee.StatusPlanned), CodeStatusCannotBeUpdated},
		{"event closed", attendee.NewEventClosedError(3), CodeBadRequest},
		{"already subscribed", subscription.NewAlreadySubscribedError("a@b.com"), CodeAlreadySubscribed},
		{"no permission", event.NewNoPermissionError(), CodeNoPermission},
		{"pending", friend.NewRequestAlreadyPendingError(1, 2), CodeFriendRequestPending},
		{"not saved", shared.NewDomainError(shared.ErrNotSaved, "event", "foreign key"), CodeNotSaved},
		{"wrapped", fmt.Errorf("load: %w", shared.NewEntityNotFoundError("user", 9)), CodeNotFound},
		{"unknown", fmt.Errorf("boom"), CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := FromDomainError(tc.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tc.code, appErr.Code)
			assert.ErrorIs(t, appErr, tc.err)
		})
	}
}

func TestFromDomainErrorKeepsAppError(t *testing.T) {
	orig := BadRequest("page must be positive")
	assert.Same(t, orig, FromDomainError(fmt.Errorf("wrap: %w", orig)))
	assert.Nil(t, FromDomainError(nil))
	assert.True(t, Is(orig, CodeBadRequest))
	assert.False(t, Is(fmt.Errorf("plain"), CodeBadRequest))
}
