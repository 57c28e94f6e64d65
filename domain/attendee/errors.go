package attendee

import (
	"fmt"

	"greencity/domain/shared"
)

var (
	ErrUserAlreadyAttached = fmt.Errorf("%w: user is already attached to the event", shared.ErrConflict)
	ErrStatusDowngrade     = fmt.Errorf("%w: event attendee status cannot be updated", shared.ErrInvalidInput)
	ErrEventClosed         = fmt.Errorf("%w: event is not open", shared.ErrInvalidInput)
)

func NewUserAlreadyAttachedError(eventID, userID int64) error {
	return shared.NewDomainError(ErrUserAlreadyAttached, "event attendee",
		fmt.Sprintf("user %d is already attached to event %d", userID, eventID))
}

func NewStatusCannotBeUpdatedError(from, to Status) error {
	return shared.NewDomainError(ErrStatusDowngrade, "event attendee",
		fmt.Sprintf("event attendee status cannot be updated from %s to %s", from, to))
}

func NewEventClosedError(eventID int64) error {
	return shared.NewDomainError(ErrEventClosed, "event attendee",
		fmt.Sprintf("event %d is not open for attendance", eventID))
}

func NewAttendeeNotFoundError(id int64) error {
	return shared.NewEntityNotFoundError("event attendee", id)
}
