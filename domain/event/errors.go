package event

import (
	"fmt"

	"greencity/domain/shared"
)

var (
	// ErrNoPermission the caller is neither the author nor an admin.
	ErrNoPermission = fmt.Errorf("%w: user has no permission to access the event", shared.ErrInvalidInput)
)

func NewEventNotFoundError(id int64) error {
	return shared.NewEntityNotFoundError("event", id)
}

func NewNoPermissionError() error {
	return shared.NewDomainError(ErrNoPermission, "event", "user has no permission to access the event")
}
