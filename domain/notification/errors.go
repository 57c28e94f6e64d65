package notification

import (
	"greencity/domain/shared"
)

func NewNotificationNotFoundError(id int64) error {
	return shared.NewEntityNotFoundError("notification", id)
}
