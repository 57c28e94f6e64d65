package comment

import (
	"fmt"

	"greencity/domain/shared"
)

func NewCommentNotFoundError(id int64) error {
	return shared.NewEntityNotFoundError("event comment", id)
}

func NewWrongEventError(commentID, eventID int64) error {
	return shared.NewBadRequestError("event comment",
		fmt.Sprintf("comment %d does not belong to event %d", commentID, eventID))
}
