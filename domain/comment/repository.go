package comment

import (
	"context"

	"greencity/domain/shared"
)

type Repository interface {
	Save(ctx context.Context, c *EventComment) error

	// FindByID returns a not-found error for missing and deleted comments.
	FindByID(ctx context.Context, id int64) (*EventComment, error)

	// CountByEvent counts non-deleted top-level comments.
	CountByEvent(ctx context.Context, eventID int64) (int64, error)
	FindByEvent(ctx context.Context, eventID int64, page shared.PageRequest) (shared.Page[*EventComment], error)

	CountReplies(ctx context.Context, parentID int64) (int64, error)
	FindReplies(ctx context.Context, parentID int64, page shared.PageRequest) (shared.Page[*EventComment], error)

	// SoftDeleteReplies marks every reply of parentID as deleted.
	SoftDeleteReplies(ctx context.Context, parentID int64) error
}
