package notification

import (
	"context"

	"greencity/domain/shared"
)

type Repository interface {
	Save(ctx context.Context, n *Notification) error
	FindByID(ctx context.Context, id int64) (*Notification, error)
	FindByIDAndUserID(ctx context.Context, id, userID int64) (*Notification, error)

	// FindBySpecification pages through matches, newest first.
	FindBySpecification(ctx context.Context, spec shared.Specification[*Notification], page shared.PageRequest) (shared.Page[*Notification], error)
	CountBySpecification(ctx context.Context, spec shared.Specification[*Notification]) (int64, error)
}
