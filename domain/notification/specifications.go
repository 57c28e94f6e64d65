package notification

import (
	"context"

	"greencity/domain/shared"
)

type ByUserIDSpecification struct {
	UserID int64
}

func (spec ByUserIDSpecification) IsSatisfiedBy(ctx context.Context, n *Notification) bool {
	return n.UserID() == spec.UserID
}

type ByTypeSpecification struct {
	Type Type
}

func (spec ByTypeSpecification) IsSatisfiedBy(ctx context.Context, n *Notification) bool {
	return n.Type() == spec.Type
}

type ByProjectNameSpecification struct {
	ProjectName ProjectName
}

func (spec ByProjectNameSpecification) IsSatisfiedBy(ctx context.Context, n *Notification) bool {
	return n.ProjectName() == spec.ProjectName
}

type ByViewedSpecification struct {
	Viewed bool
}

func (spec ByViewedSpecification) IsSatisfiedBy(ctx context.Context, n *Notification) bool {
	return n.IsViewed() == spec.Viewed
}

func NewByUserIDSpecification(userID int64) shared.Specification[*Notification] {
	return ByUserIDSpecification{UserID: userID}
}

func NewUnreadSpecification(userID int64) shared.Specification[*Notification] {
	return shared.And[*Notification](ByUserIDSpecification{UserID: userID}, ByViewedSpecification{Viewed: false})
}
