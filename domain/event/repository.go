package event

import (
	"context"

	"greencity/domain/shared"
)

type Repository interface {
	// Save inserts when e.ID() is zero, otherwise replaces the event with its slots, tags and images.
	Save(ctx context.Context, e *Event) error

	FindByID(ctx context.Context, id int64) (*Event, error)

	// Delete removes the event and everything hanging off it (attendees, comments).
	Delete(ctx context.Context, id int64) error

	// SearchByTitle matches a case-insensitive substring, newest first.
	SearchByTitle(ctx context.Context, title string, page shared.PageRequest) (shared.Page[*Event], error)
}
