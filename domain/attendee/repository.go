package attendee

import "context"

type Repository interface {
	Save(ctx context.Context, a *EventAttendee) error
	FindByID(ctx context.Context, id int64) (*EventAttendee, error)
	ExistsByEventAndUser(ctx context.Context, eventID, userID int64) (bool, error)
	FindByEventID(ctx context.Context, eventID int64) ([]*EventAttendee, error)
	FindByUserID(ctx context.Context, userID int64) ([]*EventAttendee, error)
	Delete(ctx context.Context, id int64) error
	DeleteByEventID(ctx context.Context, eventID int64) error
}
