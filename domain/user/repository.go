package user

import (
	"context"
)

// Repository reads users owned by the user service.
type Repository interface {
	// FindByID returns a not-found domain error when the user is absent.
	FindByID(ctx context.Context, id int64) (*User, error)

	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByIDs returns the users that exist, in no particular order.
	FindByIDs(ctx context.Context, ids []int64) ([]*User, error)

	// FindByNames resolves mention tokens; unknown names are skipped.
	FindByNames(ctx context.Context, names []string) ([]*User, error)

	Exists(ctx context.Context, id int64) (bool, error)
}
