package subscription

import "context"

type Repository interface {
	FindAll(ctx context.Context) ([]*NewsSubscription, error)
	// FindByEmail and FindByToken return nil, nil when absent.
	FindByEmail(ctx context.Context, email string) (*NewsSubscription, error)
	FindByToken(ctx context.Context, token string) (*NewsSubscription, error)
	Save(ctx context.Context, s *NewsSubscription) error
	Delete(ctx context.Context, id int64) error
}
