package mocks

import (
	"context"
	"sort"
	"sync"

	"greencity/domain/notification"
	"greencity/domain/shared"
)

// MockNotificationRepository 在内存中直接用 IsSatisfiedBy 求值规约
type MockNotificationRepository struct {
	notifications map[int64]*notification.Notification
	nextID        int64
	mu            sync.RWMutex
}

func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{notifications: make(map[int64]*notification.Notification)}
}

func (r *MockNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n.ID() == 0 {
		r.nextID++
		n.AssignID(r.nextID)
	}
	r.notifications[n.ID()] = n
	return nil
}

func (r *MockNotificationRepository) FindByID(ctx context.Context, id int64) (*notification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.notifications[id]
	if !ok {
		return nil, notification.NewNotificationNotFoundError(id)
	}
	return n, nil
}

func (r *MockNotificationRepository) FindByIDAndUserID(ctx context.Context, id, userID int64) (*notification.Notification, error) {
	n, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID() != userID {
		return nil, notification.NewNotificationNotFoundError(id)
	}
	return n, nil
}

func (r *MockNotificationRepository) FindBySpecification(ctx context.Context, spec shared.Specification[*notification.Notification], page shared.PageRequest) (shared.Page[*notification.Notification], error) {
	matches := r.match(ctx, spec)
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedDate().Equal(matches[j].CreatedDate()) {
			return matches[i].CreatedDate().After(matches[j].CreatedDate())
		}
		return matches[i].ID() > matches[j].ID()
	})
	return paginate(matches, page), nil
}

func (r *MockNotificationRepository) CountBySpecification(ctx context.Context, spec shared.Specification[*notification.Notification]) (int64, error) {
	return int64(len(r.match(ctx, spec))), nil
}

func (r *MockNotificationRepository) match(ctx context.Context, spec shared.Specification[*notification.Notification]) []*notification.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*notification.Notification, 0)
	for _, n := range r.notifications {
		if spec == nil || spec.IsSatisfiedBy(ctx, n) {
			result = append(result, n)
		}
	}
	return result
}

var _ notification.Repository = (*MockNotificationRepository)(nil)
