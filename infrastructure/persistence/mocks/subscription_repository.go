package mocks

import (
	"context"
	"sync"

	"greencity/domain/subscription"
)

type MockNewsSubscriptionRepository struct {
	subscriptions map[int64]*subscription.NewsSubscription
	nextID        int64
	mu            sync.RWMutex
}

func NewMockNewsSubscriptionRepository() *MockNewsSubscriptionRepository {
	return &MockNewsSubscriptionRepository{subscriptions: make(map[int64]*subscription.NewsSubscription)}
}

func (r *MockNewsSubscriptionRepository) FindAll(ctx context.Context) ([]*subscription.NewsSubscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*subscription.NewsSubscription, 0, len(r.subscriptions))
	for _, s := range r.subscriptions {
		result = append(result, s)
	}
	sortByID(result, func(s *subscription.NewsSubscription) int64 { return s.ID() })
	return result, nil
}

func (r *MockNewsSubscriptionRepository) FindByEmail(ctx context.Context, email string) (*subscription.NewsSubscription, error) {
	return r.find(func(s *subscription.NewsSubscription) bool { return s.Email() == email }), nil
}

func (r *MockNewsSubscriptionRepository) FindByToken(ctx context.Context, token string) (*subscription.NewsSubscription, error) {
	return r.find(func(s *subscription.NewsSubscription) bool { return s.Token() == token }), nil
}

func (r *MockNewsSubscriptionRepository) find(match func(*subscription.NewsSubscription) bool) *subscription.NewsSubscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.subscriptions {
		if match(s) {
			return s
		}
	}
	return nil
}

func (r *MockNewsSubscriptionRepository) Save(ctx context.Context, s *subscription.NewsSubscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.subscriptions {
		if existing.Email() == s.Email() && existing.ID() != s.ID() {
			return subscription.NewAlreadySubscribedError(s.Email())
		}
	}
	if s.ID() == 0 {
		r.nextID++
		s.AssignID(r.nextID)
	}
	r.subscriptions[s.ID()] = s
	return nil
}

func (r *MockNewsSubscriptionRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subscriptions[id]; !ok {
		return subscription.NewSubscriptionNotFoundError()
	}
	delete(r.subscriptions, id)
	return nil
}

var _ subscription.Repository = (*MockNewsSubscriptionRepository)(nil)
