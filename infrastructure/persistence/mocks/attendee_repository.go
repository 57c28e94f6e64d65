package mocks

import (
	"context"
	"sync"

	"greencity/domain/attendee"
)

type MockEventAttendeeRepository struct {
	attendees map[int64]*attendee.EventAttendee
	nextID    int64
	mu        sync.RWMutex
}

func NewMockEventAttendeeRepository() *MockEventAttendeeRepository {
	return &MockEventAttendeeRepository{attendees: make(map[int64]*attendee.EventAttendee)}
}

func (r *MockEventAttendeeRepository) Save(ctx context.Context, a *attendee.EventAttendee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID() == 0 {
		for _, existing := range r.attendees {
			if existing.EventID() == a.EventID() && existing.UserID() == a.UserID() {
				return attendee.NewUserAlreadyAttachedError(a.EventID(), a.UserID())
			}
		}
		r.nextID++
		a.AssignID(r.nextID)
	} else if _, ok := r.attendees[a.ID()]; !ok {
		return attendee.NewAttendeeNotFoundError(a.ID())
	}
	r.attendees[a.ID()] = a
	return nil
}

func (r *MockEventAttendeeRepository) FindByID(ctx context.Context, id int64) (*attendee.EventAttendee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.attendees[id]
	if !ok {
		return nil, attendee.NewAttendeeNotFoundError(id)
	}
	return a, nil
}

func (r *MockEventAttendeeRepository) ExistsByEventAndUser(ctx context.Context, eventID, userID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.attendees {
		if a.EventID() == eventID && a.UserID() == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MockEventAttendeeRepository) FindByEventID(ctx context.Context, eventID int64) ([]*attendee.EventAttendee, error) {
	return r.filter(func(a *attendee.EventAttendee) bool { return a.EventID() == eventID }), nil
}

func (r *MockEventAttendeeRepository) FindByUserID(ctx context.Context, userID int64) ([]*attendee.EventAttendee, error) {
	return r.filter(func(a *attendee.EventAttendee) bool { return a.UserID() == userID }), nil
}

func (r *MockEventAttendeeRepository) filter(keep func(*attendee.EventAttendee) bool) []*attendee.EventAttendee {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*attendee.EventAttendee, 0)
	for _, a := range r.attendees {
		if keep(a) {
			result = append(result, a)
		}
	}
	sortByID(result, func(a *attendee.EventAttendee) int64 { return a.ID() })
	return result
}

func (r *MockEventAttendeeRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.attendees[id]; !ok {
		return attendee.NewAttendeeNotFoundError(id)
	}
	delete(r.attendees, id)
	return nil
}

func (r *MockEventAttendeeRepository) DeleteByEventID(ctx context.Context, eventID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, a := range r.attendees {
		if a.EventID() == eventID {
			delete(r.attendees, id)
		}
	}
	return nil
}

var _ attendee.Repository = (*MockEventAttendeeRepository)(nil)
