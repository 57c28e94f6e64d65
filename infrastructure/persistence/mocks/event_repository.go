package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"greencity/domain/event"
	"greencity/domain/shared"
)

// MockEventRepository 活动仓储的内存实现。删除活动时级联清理关联的参与者与评论仓储。
type MockEventRepository struct {
	events    map[int64]*event.Event
	nextID    int64
	attendees *MockEventAttendeeRepository
	comments  *MockEventCommentRepository
	mu        sync.RWMutex
}

// NewMockEventRepository attendees 与 comments 可为 nil
func NewMockEventRepository(attendees *MockEventAttendeeRepository, comments *MockEventCommentRepository) *MockEventRepository {
	return &MockEventRepository{
		events:    make(map[int64]*event.Event),
		attendees: attendees,
		comments:  comments,
	}
}

func (r *MockEventRepository) Save(ctx context.Context, e *event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID() == 0 {
		r.nextID++
		e.AssignID(r.nextID)
	} else if _, ok := r.events[e.ID()]; !ok {
		return event.NewEventNotFoundError(e.ID())
	}
	r.events[e.ID()] = e
	return nil
}

func (r *MockEventRepository) FindByID(ctx context.Context, id int64) (*event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.events[id]
	if !ok {
		return nil, event.NewEventNotFoundError(id)
	}
	return e, nil
}

func (r *MockEventRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	if _, ok := r.events[id]; !ok {
		r.mu.Unlock()
		return event.NewEventNotFoundError(id)
	}
	delete(r.events, id)
	r.mu.Unlock()

	if r.attendees != nil {
		if err := r.attendees.DeleteByEventID(ctx, id); err != nil {
			return err
		}
	}
	if r.comments != nil {
		r.comments.deleteByEventID(id)
	}
	return nil
}

func (r *MockEventRepository) SearchByTitle(ctx context.Context, title string, page shared.PageRequest) (shared.Page[*event.Event], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	term := strings.ToLower(title)
	matches := make([]*event.Event, 0)
	for _, e := range r.events {
		if strings.Contains(strings.ToLower(e.Title()), term) {
			matches = append(matches, e)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt().Equal(matches[j].CreatedAt()) {
			return matches[i].CreatedAt().After(matches[j].CreatedAt())
		}
		return matches[i].ID() > matches[j].ID()
	})
	return paginate(matches, page), nil
}

var _ event.Repository = (*MockEventRepository)(nil)
