package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"greencity/domain/comment"
	"greencity/domain/shared"
)

type MockEventCommentRepository struct {
	comments map[int64]*comment.EventComment
	nextID   int64
	mu       sync.RWMutex
}

func NewMockEventCommentRepository() *MockEventCommentRepository {
	return &MockEventCommentRepository{comments: make(map[int64]*comment.EventComment)}
}

func (r *MockEventCommentRepository) Save(ctx context.Context, c *comment.EventComment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID() == 0 {
		r.nextID++
		c.AssignID(r.nextID)
	}
	r.comments[c.ID()] = c
	return nil
}

func (r *MockEventCommentRepository) FindByID(ctx context.Context, id int64) (*comment.EventComment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.comments[id]
	if !ok || c.IsDeleted() {
		return nil, comment.NewCommentNotFoundError(id)
	}
	return c, nil
}

func (r *MockEventCommentRepository) CountByEvent(ctx context.Context, eventID int64) (int64, error) {
	return int64(len(r.filter(topLevelOf(eventID)))), nil
}

func (r *MockEventCommentRepository) FindByEvent(ctx context.Context, eventID int64, page shared.PageRequest) (shared.Page[*comment.EventComment], error) {
	items := r.filter(topLevelOf(eventID))
	sortComments(items, page.Sort)
	return paginate(items, page), nil
}

func (r *MockEventCommentRepository) CountReplies(ctx context.Context, parentID int64) (int64, error) {
	return int64(len(r.filter(repliesOf(parentID)))), nil
}

func (r *MockEventCommentRepository) FindReplies(ctx context.Context, parentID int64, page shared.PageRequest) (shared.Page[*comment.EventComment], error) {
	items := r.filter(repliesOf(parentID))
	sortComments(items, page.Sort)
	return paginate(items, page), nil
}

func (r *MockEventCommentRepository) SoftDeleteReplies(ctx context.Context, parentID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.comments {
		if c.ParentID() != nil && *c.ParentID() == parentID && !c.IsDeleted() {
			r.comments[id] = comment.RebuildFromDTO(comment.ReconstructionDTO{
				ID:               c.ID(),
				EventID:          c.EventID(),
				AuthorID:         c.AuthorID(),
				ParentID:         c.ParentID(),
				Text:             c.Text(),
				Status:           string(comment.StatusDeleted),
				CreatedDate:      c.CreatedDate(),
				ModifiedDate:     c.ModifiedDate(),
				MentionedUserIDs: c.MentionedUserIDs(),
			})
		}
	}
	return nil
}

func (r *MockEventCommentRepository) deleteByEventID(eventID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.comments {
		if c.EventID() == eventID {
			delete(r.comments, id)
		}
	}
}

func (r *MockEventCommentRepository) filter(keep func(*comment.EventComment) bool) []*comment.EventComment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*comment.EventComment, 0)
	for _, c := range r.comments {
		if !c.IsDeleted() && keep(c) {
			result = append(result, c)
		}
	}
	return result
}

func topLevelOf(eventID int64) func(*comment.EventComment) bool {
	return func(c *comment.EventComment) bool { return c.EventID() == eventID && !c.IsReply() }
}

func repliesOf(parentID int64) func(*comment.EventComment) bool {
	return func(c *comment.EventComment) bool { return c.ParentID() != nil && *c.ParentID() == parentID }
}

// sortComments 默认按创建时间倒序
func sortComments(items []*comment.EventComment, orders []shared.SortOrder) {
	if len(orders) == 0 {
		orders = []shared.SortOrder{{Property: "createdDate"}}
	}
	sort.SliceStable(items, func(i, j int) bool {
		for _, o := range orders {
			cmp := compareComments(items[i], items[j], o.Property)
			if cmp == 0 {
				continue
			}
			if o.Ascending {
				return cmp < 0
			}
			return cmp > 0
		}
		return items[i].ID() > items[j].ID()
	})
}

func compareComments(a, b *comment.EventComment, property string) int {
	switch property {
	case "id":
		return compareInt64(a.ID(), b.ID())
	case "createdDate":
		return a.CreatedDate().Compare(b.CreatedDate())
	case "modifiedDate":
		return a.ModifiedDate().Compare(b.ModifiedDate())
	case "text":
		return strings.Compare(a.Text(), b.Text())
	case "status":
		return strings.Compare(string(a.Status()), string(b.Status()))
	}
	return 0
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

var _ comment.Repository = (*MockEventCommentRepository)(nil)
