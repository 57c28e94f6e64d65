package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"greencity/domain/friend"
	"greencity/domain/shared"
	"greencity/domain/user"
)

type edgeKey struct {
	userID   int64
	friendID int64
}

type habitAssignment struct {
	habitID int64
	status  string
}

// MockFriendRepository 社交图的内存实现。用户取自 users，习惯与新闻计数通过
// AssignHabit / SetNewsPublished 注入。
type MockFriendRepository struct {
	edges  map[edgeKey]*friend.Friendship
	habits map[int64][]habitAssignment
	news   map[int64]int64
	users  *MockUserRepository
	mu     sync.RWMutex
}

func NewMockFriendRepository(users *MockUserRepository) *MockFriendRepository {
	return &MockFriendRepository{
		edges:  make(map[edgeKey]*friend.Friendship),
		habits: make(map[int64][]habitAssignment),
		news:   make(map[int64]int64),
		users:  users,
	}
}

func (r *MockFriendRepository) AssignHabit(userID, habitID int64, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.habits[userID] = append(r.habits[userID], habitAssignment{habitID: habitID, status: status})
}

func (r *MockFriendRepository) SetNewsPublished(userID, count int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.news[userID] = count
}

func (r *MockFriendRepository) FindFriendship(ctx context.Context, userID, friendID int64) (*friend.Friendship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.edges[edgeKey{userID, friendID}], nil
}

func (r *MockFriendRepository) Create(ctx context.Context, f *friend.Friendship) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := edgeKey{f.UserID(), f.FriendID()}
	if _, ok := r.edges[key]; ok {
		return friend.NewRequestAlreadyPendingError(f.UserID(), f.FriendID())
	}
	r.edges[key] = f
	return nil
}

func (r *MockFriendRepository) UpdateStatus(ctx context.Context, f *friend.Friendship) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := edgeKey{f.UserID(), f.FriendID()}
	if _, ok := r.edges[key]; !ok {
		return friend.NewFriendRequestNotFoundError(f.UserID(), f.FriendID())
	}
	r.edges[key] = f
	return nil
}

func (r *MockFriendRepository) Delete(ctx context.Context, userID, friendID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.edges, edgeKey{userID, friendID})
	return nil
}

func (r *MockFriendRepository) CountRelations(ctx context.Context, userID int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.neighbours(userID))), nil
}

func (r *MockFriendRepository) CountAccepted(ctx context.Context, userID int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for key, f := range r.edges {
		if key.userID == userID && f.IsAccepted() {
			count++
		}
	}
	return count, nil
}

func (r *MockFriendRepository) CountMutualFriends(ctx context.Context, userID, otherID int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	theirs := r.neighbours(otherID)
	var count int64
	for id := range r.neighbours(userID) {
		if _, ok := theirs[id]; ok {
			count++
		}
	}
	return count, nil
}

func (r *MockFriendRepository) FindFriendsSharingHabits(ctx context.Context, userID int64, habitIDs []int64, city string, page shared.PageRequest) (shared.Page[*user.User], error) {
	if len(habitIDs) == 0 {
		return shared.NewPage[*user.User](nil, 0, page), nil
	}
	wanted := make(map[int64]struct{}, len(habitIDs))
	for _, id := range habitIDs {
		wanted[id] = struct{}{}
	}

	r.mu.RLock()
	var matches []*user.User
	for _, u := range r.usersByID(r.neighbours(userID)) {
		if u.City() != city {
			continue
		}
		for _, h := range r.habits[u.ID()] {
			if _, ok := wanted[h.habitID]; ok {
				matches = append(matches, u)
				break
			}
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Rating() != matches[j].Rating() {
			return matches[i].Rating() > matches[j].Rating()
		}
		return matches[i].ID() < matches[j].ID()
	})
	return paginate(matches, page), nil
}

func (r *MockFriendRepository) SearchUsers(ctx context.Context, userID int64, term string, page shared.PageRequest) (shared.Page[*user.User], error) {
	term = strings.ToLower(term)
	matches := r.allUsers(func(u *user.User) bool {
		return u.ID() != userID &&
			(strings.Contains(strings.ToLower(u.Name()), term) || strings.Contains(strings.ToLower(u.FirstName()), term))
	})
	return paginate(matches, page), nil
}

func (r *MockFriendRepository) FindUsersInCity(ctx context.Context, userID int64, city string) ([]*user.User, error) {
	return r.allUsers(func(u *user.User) bool { return u.ID() != userID && u.City() == city }), nil
}

func (r *MockFriendRepository) FindFriendsOfFriends(ctx context.Context, userID int64) ([]*user.User, error) {
	return r.friendsOfFriends(userID, func(*user.User) bool { return true }), nil
}

func (r *MockFriendRepository) FindFriendsOfFriendsInCity(ctx context.Context, userID int64, city string) ([]*user.User, error) {
	return r.friendsOfFriends(userID, func(u *user.User) bool { return u.City() == city }), nil
}

func (r *MockFriendRepository) FindRecommendations(ctx context.Context, userID int64, city string) ([]*user.User, error) {
	r.mu.RLock()
	active := make(map[int64]struct{})
	for id, assignments := range r.habits {
		for _, h := range assignments {
			if h.status == friend.HabitInProgress || h.status == friend.HabitAcquired {
				active[id] = struct{}{}
			}
		}
	}
	r.mu.RUnlock()

	return r.friendsOfFriends(userID, func(u *user.User) bool {
		_, ok := active[u.ID()]
		return ok && u.City() == city
	}), nil
}

func (r *MockFriendRepository) HabitIDs(ctx context.Context, userID int64) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[int64]struct{})
	ids := make([]int64, 0)
	for _, h := range r.habits[userID] {
		if _, ok := seen[h.habitID]; !ok {
			seen[h.habitID] = struct{}{}
			ids = append(ids, h.habitID)
		}
	}
	return ids, nil
}

func (r *MockFriendRepository) Stats(ctx context.Context, userID int64) (friend.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := friend.Stats{NewsPublished: r.news[userID]}
	for _, h := range r.habits[userID] {
		switch h.status {
		case friend.HabitInProgress:
			stats.HabitsInProgress++
		case friend.HabitAcquired:
			stats.HabitsAcquired++
		}
	}
	return stats, nil
}

// neighbours 返回 userID 出边指向的用户，不区分状态。调用方持有读锁。
func (r *MockFriendRepository) neighbours(userID int64) map[int64]struct{} {
	result := make(map[int64]struct{})
	for key := range r.edges {
		if key.userID == userID {
			result[key.friendID] = struct{}{}
		}
	}
	return result
}

func (r *MockFriendRepository) friendsOfFriends(userID int64, keep func(*user.User) bool) []*user.User {
	r.mu.RLock()
	ids := make(map[int64]struct{})
	for direct := range r.neighbours(userID) {
		for id := range r.neighbours(direct) {
			if id != userID {
				ids[id] = struct{}{}
			}
		}
	}
	candidates := r.usersByID(ids)
	r.mu.RUnlock()

	result := make([]*user.User, 0, len(candidates))
	for _, u := range candidates {
		if keep(u) {
			result = append(result, u)
		}
	}
	return result
}

func (r *MockFriendRepository) usersByID(ids map[int64]struct{}) []*user.User {
	list := make([]int64, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	found, _ := r.users.FindByIDs(context.Background(), list)
	sortByID(found, func(u *user.User) int64 { return u.ID() })
	return found
}

func (r *MockFriendRepository) allUsers(keep func(*user.User) bool) []*user.User {
	r.users.mu.RLock()
	defer r.users.mu.RUnlock()

	result := make([]*user.User, 0)
	for _, u := range r.users.sorted() {
		if keep(u) {
			result = append(result, u)
		}
	}
	return result
}

var _ friend.Repository = (*MockFriendRepository)(nil)
