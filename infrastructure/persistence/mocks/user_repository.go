package mocks

import (
	"context"
	"sync"
	"time"

	"greencity/domain/user"
)

// MockUserRepository 用户只读仓储的内存实现，用户数据由 Put 注入
type MockUserRepository struct {
	users map[int64]*user.User
	mu    sync.RWMutex
}

// NewMockUserRepository 创建带演示数据的 Mock 用户仓储
func NewMockUserRepository() *MockUserRepository {
	repo := &MockUserRepository{users: make(map[int64]*user.User)}
	repo.initializeTestData()
	return repo
}

// NewEmptyUserRepository 创建空仓储，测试中按需 Put
func NewEmptyUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[int64]*user.User)}
}

func (r *MockUserRepository) initializeTestData() {
	now := time.Now()
	r.Put(user.RebuildFromDTO(user.ReconstructionDTO{
		ID: 1, Name: "olena", FirstName: "Olena", Email: "olena@greencity.ua",
		Role: string(user.RoleAdmin), City: "Lviv", Rating: 120, LastActivityTime: &now,
	}))
	r.Put(user.RebuildFromDTO(user.ReconstructionDTO{
		ID: 2, Name: "taras", FirstName: "Taras", Email: "taras@greencity.ua",
		Role: string(user.RoleUser), City: "Lviv", Rating: 80,
	}))
	r.Put(user.RebuildFromDTO(user.ReconstructionDTO{
		ID: 3, Name: "iryna", FirstName: "Iryna", Email: "iryna@greencity.ua",
		Role: string(user.RoleUser), City: "Kyiv", Rating: 45,
	}))
}

// Put 注入或替换用户
func (r *MockUserRepository) Put(u *user.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID()] = u
}

func (r *MockUserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, user.NewUserNotFoundError(id)
	}
	return u, nil
}

func (r *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, user.NewUserNotFoundByEmailError(email)
}

func (r *MockUserRepository) FindByIDs(ctx context.Context, ids []int64) ([]*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*user.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

func (r *MockUserRepository) FindByNames(ctx context.Context, names []string) ([]*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}
	result := make([]*user.User, 0, len(names))
	for _, u := range r.sorted() {
		if _, ok := wanted[u.Name()]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

func (r *MockUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[id]
	return ok, nil
}

// sorted 按 ID 升序返回全部用户，调用方持有读锁
func (r *MockUserRepository) sorted() []*user.User {
	result := make([]*user.User, 0, len(r.users))
	for _, u := range r.users {
		result = append(result, u)
	}
	sortByID(result, func(u *user.User) int64 { return u.ID() })
	return result
}

var _ user.Repository = (*MockUserRepository)(nil)
