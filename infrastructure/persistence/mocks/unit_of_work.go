package mocks

import (
	"context"
	"sync/atomic"

	"greencity/domain/shared"
)

// MockUnitOfWork runs fn without a transaction. Mock repositories are
// not rolled back when fn fails.
type MockUnitOfWork struct {
	executions atomic.Int64
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{}
}

func (u *MockUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.executions.Add(1)
	return fn(ctx)
}

// Executions reports how many units of work were started.
func (u *MockUnitOfWork) Executions() int64 {
	return u.executions.Load()
}

var _ shared.UnitOfWork = (*MockUnitOfWork)(nil)
