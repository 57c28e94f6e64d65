package shared

import "context"

// UnitOfWork 管理事务边界。fn 收到的 ctx 携带事务，仓储从中取用。
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
