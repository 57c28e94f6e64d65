package mysql

import (
	"context"
	"fmt"

	"greencity/domain/shared"
	"greencity/infrastructure/persistence"
	"greencity/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// UnitOfWork implements the Unit of Work pattern with GORM
type UnitOfWork struct {
	db     *gorm.DB
	policy retry.Policy
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, policy retry.Policy) *UnitOfWork {
	return &UnitOfWork{
		db:     db,
		policy: policy,
	}
}

// Execute runs fn inside a database transaction:
// 1. Begins a transaction
// 2. Injects the transaction into context for repositories to use
// 3. Commits on success, rolls back on error or panic
// 4. Retries the whole transaction on deadlocks and lock wait timeouts
//
// A nested Execute joins the outer transaction.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if persistence.TxFromContext(ctx) != nil {
		return fn(ctx)
	}

	executeOnce := func(ctx context.Context) error {
		tx := u.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return fmt.Errorf("failed to begin transaction: %w", tx.Error)
		}
		defer func() {
			if p := recover(); p != nil {
				tx.Rollback()
				panic(p)
			}
		}()

		if err := fn(persistence.ContextWithTx(ctx, tx)); err != nil {
			tx.Rollback()
			return err
		}

		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	}

	return u.policy.Do(ctx, executeOnce)
}

// Compile-time check that UnitOfWork implements shared.UnitOfWork
var _ shared.UnitOfWork = (*UnitOfWork)(nil)
