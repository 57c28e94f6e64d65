package mysql

import (
	"context"
	"errors"
	"strings"

	"greencity/domain/shared"
	"greencity/infrastructure/persistence"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// baseRepository carries the connection and resolves the transaction
// injected by UnitOfWork.Execute.
type baseRepository struct {
	db *gorm.DB
}

func (r baseRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// inTx runs fn in the ambient transaction, or in a new one when there is none.
func (r baseRepository) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return fn(tx)
	}
	return r.db.WithContext(ctx).Transaction(fn)
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}

func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var mysqlErr *mysqlDriver.MySQLError
	return errors.As(err, &mysqlErr) && (mysqlErr.Number == 1451 || mysqlErr.Number == 1452)
}

// notSaved wraps integrity violations so they surface as NOT_SAVED.
func notSaved(entity string, err error) error {
	if isForeignKeyError(err) {
		return shared.NewDomainError(shared.ErrNotSaved, entity, entity+" not saved: referenced row does not exist")
	}
	return err
}

func pageScope(page shared.PageRequest) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(page.Offset()).Limit(page.Size)
	}
}

// orderScope applies the requested sort, mapping properties through columns.
// Properties missing from columns are ignored; with no usable order the
// fallback is applied.
func orderScope(sort []shared.SortOrder, columns map[string]string, fallback string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		applied := false
		for _, o := range sort {
			col, ok := columns[o.Property]
			if !ok {
				continue
			}
			if o.Ascending {
				db = db.Order(col + " ASC")
			} else {
				db = db.Order(col + " DESC")
			}
			applied = true
		}
		if !applied && fallback != "" {
			db = db.Order(fallback)
		}
		return db
	}
}
