package specification

import (
	"errors"
	"fmt"

	"greencity/domain/notification"
	"greencity/domain/shared"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrUnsupportedSpecification is returned for a specification the translator
// has no SQL form for. Silently dropping it would widen the query.
var ErrUnsupportedSpecification = errors.New("unsupported specification")

// Translator converts domain specifications to GORM queries
type Translator[T any] interface {
	Translate(spec shared.Specification[T]) (func(*gorm.DB) *gorm.DB, error)
}

// ConcreteFunc maps one leaf specification of a domain to a clause expression.
type ConcreteFunc[T any] func(spec shared.Specification[T]) (clause.Expression, bool)

// GormTranslator implements Translator for GORM. Composite specifications
// become clause.And/Or/Not; leaves are delegated to the domain's ConcreteFunc.
type GormTranslator[T any] struct {
	concrete ConcreteFunc[T]
}

func NewGormTranslator[T any](concrete ConcreteFunc[T]) *GormTranslator[T] {
	return &GormTranslator[T]{concrete: concrete}
}

// Translate returns a scope adding the specification as a WHERE condition.
// A nil specification matches everything.
func (t *GormTranslator[T]) Translate(spec shared.Specification[T]) (func(*gorm.DB) *gorm.DB, error) {
	if spec == nil {
		return func(db *gorm.DB) *gorm.DB { return db }, nil
	}
	expr, err := t.Expression(spec)
	if err != nil {
		return nil, err
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Clauses(clause.Where{Exprs: []clause.Expression{expr}})
	}, nil
}

// Expression translates spec into a clause expression tree.
func (t *GormTranslator[T]) Expression(spec shared.Specification[T]) (clause.Expression, error) {
	switch s := spec.(type) {
	case shared.AndSpecification[T]:
		left, right, err := t.pair(s.Left, s.Right)
		if err != nil {
			return nil, err
		}
		return clause.And(left, right), nil
	case shared.OrSpecification[T]:
		left, right, err := t.pair(s.Left, s.Right)
		if err != nil {
			return nil, err
		}
		return clause.Or(left, right), nil
	case shared.NotSpecification[T]:
		inner, err := t.Expression(s.Spec)
		if err != nil {
			return nil, err
		}
		return clause.Not(inner), nil
	}

	if expr, ok := t.concrete(spec); ok {
		return expr, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedSpecification, spec)
}

func (t *GormTranslator[T]) pair(l, r shared.Specification[T]) (clause.Expression, clause.Expression, error) {
	left, err := t.Expression(l)
	if err != nil {
		return nil, nil, err
	}
	right, err := t.Expression(r)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// NewNotificationTranslator translates notification filter specifications
// to conditions on the notifications table.
func NewNotificationTranslator() *GormTranslator[*notification.Notification] {
	return NewGormTranslator(notificationExpression)
}

func notificationExpression(spec shared.Specification[*notification.Notification]) (clause.Expression, bool) {
	switch s := spec.(type) {
	case notification.ByUserIDSpecification:
		return clause.Eq{Column: "user_id", Value: s.UserID}, true
	case notification.ByTypeSpecification:
		return clause.Eq{Column: "type", Value: string(s.Type)}, true
	case notification.ByProjectNameSpecification:
		return clause.Eq{Column: "project_name", Value: string(s.ProjectName)}, true
	case notification.ByViewedSpecification:
		return clause.Eq{Column: "viewed", Value: s.Viewed}, true
	}
	return nil, false
}
