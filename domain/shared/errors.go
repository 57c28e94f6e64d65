/*
Package shared 领域层共享类型：哨兵错误、分页与查询条件。

领域错误只携带哨兵与业务描述，不含 HTTP 概念；pkg/errors 依据哨兵映射错误码。
子领域的业务哨兵（如 attendee.ErrUserAlreadyAttached）包装通用哨兵，
因此 errors.Is 能同时命中两者。
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrNotSaved 外键等完整性约束导致写入失败
	ErrNotSaved = errors.New("not saved")
)

const maxStackFrames = 10

// DomainError wraps a sentinel with the entity it concerns and the call site
// that produced it. The stack is formatted only when Stack is called.
type DomainError struct {
	Err     error
	Entity  string
	Field   string
	Message string

	pcs []uintptr
}

func (e *DomainError) Error() string { return e.Message }

func (e *DomainError) Unwrap() error { return e.Err }

func (e *DomainError) Stack() []string {
	frames := runtime.CallersFrames(e.pcs)
	out := make([]string, 0, maxStackFrames)
	for len(out) < maxStackFrames {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") && frame.Function != "" {
			out = append(out, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}
	return out
}

// Stacker 供 API 层提取错误发生点
type Stacker interface {
	Stack() []string
}

// newError records the stack starting at the caller of the exported constructor.
func newError(sentinel error, entity, field, message string) *DomainError {
	var pcs [32]uintptr
	n := runtime.Callers(3, pcs[:])
	return &DomainError{
		Err:     sentinel,
		Entity:  entity,
		Field:   field,
		Message: message,
		pcs:     pcs[:n],
	}
}

// NewDomainError 以任意哨兵创建领域错误，子领域用它构造业务错误
func NewDomainError(sentinel error, entity, message string) error {
	return newError(sentinel, entity, "", message)
}

func NewNotFoundError(entity string) error {
	return newError(ErrNotFound, entity, "", entity+" not found")
}

// NewEntityNotFoundError 形如 "event not found: 7"
func NewEntityNotFoundError(entity string, id any) error {
	return newError(ErrNotFound, entity, "", fmt.Sprintf("%s not found: %v", entity, id))
}

func NewConflictError(entity, message string) error {
	return newError(ErrConflict, entity, "", message)
}

// NewValidationError reports an invalid field value.
func NewValidationError(entity, field, reason string) error {
	return newError(ErrInvalidInput, entity, field, reason)
}

func NewBadRequestError(entity, message string) error {
	return newError(ErrInvalidInput, entity, "", message)
}

func NewForbiddenError(entity, reason string) error {
	return newError(ErrForbidden, entity, "", reason)
}
