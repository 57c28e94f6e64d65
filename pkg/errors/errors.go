/*
Package errors 应用层错误：错误码 + 用户可见消息 + 内部错误链。

领域层只暴露哨兵错误，FromDomainError 负责把哨兵映射为错误码；
HTTP 状态码映射放在 api/response。
*/
package errors

import (
	"errors"
	"fmt"

	"greencity/domain/attendee"
	"greencity/domain/event"
	"greencity/domain/friend"
	"greencity/domain/shared"
	"greencity/domain/subscription"
)

// ErrorCode 错误码
type ErrorCode string

const (
	// 通用错误码
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"
	CodeNotSaved       ErrorCode = "NOT_SAVED"

	// 业务错误码
	CodeUserAlreadyAttached   ErrorCode = "USER_ALREADY_ATTACHED"
	CodeStatusCannotBeUpdated ErrorCode = "STATUS_CANNOT_BE_UPDATED"
	CodeAlreadySubscribed     ErrorCode = "ALREADY_SUBSCRIBED"
	CodeNoPermission          ErrorCode = "NO_PERMISSION"
	CodeFriendRequestPending  ErrorCode = "FRIEND_REQUEST_PENDING"
)

// AppError 应用错误
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// BadRequest 用于 API 层自身的参数解析错误
func BadRequest(message string) *AppError { return New(CodeBadRequest, message) }

func Unauthorized(message string) *AppError { return New(CodeUnauthorized, message) }

func TooManyRequests(message string) *AppError { return New(CodeTooManyRequest, message) }

// Is reports whether err carries an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// sentinelCodes 按顺序匹配：业务哨兵在前，通用哨兵在后。
// 业务哨兵包裹了通用哨兵，顺序颠倒会丢失业务错误码。
var sentinelCodes = []struct {
	sentinel error
	code     ErrorCode
}{
	{attendee.ErrUserAlreadyAttached, CodeUserAlreadyAttached},
	{attendee.ErrStatusDowngrade, CodeStatusCannotBeUpdated},
	{subscription.ErrAlreadySubscribed, CodeAlreadySubscribed},
	{event.ErrNoPermission, CodeNoPermission},
	{friend.ErrRequestAlreadyPending, CodeFriendRequestPending},

	{shared.ErrNotFound, CodeNotFound},
	{shared.ErrInvalidInput, CodeBadRequest},
	{shared.ErrConflict, CodeConflict},
	{shared.ErrUnauthorized, CodeUnauthorized},
	{shared.ErrForbidden, CodeForbidden},
	{shared.ErrNotSaved, CodeNotSaved},
}

// FromDomainError 将任意错误映射为 AppError。
// 已是 AppError 的原样返回；无法识别的错误映射为 INTERNAL_ERROR。
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	for _, sc := range sentinelCodes {
		if errors.Is(err, sc.sentinel) {
			return Wrap(err, sc.code, err.Error())
		}
	}
	return Wrap(err, CodeInternal, err.Error())
}
