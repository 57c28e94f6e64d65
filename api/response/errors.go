package response

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"

	"greencity/domain/shared"
	"greencity/pkg/errors"
	"greencity/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const internalMessage = "internal server error"

var statusByCode = map[errors.ErrorCode]int{
	errors.CodeBadRequest:     http.StatusBadRequest,
	errors.CodeValidation:     http.StatusBadRequest,
	errors.CodeNotSaved:       http.StatusBadRequest,
	errors.CodeUnauthorized:   http.StatusUnauthorized,
	errors.CodeForbidden:      http.StatusForbidden,
	errors.CodeNotFound:       http.StatusNotFound,
	errors.CodeConflict:       http.StatusConflict,
	errors.CodeTooManyRequest: http.StatusTooManyRequests,
	errors.CodeInternal:       http.StatusInternalServerError,

	errors.CodeUserAlreadyAttached:   http.StatusBadRequest,
	errors.CodeStatusCannotBeUpdated: http.StatusBadRequest,
	errors.CodeAlreadySubscribed:     http.StatusBadRequest,
	errors.CodeNoPermission:          http.StatusBadRequest,
	errors.CodeFriendRequestPending:  http.StatusConflict,
}

// StatusOf 未登记的错误码一律按 500 处理
func StatusOf(code errors.ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func failure(c *gin.Context, status int, code errors.ErrorCode, message string) {
	c.JSON(status, &Response{
		Success:   false,
		Error:     string(code),
		Code:      status,
		Message:   message,
		RequestID: RequestID(c),
	})
}

// HandleValidationError 请求体绑定或校验失败，返回 400 VALIDATION_ERROR
func HandleValidationError(c *gin.Context, err error) {
	message := validationMessage(err)
	requestLogger(c).Warn("request validation failed",
		zap.String("route", c.FullPath()),
		zap.String("reason", message))
	failure(c, http.StatusBadRequest, errors.CodeValidation, message)
}

// validationMessage turns validator output into "title: required; dates: min" style text.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !stdErrors.As(err, &fieldErrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), rule))
	}
	return strings.Join(parts, "; ")
}

// HandleAppError 把领域或应用错误写成错误信封。
// 5xx 记 error 日志并隐藏真实消息，4xx 只记 warn。
func HandleAppError(c *gin.Context, err error) {
	appErr := errors.FromDomainError(err)
	status := StatusOf(appErr.Code)

	fields := []zap.Field{
		zap.String("route", c.FullPath()),
		zap.String("method", c.Request.Method),
		zap.String("error_code", string(appErr.Code)),
		zap.Int("status", status),
	}
	var stacker shared.Stacker
	if stdErrors.As(err, &stacker) {
		fields = append(fields, zap.Strings("origin", stacker.Stack()))
	}
	if appErr.Err != nil {
		fields = append(fields, zap.Error(appErr.Err))
	}

	log := requestLogger(c)
	if status >= http.StatusInternalServerError {
		log.Error(appErr.Message, append(fields, zap.StackSkip("stack", 1))...)
		failure(c, status, appErr.Code, internalMessage)
		return
	}
	log.Warn(appErr.Message, fields...)
	failure(c, status, appErr.Code, appErr.Message)
}

func requestLogger(c *gin.Context) *zap.Logger {
	if id := RequestID(c); id != "" {
		return logger.WithRequestID(id)
	}
	return logger.FromContext(c.Request.Context())
}
