package middleware

import (
	"fmt"

	"greencity/api/response"
	"greencity/pkg/errors"
	"greencity/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery 捕获 handler 中的 panic，记录堆栈后返回 500 INTERNAL_ERROR
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			logger.FromContext(c.Request.Context()).Error("handler panicked",
				zap.String("route", c.FullPath()),
				zap.Any("panic", recovered),
				zap.Stack("stack"))

			if c.Writer.Written() {
				c.Abort()
				return
			}
			response.HandleAppError(c, errors.Wrap(fmt.Errorf("panic: %v", recovered), errors.CodeInternal, "internal server error"))
			c.Abort()
		}()

		c.Next()
	}
}
