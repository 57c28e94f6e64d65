// Package response 统一 JSON 信封；HTTP 状态码映射只存在于这一层
package response

import (
	"net/http"

	"greencity/domain/shared"

	"github.com/gin-gonic/gin"
)

// RequestIDKey 是 gin context 中保存请求 ID 的键
const RequestIDKey = "request_id"

// Response is the envelope of every non-paginated reply.
//
//	{"success":true,"data":{...},"code":200,"message":"...","request_id":"..."}
//	{"success":false,"error":"NOT_FOUND","code":404,"message":"...","request_id":"..."}
type Response struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type PaginatedResponse struct {
	Success    bool       `json:"success"`
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
	Message    string     `json:"message"`
	Code       int        `json:"code"`
	RequestID  string     `json:"request_id,omitempty"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// RequestID 返回 RequestID 中间件写入的请求 ID，未设置时为空串
func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

func success(c *gin.Context, status int, data any, message string) {
	c.JSON(status, &Response{
		Success:   true,
		Data:      data,
		Code:      status,
		Message:   message,
		RequestID: RequestID(c),
	})
}

func HandleSuccess(c *gin.Context, data any, message string) {
	success(c, http.StatusOK, data, message)
}

func HandleCreated(c *gin.Context, data any, message string) {
	success(c, http.StatusCreated, data, message)
}

func HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// HandlePage 以分页信封返回一页数据
func HandlePage[T any](c *gin.Context, page shared.Page[T], message string) {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, &PaginatedResponse{
		Success: true,
		Data:    items,
		Pagination: Pagination{
			Page:       page.CurrentPage,
			PageSize:   page.PageSize,
			TotalItems: page.TotalElements,
			TotalPages: page.TotalPages(),
		},
		Message:   message,
		Code:      http.StatusOK,
		RequestID: RequestID(c),
	})
}
