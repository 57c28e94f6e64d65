// Package ctxutil 存取当前用户并解析通用路径与分页参数
package ctxutil

import (
	"math"
	"strconv"
	"strings"

	"greencity/domain/shared"
	"greencity/pkg/errors"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "current_user"

// CurrentUser 由 Auth 中间件从 bearer token 中解析
type CurrentUser struct {
	ID    int64
	Email string
	Name  string
	Role  string
}

func SetCurrentUser(c *gin.Context, u CurrentUser) {
	c.Set(currentUserKey, u)
}

func GetCurrentUser(c *gin.Context) (CurrentUser, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return CurrentUser{}, false
	}
	u, ok := v.(CurrentUser)
	return u, ok
}

// PathID 解析正整数路径参数
func PathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.BadRequest(name + " must be a positive integer")
	}
	return id, nil
}

// PageRequest 解析 page、size、sort 查询参数，sort 形如 "createdDate,desc"，可重复
func PageRequest(c *gin.Context, defaultSize int) (shared.PageRequest, error) {
	page, err := intQuery(c, "page", 0)
	if err != nil {
		return shared.PageRequest{}, err
	}
	size, err := intQuery(c, "size", defaultSize)
	if err != nil {
		return shared.PageRequest{}, err
	}
	if page < 0 || size < 1 || size > shared.MaxPageSize {
		return shared.PageRequest{}, errors.BadRequest("page must be >= 0 and size between 1 and 100")
	}
	if page > math.MaxInt32/size {
		return shared.PageRequest{}, errors.BadRequest("page is too large")
	}

	req := shared.NewPageRequest(page, size)
	for _, s := range c.QueryArray("sort") {
		parts := strings.SplitN(s, ",", 2)
		order := shared.SortOrder{Property: strings.TrimSpace(parts[0]), Ascending: true}
		if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[1]), "desc") {
			order.Ascending = false
		}
		if order.Property != "" {
			req.Sort = append(req.Sort, order)
		}
	}
	return req, nil
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.BadRequest(key + " must be an integer")
	}
	return v, nil
}
