package notification

import (
	"greencity/api/ctxutil"
	"greencity/api/response"
	notificationapp "greencity/application/notification"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 10

// Controller Notification controller
type Controller struct {
	notificationService *notificationapp.ApplicationService
}

func NewController(notificationService *notificationapp.ApplicationService) *Controller {
	return &Controller{notificationService: notificationService}
}

// RegisterRoutes Create 供其他服务调用，其余接口面向当前用户
func (c *Controller) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	notifications := router.Group("/notifications")
	{
		notifications.POST("", c.Create)
		notifications.GET("/countUnread", auth, c.CountUnread)
		notifications.GET("/unread/latest", auth, c.LatestUnread)
		notifications.GET("/all", auth, c.All)
		notifications.GET("/filter", auth, c.Filter)
		notifications.GET("/:id", c.GetByID)
		notifications.PATCH("/view/:id", auth, c.View)
		notifications.PATCH("/unview/:id", auth, c.Unview)
	}
}

func (c *Controller) Create(ctx *gin.Context) {
	var req notificationapp.CreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.notificationService.Create(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, resp, "Notification created successfully")
}

func (c *Controller) CountUnread(ctx *gin.Context) {
	user, _ := ctxutil.GetCurrentUser(ctx)

	count, err := c.notificationService.CountUnread(ctx.Request.Context(), user.ID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, count, "Unread notifications counted successfully")
}

func (c *Controller) LatestUnread(ctx *gin.Context) {
	user, _ := ctxutil.GetCurrentUser(ctx)

	resp, err := c.notificationService.LatestUnread(ctx.Request.Context(), user.ID, ctx.Query("lang"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, resp, "Notifications retrieved successfully")
}

func (c *Controller) All(ctx *gin.Context) {
	user, _ := ctxutil.GetCurrentUser(ctx)
	page, err := ctxutil.PageRequest(ctx, defaultPageSize)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	result, err := c.notificationService.All(ctx.Request.Context(), user.ID, ctx.Query("lang"), page)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, result, "Notifications retrieved successfully")
}

// Filter criteriaFilter 形如 "type:EVENT_COMMENT,viewed:false"，user_id 总是替换为当前用户
func (c *Controller) Filter(ctx *gin.Context) {
	user, _ := ctxutil.GetCurrentUser(ctx)
	page, err := ctxutil.PageRequest(ctx, defaultPageSize)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	result, err := c.notificationService.Filter(ctx.Request.Context(), user.ID, ctx.Query("criteriaFilter"), ctx.Query("lang"), page)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, result, "Notifications retrieved successfully")
}

func (c *Controller) GetByID(ctx *gin.Context) {
	id, err := ctxutil.PathID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	resp, err := c.notificationService.GetByID(ctx.Request.Context(), id, ctx.Query("lang"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, resp, "Notification retrieved successfully")
}

func (c *Controller) View(ctx *gin.Context) {
	id, err := ctxutil.PathID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	user, _ := ctxutil.GetCurrentUser(ctx)

	if err := c.notificationService.View(ctx.Request.Context(), id, user.ID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "Notification marked as viewed")
}

func (c *Controller) Unview(ctx *gin.Context) {
	id, err := ctxutil.PathID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	user, _ := ctxutil.GetCurrentUser(ctx)

	if err := c.notificationService.Unview(ctx.Request.Context(), id, user.ID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "Notification marked as unviewed")
}
