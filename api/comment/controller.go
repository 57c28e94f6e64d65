package comment

import (
	"greencity/api/ctxutil"
	"greencity/api/response"
	commentapp "greencity/application/comment"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 10

// Controller Event comment controller
type Controller struct {
	commentService *commentapp.ApplicationService
}

func NewController(commentService *commentapp.ApplicationService) *Controller {
	return &Controller{commentService: commentService}
}

// RegisterRoutes 评论挂在活动下，写操作需要登录
func (c *Controller) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	comments := router.Group("/events/:eventId/comments")
	{
		comments.POST("", auth, c.Save)
		comments.GET("", c.GetAll)
		comments.GET("/count", c.Count)
		comments.GET("/:commentId", c.GetByID)
		comments.PATCH("/:commentId", auth, c.Update)
		comments.DELETE("/:commentId", auth, c.Delete)
		comments.POST("/:commentId/reply", auth, c.Reply)
		comments.GET("/:commentId/replies", c.Replies)
		comments.GET("/:commentId/replies/count", c.RepliesCount)
	}
}

func (c *Controller) Save(ctx *gin.Context) {
	user, _ := ctxutil.GetCurrentUser(ctx)
	eventID, err := ctxutil.PathID(ctx, "eventId")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	var req commentapp.AddCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.commentService.Save(ctx.Request.Context(), eventID, user.ID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, resp, "Comment created successfully")
}

func (c *Controller) Reply(ctx *gin.Context) {
	user, _ := ctxutil.GetCurrentUser(ctx)
	eventID, commentID, err := ids(ctx)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	var req commentapp.AddCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.commentService.Reply(ctx.Request.Context(), eventID, commentID, user.ID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, resp, "Reply created successfully")
}

// Count 只统计未删除的顶层评论
func (c *Controller) Count(ctx *gin.Context) {
	eventID, err := ctxutil.PathID(ctx, "eventId")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	count, err := c.commentService.Count(ctx.Request.Context(), eventID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, count, "Comments counted successfully")
}

func (c *Controller) GetAll(ctx *gin.Context) {
	eventID, err := ctxutil.PathID(ctx, "eventId")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	page, err := ctxutil.PageRequest(ctx, defaultPageSize)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	result, err := c.commentService.GetAll(ctx.Request.Context(), eventID, page)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, result, "Comments retrieved successfully")
}

func (c *Controller) GetByID(ctx *gin.Context) {
	eventID, commentID, err := ids(ctx)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	resp, err := c.commentService.GetByID(ctx.Request.Context(), eventID, commentID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, resp, "Comment retrieved successfully")
}

func (c *Controller) Update(ctx *gin.Context) {
	user, _ := ctxutil.GetCurrentUser(ctx)
	eventID, commentID, err := ids(ctx)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	var req commentapp.UpdateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.commentService.Update(ctx.Request.Context(), eventID, commentID, user.ID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, resp, "Comment updated successfully")
}

func (c *Controller) Delete(ctx *gin.Context) {
	user, _ := ctxutil.GetCurrentUser(ctx)
	eventID, commentID, err := ids(ctx)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	if err := c.commentService.Delete(ctx.Request.Context(), eventID, commentID, user.ID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, "Comment deleted successfully", "Comment deleted successfully")
}

func (c *Controller) RepliesCount(ctx *gin.Context) {
	eventID, commentID, err := ids(ctx)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	count, err := c.commentService.RepliesCount(ctx.Request.Context(), eventID, commentID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, count, "Replies counted successfully")
}

func (c *Controller) Replies(ctx *gin.Context) {
	eventID, commentID, err := ids(ctx)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	page, err := ctxutil.PageRequest(ctx, defaultPageSize)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	result, err := c.commentService.Replies(ctx.Request.Context(), eventID, commentID, page)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, result, "Replies retrieved successfully")
}

func ids(ctx *gin.Context) (eventID, commentID int64, err error) {
	if eventID, err = ctxutil.PathID(ctx, "eventId"); err != nil {
		return 0, 0, err
	}
	if commentID, err = ctxutil.PathID(ctx, "commentId"); err != nil {
		return 0, 0, err
	}
	return eventID, commentID, nil
}
