package friend

import (
	"context"

	"greencity/api/ctxutil"
	"greencity/api/response"
	friendapp "greencity/application/friend"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 6

// Controller Friend controller
type Controller struct {
	friendService *friendapp.ApplicationService
}

func NewController(friendService *friendapp.ApplicationService) *Controller {
	return &Controller{friendService: friendService}
}

// RegisterRoutes identity 解析可选的当前用户，用于计算共同好友
func (c *Controller) RegisterRoutes(router *gin.RouterGroup, identity gin.HandlerFunc) {
	friends := router.Group("/friends", identity)
	{
		friends.GET("/user/:userId", c.GetFriendProfile)
		friends.GET("/:userId", c.GetAllUserFriends)
		friends.GET("/:userId/count", c.CountFriendRelations)
		friends.GET("/:userId/friend-count", c.FriendCount)
		friends.GET("/:userId/search", c.SearchUsers)
		friends.POST("/:userId/request/:friendId", c.SendRequest)
		friends.DELETE("/:userId/reject/:friendId", c.RejectRequest)
		friends.POST("/:userId/accept/:friendId", c.AcceptRequest)
		friends.DELETE("/:userId/unfriend/:friendId", c.Unfriend)
		friends.GET("/:userId/city", c.UsersInSameCity)
		friends.GET("/:userId/mutual-friends", c.MutualFriends)
		friends.GET("/:userId/mutual-city-friends", c.MutualCityFriends)
		friends.GET("/:userId/friend-recommendations", c.Recommendations)
	}
}

// GetAllUserFriends 同城且有共同习惯的好友，按 rating 降序
func (c *Controller) GetAllUserFriends(ctx *gin.Context) {
	userID, err := ctxutil.PathID(ctx, "userId")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	page, err := ctxutil.PageRequest(ctx, defaultPageSize)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	result, err := c.friendService.GetAllUserFriends(ctx.Request.Context(), userID, page)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, result, "Friends retrieved successfully")
}

func (c *Controller) GetFriendProfile(ctx *gin.Context) {
	userID, err := ctxutil.PathID(ctx, "userId")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	viewer, _ := ctxutil.GetCurrentUser(ctx)

	resp, err := c.friendService.GetFriendProfile(ctx.Request.Context(), viewer.ID, userID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, resp, "Friend profile retrieved successfully")
}

func (c *Controller) CountFriendRelations(ctx *gin.Context) {
	c.count(ctx, c.friendService.CountFriendRelations)
}

func (c *Controller) FriendCount(ctx *gin.Context) {
	c.count(ctx, c.friendService.FriendCount)
}

func (c *Controller) SearchUsers(ctx *gin.Context) {
	userID, err := ctxutil.PathID(ctx, "userId")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	page, err := ctxutil.PageRequest(ctx, defaultPageSize)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	result, err := c.friendService.SearchUsers(ctx.Request.Context(), userID, ctx.Query("searchTerm"), page)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, result, "Users retrieved successfully")
}

func (c *Controller) SendRequest(ctx *gin.Context) {
	c.pairAction(ctx, c.friendService.SendRequest, "Friend request sent")
}

func (c *Controller) RejectRequest(ctx *gin.Context) {
	c.pairAction(ctx, c.friendService.RejectRequest, "Friend request rejected")
}

func (c *Controller) AcceptRequest(ctx *gin.Context) {
	c.pairAction(ctx, c.friendService.AcceptRequest, "Friend request accepted")
}

func (c *Controller) Unfriend(ctx *gin.Context) {
	c.pairAction(ctx, c.friendService.Unfriend, "Friend deleted successfully.")
}

func (c *Controller) UsersInSameCity(ctx *gin.Context) {
	c.list(ctx, c.friendService.UsersInSameCity)
}

func (c *Controller) MutualFriends(ctx *gin.Context) {
	c.list(ctx, c.friendService.MutualFriends)
}

func (c *Controller) MutualCityFriends(ctx *gin.Context) {
	c.list(ctx, c.friendService.MutualCityFriends)
}

func (c *Controller) Recommendations(ctx *gin.Context) {
	c.list(ctx, c.friendService.Recommendations)
}

func (c *Controller) count(ctx *gin.Context, fn func(ctx context.Context, userID int64) (int64, error)) {
	userID, err := ctxutil.PathID(ctx, "userId")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	count, err := fn(ctx.Request.Context(), userID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, count, "Count retrieved successfully")
}

func (c *Controller) list(ctx *gin.Context, fn func(ctx context.Context, userID int64) ([]*friendapp.FriendResponse, error)) {
	userID, err := ctxutil.PathID(ctx, "userId")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	users, err := fn(ctx.Request.Context(), userID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, users, "Users retrieved successfully")
}

// pairAction 处理 /{userId}/xxx/{friendId} 形式的好友关系操作，message 同时作为返回体
func (c *Controller) pairAction(ctx *gin.Context, fn func(ctx context.Context, userID, friendID int64) error, message string) {
	userID, err := ctxutil.PathID(ctx, "userId")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	friendID, err := ctxutil.PathID(ctx, "friendId")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	if err := fn(ctx.Request.Context(), userID, friendID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, message, message)
}
