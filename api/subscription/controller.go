package subscription

import (
	"greencity/api/response"
	subscriptionapp "greencity/application/subscription"
	"greencity/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller News subscription controller
type Controller struct {
	subscriptionService *subscriptionapp.ApplicationService
}

func NewController(subscriptionService *subscriptionapp.ApplicationService) *Controller {
	return &Controller{subscriptionService: subscriptionService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	subscriptions := router.Group("/newsSubscriptions")
	{
		subscriptions.GET("", c.List)
		subscriptions.POST("/subscribe", c.Subscribe)
		subscriptions.POST("/unsubscribe", c.Unsubscribe)
		subscriptions.GET("/isSubscribed", c.IsSubscribed)
		subscriptions.GET("/token/:token", c.FindByToken)
	}
}

func (c *Controller) List(ctx *gin.Context) {
	resp, err := c.subscriptionService.List(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, resp, "Subscriptions retrieved successfully")
}

func (c *Controller) Subscribe(ctx *gin.Context) {
	var req subscriptionapp.SubscribeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.subscriptionService.Subscribe(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, resp, "Subscribed successfully")
}

// Unsubscribe 返回被删除的订阅
func (c *Controller) Unsubscribe(ctx *gin.Context) {
	token := ctx.Query("token")
	if token == "" {
		response.HandleAppError(ctx, errors.BadRequest("token is required"))
		return
	}

	resp, err := c.subscriptionService.Unsubscribe(ctx.Request.Context(), token)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, resp, "Unsubscribed successfully")
}

func (c *Controller) IsSubscribed(ctx *gin.Context) {
	subscribed, err := c.subscriptionService.IsSubscribed(ctx.Request.Context(), ctx.Query("email"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, subscribed, "Subscription status retrieved successfully")
}

func (c *Controller) FindByToken(ctx *gin.Context) {
	resp, err := c.subscriptionService.FindByToken(ctx.Request.Context(), ctx.Param("token"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, resp, "Subscription retrieved successfully")
}
