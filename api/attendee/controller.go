package attendee

import (
	"greencity/api/ctxutil"
	"greencity/api/response"
	attendeeapp "greencity/application/attendee"

	"github.com/gin-gonic/gin"
)

// Controller Event attendee controller
type Controller struct {
	attendeeService *attendeeapp.ApplicationService
}

func NewController(attendeeService *attendeeapp.ApplicationService) *Controller {
	return &Controller{attendeeService: attendeeService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	attendees := router.Group("/event-attendees")
	{
		attendees.POST("", c.Create)
		attendees.GET("/by-event/:eventId", c.ListByEvent)
		attendees.GET("/by-user/:userId", c.ListByUser)
		attendees.DELETE("/by-event/:eventId", c.DeleteByEvent)
		attendees.PATCH("/:id", c.Update)
		attendees.DELETE("/:id", c.Delete)
	}
}

func (c *Controller) Create(ctx *gin.Context) {
	var req attendeeapp.CreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.attendeeService.Create(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, resp, "Attendee created successfully")
}

func (c *Controller) ListByEvent(ctx *gin.Context) {
	eventID, err := ctxutil.PathID(ctx, "eventId")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	resp, err := c.attendeeService.ListByEvent(ctx.Request.Context(), eventID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, resp, "Attendees retrieved successfully")
}

func (c *Controller) ListByUser(ctx *gin.Context) {
	userID, err := ctxutil.PathID(ctx, "userId")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	resp, err := c.attendeeService.ListByUser(ctx.Request.Context(), userID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, resp, "Attendees retrieved successfully")
}

// Update 状态只能从 PLANNED 前进到 ATTENDED
func (c *Controller) Update(ctx *gin.Context) {
	id, err := ctxutil.PathID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	var req attendeeapp.UpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.attendeeService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, resp, "Attendee updated successfully")
}

func (c *Controller) Delete(ctx *gin.Context) {
	id, err := ctxutil.PathID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	if err := c.attendeeService.Delete(ctx.Request.Context(), id); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

func (c *Controller) DeleteByEvent(ctx *gin.Context) {
	eventID, err := ctxutil.PathID(ctx, "eventId")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	if err := c.attendeeService.DeleteByEvent(ctx.Request.Context(), eventID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}
