package event

import (
	"io"
	"mime/multipart"
	"strings"

	"greencity/api/ctxutil"
	"greencity/api/response"
	eventapp "greencity/application/event"
	"greencity/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	addEventPart    = "addEventDtoRequest"
	updateEventPart = "updateEventDTO"
	imagesPart      = "images"
	defaultPageSize = 20
)

// Controller Event controller
type Controller struct {
	eventService *eventapp.ApplicationService
}

func NewController(eventService *eventapp.ApplicationService) *Controller {
	return &Controller{eventService: eventService}
}

// RegisterRoutes 写操作需要登录
func (c *Controller) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	events := router.Group("/events")
	{
		events.GET("", c.Search)
		events.GET("/:eventId", c.Get)
		events.POST("", auth, c.Save)
		events.PUT("/update", auth, c.Update)
		events.DELETE("/:eventId", auth, c.Delete)
	}
}

// Save 创建活动，支持 JSON 或 multipart(addEventDtoRequest + images)
func (c *Controller) Save(ctx *gin.Context) {
	user, _ := ctxutil.GetCurrentUser(ctx)

	var req eventapp.AddEventRequest
	uploads, closeUploads, err := bindEventRequest(ctx, addEventPart, &req)
	if err != nil {
		response.HandleValidationError(ctx, err)
		return
	}
	defer closeUploads()

	resp, err := c.eventService.Save(ctx.Request.Context(), user.ID, req, uploads)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, resp, "Event created successfully")
}

func (c *Controller) Update(ctx *gin.Context) {
	user, _ := ctxutil.GetCurrentUser(ctx)

	var req eventapp.UpdateEventRequest
	uploads, closeUploads, err := bindEventRequest(ctx, updateEventPart, &req)
	if err != nil {
		response.HandleValidationError(ctx, err)
		return
	}
	defer closeUploads()

	resp, err := c.eventService.Update(ctx.Request.Context(), user.ID, req, uploads)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, resp, "Event updated successfully")
}

func (c *Controller) Delete(ctx *gin.Context) {
	user, _ := ctxutil.GetCurrentUser(ctx)
	eventID, err := ctxutil.PathID(ctx, "eventId")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	if err := c.eventService.Delete(ctx.Request.Context(), user.ID, eventID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "Event deleted successfully")
}

func (c *Controller) Get(ctx *gin.Context) {
	eventID, err := ctxutil.PathID(ctx, "eventId")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	resp, err := c.eventService.Get(ctx.Request.Context(), eventID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, resp, "Event retrieved successfully")
}

// Search 按标题模糊查询，最新的在前
func (c *Controller) Search(ctx *gin.Context) {
	page, err := ctxutil.PageRequest(ctx, defaultPageSize)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	result, err := c.eventService.Search(ctx.Request.Context(), ctx.Query("title"), page)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, result, "Events retrieved successfully")
}

// bindEventRequest 解析请求体。multipart 时 JSON 位于 part 字段(文本或文件)，图片位于 images
func bindEventRequest(ctx *gin.Context, part string, obj interface{}) ([]eventapp.ImageUpload, func(), error) {
	noop := func() {}
	if !strings.HasPrefix(ctx.ContentType(), binding.MIMEMultipartPOSTForm) {
		return nil, noop, ctx.ShouldBindJSON(obj)
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return nil, noop, err
	}
	body, err := partBody(form, part)
	if err != nil {
		return nil, noop, err
	}
	if err := binding.JSON.BindBody(body, obj); err != nil {
		return nil, noop, err
	}

	var (
		uploads []eventapp.ImageUpload
		files   []multipart.File
	)
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}
	for _, header := range form.File[imagesPart] {
		f, err := header.Open()
		if err != nil {
			closeAll()
			return nil, noop, err
		}
		files = append(files, f)
		uploads = append(uploads, eventapp.ImageUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Content:     f,
		})
	}
	return uploads, closeAll, nil
}

func partBody(form *multipart.Form, part string) ([]byte, error) {
	if values := form.Value[part]; len(values) > 0 {
		return []byte(values[0]), nil
	}
	headers := form.File[part]
	if len(headers) == 0 {
		return nil, errors.BadRequest(part + " part is required")
	}
	f, err := headers[0].Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
