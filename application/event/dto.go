package event

import (
	"io"
	"time"
)

// Coordinates 线下活动坐标，请求与返回共用
type Coordinates struct {
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
}

// DateLocationRequest 活动的一个时间段，线下坐标与线上链接至少其一
type DateLocationRequest struct {
	StartDate   time.Time    `json:"startDate" binding:"required"`
	FinishDate  time.Time    `json:"finishDate" binding:"required"`
	Coordinates *Coordinates `json:"coordinates"`
	OnlineLink  string       `json:"onlineLink"`
}

// AddEventRequest 创建活动入参
type AddEventRequest struct {
	Title          string                `json:"title" binding:"required,max=70"`
	Description    string                `json:"description" binding:"required,min=20,max=63206"`
	Open           bool                  `json:"open"`
	Tags           []string              `json:"tags" binding:"required,min=1,dive,notblank"`
	DatesLocations []DateLocationRequest `json:"datesLocations" binding:"required,min=1,dive"`
	ImagePaths     []string              `json:"imagePaths"`
}

// UpdateEventRequest 更新活动入参。图片 = titleImage + additionalImages + 上传 - imagesToDelete
type UpdateEventRequest struct {
	ID               int64                 `json:"id" binding:"required,min=1"`
	Title            string                `json:"title" binding:"required,max=70"`
	Description      string                `json:"description" binding:"required,min=20,max=63206"`
	Open             bool                  `json:"open"`
	Tags             []string              `json:"tags" binding:"required,min=1,dive,notblank"`
	DatesLocations   []DateLocationRequest `json:"datesLocations" binding:"required,min=1,dive"`
	TitleImage       string                `json:"titleImage"`
	AdditionalImages []string              `json:"additionalImages"`
	ImagesToDelete   []string              `json:"imagesToDelete"`
}

// ImageUpload 一个待存储的上传文件，Content 由调用方负责关闭
type ImageUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

type AuthorResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type DateLocationResponse struct {
	StartDate   time.Time    `json:"startDate"`
	FinishDate  time.Time    `json:"finishDate"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	OnlineLink  string       `json:"onlineLink,omitempty"`
}

// EventResponse 活动返回模型
type EventResponse struct {
	ID               int64                  `json:"id"`
	Title            string                 `json:"title"`
	Description      string                 `json:"description"`
	Open             bool                   `json:"open"`
	Author           AuthorResponse         `json:"organizer"`
	DatesLocations   []DateLocationResponse `json:"datesLocations"`
	Tags             []string               `json:"tags"`
	TitleImage       string                 `json:"titleImage"`
	AdditionalImages []string               `json:"additionalImages"`
	CreatedAt        time.Time              `json:"creationDate"`
}
