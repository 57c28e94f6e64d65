package notification

import "time"

// CreateRequest 标题与正文由模板渲染，参数按顺序填入 %s
type CreateRequest struct {
	UserID        int64    `json:"userId" binding:"required,min=1"`
	Type          string   `json:"type" binding:"required"`
	ProjectName   string   `json:"projectName" binding:"required"`
	TitleParams   []string `json:"titleParams"`
	MessageParams []string `json:"messageParams"`
}

type NotificationResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	CreatedDate time.Time  `json:"createdDate"`
	ViewedDate  *time.Time `json:"viewedDate"`
	Viewed      bool       `json:"viewed"`
	Type        string     `json:"type"`
	ProjectName string     `json:"projectName"`
	UserID      int64      `json:"userId"`
}
