package attendee

// CreateRequest 报名入参
type CreateRequest struct {
	EventID int64 `json:"eventId" binding:"required,min=1"`
	UserID  int64 `json:"userId" binding:"required,min=1"`
}

// UpdateRequest 状态只能前进，mark 仅在 ATTENDED 时保留
type UpdateRequest struct {
	Status string  `json:"status" binding:"required"`
	Mark   *string `json:"mark"`
}

type AttendeeResponse struct {
	ID                     int64   `json:"id"`
	EventID                int64   `json:"eventId"`
	EventTitle             string  `json:"eventTitle"`
	UserID                 int64   `json:"userId"`
	UserName               string  `json:"userName"`
	UserProfilePicturePath string  `json:"userProfilePicturePath"`
	Status                 string  `json:"status"`
	Mark                   *string `json:"mark"`
}
