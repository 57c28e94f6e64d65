package comment

import "time"

// AddCommentRequest 新评论或回复
type AddCommentRequest struct {
	Text            string `json:"text" binding:"required,max=8000"`
	ParentCommentID *int64 `json:"parentCommentId" binding:"omitempty,min=1"`
}

type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required,max=8000"`
}

type CommentAuthor struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	ProfilePicturePath string `json:"profilePicturePath"`
}

type MentionedUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CommentResponse 评论返回模型
type CommentResponse struct {
	ID              int64           `json:"id"`
	EventID         int64           `json:"eventId"`
	ParentCommentID *int64          `json:"parentCommentId"`
	Text            string          `json:"text"`
	Status          string          `json:"status"`
	CreatedDate     time.Time       `json:"createdDate"`
	ModifiedDate    time.Time       `json:"modifiedDate"`
	Author          CommentAuthor   `json:"author"`
	MentionedUsers  []MentionedUser `json:"mentionedUsers"`
	RepliesCount    int64           `json:"repliesCount"`
}
