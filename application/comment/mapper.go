package comment

import (
	"greencity/application/email"
	"greencity/domain/comment"
	"greencity/domain/event"
	"greencity/domain/user"
)

func toCommentResponse(c *comment.EventComment, users map[int64]*user.User, replies int64) *CommentResponse {
	resp := &CommentResponse{
		ID:              c.ID(),
		EventID:         c.EventID(),
		ParentCommentID: c.ParentID(),
		Text:            c.Text(),
		Status:          string(c.Status()),
		CreatedDate:     c.CreatedDate(),
		ModifiedDate:    c.ModifiedDate(),
		Author:          CommentAuthor{ID: c.AuthorID()},
		MentionedUsers:  make([]MentionedUser, 0, len(c.MentionedUserIDs())),
		RepliesCount:    replies,
	}
	if author := users[c.AuthorID()]; author != nil {
		resp.Author.Name = author.Name()
		resp.Author.ProfilePicturePath = author.ProfilePicturePath()
	}
	for _, id := range c.MentionedUserIDs() {
		m := MentionedUser{ID: id}
		if u := users[id]; u != nil {
			m.Name = u.Name()
		}
		resp.MentionedUsers = append(resp.MentionedUsers, m)
	}
	return resp
}

func toCommentMessage(receiver *user.User, e *event.Event, c *comment.EventComment, author *user.User) email.EventCommentMessage {
	return email.EventCommentMessage{
		ReceiverName:           receiver.Name(),
		ReceiverEmail:          receiver.Email(),
		EventID:                e.ID(),
		EventName:              e.Title(),
		CommentAuthorName:      author.Name(),
		CommentCreatedDateTime: c.CreatedDate(),
		CommentText:            c.Text(),
		CommentID:              c.ID(),
	}
}
