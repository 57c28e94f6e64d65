package po

import (
	"time"

	"greencity/domain/comment"
)

type EventCommentPO struct {
	ID              int64                   `gorm:"primaryKey;autoIncrement"`
	EventID         int64                   `gorm:"not null;index"`
	UserID          int64                   `gorm:"not null;index"`
	ParentCommentID *int64                  `gorm:"index"`
	Text            string                  `gorm:"type:text;not null"`
	Status          string                  `gorm:"size:16;not null"`
	CreatedDate     time.Time               `gorm:"not null"`
	ModifiedDate    time.Time               `gorm:"not null"`
	Mentions        []EventCommentMentionPO `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
}

func (EventCommentPO) TableName() string {
	return "event_comments"
}

// EventCommentMentionPO links a comment to a user mentioned in its text.
type EventCommentMentionPO struct {
	CommentID int64 `gorm:"primaryKey"`
	UserID    int64 `gorm:"primaryKey"`
}

func (EventCommentMentionPO) TableName() string {
	return "event_comment_mentions"
}

func FromCommentDomain(c *comment.EventComment) *EventCommentPO {
	p := &EventCommentPO{
		ID:              c.ID(),
		EventID:         c.EventID(),
		UserID:          c.AuthorID(),
		ParentCommentID: c.ParentID(),
		Text:            c.Text(),
		Status:          string(c.Status()),
		CreatedDate:     c.CreatedDate(),
		ModifiedDate:    c.ModifiedDate(),
	}
	for _, id := range c.MentionedUserIDs() {
		p.Mentions = append(p.Mentions, EventCommentMentionPO{CommentID: c.ID(), UserID: id})
	}
	return p
}

func (p *EventCommentPO) ToDomain() *comment.EventComment {
	mentioned := make([]int64, 0, len(p.Mentions))
	for _, m := range p.Mentions {
		mentioned = append(mentioned, m.UserID)
	}
	return comment.RebuildFromDTO(comment.ReconstructionDTO{
		ID:               p.ID,
		EventID:          p.EventID,
		AuthorID:         p.UserID,
		ParentID:         p.ParentCommentID,
		Text:             p.Text,
		Status:           p.Status,
		CreatedDate:      p.CreatedDate,
		ModifiedDate:     p.ModifiedDate,
		MentionedUserIDs: mentioned,
	})
}

func CommentsToDomain(pos []EventCommentPO) []*comment.EventComment {
	out := make([]*comment.EventComment, len(pos))
	for i := range pos {
		out[i] = pos[i].ToDomain()
	}
	return out
}
