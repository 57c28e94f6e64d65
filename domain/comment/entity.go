package comment

import (
	"regexp"
	"strings"
	"time"

	"greencity/domain/shared"
)

const (
	TextMinLength = 1
	TextMaxLength = 8000
)

type Status string

const (
	StatusOriginal Status = "ORIGINAL"
	StatusEdited   Status = "EDITED"
	StatusDeleted  Status = "DELETED"
)

// SortableProperties are the response fields a comment page may be sorted by.
var SortableProperties = map[string]struct{}{
	"id":           {},
	"createdDate":  {},
	"modifiedDate": {},
	"text":         {},
	"status":       {},
}

var mentionPattern = regexp.MustCompile(`[@#](\w+)`)

// ExtractMentionNames returns the distinct names referenced as @name or #name.
func ExtractMentionNames(text string) []string {
	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		names = append(names, m[1])
	}
	return names
}

// EventComment is a comment on an event, or a reply to one. Replies are one level deep.
type EventComment struct {
	id               int64
	eventID          int64
	authorID         int64
	parentID         *int64
	text             string
	status           Status
	createdDate      time.Time
	modifiedDate     time.Time
	mentionedUserIDs []int64
}

// NewEventComment validates text and, for a reply, the parent comment.
func NewEventComment(eventID, authorID int64, parent *EventComment, text string, mentionedUserIDs []int64, now time.Time) (*EventComment, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}
	c := &EventComment{
		eventID:          eventID,
		authorID:         authorID,
		text:             text,
		status:           StatusOriginal,
		createdDate:      now,
		modifiedDate:     now,
		mentionedUserIDs: mentionedUserIDs,
	}
	if parent != nil {
		if parent.IsDeleted() {
			return nil, NewCommentNotFoundError(parent.ID())
		}
		if parent.eventID != eventID {
			return nil, shared.NewDomainError(shared.ErrNotFound, "event comment",
				"parent comment does not belong to this event")
		}
		if parent.IsReply() {
			return nil, shared.NewBadRequestError("event comment", "cannot reply to a reply")
		}
		pid := parent.ID()
		c.parentID = &pid
	}
	return c, nil
}

// Edit changes the text. Only the author may edit.
func (c *EventComment) Edit(userID int64, text string, now time.Time) error {
	if c.authorID != userID {
		return shared.NewForbiddenError("event comment", "user has no permission to edit this comment")
	}
	if err := validateText(text); err != nil {
		return err
	}
	c.text = text
	c.status = StatusEdited
	c.modifiedDate = now
	return nil
}

// MarkDeleted soft-deletes the comment. Only the author may delete.
func (c *EventComment) MarkDeleted(userID int64, now time.Time) error {
	if c.authorID != userID {
		return shared.NewForbiddenError("event comment", "user has no permission to delete this comment")
	}
	c.status = StatusDeleted
	c.modifiedDate = now
	return nil
}

func validateText(text string) error {
	n := len([]rune(strings.TrimSpace(text)))
	if n < TextMinLength || len([]rune(text)) > TextMaxLength {
		return shared.NewValidationError("event comment", "text", "comment text must be between 1 and 8000 characters")
	}
	return nil
}

func (c *EventComment) AssignID(id int64) { c.id = id }

func (c *EventComment) ID() int64                 { return c.id }
func (c *EventComment) EventID() int64            { return c.eventID }
func (c *EventComment) AuthorID() int64           { return c.authorID }
func (c *EventComment) ParentID() *int64          { return c.parentID }
func (c *EventComment) Text() string              { return c.text }
func (c *EventComment) Status() Status            { return c.status }
func (c *EventComment) CreatedDate() time.Time    { return c.createdDate }
func (c *EventComment) ModifiedDate() time.Time   { return c.modifiedDate }
func (c *EventComment) MentionedUserIDs() []int64 { return c.mentionedUserIDs }
func (c *EventComment) IsDeleted() bool           { return c.status == StatusDeleted }
func (c *EventComment) IsReply() bool             { return c.parentID != nil }

type ReconstructionDTO struct {
	ID               int64
	EventID          int64
	AuthorID         int64
	ParentID         *int64
	Text             string
	Status           string
	CreatedDate      time.Time
	ModifiedDate     time.Time
	MentionedUserIDs []int64
}

func RebuildFromDTO(dto ReconstructionDTO) *EventComment {
	return &EventComment{
		id:               dto.ID,
		eventID:          dto.EventID,
		authorID:         dto.AuthorID,
		parentID:         dto.ParentID,
		text:             dto.Text,
		status:           Status(dto.Status),
		createdDate:      dto.CreatedDate,
		modifiedDate:     dto.ModifiedDate,
		mentionedUserIDs: dto.MentionedUserIDs,
	}
}
