package notification

import (
	"time"

	"greencity/domain/shared"
)

type Type string

const (
	TypeEventCreated          Type = "EVENT_CREATED"
	TypeEventUpdated          Type = "EVENT_UPDATED"
	TypeEventCanceled         Type = "EVENT_CANCELED"
	TypeEventComment          Type = "EVENT_COMMENT"
	TypeFriendRequestReceived Type = "FRIEND_REQUEST_RECEIVED"
	TypeFriendRequestAccepted Type = "FRIEND_REQUEST_ACCEPTED"
)

var types = []Type{
	TypeEventCreated,
	TypeEventUpdated,
	TypeEventCanceled,
	TypeEventComment,
	TypeFriendRequestReceived,
	TypeFriendRequestAccepted,
}

func ParseType(v string) (Type, error) {
	for _, t := range types {
		if string(t) == v {
			return t, nil
		}
	}
	return "", shared.NewValidationError("notification", "type", "unknown notification type: "+v)
}

// TitleKey and MessageKey are the message bundle keys of the type.
func (t Type) TitleKey() string   { return string(t) + "_TITLE" }
func (t Type) MessageKey() string { return string(t) + "_MESSAGE" }

type ProjectName string

const (
	ProjectGreenCity ProjectName = "GREEN_CITY"
	ProjectPickUp    ProjectName = "PICK_UP"
)

func ParseProjectName(v string) (ProjectName, error) {
	switch p := ProjectName(v); p {
	case ProjectGreenCity, ProjectPickUp:
		return p, nil
	}
	return "", shared.NewValidationError("notification", "projectName", "unknown project name: "+v)
}

// Notification is a message addressed to one user. viewedDate is set exactly
// while viewed is true.
type Notification struct {
	id          int64
	title       string
	message     string
	createdDate time.Time
	viewedDate  *time.Time
	viewed      bool
	typ         Type
	projectName ProjectName
	userID      int64
}

func NewNotification(userID int64, typ Type, project ProjectName, title, message string, now time.Time) *Notification {
	return &Notification{
		title:       title,
		message:     message,
		createdDate: now,
		typ:         typ,
		projectName: project,
		userID:      userID,
	}
}

func (n *Notification) MarkViewed(now time.Time) {
	n.viewed = true
	n.viewedDate = &now
}

func (n *Notification) MarkUnviewed() {
	n.viewed = false
	n.viewedDate = nil
}

func (n *Notification) AssignID(id int64) { n.id = id }

func (n *Notification) ID() int64                { return n.id }
func (n *Notification) Title() string            { return n.title }
func (n *Notification) Message() string          { return n.message }
func (n *Notification) CreatedDate() time.Time   { return n.createdDate }
func (n *Notification) ViewedDate() *time.Time   { return n.viewedDate }
func (n *Notification) IsViewed() bool           { return n.viewed }
func (n *Notification) Type() Type               { return n.typ }
func (n *Notification) ProjectName() ProjectName { return n.projectName }
func (n *Notification) UserID() int64            { return n.userID }

type ReconstructionDTO struct {
	ID          int64
	Title       string
	Message     string
	CreatedDate time.Time
	ViewedDate  *time.Time
	Viewed      bool
	Type        string
	ProjectName string
	UserID      int64
}

func RebuildFromDTO(dto ReconstructionDTO) *Notification {
	return &Notification{
		id:          dto.ID,
		title:       dto.Title,
		message:     dto.Message,
		createdDate: dto.CreatedDate,
		viewedDate:  dto.ViewedDate,
		viewed:      dto.Viewed,
		typ:         Type(dto.Type),
		projectName: ProjectName(dto.ProjectName),
		userID:      dto.UserID,
	}
}
