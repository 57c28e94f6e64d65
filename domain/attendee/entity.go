package attendee

import (
	"greencity/domain/shared"
)

// Status of an attendee. The order of the constants is the lifecycle order.
type Status string

const (
	StatusPlanned  Status = "PLANNED"
	StatusAttended Status = "ATTENDED"
)

// Sequence is the position of the status in the lifecycle; -1 when unknown.
func (s Status) Sequence() int {
	switch s {
	case StatusPlanned:
		return 0
	case StatusAttended:
		return 1
	default:
		return -1
	}
}

func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if s.Sequence() < 0 {
		return "", shared.NewValidationError("event attendee", "status", "unknown status: "+v)
	}
	return s, nil
}

// Mark is the attendee's rating of an attended event.
type Mark string

const (
	MarkLow    Mark = "LOW"
	MarkMedium Mark = "MEDIUM"
	MarkHigh   Mark = "HIGH"
)

func ParseMark(v string) (Mark, error) {
	switch m := Mark(v); m {
	case MarkLow, MarkMedium, MarkHigh:
		return m, nil
	}
	return "", shared.NewValidationError("event attendee", "mark", "unknown mark: "+v)
}

// EventAttendee links a user to an event.
type EventAttendee struct {
	id      int64
	eventID int64
	userID  int64
	status  Status
	mark    *Mark
}

// NewEventAttendee registers userID for eventID with status PLANNED.
func NewEventAttendee(eventID, userID int64) *EventAttendee {
	return &EventAttendee{eventID: eventID, userID: userID, status: StatusPlanned}
}

// ChangeStatus moves the attendee forward in its lifecycle. The mark is kept
// only for ATTENDED; any other status clears it.
func (a *EventAttendee) ChangeStatus(status Status, mark *Mark) error {
	if status.Sequence() < a.status.Sequence() {
		return NewStatusCannotBeUpdatedError(a.status, status)
	}
	a.status = status
	if status == StatusAttended {
		a.mark = mark
	} else {
		a.mark = nil
	}
	return nil
}

func (a *EventAttendee) AssignID(id int64) { a.id = id }

func (a *EventAttendee) ID() int64      { return a.id }
func (a *EventAttendee) EventID() int64 { return a.eventID }
func (a *EventAttendee) UserID() int64  { return a.userID }
func (a *EventAttendee) Status() Status { return a.status }
func (a *EventAttendee) Mark() *Mark    { return a.mark }

type ReconstructionDTO struct {
	ID      int64
	EventID int64
	UserID  int64
	Status  string
	Mark    *string
}

func RebuildFromDTO(dto ReconstructionDTO) *EventAttendee {
	a := &EventAttendee{
		id:      dto.ID,
		eventID: dto.EventID,
		userID:  dto.UserID,
		status:  Status(dto.Status),
	}
	if dto.Mark != nil {
		m := Mark(*dto.Mark)
		a.mark = &m
	}
	return a
}
