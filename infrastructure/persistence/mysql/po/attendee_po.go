package po

import (
	"greencity/domain/attendee"
)

type EventAttendeePO struct {
	ID      int64   `gorm:"primaryKey;autoIncrement"`
	EventID int64   `gorm:"not null;uniqueIndex:uk_event_attendee"`
	UserID  int64   `gorm:"not null;uniqueIndex:uk_event_attendee;index"`
	Status  string  `gorm:"size:16;not null"`
	Mark    *string `gorm:"size:16"`
}

func (EventAttendeePO) TableName() string {
	return "event_attendees"
}

func FromAttendeeDomain(a *attendee.EventAttendee) *EventAttendeePO {
	p := &EventAttendeePO{
		ID:      a.ID(),
		EventID: a.EventID(),
		UserID:  a.UserID(),
		Status:  string(a.Status()),
	}
	if m := a.Mark(); m != nil {
		mark := string(*m)
		p.Mark = &mark
	}
	return p
}

func (p *EventAttendeePO) ToDomain() *attendee.EventAttendee {
	return attendee.RebuildFromDTO(attendee.ReconstructionDTO{
		ID:      p.ID,
		EventID: p.EventID,
		UserID:  p.UserID,
		Status:  p.Status,
		Mark:    p.Mark,
	})
}
