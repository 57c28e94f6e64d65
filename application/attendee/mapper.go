package attendee

import (
	"greencity/domain/attendee"
	"greencity/domain/event"
	"greencity/domain/user"
)

func toAttendeeResponse(a *attendee.EventAttendee, e *event.Event, u *user.User) *AttendeeResponse {
	resp := &AttendeeResponse{
		ID:      a.ID(),
		EventID: a.EventID(),
		UserID:  a.UserID(),
		Status:  string(a.Status()),
	}
	if m := a.Mark(); m != nil {
		mark := string(*m)
		resp.Mark = &mark
	}
	if e != nil {
		resp.EventTitle = e.Title()
	}
	if u != nil {
		resp.UserName = u.Name()
		resp.UserProfilePicturePath = u.ProfilePicturePath()
	}
	return resp
}
