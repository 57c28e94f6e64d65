// Package attendee 活动参与者的应用服务
package attendee

import (
	"context"

	"greencity/domain/attendee"
	"greencity/domain/event"
	"greencity/domain/shared"
	"greencity/domain/user"
	"greencity/pkg/logger"

	"go.uber.org/zap"
)

type ApplicationService struct {
	attendeeRepo attendee.Repository
	eventRepo    event.Repository
	userRepo     user.Repository
	uow          shared.UnitOfWork
}

func NewApplicationService(
	attendeeRepo attendee.Repository,
	eventRepo event.Repository,
	userRepo user.Repository,
	uow shared.UnitOfWork,
) *ApplicationService {
	return &ApplicationService{
		attendeeRepo: attendeeRepo,
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		uow:          uow,
	}
}

// Create 用户报名活动，活动必须开放且不能重复报名
func (s *ApplicationService) Create(ctx context.Context, req CreateRequest) (*AttendeeResponse, error) {
	u, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	var (
		a *attendee.EventAttendee
		e *event.Event
	)
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		e, err = s.eventRepo.FindByID(ctx, req.EventID)
		if err != nil {
			return err
		}
		if !e.IsOpen() {
			return attendee.NewEventClosedError(e.ID())
		}

		exists, err := s.attendeeRepo.ExistsByEventAndUser(ctx, req.EventID, req.UserID)
		if err != nil {
			return err
		}
		if exists {
			return attendee.NewUserAlreadyAttachedError(req.EventID, req.UserID)
		}

		a = attendee.NewEventAttendee(req.EventID, req.UserID)
		return s.attendeeRepo.Save(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Event attendee created",
		zap.Int64("attendee_id", a.ID()),
		zap.Int64("event_id", a.EventID()),
		zap.Int64("user_id", a.UserID()))
	return toAttendeeResponse(a, e, u), nil
}

func (s *ApplicationService) ListByEvent(ctx context.Context, eventID int64) ([]*AttendeeResponse, error) {
	e, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	attendees, err := s.attendeeRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	users, err := s.usersOf(ctx, attendees)
	if err != nil {
		return nil, err
	}
	result := make([]*AttendeeResponse, len(attendees))
	for i, a := range attendees {
		result[i] = toAttendeeResponse(a, e, users[a.UserID()])
	}
	return result, nil
}

func (s *ApplicationService) ListByUser(ctx context.Context, userID int64) ([]*AttendeeResponse, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	attendees, err := s.attendeeRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*AttendeeResponse, 0, len(attendees))
	for _, a := range attendees {
		e, err := s.eventRepo.FindByID(ctx, a.EventID())
		if err != nil {
			return nil, err
		}
		result = append(result, toAttendeeResponse(a, e, u))
	}
	return result, nil
}

// Update 修改状态和评分
func (s *ApplicationService) Update(ctx context.Context, id int64, req UpdateRequest) (*AttendeeResponse, error) {
	status, err := attendee.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	var mark *attendee.Mark
	if req.Mark != nil {
		m, err := attendee.ParseMark(*req.Mark)
		if err != nil {
			return nil, err
		}
		mark = &m
	}

	var a *attendee.EventAttendee
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		a, err = s.attendeeRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := a.ChangeStatus(status, mark); err != nil {
			return err
		}
		return s.attendeeRepo.Save(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	e, err := s.eventRepo.FindByID(ctx, a.EventID())
	if err != nil {
		return nil, err
	}
	u, err := s.userRepo.FindByID(ctx, a.UserID())
	if err != nil {
		return nil, err
	}
	return toAttendeeResponse(a, e, u), nil
}

func (s *ApplicationService) Delete(ctx context.Context, id int64) error {
	return s.uow.Execute(ctx, func(ctx context.Context) error {
		return s.attendeeRepo.Delete(ctx, id)
	})
}

func (s *ApplicationService) DeleteByEvent(ctx context.Context, eventID int64) error {
	return s.uow.Execute(ctx, func(ctx context.Context) error {
		if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
			return err
		}
		return s.attendeeRepo.DeleteByEventID(ctx, eventID)
	})
}

func (s *ApplicationService) usersOf(ctx context.Context, attendees []*attendee.EventAttendee) (map[int64]*user.User, error) {
	ids := make([]int64, len(attendees))
	for i, a := range attendees {
		ids[i] = a.UserID()
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*user.User, len(users))
	for _, u := range users {
		byID[u.ID()] = u
	}
	return byID, nil
}
