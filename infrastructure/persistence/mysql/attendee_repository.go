package mysql

import (
	"context"
	"errors"

	"greencity/domain/attendee"
	"greencity/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type EventAttendeeRepository struct {
	baseRepository
}

func NewEventAttendeeRepository(db *gorm.DB) *EventAttendeeRepository {
	return &EventAttendeeRepository{baseRepository{db: db}}
}

func (r *EventAttendeeRepository) Save(ctx context.Context, a *attendee.EventAttendee) error {
	attendeePO := po.FromAttendeeDomain(a)
	db := r.getDB(ctx)

	if a.ID() == 0 {
		if err := db.Create(attendeePO).Error; err != nil {
			if isDuplicateKeyError(err) {
				return attendee.NewUserAlreadyAttachedError(a.EventID(), a.UserID())
			}
			return notSaved("event attendee", err)
		}
		a.AssignID(attendeePO.ID)
		return nil
	}

	result := db.Model(&po.EventAttendeePO{}).Where("id = ?", a.ID()).
		Updates(map[string]interface{}{"status": attendeePO.Status, "mark": attendeePO.Mark})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// MySQL reports 0 affected rows for an unchanged row too.
		exists, err := r.exists(ctx, a.ID())
		if err != nil {
			return err
		}
		if !exists {
			return attendee.NewAttendeeNotFoundError(a.ID())
		}
	}
	return nil
}

func (r *EventAttendeeRepository) exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.EventAttendeePO{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *EventAttendeeRepository) FindByID(ctx context.Context, id int64) (*attendee.EventAttendee, error) {
	var attendeePO po.EventAttendeePO
	result := r.getDB(ctx).First(&attendeePO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, attendee.NewAttendeeNotFoundError(id)
		}
		return nil, result.Error
	}
	return attendeePO.ToDomain(), nil
}

func (r *EventAttendeeRepository) ExistsByEventAndUser(ctx context.Context, eventID, userID int64) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.EventAttendeePO{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *EventAttendeeRepository) FindByEventID(ctx context.Context, eventID int64) ([]*attendee.EventAttendee, error) {
	return r.findWhere(ctx, "event_id = ?", eventID)
}

func (r *EventAttendeeRepository) FindByUserID(ctx context.Context, userID int64) ([]*attendee.EventAttendee, error) {
	return r.findWhere(ctx, "user_id = ?", userID)
}

func (r *EventAttendeeRepository) findWhere(ctx context.Context, cond string, arg int64) ([]*attendee.EventAttendee, error) {
	var attendeePOs []po.EventAttendeePO
	if err := r.getDB(ctx).Where(cond, arg).Order("id ASC").Find(&attendeePOs).Error; err != nil {
		return nil, err
	}
	out := make([]*attendee.EventAttendee, len(attendeePOs))
	for i := range attendeePOs {
		out[i] = attendeePOs[i].ToDomain()
	}
	return out, nil
}

func (r *EventAttendeeRepository) Delete(ctx context.Context, id int64) error {
	result := r.getDB(ctx).Where("id = ?", id).Delete(&po.EventAttendeePO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return attendee.NewAttendeeNotFoundError(id)
	}
	return nil
}

func (r *EventAttendeeRepository) DeleteByEventID(ctx context.Context, eventID int64) error {
	return r.getDB(ctx).Where("event_id = ?", eventID).Delete(&po.EventAttendeePO{}).Error
}

var _ attendee.Repository = (*EventAttendeeRepository)(nil)
