package mysql

import (
	"context"
	"errors"
	"strings"

	"greencity/domain/event"
	"greencity/domain/shared"
	"greencity/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository struct {
	baseRepository
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{baseRepository{db: db}}
}

func (r *EventRepository) Save(ctx context.Context, e *event.Event) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		eventPO := po.FromEventDomain(e)

		if e.ID() == 0 {
			if err := tx.Omit(clause.Associations).Create(eventPO).Error; err != nil {
				return notSaved("event", err)
			}
			eventPO.SetEventID(eventPO.ID)
		} else {
			result := tx.Model(&po.EventPO{}).Where("id = ?", e.ID()).Updates(map[string]interface{}{
				"title":       eventPO.Title,
				"description": eventPO.Description,
				"open":        eventPO.Open,
				"title_image": eventPO.TitleImage,
			})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				var count int64
				if err := tx.Model(&po.EventPO{}).Where("id = ?", e.ID()).Count(&count).Error; err != nil {
					return err
				}
				if count == 0 {
					return event.NewEventNotFoundError(e.ID())
				}
			}
			if err := deleteEventChildren(tx, e.ID()); err != nil {
				return err
			}
		}

		if err := insertEventChildren(tx, eventPO); err != nil {
			return err
		}
		e.AssignID(eventPO.ID)
		return nil
	})
}

func deleteEventChildren(tx *gorm.DB, eventID int64) error {
	for _, model := range []interface{}{&po.EventDateLocationPO{}, &po.EventTagPO{}, &po.EventImagePO{}} {
		if err := tx.Where("event_id = ?", eventID).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func insertEventChildren(tx *gorm.DB, eventPO *po.EventPO) error {
	if len(eventPO.DatesLocations) > 0 {
		if err := tx.Create(&eventPO.DatesLocations).Error; err != nil {
			return err
		}
	}
	if len(eventPO.Tags) > 0 {
		if err := tx.Create(&eventPO.Tags).Error; err != nil {
			return err
		}
	}
	if len(eventPO.Images) > 0 {
		if err := tx.Create(&eventPO.Images).Error; err != nil {
			return err
		}
	}
	return nil
}

func withEventChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("DatesLocations", func(db *gorm.DB) *gorm.DB { return db.Order("start_date ASC") }).
		Preload("Tags").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") })
}

func (r *EventRepository) FindByID(ctx context.Context, id int64) (*event.Event, error) {
	var eventPO po.EventPO
	result := r.getDB(ctx).Scopes(withEventChildren).First(&eventPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, event.NewEventNotFoundError(id)
		}
		return nil, result.Error
	}
	return eventPO.ToDomain(), nil
}

// Delete removes the event with its attendees, comments (and their mentions)
// and child rows.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		commentIDs := tx.Model(&po.EventCommentPO{}).Select("id").Where("event_id = ?", id)
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&po.EventCommentMentionPO{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&po.EventCommentPO{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&po.EventAttendeePO{}).Error; err != nil {
			return err
		}
		if err := deleteEventChildren(tx, id); err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&po.EventPO{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return event.NewEventNotFoundError(id)
		}
		return nil
	})
}

func (r *EventRepository) SearchByTitle(ctx context.Context, title string, page shared.PageRequest) (shared.Page[*event.Event], error) {
	db := r.getDB(ctx).Model(&po.EventPO{})
	if term := strings.TrimSpace(title); term != "" {
		db = db.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(term)+"%")
	}
	db = db.Session(&gorm.Session{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return shared.Page[*event.Event]{}, err
	}

	var eventPOs []po.EventPO
	if total > 0 {
		err := db.Scopes(withEventChildren, pageScope(page)).
			Order("created_at DESC").Order("id DESC").
			Find(&eventPOs).Error
		if err != nil {
			return shared.Page[*event.Event]{}, err
		}
	}

	events := make([]*event.Event, len(eventPOs))
	for i := range eventPOs {
		events[i] = eventPOs[i].ToDomain()
	}
	return shared.NewPage(events, total, page), nil
}

var _ event.Repository = (*EventRepository)(nil)
