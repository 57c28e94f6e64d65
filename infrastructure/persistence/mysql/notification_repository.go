package mysql

import (
	"context"
	"errors"

	"greencity/domain/notification"
	"greencity/domain/shared"
	"greencity/infrastructure/persistence/mysql/po"
	"greencity/infrastructure/persistence/specification"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	baseRepository
	translator specification.Translator[*notification.Notification]
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{
		baseRepository: baseRepository{db: db},
		translator:     specification.NewNotificationTranslator(),
	}
}

func (r *NotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	notificationPO := po.FromNotificationDomain(n)
	db := r.getDB(ctx)

	if n.ID() == 0 {
		if err := db.Create(notificationPO).Error; err != nil {
			return notSaved("notification", err)
		}
		n.AssignID(notificationPO.ID)
		return nil
	}

	return db.Model(&po.NotificationPO{}).Where("id = ?", n.ID()).Updates(map[string]interface{}{
		"viewed":      notificationPO.Viewed,
		"viewed_date": notificationPO.ViewedDate,
	}).Error
}

func (r *NotificationRepository) FindByID(ctx context.Context, id int64) (*notification.Notification, error) {
	return r.first(r.getDB(ctx).Where("id = ?", id), id)
}

func (r *NotificationRepository) FindByIDAndUserID(ctx context.Context, id, userID int64) (*notification.Notification, error) {
	return r.first(r.getDB(ctx).Where("id = ? AND user_id = ?", id, userID), id)
}

func (r *NotificationRepository) first(db *gorm.DB, id int64) (*notification.Notification, error) {
	var notificationPO po.NotificationPO
	if err := db.First(&notificationPO).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notification.NewNotificationNotFoundError(id)
		}
		return nil, err
	}
	return notificationPO.ToDomain(), nil
}

func (r *NotificationRepository) FindBySpecification(ctx context.Context, spec shared.Specification[*notification.Notification], page shared.PageRequest) (shared.Page[*notification.Notification], error) {
	scope, err := r.translator.Translate(spec)
	if err != nil {
		return shared.Page[*notification.Notification]{}, err
	}
	db := r.getDB(ctx).Model(&po.NotificationPO{}).Scopes(scope).Session(&gorm.Session{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return shared.Page[*notification.Notification]{}, err
	}

	var notificationPOs []po.NotificationPO
	if total > 0 {
		err := db.Scopes(pageScope(page)).
			Order("created_date DESC").Order("id DESC").
			Find(&notificationPOs).Error
		if err != nil {
			return shared.Page[*notification.Notification]{}, err
		}
	}

	items := make([]*notification.Notification, len(notificationPOs))
	for i := range notificationPOs {
		items[i] = notificationPOs[i].ToDomain()
	}
	return shared.NewPage(items, total, page), nil
}

func (r *NotificationRepository) CountBySpecification(ctx context.Context, spec shared.Specification[*notification.Notification]) (int64, error) {
	scope, err := r.translator.Translate(spec)
	if err != nil {
		return 0, err
	}
	var count int64
	err = r.getDB(ctx).Model(&po.NotificationPO{}).Scopes(scope).Count(&count).Error
	return count, err
}

var _ notification.Repository = (*NotificationRepository)(nil)
