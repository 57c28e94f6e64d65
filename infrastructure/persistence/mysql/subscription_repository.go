package mysql

import (
	"context"
	"errors"

	"greencity/domain/subscription"
	"greencity/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type NewsSubscriptionRepository struct {
	baseRepository
}

func NewNewsSubscriptionRepository(db *gorm.DB) *NewsSubscriptionRepository {
	return &NewsSubscriptionRepository{baseRepository{db: db}}
}

func (r *NewsSubscriptionRepository) FindAll(ctx context.Context) ([]*subscription.NewsSubscription, error) {
	var rows []po.NewsSubscriptionPO
	if err := r.getDB(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*subscription.NewsSubscription, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

func (r *NewsSubscriptionRepository) FindByEmail(ctx context.Context, email string) (*subscription.NewsSubscription, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *NewsSubscriptionRepository) FindByToken(ctx context.Context, token string) (*subscription.NewsSubscription, error) {
	return r.findOne(ctx, "token = ?", token)
}

func (r *NewsSubscriptionRepository) findOne(ctx context.Context, cond string, arg string) (*subscription.NewsSubscription, error) {
	var row po.NewsSubscriptionPO
	if err := r.getDB(ctx).Where(cond, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *NewsSubscriptionRepository) Save(ctx context.Context, s *subscription.NewsSubscription) error {
	row := &po.NewsSubscriptionPO{ID: s.ID(), Email: s.Email(), Token: s.Token()}
	if err := r.getDB(ctx).Create(row).Error; err != nil {
		if isDuplicateKeyError(err) {
			return subscription.NewAlreadySubscribedError(s.Email())
		}
		return err
	}
	s.AssignID(row.ID)
	return nil
}

func (r *NewsSubscriptionRepository) Delete(ctx context.Context, id int64) error {
	result := r.getDB(ctx).Where("id = ?", id).Delete(&po.NewsSubscriptionPO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return subscription.NewSubscriptionNotFoundError()
	}
	return nil
}

var _ subscription.Repository = (*NewsSubscriptionRepository)(nil)
