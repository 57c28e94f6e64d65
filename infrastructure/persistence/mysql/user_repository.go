package mysql

import (
	"context"
	"errors"

	"greencity/domain/user"
	"greencity/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type UserRepository struct {
	baseRepository
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{baseRepository{db: db}}
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var userPO po.UserPO
	result := r.getDB(ctx).First(&userPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, user.NewUserNotFoundError(id)
		}
		return nil, result.Error
	}
	return userPO.ToDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var userPO po.UserPO
	result := r.getDB(ctx).First(&userPO, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, user.NewUserNotFoundByEmailError(email)
		}
		return nil, result.Error
	}
	return userPO.ToDomain(), nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []int64) ([]*user.User, error) {
	if len(ids) == 0 {
		return []*user.User{}, nil
	}
	var userPOs []po.UserPO
	if err := r.getDB(ctx).Where("id IN ?", ids).Find(&userPOs).Error; err != nil {
		return nil, err
	}
	return po.UsersToDomain(userPOs), nil
}

func (r *UserRepository) FindByNames(ctx context.Context, names []string) ([]*user.User, error) {
	if len(names) == 0 {
		return []*user.User{}, nil
	}
	var userPOs []po.UserPO
	if err := r.getDB(ctx).Where("name IN ?", names).Find(&userPOs).Error; err != nil {
		return nil, err
	}
	return po.UsersToDomain(userPOs), nil
}

func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.getDB(ctx).Model(&po.UserPO{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ user.Repository = (*UserRepository)(nil)
