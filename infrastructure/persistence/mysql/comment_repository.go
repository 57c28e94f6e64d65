package mysql

import (
	"context"
	"errors"
	"time"

	"greencity/domain/comment"
	"greencity/domain/shared"
	"greencity/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// commentColumns maps sortable response fields to columns.
var commentColumns = map[string]string{
	"id":           "id",
	"createdDate":  "created_date",
	"modifiedDate": "modified_date",
	"text":         "text",
	"status":       "status",
}

type EventCommentRepository struct {
	baseRepository
}

func NewEventCommentRepository(db *gorm.DB) *EventCommentRepository {
	return &EventCommentRepository{baseRepository{db: db}}
}

func (r *EventCommentRepository) Save(ctx context.Context, c *comment.EventComment) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		commentPO := po.FromCommentDomain(c)

		if c.ID() == 0 {
			if err := tx.Omit(clause.Associations).Create(commentPO).Error; err != nil {
				return notSaved("event comment", err)
			}
			if len(commentPO.Mentions) > 0 {
				for i := range commentPO.Mentions {
					commentPO.Mentions[i].CommentID = commentPO.ID
				}
				if err := tx.Create(&commentPO.Mentions).Error; err != nil {
					return notSaved("event comment", err)
				}
			}
			c.AssignID(commentPO.ID)
			return nil
		}

		result := tx.Model(&po.EventCommentPO{}).Where("id = ?", c.ID()).Updates(map[string]interface{}{
			"text":          commentPO.Text,
			"status":        commentPO.Status,
			"modified_date": commentPO.ModifiedDate,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return comment.NewCommentNotFoundError(c.ID())
		}
		return nil
	})
}

func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("status <> ?", string(comment.StatusDeleted))
}

func (r *EventCommentRepository) FindByID(ctx context.Context, id int64) (*comment.EventComment, error) {
	var commentPO po.EventCommentPO
	result := r.getDB(ctx).Scopes(notDeleted).Preload("Mentions").First(&commentPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, comment.NewCommentNotFoundError(id)
		}
		return nil, result.Error
	}
	return commentPO.ToDomain(), nil
}

func (r *EventCommentRepository) CountByEvent(ctx context.Context, eventID int64) (int64, error) {
	var count int64
	err := r.topLevel(ctx, eventID).Count(&count).Error
	return count, err
}

func (r *EventCommentRepository) FindByEvent(ctx context.Context, eventID int64, page shared.PageRequest) (shared.Page[*comment.EventComment], error) {
	return r.findPage(r.topLevel(ctx, eventID), page)
}

func (r *EventCommentRepository) CountReplies(ctx context.Context, parentID int64) (int64, error) {
	var count int64
	err := r.replies(ctx, parentID).Count(&count).Error
	return count, err
}

func (r *EventCommentRepository) FindReplies(ctx context.Context, parentID int64, page shared.PageRequest) (shared.Page[*comment.EventComment], error) {
	return r.findPage(r.replies(ctx, parentID), page)
}

func (r *EventCommentRepository) SoftDeleteReplies(ctx context.Context, parentID int64) error {
	return r.getDB(ctx).Model(&po.EventCommentPO{}).
		Where("parent_comment_id = ?", parentID).
		Updates(map[string]interface{}{
			"status":        string(comment.StatusDeleted),
			"modified_date": time.Now(),
		}).Error
}

func (r *EventCommentRepository) topLevel(ctx context.Context, eventID int64) *gorm.DB {
	return r.getDB(ctx).Model(&po.EventCommentPO{}).Scopes(notDeleted).
		Where("event_id = ? AND parent_comment_id IS NULL", eventID).
		Session(&gorm.Session{})
}

func (r *EventCommentRepository) replies(ctx context.Context, parentID int64) *gorm.DB {
	return r.getDB(ctx).Model(&po.EventCommentPO{}).Scopes(notDeleted).
		Where("parent_comment_id = ?", parentID).
		Session(&gorm.Session{})
}

func (r *EventCommentRepository) findPage(db *gorm.DB, page shared.PageRequest) (shared.Page[*comment.EventComment], error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return shared.Page[*comment.EventComment]{}, err
	}

	var commentPOs []po.EventCommentPO
	if total > 0 {
		err := db.Preload("Mentions").
			Scopes(orderScope(page.Sort, commentColumns, "created_date DESC"), pageScope(page)).
			Find(&commentPOs).Error
		if err != nil {
			return shared.Page[*comment.EventComment]{}, err
		}
	}
	return shared.NewPage(po.CommentsToDomain(commentPOs), total, page), nil
}

var _ comment.Repository = (*EventCommentRepository)(nil)
