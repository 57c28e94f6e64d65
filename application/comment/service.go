/*
Package comment 活动评论的应用服务

评论只有一层回复。@name / #name 解析为被提及的用户。
事务提交后异步通知活动作者和被提及的用户。
*/
package comment

import (
	"context"
	"time"

	"greencity/application/email"
	"greencity/domain/comment"
	"greencity/domain/event"
	"greencity/domain/shared"
	"greencity/domain/user"
	"greencity/pkg/logger"

	"go.uber.org/zap"
)

type ApplicationService struct {
	commentRepo comment.Repository
	eventRepo   event.Repository
	userRepo    user.Repository
	uow         shared.UnitOfWork
	notifier    *email.Notifier
	now         func() time.Time
}

func NewApplicationService(
	commentRepo comment.Repository,
	eventRepo event.Repository,
	userRepo user.Repository,
	uow shared.UnitOfWork,
	notifier *email.Notifier,
) *ApplicationService {
	return &ApplicationService{
		commentRepo: commentRepo,
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		uow:         uow,
		notifier:    notifier,
		now:         time.Now,
	}
}

// Save 发表评论；ParentCommentID 不为空时即为回复
func (s *ApplicationService) Save(ctx context.Context, eventID, userID int64, req AddCommentRequest) (*CommentResponse, error) {
	author, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	mentioned, err := s.userRepo.FindByNames(ctx, comment.ExtractMentionNames(req.Text))
	if err != nil {
		return nil, err
	}
	mentionedIDs := make([]int64, len(mentioned))
	for i, u := range mentioned {
		mentionedIDs[i] = u.ID()
	}

	var (
		e *event.Event
		c *comment.EventComment
	)
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		e, err = s.eventRepo.FindByID(ctx, eventID)
		if err != nil {
			return err
		}

		var parent *comment.EventComment
		if req.ParentCommentID != nil {
			if parent, err = s.commentRepo.FindByID(ctx, *req.ParentCommentID); err != nil {
				return err
			}
		}

		c, err = comment.NewEventComment(eventID, author.ID(), parent, req.Text, mentionedIDs, s.now())
		if err != nil {
			return err
		}
		return s.commentRepo.Save(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Event comment created",
		zap.Int64("comment_id", c.ID()),
		zap.Int64("event_id", eventID),
		zap.Int("mentions", len(mentioned)))
	s.notify(ctx, e, c, author, mentioned)

	users := map[int64]*user.User{author.ID(): author}
	for _, u := range mentioned {
		users[u.ID()] = u
	}
	return toCommentResponse(c, users, 0), nil
}

// Reply 回复某条顶层评论
func (s *ApplicationService) Reply(ctx context.Context, eventID, parentID, userID int64, req AddCommentRequest) (*CommentResponse, error) {
	req.ParentCommentID = &parentID
	return s.Save(ctx, eventID, userID, req)
}

func (s *ApplicationService) notify(ctx context.Context, e *event.Event, c *comment.EventComment, author *user.User, mentioned []*user.User) {
	if e.AuthorID() != author.ID() {
		if organizer, err := s.userRepo.FindByID(ctx, e.AuthorID()); err != nil {
			logger.FromContext(ctx).Warn("Event author not found for comment notification",
				zap.Int64("event_id", e.ID()), zap.Error(err))
		} else {
			s.notifier.EventComment(ctx, toCommentMessage(organizer, e, c, author))
		}
	}
	for _, u := range mentioned {
		if u.ID() == author.ID() {
			continue
		}
		s.notifier.MentionedInComment(ctx, toCommentMessage(u, e, c, author))
	}
}

// Count 活动下未删除的顶层评论数
func (s *ApplicationService) Count(ctx context.Context, eventID int64) (int64, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return 0, err
	}
	return s.commentRepo.CountByEvent(ctx, eventID)
}

// GetAll 顶层评论分页，默认按创建时间倒序
func (s *ApplicationService) GetAll(ctx context.Context, eventID int64, page shared.PageRequest) (shared.Page[*CommentResponse], error) {
	if err := validateSort(page); err != nil {
		return shared.Page[*CommentResponse]{}, err
	}
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return shared.Page[*CommentResponse]{}, err
	}
	result, err := s.commentRepo.FindByEvent(ctx, eventID, page)
	if err != nil {
		return shared.Page[*CommentResponse]{}, err
	}
	return s.toPage(ctx, result, true)
}

func (s *ApplicationService) GetByID(ctx context.Context, eventID, commentID int64) (*CommentResponse, error) {
	c, err := s.findInEvent(ctx, eventID, commentID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, c)
}

// Update 仅作者可修改，状态变为 EDITED
func (s *ApplicationService) Update(ctx context.Context, eventID, commentID, userID int64, req UpdateCommentRequest) (*CommentResponse, error) {
	var c *comment.EventComment
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		c, err = s.findInEvent(ctx, eventID, commentID)
		if err != nil {
			return err
		}
		if err := c.Edit(userID, req.Text, s.now()); err != nil {
			return err
		}
		return s.commentRepo.Save(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, c)
}

// Delete 软删除评论及其回复
func (s *ApplicationService) Delete(ctx context.Context, eventID, commentID, userID int64) error {
	return s.uow.Execute(ctx, func(ctx context.Context) error {
		c, err := s.findInEvent(ctx, eventID, commentID)
		if err != nil {
			return err
		}
		if err := c.MarkDeleted(userID, s.now()); err != nil {
			return err
		}
		if err := s.commentRepo.Save(ctx, c); err != nil {
			return err
		}
		if err := s.commentRepo.SoftDeleteReplies(ctx, c.ID()); err != nil {
			return err
		}
		logger.FromContext(ctx).Info("Event comment deleted", zap.Int64("comment_id", commentID), zap.Int64("user_id", userID))
		return nil
	})
}

func (s *ApplicationService) RepliesCount(ctx context.Context, eventID, commentID int64) (int64, error) {
	c, err := s.findInEvent(ctx, eventID, commentID)
	if err != nil {
		return 0, err
	}
	return s.commentRepo.CountReplies(ctx, c.ID())
}

func (s *ApplicationService) Replies(ctx context.Context, eventID, commentID int64, page shared.PageRequest) (shared.Page[*CommentResponse], error) {
	if err := validateSort(page); err != nil {
		return shared.Page[*CommentResponse]{}, err
	}
	c, err := s.findInEvent(ctx, eventID, commentID)
	if err != nil {
		return shared.Page[*CommentResponse]{}, err
	}
	result, err := s.commentRepo.FindReplies(ctx, c.ID(), page)
	if err != nil {
		return shared.Page[*CommentResponse]{}, err
	}
	return s.toPage(ctx, result, false)
}

func (s *ApplicationService) findInEvent(ctx context.Context, eventID, commentID int64) (*comment.EventComment, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	c, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c.EventID() != eventID {
		return nil, comment.NewWrongEventError(commentID, eventID)
	}
	return c, nil
}

func (s *ApplicationService) toResponse(ctx context.Context, c *comment.EventComment) (*CommentResponse, error) {
	page, err := s.toPage(ctx, shared.Page[*comment.EventComment]{Items: []*comment.EventComment{c}}, !c.IsReply())
	if err != nil {
		return nil, err
	}
	return page.Items[0], nil
}

// toPage 批量加载作者与被提及用户；withReplies 为 true 时统计每条评论的回复数
func (s *ApplicationService) toPage(ctx context.Context, p shared.Page[*comment.EventComment], withReplies bool) (shared.Page[*CommentResponse], error) {
	ids := make([]int64, 0, len(p.Items))
	replies := make(map[int64]int64, len(p.Items))
	for _, c := range p.Items {
		ids = append(ids, c.AuthorID())
		ids = append(ids, c.MentionedUserIDs()...)
		if withReplies {
			n, err := s.commentRepo.CountReplies(ctx, c.ID())
			if err != nil {
				return shared.Page[*CommentResponse]{}, err
			}
			replies[c.ID()] = n
		}
	}

	found, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return shared.Page[*CommentResponse]{}, err
	}
	users := make(map[int64]*user.User, len(found))
	for _, u := range found {
		users[u.ID()] = u
	}

	return shared.MapPage(p, func(c *comment.EventComment) *CommentResponse {
		return toCommentResponse(c, users, replies[c.ID()])
	}), nil
}

func validateSort(page shared.PageRequest) error {
	for _, o := range page.Sort {
		if _, ok := comment.SortableProperties[o.Property]; !ok {
			return shared.NewBadRequestError("event comment", "unsupported sort property: "+o.Property)
		}
	}
	return nil
}
