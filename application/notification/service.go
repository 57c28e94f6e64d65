/*
Package notification 站内通知的应用服务

通知以默认语言存储；读取时按 lang 参数重新渲染。
筛选条件 criteriaFilter 被解析为领域规约，始终限定在当前用户范围内。
*/
package notification

import (
	"context"
	"time"

	"greencity/domain/notification"
	"greencity/domain/shared"
	"greencity/domain/user"
	"greencity/pkg/logger"

	"go.uber.org/zap"
)

// LatestUnreadLimit 未读通知下拉框的条数
const LatestUnreadLimit = 5

// Translator 渲染与翻译通知文本，由 i18n.Catalog 实现
type Translator interface {
	ResolveLanguage(lang string) (string, error)
	Render(key string, params []string) (string, error)
	Localize(key, text, lang string) string
}

type ApplicationService struct {
	notificationRepo notification.Repository
	userRepo         user.Repository
	translator       Translator
	now              func() time.Time
}

func NewApplicationService(notificationRepo notification.Repository, userRepo user.Repository, translator Translator) *ApplicationService {
	return &ApplicationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		translator:       translator,
		now:              time.Now,
	}
}

// Create 用默认语言模板渲染并保存
func (s *ApplicationService) Create(ctx context.Context, req CreateRequest) (*NotificationResponse, error) {
	typ, err := notification.ParseType(req.Type)
	if err != nil {
		return nil, err
	}
	project, err := notification.ParseProjectName(req.ProjectName)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	title, err := s.translator.Render(typ.TitleKey(), req.TitleParams)
	if err != nil {
		return nil, err
	}
	message, err := s.translator.Render(typ.MessageKey(), req.MessageParams)
	if err != nil {
		return nil, err
	}

	n := notification.NewNotification(req.UserID, typ, project, title, message, s.now())
	if err := s.notificationRepo.Save(ctx, n); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("Notification created",
		zap.Int64("notification_id", n.ID()),
		zap.Int64("user_id", n.UserID()),
		zap.String("type", string(typ)))
	return toResponse(n), nil
}

func (s *ApplicationService) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.CountBySpecification(ctx, notification.NewUnreadSpecification(userID))
}

// LatestUnread 最新的 5 条未读通知
func (s *ApplicationService) LatestUnread(ctx context.Context, userID int64, lang string) ([]*NotificationResponse, error) {
	lang, err := s.translator.ResolveLanguage(lang)
	if err != nil {
		return nil, err
	}
	page, err := s.notificationRepo.FindBySpecification(ctx, notification.NewUnreadSpecification(userID),
		shared.NewPageRequest(0, LatestUnreadLimit))
	if err != nil {
		return nil, err
	}
	return s.localizeAll(page, lang).Items, nil
}

func (s *ApplicationService) All(ctx context.Context, userID int64, lang string, page shared.PageRequest) (shared.Page[*NotificationResponse], error) {
	return s.find(ctx, notification.NewByUserIDSpecification(userID), lang, page)
}

// Filter criteriaFilter 形如 "type:EVENT_COMMENT,viewed:false"
func (s *ApplicationService) Filter(ctx context.Context, userID int64, criteriaFilter, lang string, page shared.PageRequest) (shared.Page[*NotificationResponse], error) {
	spec, err := notification.BuildSpecification(userID, notification.ParseCriteria(criteriaFilter))
	if err != nil {
		return shared.Page[*NotificationResponse]{}, err
	}
	return s.find(ctx, spec, lang, page)
}

func (s *ApplicationService) GetByID(ctx context.Context, id int64, lang string) (*NotificationResponse, error) {
	lang, err := s.translator.ResolveLanguage(lang)
	if err != nil {
		return nil, err
	}
	n, err := s.notificationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.localize(n, lang), nil
}

// View 标记已读，只能操作自己的通知
func (s *ApplicationService) View(ctx context.Context, id, userID int64) error {
	n, err := s.notificationRepo.FindByIDAndUserID(ctx, id, userID)
	if err != nil {
		return err
	}
	n.MarkViewed(s.now())
	return s.notificationRepo.Save(ctx, n)
}

func (s *ApplicationService) Unview(ctx context.Context, id, userID int64) error {
	n, err := s.notificationRepo.FindByIDAndUserID(ctx, id, userID)
	if err != nil {
		return err
	}
	n.MarkUnviewed()
	return s.notificationRepo.Save(ctx, n)
}

func (s *ApplicationService) find(ctx context.Context, spec shared.Specification[*notification.Notification], lang string, page shared.PageRequest) (shared.Page[*NotificationResponse], error) {
	lang, err := s.translator.ResolveLanguage(lang)
	if err != nil {
		return shared.Page[*NotificationResponse]{}, err
	}
	result, err := s.notificationRepo.FindBySpecification(ctx, spec, page)
	if err != nil {
		return shared.Page[*NotificationResponse]{}, err
	}
	return s.localizeAll(result, lang), nil
}

func (s *ApplicationService) localizeAll(p shared.Page[*notification.Notification], lang string) shared.Page[*NotificationResponse] {
	return shared.MapPage(p, func(n *notification.Notification) *NotificationResponse {
		return s.localize(n, lang)
	})
}

func (s *ApplicationService) localize(n *notification.Notification, lang string) *NotificationResponse {
	resp := toResponse(n)
	resp.Title = s.translator.Localize(n.Type().TitleKey(), n.Title(), lang)
	resp.Message = s.translator.Localize(n.Type().MessageKey(), n.Message(), lang)
	return resp
}

func toResponse(n *notification.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:          n.ID(),
		Title:       n.Title(),
		Message:     n.Message(),
		CreatedDate: n.CreatedDate(),
		ViewedDate:  n.ViewedDate(),
		Viewed:      n.IsViewed(),
		Type:        string(n.Type()),
		ProjectName: string(n.ProjectName()),
		UserID:      n.UserID(),
	}
}
