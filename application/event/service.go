/*
Package event 活动的应用服务

职责:
1. 校验请求后在事务外存储上传的图片，失败时清理
2. 在 UoW 事务中调用聚合根完成创建、更新、删除
3. 事务提交后异步发送"新活动"邮件
*/
package event

import (
	"context"
	"io"
	"time"

	"greencity/application/email"
	"greencity/domain/event"
	"greencity/domain/shared"
	"greencity/domain/user"
	"greencity/pkg/logger"

	"go.uber.org/zap"
)

// ImageStore 持久化上传的图片并返回可访问路径；Delete 接收 Save 返回的路径
type ImageStore interface {
	Save(ctx context.Context, filename, contentType string, content io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
}

type ApplicationService struct {
	eventRepo event.Repository
	userRepo  user.Repository
	uow       shared.UnitOfWork
	images    ImageStore
	notifier  *email.Notifier
	now       func() time.Time
}

func NewApplicationService(
	eventRepo event.Repository,
	userRepo user.Repository,
	uow shared.UnitOfWork,
	images ImageStore,
	notifier *email.Notifier,
) *ApplicationService {
	return &ApplicationService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		uow:       uow,
		images:    images,
		notifier:  notifier,
		now:       time.Now,
	}
}

// Save 创建活动，作者为当前用户，第一张图片作为标题图
func (s *ApplicationService) Save(ctx context.Context, userID int64, req AddEventRequest, uploads []ImageUpload) (*EventResponse, error) {
	if len(req.ImagePaths)+len(uploads) > event.MaxImages {
		return nil, tooManyImages()
	}

	author, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	details, err := toDetails(req.Title, req.Description, req.Open, req.Tags, req.DatesLocations, now)
	if err != nil {
		return nil, err
	}
	if err := checkUploads(uploads); err != nil {
		return nil, err
	}

	uploaded, err := s.storeUploads(ctx, uploads)
	if err != nil {
		return nil, err
	}
	images := append(append([]string{}, req.ImagePaths...), uploaded...)

	var e *event.Event
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		e, err = event.NewEvent(author.ID(), details, images, now)
		if err != nil {
			return err
		}
		return s.eventRepo.Save(ctx, e)
	})
	if err != nil {
		s.discard(ctx, uploaded)
		return nil, err
	}

	resp := toEventResponse(e, author)
	s.notifier.EventCreated(ctx, toEventCreatedMessage(resp))
	logger.FromContext(ctx).Info("Event created", zap.Int64("event_id", e.ID()), zap.Int64("author_id", author.ID()))
	return resp, nil
}

// Update 仅作者或管理员可更新。上传文件在事务外只写一次，事务重试时复用同一组路径
func (s *ApplicationService) Update(ctx context.Context, userID int64, req UpdateEventRequest, uploads []ImageUpload) (*EventResponse, error) {
	current, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	details, err := toDetails(req.Title, req.Description, req.Open, req.Tags, req.DatesLocations, s.now())
	if err != nil {
		return nil, err
	}
	if err := checkUploads(uploads); err != nil {
		return nil, err
	}

	existing, err := s.eventRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if !existing.CanBeManagedBy(current.ID(), current.IsAdmin()) {
		return nil, event.NewNoPermissionError()
	}
	if len(remove(keptImages(existing, req), req.ImagesToDelete))+len(uploads) > event.MaxImages {
		return nil, tooManyImages()
	}

	uploaded, err := s.storeUploads(ctx, uploads)
	if err != nil {
		return nil, err
	}

	var e *event.Event
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		e, err = s.eventRepo.FindByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if !e.CanBeManagedBy(current.ID(), current.IsAdmin()) {
			return event.NewNoPermissionError()
		}

		images := append(remove(keptImages(e, req), req.ImagesToDelete), uploaded...)
		if len(images) > event.MaxImages {
			return tooManyImages()
		}
		if err := e.Update(details, images); err != nil {
			return err
		}
		return s.eventRepo.Save(ctx, e)
	})
	if err != nil {
		s.discard(ctx, uploaded)
		return nil, err
	}
	return s.withAuthor(ctx, e)
}

func toDetails(title, description string, open bool, tags []string, slots []DateLocationRequest, now time.Time) (event.Details, error) {
	datesLocations, err := toDatesLocations(slots, now)
	if err != nil {
		return event.Details{}, err
	}
	details := event.Details{
		Title:          title,
		Description:    description,
		Open:           open,
		Tags:           tags,
		DatesLocations: datesLocations,
	}
	return details, details.Validate()
}

func checkUploads(uploads []ImageUpload) error {
	for _, u := range uploads {
		if err := event.ValidateImageType(u.Filename, u.ContentType); err != nil {
			return err
		}
	}
	return nil
}

// keptImages 请求未给出标题图时沿用原标题图
func keptImages(e *event.Event, req UpdateEventRequest) []string {
	title := req.TitleImage
	if title == "" {
		title = e.TitleImage()
	}
	images := make([]string, 0, len(req.AdditionalImages)+1)
	if title != "" {
		images = append(images, title)
	}
	return append(images, req.AdditionalImages...)
}

func remove(images, toDelete []string) []string {
	if len(toDelete) == 0 {
		return images
	}
	drop := make(map[string]struct{}, len(toDelete))
	for _, d := range toDelete {
		drop[d] = struct{}{}
	}
	kept := images[:0]
	for _, img := range images {
		if _, ok := drop[img]; !ok {
			kept = append(kept, img)
		}
	}
	return kept
}

// Delete 删除活动及其时间段、标签、图片、参与者和评论
func (s *ApplicationService) Delete(ctx context.Context, userID, eventID int64) error {
	current, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	return s.uow.Execute(ctx, func(ctx context.Context) error {
		e, err := s.eventRepo.FindByID(ctx, eventID)
		if err != nil {
			return err
		}
		if !e.CanBeManagedBy(current.ID(), current.IsAdmin()) {
			return event.NewNoPermissionError()
		}
		if err := s.eventRepo.Delete(ctx, eventID); err != nil {
			return err
		}
		logger.FromContext(ctx).Info("Event deleted", zap.Int64("event_id", eventID), zap.Int64("user_id", userID))
		return nil
	})
}

func (s *ApplicationService) Get(ctx context.Context, eventID int64) (*EventResponse, error) {
	e, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return s.withAuthor(ctx, e)
}

// Search 标题包含 title（不区分大小写），按创建时间倒序
func (s *ApplicationService) Search(ctx context.Context, title string, page shared.PageRequest) (shared.Page[*EventResponse], error) {
	result, err := s.eventRepo.SearchByTitle(ctx, title, page)
	if err != nil {
		return shared.Page[*EventResponse]{}, err
	}

	authorIDs := make([]int64, 0, len(result.Items))
	for _, e := range result.Items {
		authorIDs = append(authorIDs, e.AuthorID())
	}
	authors, err := s.userRepo.FindByIDs(ctx, authorIDs)
	if err != nil {
		return shared.Page[*EventResponse]{}, err
	}
	byID := make(map[int64]*user.User, len(authors))
	for _, a := range authors {
		byID[a.ID()] = a
	}

	return shared.MapPage(result, func(e *event.Event) *EventResponse {
		return toEventResponse(e, byID[e.AuthorID()])
	}), nil
}

func (s *ApplicationService) withAuthor(ctx context.Context, e *event.Event) (*EventResponse, error) {
	authors, err := s.userRepo.FindByIDs(ctx, []int64{e.AuthorID()})
	if err != nil {
		return nil, err
	}
	var author *user.User
	if len(authors) > 0 {
		author = authors[0]
	}
	return toEventResponse(e, author), nil
}

// storeUploads 任一文件失败时删除本次已写入的文件
func (s *ApplicationService) storeUploads(ctx context.Context, uploads []ImageUpload) ([]string, error) {
	paths := make([]string, 0, len(uploads))
	for _, u := range uploads {
		p, err := s.images.Save(ctx, u.Filename, u.ContentType, u.Content)
		if err != nil {
			s.discard(ctx, paths)
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func (s *ApplicationService) discard(ctx context.Context, paths []string) {
	for _, p := range paths {
		if err := s.images.Delete(ctx, p); err != nil {
			logger.FromContext(ctx).Warn("Failed to remove orphaned image", zap.String("path", p), zap.Error(err))
		}
	}
}

func tooManyImages() error {
	return shared.NewValidationError("event", "images", "an event can have at most 5 images")
}
