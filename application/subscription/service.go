// Package subscription 新闻订阅的应用服务
package subscription

import (
	"context"

	"greencity/domain/shared"
	"greencity/domain/subscription"
	"greencity/pkg/logger"

	"go.uber.org/zap"
)

type ApplicationService struct {
	repo subscription.Repository
	uow  shared.UnitOfWork
}

func NewApplicationService(repo subscription.Repository, uow shared.UnitOfWork) *ApplicationService {
	return &ApplicationService{repo: repo, uow: uow}
}

func (s *ApplicationService) List(ctx context.Context) ([]*SubscriptionResponse, error) {
	subs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*SubscriptionResponse, len(subs))
	for i, sub := range subs {
		result[i] = toResponse(sub)
	}
	return result, nil
}

// Subscribe 邮箱转小写后唯一
func (s *ApplicationService) Subscribe(ctx context.Context, req SubscribeRequest) (*SubscriptionResponse, error) {
	sub, err := subscription.NewNewsSubscription(req.Email)
	if err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		existing, err := s.repo.FindByEmail(ctx, sub.Email())
		if err != nil {
			return err
		}
		if existing != nil {
			return subscription.NewAlreadySubscribedError(sub.Email())
		}
		return s.repo.Save(ctx, sub)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("News subscription created", zap.Int64("subscription_id", sub.ID()))
	return toResponse(sub), nil
}

// Unsubscribe 按退订令牌删除，返回被删除的订阅
func (s *ApplicationService) Unsubscribe(ctx context.Context, token string) (*SubscriptionResponse, error) {
	var sub *subscription.NewsSubscription
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		if sub, err = s.findByToken(ctx, token); err != nil {
			return err
		}
		return s.repo.Delete(ctx, sub.ID())
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("News subscription removed", zap.Int64("subscription_id", sub.ID()))
	return toResponse(sub), nil
}

func (s *ApplicationService) IsSubscribed(ctx context.Context, email string) (bool, error) {
	normalized, err := subscription.NormalizeEmail(email)
	if err != nil {
		return false, err
	}
	sub, err := s.repo.FindByEmail(ctx, normalized)
	if err != nil {
		return false, err
	}
	return sub != nil, nil
}

func (s *ApplicationService) FindByToken(ctx context.Context, token string) (*SubscriptionResponse, error) {
	sub, err := s.findByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return toResponse(sub), nil
}

func (s *ApplicationService) findByToken(ctx context.Context, token string) (*subscription.NewsSubscription, error) {
	sub, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, subscription.NewSubscriptionNotFoundError()
	}
	return sub, nil
}

func toResponse(s *subscription.NewsSubscription) *SubscriptionResponse {
	return &SubscriptionResponse{ID: s.ID(), Email: s.Email(), Token: s.Token()}
}
