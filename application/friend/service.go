/*
Package friend 好友关系与社交图查询

好友关系是 users_friends 中的有向边 user -> friend。
接受、拒绝、删除好友都作用于同一方向的边。
*/
package friend

import (
	"context"
	"time"

	"greencity/domain/friend"
	"greencity/domain/shared"
	"greencity/domain/user"
	"greencity/pkg/logger"

	"go.uber.org/zap"
)

type ApplicationService struct {
	friendRepo friend.Repository
	userRepo   user.Repository
	uow        shared.UnitOfWork
	now        func() time.Time
}

func NewApplicationService(friendRepo friend.Repository, userRepo user.Repository, uow shared.UnitOfWork) *ApplicationService {
	return &ApplicationService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
		uow:        uow,
		now:        time.Now,
	}
}

// GetAllUserFriends 同城且至少有一个共同习惯的好友，按评分倒序
func (s *ApplicationService) GetAllUserFriends(ctx context.Context, userID int64, page shared.PageRequest) (shared.Page[*FriendResponse], error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return shared.Page[*FriendResponse]{}, err
	}
	habits, err := s.friendRepo.HabitIDs(ctx, userID)
	if err != nil {
		return shared.Page[*FriendResponse]{}, err
	}
	if len(habits) == 0 {
		return shared.NewPage[*FriendResponse](nil, 0, page), nil
	}

	result, err := s.friendRepo.FindFriendsSharingHabits(ctx, userID, habits, u.City(), page)
	if err != nil {
		return shared.Page[*FriendResponse]{}, err
	}
	items, err := s.toResponses(ctx, userID, result.Items)
	if err != nil {
		return shared.Page[*FriendResponse]{}, err
	}
	return shared.Page[*FriendResponse]{
		Items:         items,
		TotalElements: result.TotalElements,
		CurrentPage:   result.CurrentPage,
		PageSize:      result.PageSize,
	}, nil
}

// GetFriendProfile mutualFriends 相对于当前用户计算，匿名访问时为 0
func (s *ApplicationService) GetFriendProfile(ctx context.Context, currentUserID, userID int64) (*FriendResponse, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, currentUserID, u)
}

func (s *ApplicationService) CountFriendRelations(ctx context.Context, userID int64) (int64, error) {
	if err := s.mustExist(ctx, userID); err != nil {
		return 0, err
	}
	return s.friendRepo.CountRelations(ctx, userID)
}

func (s *ApplicationService) FriendCount(ctx context.Context, userID int64) (int64, error) {
	if err := s.mustExist(ctx, userID); err != nil {
		return 0, err
	}
	return s.friendRepo.CountAccepted(ctx, userID)
}

// SearchUsers name 或 first_name 包含 term 的用户，不含自己
func (s *ApplicationService) SearchUsers(ctx context.Context, userID int64, term string, page shared.PageRequest) (shared.Page[*FriendResponse], error) {
	if err := s.mustExist(ctx, userID); err != nil {
		return shared.Page[*FriendResponse]{}, err
	}
	result, err := s.friendRepo.SearchUsers(ctx, userID, term, page)
	if err != nil {
		return shared.Page[*FriendResponse]{}, err
	}
	items, err := s.toResponses(ctx, userID, result.Items)
	if err != nil {
		return shared.Page[*FriendResponse]{}, err
	}
	return shared.Page[*FriendResponse]{
		Items:         items,
		TotalElements: result.TotalElements,
		CurrentPage:   result.CurrentPage,
		PageSize:      result.PageSize,
	}, nil
}

// SendRequest 创建 PENDING 边；已存在 PENDING 时返回冲突
func (s *ApplicationService) SendRequest(ctx context.Context, userID, friendID int64) error {
	req, err := friend.NewFriendRequest(userID, friendID, s.now())
	if err != nil {
		return err
	}
	if err := s.mustExist(ctx, userID); err != nil {
		return err
	}
	if err := s.mustExist(ctx, friendID); err != nil {
		return err
	}

	return s.uow.Execute(ctx, func(ctx context.Context) error {
		existing, err := s.friendRepo.FindFriendship(ctx, userID, friendID)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.IsPending() {
				return friend.NewRequestAlreadyPendingError(userID, friendID)
			}
			return shared.NewConflictError("friend", "users are already friends")
		}
		if err := s.friendRepo.Create(ctx, req); err != nil {
			return err
		}
		logger.FromContext(ctx).Info("Friend request sent", zap.Int64("user_id", userID), zap.Int64("friend_id", friendID))
		return nil
	})
}

// RejectRequest 删除 PENDING 边
func (s *ApplicationService) RejectRequest(ctx context.Context, userID, friendID int64) error {
	return s.uow.Execute(ctx, func(ctx context.Context) error {
		existing, err := s.friendRepo.FindFriendship(ctx, userID, friendID)
		if err != nil {
			return err
		}
		if existing == nil || !existing.IsPending() {
			return friend.NewFriendRequestNotFoundError(userID, friendID)
		}
		return s.friendRepo.Delete(ctx, userID, friendID)
	})
}

func (s *ApplicationService) AcceptRequest(ctx context.Context, userID, friendID int64) error {
	return s.uow.Execute(ctx, func(ctx context.Context) error {
		existing, err := s.friendRepo.FindFriendship(ctx, userID, friendID)
		if err != nil {
			return err
		}
		if existing == nil {
			return friend.NewFriendRequestNotFoundError(userID, friendID)
		}
		if err := existing.Accept(); err != nil {
			return err
		}
		if err := s.friendRepo.UpdateStatus(ctx, existing); err != nil {
			return err
		}
		logger.FromContext(ctx).Info("Friend request accepted", zap.Int64("user_id", userID), zap.Int64("friend_id", friendID))
		return nil
	})
}

// Unfriend 只能删除 ACCEPTED 边
func (s *ApplicationService) Unfriend(ctx context.Context, userID, friendID int64) error {
	return s.uow.Execute(ctx, func(ctx context.Context) error {
		existing, err := s.friendRepo.FindFriendship(ctx, userID, friendID)
		if err != nil {
			return err
		}
		if existing == nil || !existing.IsAccepted() {
			return friend.NewFriendNotFoundError(userID, friendID)
		}
		return s.friendRepo.Delete(ctx, userID, friendID)
	})
}

func (s *ApplicationService) UsersInSameCity(ctx context.Context, userID int64) ([]*FriendResponse, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	users, err := s.friendRepo.FindUsersInCity(ctx, userID, u.City())
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, userID, users)
}

func (s *ApplicationService) MutualFriends(ctx context.Context, userID int64) ([]*FriendResponse, error) {
	if err := s.mustExist(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.friendRepo.FindFriendsOfFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, userID, users)
}

// MutualCityFriends 结果为空时返回 404
func (s *ApplicationService) MutualCityFriends(ctx context.Context, userID int64) ([]*FriendResponse, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	users, err := s.friendRepo.FindFriendsOfFriendsInCity(ctx, userID, u.City())
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, shared.NewDomainError(shared.ErrNotFound, "friend", "no mutual friends found in the same city")
	}
	return s.toResponses(ctx, userID, users)
}

// Recommendations 同城的好友的好友，且至少有一个进行中或已养成的习惯
func (s *ApplicationService) Recommendations(ctx context.Context, userID int64) ([]*FriendResponse, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	users, err := s.friendRepo.FindRecommendations(ctx, userID, u.City())
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, userID, users)
}

func (s *ApplicationService) mustExist(ctx context.Context, userID int64) error {
	ok, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return user.NewUserNotFoundError(userID)
	}
	return nil
}

func (s *ApplicationService) toResponses(ctx context.Context, viewerID int64, users []*user.User) ([]*FriendResponse, error) {
	result := make([]*FriendResponse, 0, len(users))
	for _, u := range users {
		r, err := s.toResponse(ctx, viewerID, u)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, nil
}

func (s *ApplicationService) toResponse(ctx context.Context, viewerID int64, u *user.User) (*FriendResponse, error) {
	stats, err := s.friendRepo.Stats(ctx, u.ID())
	if err != nil {
		return nil, err
	}
	var mutual int64
	if viewerID != 0 && viewerID != u.ID() {
		if mutual, err = s.friendRepo.CountMutualFriends(ctx, viewerID, u.ID()); err != nil {
			return nil, err
		}
	}
	return &FriendResponse{
		ID:                     u.ID(),
		Name:                   u.Name(),
		Rating:                 u.Rating(),
		OnlineStatus:           u.IsOnline(s.now()),
		ProfilePicturePath:     u.ProfilePicturePath(),
		City:                   u.City(),
		UserCredo:              u.UserCredo(),
		AmountHabitsInProgress: stats.HabitsInProgress,
		AmountHabitsAcquired:   stats.HabitsAcquired,
		AmountNewsPublished:    stats.NewsPublished,
		MutualFriends:          mutual,
	}, nil
}
