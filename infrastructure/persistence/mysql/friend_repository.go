package mysql

import (
	"context"
	"errors"

	"greencity/domain/friend"
	"greencity/domain/shared"
	"greencity/domain/user"
	"greencity/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// Graph queries. Edges of any status take part in the graph walks.
const (
	friendsSharingHabitsFrom = `FROM users_friends uf
JOIN habit_assign ha ON uf.friend_id = ha.user_id
JOIN users u ON uf.friend_id = u.id
WHERE uf.user_id = ? AND ha.habit_id IN ? AND u.city = ?`

	searchUsersFrom = `FROM users u
WHERE (u.name LIKE ? OR u.first_name LIKE ?) AND u.id <> ?`

	usersInCityQuery = `SELECT u.* FROM users u
WHERE u.city = ? AND u.id <> ?
ORDER BY u.id`

	friendsOfFriendsQuery = `SELECT DISTINCT u.* FROM users u
JOIN users_friends uf1 ON u.id = uf1.friend_id
JOIN users_friends uf2 ON uf1.user_id = uf2.friend_id
WHERE uf2.user_id = ? AND u.id <> ?
ORDER BY u.id`

	friendsOfFriendsInCityQuery = `SELECT DISTINCT u.* FROM users u
JOIN users_friends uf1 ON u.id = uf1.friend_id
JOIN users_friends uf2 ON uf1.user_id = uf2.friend_id
WHERE uf2.user_id = ? AND u.city = ? AND u.id <> ?
ORDER BY u.id`

	recommendationsQuery = `SELECT DISTINCT u.* FROM users u
JOIN users_friends uf1 ON u.id = uf1.friend_id
JOIN users_friends uf2 ON uf1.user_id = uf2.friend_id
JOIN habit_assign h ON u.id = h.user_id
WHERE uf2.user_id = ? AND u.city = ? AND u.id <> ?
AND (h.status = ? OR h.status = ?)
ORDER BY u.id`

	mutualFriendsCountQuery = `SELECT COUNT(DISTINCT uf1.friend_id) FROM users_friends uf1
JOIN users_friends uf2 ON uf1.friend_id = uf2.friend_id
WHERE uf1.user_id = ? AND uf2.user_id = ?`

	statsQuery = `SELECT
(SELECT COUNT(*) FROM habit_assign WHERE user_id = ? AND status = ?) AS habits_in_progress,
(SELECT COUNT(*) FROM habit_assign WHERE user_id = ? AND status = ?) AS habits_acquired,
(SELECT COUNT(*) FROM eco_news WHERE author_id = ?) AS news_published`
)

type FriendRepository struct {
	baseRepository
}

func NewFriendRepository(db *gorm.DB) *FriendRepository {
	return &FriendRepository{baseRepository{db: db}}
}

func (r *FriendRepository) FindFriendship(ctx context.Context, userID, friendID int64) (*friend.Friendship, error) {
	var edge po.UserFriendPO
	result := r.getDB(ctx).First(&edge, "user_id = ? AND friend_id = ?", userID, friendID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return edge.ToDomain(), nil
}

func (r *FriendRepository) Create(ctx context.Context, f *friend.Friendship) error {
	if err := r.getDB(ctx).Create(po.FromFriendshipDomain(f)).Error; err != nil {
		if isDuplicateKeyError(err) {
			return friend.NewRequestAlreadyPendingError(f.UserID(), f.FriendID())
		}
		return notSaved("friend", err)
	}
	return nil
}

func (r *FriendRepository) UpdateStatus(ctx context.Context, f *friend.Friendship) error {
	result := r.getDB(ctx).Model(&po.UserFriendPO{}).
		Where("user_id = ? AND friend_id = ?", f.UserID(), f.FriendID()).
		Update("status", string(f.Status()))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return friend.NewFriendRequestNotFoundError(f.UserID(), f.FriendID())
	}
	return nil
}

func (r *FriendRepository) Delete(ctx context.Context, userID, friendID int64) error {
	return r.getDB(ctx).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Delete(&po.UserFriendPO{}).Error
}

func (r *FriendRepository) CountRelations(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.UserFriendPO{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *FriendRepository) CountAccepted(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.UserFriendPO{}).
		Where("user_id = ? AND status = ?", userID, string(friend.StatusAccepted)).
		Count(&count).Error
	return count, err
}

func (r *FriendRepository) CountMutualFriends(ctx context.Context, userID, otherID int64) (int64, error) {
	var count int64
	err := r.getDB(ctx).Raw(mutualFriendsCountQuery, userID, otherID).Scan(&count).Error
	return count, err
}

func (r *FriendRepository) FindFriendsSharingHabits(ctx context.Context, userID int64, habitIDs []int64, city string, page shared.PageRequest) (shared.Page[*user.User], error) {
	if len(habitIDs) == 0 {
		return shared.NewPage[*user.User](nil, 0, page), nil
	}
	return r.rawPage(ctx, friendsSharingHabitsFrom, "u.rating DESC, u.id ASC", page, userID, habitIDs, city)
}

func (r *FriendRepository) SearchUsers(ctx context.Context, userID int64, term string, page shared.PageRequest) (shared.Page[*user.User], error) {
	like := "%" + term + "%"
	return r.rawPage(ctx, searchUsersFrom, "u.id ASC", page, like, like, userID)
}

// rawPage counts the distinct users of from, then reads one ordered page.
func (r *FriendRepository) rawPage(ctx context.Context, from, orderBy string, page shared.PageRequest, args ...interface{}) (shared.Page[*user.User], error) {
	db := r.getDB(ctx)

	var total int64
	if err := db.Raw("SELECT COUNT(DISTINCT u.id) "+from, args...).Scan(&total).Error; err != nil {
		return shared.Page[*user.User]{}, err
	}
	if total == 0 {
		return shared.NewPage[*user.User](nil, 0, page), nil
	}

	var userPOs []po.UserPO
	query := "SELECT DISTINCT u.* " + from + " ORDER BY " + orderBy + " LIMIT ? OFFSET ?"
	if err := db.Raw(query, append(args, page.Size, page.Offset())...).Scan(&userPOs).Error; err != nil {
		return shared.Page[*user.User]{}, err
	}
	return shared.NewPage(po.UsersToDomain(userPOs), total, page), nil
}

func (r *FriendRepository) FindUsersInCity(ctx context.Context, userID int64, city string) ([]*user.User, error) {
	return r.rawUsers(ctx, usersInCityQuery, city, userID)
}

func (r *FriendRepository) FindFriendsOfFriends(ctx context.Context, userID int64) ([]*user.User, error) {
	return r.rawUsers(ctx, friendsOfFriendsQuery, userID, userID)
}

func (r *FriendRepository) FindFriendsOfFriendsInCity(ctx context.Context, userID int64, city string) ([]*user.User, error) {
	return r.rawUsers(ctx, friendsOfFriendsInCityQuery, userID, city, userID)
}

func (r *FriendRepository) FindRecommendations(ctx context.Context, userID int64, city string) ([]*user.User, error) {
	return r.rawUsers(ctx, recommendationsQuery, userID, city, userID, friend.HabitInProgress, friend.HabitAcquired)
}

func (r *FriendRepository) rawUsers(ctx context.Context, query string, args ...interface{}) ([]*user.User, error) {
	var userPOs []po.UserPO
	if err := r.getDB(ctx).Raw(query, args...).Scan(&userPOs).Error; err != nil {
		return nil, err
	}
	return po.UsersToDomain(userPOs), nil
}

func (r *FriendRepository) HabitIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.getDB(ctx).Model(&po.HabitAssignPO{}).
		Distinct("habit_id").
		Where("user_id = ?", userID).
		Pluck("habit_id", &ids).Error
	return ids, err
}

type statsRow struct {
	HabitsInProgress int64 `gorm:"column:habits_in_progress"`
	HabitsAcquired   int64 `gorm:"column:habits_acquired"`
	NewsPublished    int64 `gorm:"column:news_published"`
}

func (r *FriendRepository) Stats(ctx context.Context, userID int64) (friend.Stats, error) {
	var row statsRow
	err := r.getDB(ctx).Raw(statsQuery,
		userID, friend.HabitInProgress,
		userID, friend.HabitAcquired,
		userID,
	).Scan(&row).Error
	if err != nil {
		return friend.Stats{}, err
	}
	return friend.Stats{
		HabitsInProgress: row.HabitsInProgress,
		HabitsAcquired:   row.HabitsAcquired,
		NewsPublished:    row.NewsPublished,
	}, nil
}

var _ friend.Repository = (*FriendRepository)(nil)
