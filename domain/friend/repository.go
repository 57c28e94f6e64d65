package friend

import (
	"context"

	"greencity/domain/shared"
	"greencity/domain/user"
)

// Repository owns users_friends and answers the social graph queries,
// which read users, habit_assign and eco_news as well.
type Repository interface {
	// FindFriendship returns nil, nil when there is no edge.
	FindFriendship(ctx context.Context, userID, friendID int64) (*Friendship, error)
	Create(ctx context.Context, f *Friendship) error
	UpdateStatus(ctx context.Context, f *Friendship) error
	Delete(ctx context.Context, userID, friendID int64) error

	// CountRelations counts edges of any status owned by userID.
	CountRelations(ctx context.Context, userID int64) (int64, error)
	CountAccepted(ctx context.Context, userID int64) (int64, error)
	CountMutualFriends(ctx context.Context, userID, otherID int64) (int64, error)

	// FindFriendsSharingHabits lists friends of userID living in city that have
	// at least one of habitIDs, by rating descending.
	FindFriendsSharingHabits(ctx context.Context, userID int64, habitIDs []int64, city string, page shared.PageRequest) (shared.Page[*user.User], error)
	SearchUsers(ctx context.Context, userID int64, term string, page shared.PageRequest) (shared.Page[*user.User], error)
	FindUsersInCity(ctx context.Context, userID int64, city string) ([]*user.User, error)
	FindFriendsOfFriends(ctx context.Context, userID int64) ([]*user.User, error)
	FindFriendsOfFriendsInCity(ctx context.Context, userID int64, city string) ([]*user.User, error)
	FindRecommendations(ctx context.Context, userID int64, city string) ([]*user.User, error)

	HabitIDs(ctx context.Context, userID int64) ([]int64, error)
	Stats(ctx context.Context, userID int64) (Stats, error)
}
