package friend

import (
	"context"
	"testing"
	"time"

	"greencity/domain/friend"
	"greencity/domain/shared"
	"greencity/domain/user"
	"greencity/infrastructure/persistence/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc     *ApplicationService
	friends *mocks.MockFriendRepository
}

// newFixture 1 olena, 2 taras, 4 bohdan, 5 mariia 住在 Lviv；3 iryna 住在 Kyiv
func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := mocks.NewMockUserRepository()
	active := fixedNow.Add(-time.Minute)
	users.Put(user.RebuildFromDTO(user.ReconstructionDTO{ID: 4, Name: "bohdan", FirstName: "Bohdan", City: "Lviv", Rating: 70, LastActivityTime: &active}))
	users.Put(user.RebuildFromDTO(user.ReconstructionDTO{ID: 5, Name: "mariia", FirstName: "Mariia", City: "Lviv", Rating: 20}))

	friends := mocks.NewMockFriendRepository(users)
	svc := NewApplicationService(friends, users, mocks.NewMockUnitOfWork())
	svc.now = func() time.Time { return fixedNow }
	return &fixture{svc: svc, friends: friends}
}

func (f *fixture) connect(t *testing.T, edges ...[2]int64) {
	t.Helper()
	ctx := context.Background()
	for _, e := range edges {
		require.NoError(t, f.svc.SendRequest(ctx, e[0], e[1]))
		require.NoError(t, f.svc.AcceptRequest(ctx, e[0], e[1]))
	}
}

func ids(items []*FriendResponse) []int64 {
	out := make([]int64, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestFriendRequestLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.SendRequest(ctx, 1, 2))
	assert.ErrorIs(t, f.svc.SendRequest(ctx, 1, 2), friend.ErrRequestAlreadyPending)
	assert.ErrorIs(t, f.svc.SendRequest(ctx, 1, 1), shared.ErrInvalidInput)
	assert.ErrorIs(t, f.svc.SendRequest(ctx, 1, 99), shared.ErrNotFound)

	assert.ErrorIs(t, f.svc.Unfriend(ctx, 1, 2), shared.ErrNotFound)

	count, err := f.svc.CountFriendRelations(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	accepted, err := f.svc.FriendCount(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, accepted)

	require.NoError(t, f.svc.AcceptRequest(ctx, 1, 2))
	assert.ErrorIs(t, f.svc.AcceptRequest(ctx, 1, 2), shared.ErrNotFound)
	assert.ErrorIs(t, f.svc.RejectRequest(ctx, 1, 2), shared.ErrNotFound)
	assert.ErrorIs(t, f.svc.SendRequest(ctx, 1, 2), shared.ErrConflict)

	accepted, err = f.svc.FriendCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), accepted)

	require.NoError(t, f.svc.Unfriend(ctx, 1, 2))
	accepted, err = f.svc.FriendCount(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, accepted)
}

func TestRejectPendingRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.RejectRequest(ctx, 2, 3), shared.ErrNotFound)
	require.NoError(t, f.svc.SendRequest(ctx, 2, 3))
	require.NoError(t, f.svc.RejectRequest(ctx, 2, 3))

	count, err := f.svc.CountFriendRelations(ctx, 2)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetAllUserFriendsSharesHabitsAndCity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.connect(t, [2]int64{1, 2}, [2]int64{1, 3}, [2]int64{1, 4}, [2]int64{1, 5})

	page, err := f.svc.GetAllUserFriends(ctx, 1, shared.NewPageRequest(0, friend.DefaultFriendsPageSize))
	require.NoError(t, err)
	assert.Empty(t, page.Items, "no habits")

	f.friends.AssignHabit(1, 7, friend.HabitInProgress)
	f.friends.AssignHabit(2, 7, friend.HabitAcquired)
	f.friends.AssignHabit(3, 7, friend.HabitInProgress)
	f.friends.AssignHabit(4, 7, friend.HabitInProgress)
	f.friends.AssignHabit(5, 8, friend.HabitInProgress)
	f.friends.SetNewsPublished(4, 3)

	page, err = f.svc.GetAllUserFriends(ctx, 1, shared.NewPageRequest(0, friend.DefaultFriendsPageSize))
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4}, ids(page.Items))
	assert.Equal(t, int64(2), page.TotalElements)

	bohdan := page.Items[1]
	assert.True(t, bohdan.OnlineStatus)
	assert.Equal(t, int64(1), bohdan.AmountHabitsInProgress)
	assert.Equal(t, int64(3), bohdan.AmountNewsPublished)

	_, err = f.svc.GetAllUserFriends(ctx, 99, shared.NewPageRequest(0, 6))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGraphQueries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.connect(t, [2]int64{1, 2}, [2]int64{2, 4}, [2]int64{2, 3}, [2]int64{1, 3}, [2]int64{3, 5})

	mutual, err := f.svc.MutualFriends(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4, 5}, ids(mutual))

	inCity, err := f.svc.MutualCityFriends(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 5}, ids(inCity))

	_, err = f.svc.MutualCityFriends(ctx, 5)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	f.friends.AssignHabit(5, 1, friend.HabitAcquired)
	recommended, err := f.svc.Recommendations(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, ids(recommended))

	sameCity, err := f.svc.UsersInSameCity(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4, 5}, ids(sameCity))
}

func TestSearchUsersAndProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.connect(t, [2]int64{1, 2}, [2]int64{4, 2})

	page, err := f.svc.SearchUsers(ctx, 2, "A", shared.NewPageRequest(0, 10))
	require.NoError(t, err)
	assert.NotContains(t, ids(page.Items), int64(2))
	assert.Contains(t, ids(page.Items), int64(5))

	profile, err := f.svc.GetFriendProfile(ctx, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, "bohdan", profile.Name)
	assert.Equal(t, int64(1), profile.MutualFriends)

	_, err = f.svc.GetFriendProfile(ctx, 1, 99)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
