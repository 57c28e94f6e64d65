package mocks

import (
	"context"
	"testing"
	"time"

	"greencity/domain/friend"
	"greencity/domain/shared"
	"greencity/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedGraph(t *testing.T) *MockFriendRepository {
	t.Helper()
	users := NewEmptyUserRepository()
	for _, dto := range []user.ReconstructionDTO{
		{ID: 1, Name: "olena", City: "Lviv", Rating: 10},
		{ID: 2, Name: "taras", City: "Lviv", Rating: 30},
		{ID: 3, Name: "iryna", City: "Lviv", Rating: 50},
		{ID: 4, Name: "bohdan", City: "Kyiv", Rating: 70},
		{ID: 5, Name: "mariia", City: "Lviv", Rating: 20},
	} {
		users.Put(user.RebuildFromDTO(dto))
	}

	repo := NewMockFriendRepository(users)
	ctx := context.Background()
	now := time.Now()
	for _, e := range [][2]int64{{1, 2}, {1, 3}, {2, 5}, {3, 5}, {3, 4}, {4, 1}} {
		f, err := friend.NewFriendRequest(e[0], e[1], now)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, f))
	}
	return repo
}

func TestFriendsOfFriendsAreDistinct(t *testing.T) {
	repo := seedGraph(t)

	users, err := repo.FindFriendsOfFriends(context.Background(), 1)
	require.NoError(t, err)

	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID()
	}
	assert.Equal(t, []int64{4, 5}, ids)

	inCity, err := repo.FindFriendsOfFriendsInCity(context.Background(), 1, "Lviv")
	require.NoError(t, err)
	require.Len(t, inCity, 1)
	assert.Equal(t, int64(5), inCity[0].ID())
}

func TestFriendsSharingHabitsOrderedByRating(t *testing.T) {
	repo := seedGraph(t)
	repo.AssignHabit(2, 100, friend.HabitInProgress)
	repo.AssignHabit(3, 100, friend.HabitAcquired)

	page, err := repo.FindFriendsSharingHabits(context.Background(), 1, []int64{100}, "Lviv", shared.NewPageRequest(0, 6))
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Items[0].ID())
	assert.Equal(t, int64(2), page.Items[1].ID())
}

func TestMutualFriendsAndStats(t *testing.T) {
	repo := seedGraph(t)
	repo.AssignHabit(5, 7, friend.HabitInProgress)
	repo.AssignHabit(5, 8, friend.HabitAcquired)
	repo.AssignHabit(5, 9, friend.HabitAcquired)
	repo.SetNewsPublished(5, 4)

	mutual, err := repo.CountMutualFriends(context.Background(), 2, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), mutual)

	stats, err := repo.Stats(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, friend.Stats{HabitsInProgress: 1, HabitsAcquired: 2, NewsPublished: 4}, stats)
}

func TestCreateDuplicateRequest(t *testing.T) {
	repo := seedGraph(t)

	f, err := friend.NewFriendRequest(1, 2, time.Now())
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(context.Background(), f), friend.ErrRequestAlreadyPending)
}
