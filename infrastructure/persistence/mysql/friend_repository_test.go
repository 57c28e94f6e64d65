package mysql

import (
	"context"
	"regexp"
	"testing"

	"greencity/domain/friend"
	"greencity/domain/shared"

	"github.com/DATA-DOG/go-sqlmock"
	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFriendsSharingHabits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT u.id) FROM users_friends uf")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT u.* FROM users_friends uf")).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(7, "olena", "Olena", "olena@example.com", "ROLE_USER", "Lviv", 90.5, "", "", nil).
			AddRow(8, "taras", "Taras", "taras@example.com", "ROLE_USER", "Lviv", 40.0, "", "", nil))

	page, err := repo.FindFriendsSharingHabits(context.Background(), 1, []int64{10, 11}, "Lviv", shared.NewPageRequest(0, 6))
	require.NoError(t, err)

	assert.Equal(t, int64(2), page.TotalElements)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(7), page.Items[0].ID())
	assert.Equal(t, "Lviv", page.Items[1].City())
}

func TestFindFriendsSharingHabitsWithoutHabits(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewFriendRepository(db)

	page, err := repo.FindFriendsSharingHabits(context.Background(), 1, nil, "Lviv", shared.NewPageRequest(0, 6))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.TotalElements)
}

func TestRecommendationsQueryGroupsHabitStatuses(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("AND (h.status = ? OR h.status = ?)")).
		WithArgs(int64(1), "Kyiv", int64(1), friend.HabitInProgress, friend.HabitAcquired).
		WillReturnRows(sqlmock.NewRows(userColumns))

	users, err := repo.FindRecommendations(context.Background(), 1, "Kyiv")
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestStats(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("AS habits_in_progress")).
		WithArgs(int64(3), friend.HabitInProgress, int64(3), friend.HabitAcquired, int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"habits_in_progress", "habits_acquired", "news_published"}).
			AddRow(2, 5, 1))

	stats, err := repo.Stats(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, friend.Stats{HabitsInProgress: 2, HabitsAcquired: 5, NewsPublished: 1}, stats)
}

func TestCreateDuplicateEdge(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `users_friends`")).
		WillReturnError(&mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry '1-2'"})

	f, err := friend.NewFriendRequest(1, 2, fixedNow)
	require.NoError(t, err)

	err = repo.Create(context.Background(), f)
	assert.ErrorIs(t, err, friend.ErrRequestAlreadyPending)
}

func TestFindFriendshipAbsent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users_friends`")).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "friend_id", "status", "created_date"}))

	f, err := repo.FindFriendship(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestUpdateStatusMissingEdge(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `users_friends` SET `status`=?")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	f := friend.RebuildFriendship(1, 2, string(friend.StatusAccepted), fixedNow)
	err := repo.UpdateStatus(context.Background(), f)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestFindFriendsOfFriendsExcludesUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT u.* FROM users u")+
		"(?s).*"+regexp.QuoteMeta("WHERE uf2.user_id = ? AND u.id <> ?")).
		WithArgs(int64(1), int64(1)).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(5, "ivan", "Ivan", "ivan@example.com", "ROLE_USER", "Odesa", 12.0, "", "", nil))

	users, err := repo.FindFriendsOfFriends(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, int64(5), users[0].ID())
}

func TestFindFriendsOfFriendsInCity(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE uf2.user_id = ? AND u.city = ? AND u.id <> ?")).
		WithArgs(int64(1), "Lviv", int64(1)).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(7, "olena", "Olena", "olena@example.com", "ROLE_USER", "Lviv", 90.5, "", "", nil))

	users, err := repo.FindFriendsOfFriendsInCity(context.Background(), 1, "Lviv")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Lviv", users[0].City())
}

func TestCountMutualFriends(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT uf1.friend_id) FROM users_friends uf1")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountMutualFriends(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestSearchUsersCountsThenReadsPage(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT u.id) FROM users u")).
		WithArgs("%ol%", "%ol%", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY u.id ASC LIMIT ? OFFSET ?")).
		WithArgs("%ol%", "%ol%", int64(1), 5, 10).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(7, "olena", "Olena", "olena@example.com", "ROLE_USER", "Lviv", 90.5, "", "", nil))

	page, err := repo.SearchUsers(context.Background(), 1, "ol", shared.NewPageRequest(2, 5))
	require.NoError(t, err)
	assert.Equal(t, int64(11), page.TotalElements)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "olena", page.Items[0].Name())
}

func TestSearchUsersSkipsPageQueryWhenEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT u.id) FROM users u")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	page, err := repo.SearchUsers(context.Background(), 1, "nobody", shared.NewPageRequest(0, 5))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.TotalElements)
}
