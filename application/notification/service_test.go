package notification

import (
	"context"
	"testing"
	"time"

	"greencity/config"
	"greencity/domain/shared"
	"greencity/infrastructure/i18n"
	"greencity/infrastructure/persistence/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func newService(t *testing.T) *ApplicationService {
	t.Helper()
	catalog, err := i18n.Load(config.I18nConfig{DefaultLanguage: "en", Languages: []string{"en", "ua"}})
	require.NoError(t, err)

	svc := NewApplicationService(mocks.NewMockNotificationRepository(), mocks.NewMockUserRepository(), catalog)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func create(t *testing.T, svc *ApplicationService, req CreateRequest) *NotificationResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	return resp
}

func TestCreateRendersDefaultLanguage(t *testing.T) {
	svc := newService(t)

	resp := create(t, svc, CreateRequest{
		UserID:        2,
		Type:          "EVENT_COMMENT",
		ProjectName:   "GREEN_CITY",
		MessageParams: []string{"olena", "Tree planting"},
	})
	assert.Equal(t, "New comment", resp.Title)
	assert.Equal(t, "olena commented on your event Tree planting", resp.Message)
	assert.False(t, resp.Viewed)
	assert.Nil(t, resp.ViewedDate)

	_, err := svc.Create(context.Background(), CreateRequest{UserID: 2, Type: "PARTY", ProjectName: "GREEN_CITY"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	_, err = svc.Create(context.Background(), CreateRequest{UserID: 99, Type: "EVENT_COMMENT", ProjectName: "GREEN_CITY"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestReadLocalizes(t *testing.T) {
	svc := newService(t)
	created := create(t, svc, CreateRequest{
		UserID:        2,
		Type:          "FRIEND_REQUEST_RECEIVED",
		ProjectName:   "GREEN_CITY",
		MessageParams: []string{"iryna"},
	})

	got, err := svc.GetByID(context.Background(), created.ID, "ua")
	require.NoError(t, err)
	assert.Equal(t, "Новий запит у друзі", got.Title)
	assert.Equal(t, "iryna надіслав(ла) вам запит у друзі", got.Message)

	got, err = svc.GetByID(context.Background(), created.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "iryna sent you a friend request", got.Message)

	_, err = svc.GetByID(context.Background(), created.ID, "de")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestUnreadAndViewToggle(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 7; i++ {
		svc.now = func() time.Time { return fixedNow.Add(time.Duration(i) * time.Minute) }
		ids = append(ids, create(t, svc, CreateRequest{UserID: 2, Type: "EVENT_CREATED", ProjectName: "GREEN_CITY"}).ID)
	}
	create(t, svc, CreateRequest{UserID: 3, Type: "EVENT_CREATED", ProjectName: "GREEN_CITY"})

	count, err := svc.CountUnread(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)

	latest, err := svc.LatestUnread(ctx, 2, "en")
	require.NoError(t, err)
	require.Len(t, latest, LatestUnreadLimit)
	assert.Equal(t, ids[6], latest[0].ID)

	assert.ErrorIs(t, svc.View(ctx, ids[6], 3), shared.ErrNotFound)
	require.NoError(t, svc.View(ctx, ids[6], 2))

	viewed, err := svc.GetByID(ctx, ids[6], "en")
	require.NoError(t, err)
	assert.True(t, viewed.Viewed)
	require.NotNil(t, viewed.ViewedDate)

	count, err = svc.CountUnread(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)

	require.NoError(t, svc.Unview(ctx, ids[6], 2))
	unviewed, err := svc.GetByID(ctx, ids[6], "en")
	require.NoError(t, err)
	assert.False(t, unviewed.Viewed)
	assert.Nil(t, unviewed.ViewedDate)
}

func TestFilterIsScopedToCurrentUser(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	create(t, svc, CreateRequest{UserID: 2, Type: "EVENT_COMMENT", ProjectName: "GREEN_CITY"})
	create(t, svc, CreateRequest{UserID: 2, Type: "EVENT_CREATED", ProjectName: "PICK_UP"})
	create(t, svc, CreateRequest{UserID: 3, Type: "EVENT_COMMENT", ProjectName: "GREEN_CITY"})

	page, err := svc.Filter(ctx, 2, "user_id:3,type:EVENT_COMMENT", "en", shared.NewPageRequest(0, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Items[0].UserID)

	page, err = svc.Filter(ctx, 2, "project_name:pick_up,viewed:false,unknown:x", "en", shared.NewPageRequest(0, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "PICK_UP", page.Items[0].ProjectName)

	_, err = svc.Filter(ctx, 2, "type:PARTY", "en", shared.NewPageRequest(0, 10))
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	all, err := svc.All(ctx, 2, "en", shared.NewPageRequest(0, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.TotalElements)
}
