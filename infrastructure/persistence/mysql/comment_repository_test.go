package mysql

import (
	"context"
	"regexp"
	"testing"

	"greencity/domain/comment"
	"greencity/domain/shared"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoftDeleteRepliesMarksChildren(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventCommentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `event_comments` SET `modified_date`=?,`status`=? WHERE parent_comment_id = ?")).
		WithArgs(sqlmock.AnyArg(), string(comment.StatusDeleted), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.SoftDeleteReplies(context.Background(), 5))
}

func TestCountByEventSkipsDeleted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventCommentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `event_comments`") + ".*" +
		regexp.QuoteMeta("status <> ?")).
		WithArgs(int64(4), string(comment.StatusDeleted)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountByEvent(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestFindByIDHidesDeletedComment(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventCommentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `event_comments` WHERE id = ? AND status <> ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "user_id", "parent_comment_id", "text", "status", "created_date", "modified_date"}))

	c, err := repo.FindByID(context.Background(), 9)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
