package repository

import (
	"context"
	"regexp"
	"testing"

	"socialconnect/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	comment := &models.Comment{Content: "Nice post!", PostID: 10, AuthorID: 1, IsActive: true}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "comments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "comment_count"=comment_count + 1`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Create(ctx, comment)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_RecentByPostIDsTruncatesPerPost(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	// five active comments on post 10, newest first
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" WHERE post_id IN ($1) AND is_active = $2 ORDER BY created_at DESC, id DESC`)).
		WithArgs(10, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "post_id", "author_id"}).
			AddRow(5, "e", 10, 2).
			AddRow(4, "d", 10, 2).
			AddRow(3, "c", 10, 3).
			AddRow(2, "b", 10, 3).
			AddRow(1, "a", 10, 2))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" IN ($1,$2)`)).
		WithArgs(2, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(2, "bob").
			AddRow(3, "carol"))

	grouped, err := repo.RecentByPostIDs(ctx, []uint{10}, 3)
	require.NoError(t, err)
	require.Len(t, grouped[10], 3)
	assert.Equal(t, "e", grouped[10][0].Content)
	assert.Equal(t, "c", grouped[10][2].Content)
	assert.Equal(t, "bob", grouped[10][0].Author.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_RecentByPostIDsEmptyInput(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	grouped, err := repo.RecentByPostIDs(context.Background(), nil, 3)
	require.NoError(t, err)
	assert.Empty(t, grouped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_SoftDeleteMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "comments" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.SoftDelete(ctx, 99, 10)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
