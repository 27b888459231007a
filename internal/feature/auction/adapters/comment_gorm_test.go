package adapters

import (
	"context"
	"testing"
	"time"

	"auction_backend/internal/feature/auction/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentGorm_CreateAndList(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedUser(t, db, 2, "bob")
	item := seedItem(t, db, "Lamp", 1, "10", true, nil, baseTime)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	bobID := uint(2)
	ghostID := uint(77)
	second := &entity.Comment{ItemID: item.ID, AuthorID: &bobID, Text: "second", CreatedAt: baseTime.Add(time.Minute)}
	first := &entity.Comment{ItemID: item.ID, AuthorID: &ghostID, Text: "first", CreatedAt: baseTime}
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))
	assert.NotZero(t, second.ID)

	comments, err := repo.ListByItem(ctx, item.ID)

	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text, "oldest first")
	assert.Empty(t, comments[0].AuthorName, "unknown author has no name")
	assert.Equal(t, "bob", comments[1].AuthorName)
	assert.Zero(t, comments[1].Likes)

	none, err := repo.ListByItem(ctx, item.ID+1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCommentGorm_DeletedAuthorKeepsComment(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	seedUser(t, db, 2, "bob")
	item := seedItem(t, db, "Lamp", 1, "10", true, nil, baseTime)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	bobID := uint(2)
	require.NoError(t, repo.Create(ctx, &entity.Comment{ItemID: item.ID, AuthorID: &bobID, Text: "mine", CreatedAt: baseTime}))

	require.NoError(t, db.Exec("DELETE FROM users WHERE id = ?", bobID).Error)

	var m CommentModel
	require.NoError(t, db.First(&m).Error)
	assert.Nil(t, m.AuthorID, "author_id is cleared")
	assert.Equal(t, "mine", m.Text)

	comments, err := repo.ListByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Empty(t, comments[0].AuthorName)
}
