package services

import (
	"context"
	"pupshare/backend/app/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerationQueueAndStats(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	admin := e.user(t, "admin")
	e.photo(t, "", models.StatusApproved)
	pending := e.photo(t, owner.ID, models.StatusPending)
	e.photo(t, owner.ID, models.StatusPrivate)
	_, err := e.comments.Add(ctx, pending.ID, owner.ID, "please approve")
	require.NoError(t, err)

	queue, err := e.moderation.ListPending(ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, pending.ID, queue[0].ID)
	require.NotNil(t, queue[0].UserID)
	assert.Equal(t, owner.ID, *queue[0].UserID)

	st, err := e.moderation.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.TotalUsers)
	assert.Equal(t, int64(3), st.TotalPhotos)
	assert.Equal(t, int64(1), st.PendingPhotos)
	assert.Equal(t, int64(1), st.ApprovedPhotos)
	assert.Equal(t, int64(1), st.TotalComments)

	_, err = e.moderation.Approve(ctx, pending.ID, admin.ID)
	require.NoError(t, err)
	st, err = e.moderation.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), st.PendingPhotos)
	assert.Equal(t, int64(2), st.ApprovedPhotos)
}

func TestSetUserRole(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.user(t, "promoted")

	got, err := e.moderation.SetUserRole(ctx, u.ID, true)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)
	got, err = e.moderation.SetUserRole(ctx, u.ID, false)
	require.NoError(t, err)
	assert.False(t, got.IsAdmin)

	_, err = e.moderation.SetUserRole(ctx, "missing", true)
	requireKind(t, err, ErrNotFound)
}

func TestAdminDeletes(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.user(t, "author")
	seed := e.photo(t, "", models.StatusApproved)
	c, err := e.comments.Add(ctx, seed.ID, u.ID, "hi")
	require.NoError(t, err)

	require.NoError(t, e.moderation.DeleteComment(ctx, c.ID))
	requireKind(t, e.moderation.DeleteComment(ctx, c.ID), ErrNotFound)

	require.NoError(t, e.moderation.DeletePhoto(ctx, seed.ID))
	assert.Nil(t, e.reload(t, seed.ID))
	requireKind(t, e.moderation.DeletePhoto(ctx, seed.ID), ErrNotFound)
}
