package services

import (
	"context"
	"encoding/json"
	"pupshare/backend/app/models"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.user(t, "liker")
	p := e.photo(t, "", models.StatusApproved)

	n, err := e.social.Like(ctx, u.ID, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = e.social.Like(ctx, u.ID, p.ID)
	requireKind(t, err, ErrConflict)

	n, err = e.social.LikeCount(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	liked, err := e.social.IsLikedBy(ctx, p.ID, u.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	liked, err = e.social.IsLikedBy(ctx, p.ID, "")
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestConcurrentLikesCountOnce(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.user(t, "liker")
	p := e.photo(t, "", models.StatusApproved)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.social.Like(ctx, u.ID, p.ID)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		requireKind(t, err, ErrConflict)
	}
	assert.Equal(t, 1, ok)
	n, err := e.social.LikeCount(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestUnlike(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.user(t, "liker")
	p := e.photo(t, "", models.StatusApproved)

	_, err := e.social.Unlike(ctx, u.ID, p.ID)
	requireKind(t, err, ErrNotFound)

	_, err = e.social.Like(ctx, u.ID, p.ID)
	require.NoError(t, err)
	n, err := e.social.Unlike(ctx, u.ID, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	_, err = e.social.Like(ctx, u.ID, "missing")
	requireKind(t, err, ErrNotFound)
}

func TestGalleryOrdersByLikes(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	a := e.user(t, "alice")
	b := e.user(t, "bob")
	first := e.photo(t, "", models.StatusApproved)
	second := e.photo(t, "", models.StatusApproved)
	third := e.photo(t, a.ID, models.StatusApproved)
	e.photo(t, a.ID, models.StatusPending)

	for _, like := range []struct{ user, photo string }{
		{a.ID, third.ID}, {b.ID, third.ID}, {a.ID, second.ID},
	} {
		_, err := e.social.Like(ctx, like.user, like.photo)
		require.NoError(t, err)
	}

	views, err := e.social.Gallery(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, []string{views[0].ID, views[1].ID, views[2].ID})
	assert.EqualValues(t, 2, views[0].LikeCount)
	assert.True(t, views[0].IsLiked)
	assert.False(t, views[1].IsLiked)
}

func TestPublicViewHidesOwnerDetails(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	e.photo(t, owner.ID, models.StatusApproved)

	views, err := e.social.Gallery(ctx, "")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Nil(t, views[0].UserID)
	require.NotNil(t, views[0].User)
	assert.Equal(t, "owner", views[0].User.Username)

	b, err := json.Marshal(views[0])
	require.NoError(t, err)
	assert.NotContains(t, string(b), "email")
	assert.NotContains(t, string(b), "password")
	assert.NotContains(t, string(b), owner.Email)
}

func TestLikedPhotosSkipsUnpublished(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	fan := e.user(t, "fan")
	kept := e.photo(t, owner.ID, models.StatusApproved)
	hidden := e.photo(t, owner.ID, models.StatusApproved)

	for _, p := range []*models.Photo{hidden, kept} {
		_, err := e.social.Like(ctx, fan.ID, p.ID)
		require.NoError(t, err)
	}
	_, err := e.visibility.RequestVisibilityChange(ctx, hidden.ID, owner.ID, false)
	require.NoError(t, err)

	views, err := e.social.LikedPhotos(ctx, fan.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, kept.ID, views[0].ID)
	assert.True(t, views[0].IsLiked)
}
