package seed

import (
	"context"
	"pupshare/backend/app/db"
	"pupshare/backend/app/models"
	"pupshare/backend/app/repo"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPhotosArePublic(t *testing.T) {
	photos := DefaultPhotos(time.Now())
	require.NotEmpty(t, photos)
	for i, p := range photos {
		assert.Nil(t, p.UserID)
		assert.True(t, p.Public(), p.Title)
		assert.True(t, p.Category.Valid(), p.Title)
		if i > 0 {
			assert.True(t, p.CreatedAt.After(photos[i-1].CreatedAt))
		}
	}
}

func TestSeedOnlyIntoEmptyCollection(t *testing.T) {
	ctx := context.Background()
	gdb, err := db.OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(models.All()...))
	store := repo.NewStore(gdb)

	n, err := Photos(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, len(defaults), n)

	n, err = Photos(ctx, store)
	require.NoError(t, err)
	assert.Zero(t, n)

	count, err := store.Count(ctx, repo.Photos, "is_default = ?", true)
	require.NoError(t, err)
	assert.EqualValues(t, len(defaults), count)

	puppy, err := repo.NewTagRepository(gdb).Find(ctx, "puppy")
	require.NoError(t, err)
	require.NotNil(t, puppy)
	assert.EqualValues(t, 4, puppy.Count)
}
