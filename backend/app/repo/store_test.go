package repo

import (
	"context"
	"errors"
	"pupshare/backend/app/db"
	"pupshare/backend/app/models"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	gdb, err := db.OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(models.All()...))
	return NewStore(gdb)
}

func TestMutateSerializesWriters(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	tags := NewTagRepository(s.DB())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Mutate(ctx, Tags, func(tx *gorm.DB) error {
				return tags.WithTx(tx).Increment(ctx, "corgi")
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	tag, err := tags.Find(ctx, "corgi")
	require.NoError(t, err)
	require.NotNil(t, tag)
	assert.EqualValues(t, 20, tag.Count)
}

func TestMutateRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	photos := NewPhotoRepository(s.DB())

	boom := errors.New("boom")
	err := s.MutateMany(ctx, []Collection{Tags, Photos, Photos}, func(tx *gorm.DB) error {
		now := time.Now()
		p := &models.Photo{ID: "p1", Title: "t", ImageURL: "u", Category: models.CategoryPuppies, Status: models.StatusPrivate, CreatedAt: now, UpdatedAt: now}
		if err := photos.WithTx(tx).Create(ctx, p); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	n, err := s.Count(ctx, Photos, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCountWithCondition(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	photos := NewPhotoRepository(s.DB())
	now := time.Now()
	batch := []models.Photo{
		{ID: "a", Title: "a", ImageURL: "u", Category: models.CategoryPuppies, Status: models.StatusPending, CreatedAt: now, UpdatedAt: now},
		{ID: "b", Title: "b", ImageURL: "u", Category: models.CategoryPuppies, Status: models.StatusApproved, IsDefault: true, CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, photos.CreateBatch(ctx, batch))

	n, err := s.Count(ctx, Photos, "status = ?", models.StatusPending)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	public, err := photos.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "b", public[0].ID)
}

func TestCollectionNames(t *testing.T) {
	assert.Equal(t, "users", Users.String())
	assert.Equal(t, "tags", Tags.String())
}
