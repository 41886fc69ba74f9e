package services

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"pupshare/backend/app/dto"
	"pupshare/backend/app/media"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteOnlyRemovesOwnUpload(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	local := media.NewLocalStore(t.TempDir(), "/uploads/", 0)
	photos := NewPhotoService(e.store, e.photos, e.tags, e.social, local)
	visibility := NewVisibilityService(e.store, e.photos, local, e.notifier)

	onDisk := func(url string) string {
		return filepath.Join(local.Dir, filepath.FromSlash(strings.TrimPrefix(url, local.URLPrefix)))
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))

	author := e.user(t, "author")
	copier := e.user(t, "copier")

	original, err := photos.Upload(ctx, author.ID, dto.UploadPhoto{Title: "mine"}, &buf)
	require.NoError(t, err)
	assert.True(t, original.MediaOwned)
	_, err = os.Stat(onDisk(original.ImageURL))
	require.NoError(t, err)

	linked, err := photos.Upload(ctx, copier.ID, dto.UploadPhoto{Title: "linked", ImageURL: original.ImageURL}, nil)
	require.NoError(t, err)
	assert.False(t, linked.MediaOwned)

	require.NoError(t, visibility.DeletePhoto(ctx, linked.ID, Actor{ID: copier.ID}))
	_, err = os.Stat(onDisk(original.ImageURL))
	assert.NoError(t, err, "deleting a linked photo must keep the uploader's file")

	require.NoError(t, visibility.DeletePhoto(ctx, original.ID, Actor{ID: author.ID}))
	_, err = os.Stat(onDisk(original.ImageURL))
	assert.True(t, os.IsNotExist(err))
}
