package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeStored(t *testing.T, s *LocalStore, url string) image.Image {
	t.Helper()
	f, err := os.Open(filepath.Join(s.Dir, filepath.FromSlash(strings.TrimPrefix(url, s.URLPrefix))))
	require.NoError(t, err)
	defer f.Close()
	img, _, err := image.Decode(f)
	require.NoError(t, err)
	return img
}

func TestSaveResizesWidePhotos(t *testing.T) {
	s := NewLocalStore(t.TempDir(), "/uploads", 100)
	url, err := s.Save(context.Background(), KindPhoto, bytes.NewReader(pngBytes(t, 400, 200)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/photos/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	img := decodeStored(t, s, url)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestSaveAvatarThumbnail(t *testing.T) {
	s := NewLocalStore(t.TempDir(), "/uploads/", 1200)
	url, err := s.Save(context.Background(), KindAvatar, bytes.NewReader(pngBytes(t, 900, 600)))
	require.NoError(t, err)
	img := decodeStored(t, s, url)
	assert.LessOrEqual(t, img.Bounds().Dx(), avatarSize)
	assert.LessOrEqual(t, img.Bounds().Dy(), avatarSize)
}

func TestSaveRejectsNonImages(t *testing.T) {
	s := NewLocalStore(t.TempDir(), "/uploads/", 1200)
	_, err := s.Save(context.Background(), KindPhoto, strings.NewReader("definitely not a png"))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestRemove(t *testing.T) {
	s := NewLocalStore(t.TempDir(), "/uploads/", 1200)
	url, err := s.Save(context.Background(), KindPhoto, bytes.NewReader(pngBytes(t, 10, 10)))
	require.NoError(t, err)

	require.NoError(t, s.Remove(url))
	_, err = os.Stat(filepath.Join(s.Dir, filepath.FromSlash(strings.TrimPrefix(url, s.URLPrefix))))
	assert.True(t, os.IsNotExist(err))

	// already gone and foreign URLs are fine
	assert.NoError(t, s.Remove(url))
	assert.NoError(t, s.Remove("https://images.unsplash.com/photo.jpg"))
	assert.Error(t, s.Remove("/uploads/../../etc/passwd"))
}
