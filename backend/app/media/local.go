// Package media stores uploaded images. The core only keeps the returned URL.
package media

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// Kind selects the target directory and size bounds of an upload.
type Kind string

const (
	KindPhoto  Kind = "photos"
	KindAvatar Kind = "avatars"
)

const avatarSize = 300

var ErrNotImage = errors.New("uploaded file is not a supported image")

// Store is the media collaborator: it turns an uploaded file into a URL and
// can later remove what it stored.
type Store interface {
	Save(ctx context.Context, kind Kind, r io.Reader) (string, error)
	Remove(url string) error
}

// LocalStore writes re-encoded images below Dir and serves them under URLPrefix.
type LocalStore struct {
	Dir       string
	URLPrefix string
	MaxWidth  uint
}

func NewLocalStore(dir, urlPrefix string, maxWidth uint) *LocalStore {
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}
	return &LocalStore{Dir: dir, URLPrefix: urlPrefix, MaxWidth: maxWidth}
}

func (s *LocalStore) Save(ctx context.Context, kind Kind, r io.Reader) (string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch kind {
	case KindAvatar:
		img = resize.Thumbnail(avatarSize, avatarSize, img, resize.Lanczos3)
	default:
		if s.MaxWidth > 0 && uint(img.Bounds().Dx()) > s.MaxWidth {
			img = resize.Resize(s.MaxWidth, 0, img, resize.Lanczos3)
		}
	}

	ext := ".jpg"
	if format == "png" {
		ext = ".png"
	}
	rel := filepath.Join(string(kind), uuid.NewString()+ext)
	full := filepath.Join(s.Dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	if ext == ".png" {
		err = png.Encode(f, img)
	} else {
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 85})
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("encode media: %w", err)
	}
	return s.URLPrefix + filepath.ToSlash(rel), nil
}

// Remove deletes a file previously returned by Save. URLs that were not
// produced by this store (external image URLs, seed photos) are ignored.
func (s *LocalStore) Remove(url string) error {
	if !s.Owns(url) {
		return nil
	}
	rel := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(url, s.URLPrefix)))
	if rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return fmt.Errorf("refusing to remove %q", url)
	}
	err := os.Remove(filepath.Join(s.Dir, rel))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *LocalStore) Owns(url string) bool {
	return strings.HasPrefix(url, s.URLPrefix)
}
