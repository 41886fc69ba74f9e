package services

import (
	"context"
	"fmt"
	"pupshare/backend/app/models"
	"pupshare/backend/app/repo"
	"strings"

	"gorm.io/gorm"
)

const (
	MaxTagLength      = 30
	MaxTagsPerPhoto   = 10
	DefaultPopularTag = 20
)

// NormalizeTag lowercases and trims raw, drops every character outside
// [a-z0-9-] and truncates to MaxTagLength. An empty result means "no tag".
func NormalizeTag(raw string) string {
	lowered := strings.TrimSpace(strings.ToLower(raw))
	var b strings.Builder
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
			if b.Len() == MaxTagLength {
				break
			}
		}
	}
	return b.String()
}

// NormalizeTags normalizes every entry, drops empties and keeps the first
// MaxTagsPerPhoto in input order. Duplicates are kept.
func NormalizeTags(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		t := NormalizeTag(r)
		if t == "" {
			continue
		}
		out = append(out, t)
		if len(out) == MaxTagsPerPhoto {
			break
		}
	}
	return out
}

type TagService struct {
	store  *repo.Store
	tags   *repo.TagRepository
	photos *repo.PhotoRepository
}

func NewTagService(store *repo.Store, tags *repo.TagRepository, photos *repo.PhotoRepository) *TagService {
	return &TagService{store: store, tags: tags, photos: photos}
}

// BumpTag increments the usage count of an already normalized tag.
func (s *TagService) BumpTag(ctx context.Context, tag string) error {
	if tag == "" {
		return Invalid("Invalid tag")
	}
	return s.store.Mutate(ctx, repo.Tags, func(tx *gorm.DB) error {
		return s.tags.WithTx(tx).Increment(ctx, tag)
	})
}

// AttachTags replaces the tag list of a photo with the normalized form of raw
// and bumps every retained tag once per occurrence. Re-attaching the same list
// bumps the counts again.
func (s *TagService) AttachTags(ctx context.Context, photoID string, raw []string) ([]string, error) {
	var attached []string
	err := s.store.MutateMany(ctx, []repo.Collection{repo.Photos, repo.Tags}, func(tx *gorm.DB) error {
		photos := s.photos.WithTx(tx)
		p, err := photos.FindByID(ctx, photoID)
		if err != nil {
			return err
		}
		if p == nil {
			return NotFound("Photo not found")
		}
		attached, err = s.attachTx(ctx, tx, raw)
		if err != nil {
			return err
		}
		p.Tags = attached
		return photos.Save(ctx, p)
	})
	return attached, err
}

// attachTx normalizes raw and bumps each retained tag inside tx. The caller
// must hold the tags writer lock.
func (s *TagService) attachTx(ctx context.Context, tx *gorm.DB, raw []string) ([]string, error) {
	tags := NormalizeTags(raw)
	tagRepo := s.tags.WithTx(tx)
	for _, t := range tags {
		if err := tagRepo.Increment(ctx, t); err != nil {
			return nil, fmt.Errorf("bump tag %q: %w", t, err)
		}
	}
	return tags, nil
}

// PopularTags returns at most limit tags by descending count; limit <= 0
// means DefaultPopularTag.
func (s *TagService) PopularTags(ctx context.Context, limit int) ([]models.Tag, error) {
	if limit <= 0 {
		limit = DefaultPopularTag
	}
	return s.tags.ListPopular(ctx, limit)
}

func (s *TagService) AllTags(ctx context.Context) ([]models.Tag, error) {
	return s.tags.ListPopular(ctx, 0)
}

// PhotosByTag lists public photos carrying the normalized form of raw.
func (s *TagService) PhotosByTag(ctx context.Context, raw string) ([]models.Photo, error) {
	tag := NormalizeTag(raw)
	if tag == "" {
		return nil, Invalid("Invalid tag")
	}
	public, err := s.photos.ListPublic(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Photo, 0)
	for _, p := range public {
		for _, t := range p.Tags {
			if t == tag {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (s *TagService) PhotosByCategory(ctx context.Context, category string) ([]models.Photo, error) {
	c := models.Category(category)
	if !c.Valid() {
		return nil, Invalid("Invalid category")
	}
	return s.photos.ListPublicByCategory(ctx, c)
}
