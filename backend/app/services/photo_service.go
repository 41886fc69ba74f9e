package services

import (
	"context"
	"errors"
	"io"
	"pupshare/backend/app/dto"
	"pupshare/backend/app/media"
	"pupshare/backend/app/models"
	"pupshare/backend/app/repo"
	"pupshare/backend/global"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PhotoService struct {
	store  *repo.Store
	photos *repo.PhotoRepository
	tags   *TagService
	social *SocialService
	media  media.Store
}

func NewPhotoService(store *repo.Store, photos *repo.PhotoRepository, tags *TagService, social *SocialService, m media.Store) *PhotoService {
	return &PhotoService{store: store, photos: photos, tags: tags, social: social, media: m}
}

// Upload stores a new private photo for ownerID. The image comes either from
// file (re-encoded by the media store) or from in.ImageURL.
func (s *PhotoService) Upload(ctx context.Context, ownerID string, in dto.UploadPhoto, file io.Reader) (*models.Photo, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, Invalid("Title is required")
	}
	if err := dto.Validate(&in); err != nil {
		return nil, Invalid("%s", err.Error())
	}
	category := models.CategoryPuppies
	if in.Category != "" {
		category = models.Category(in.Category)
		if !category.Valid() {
			return nil, Invalid("Invalid category")
		}
	}

	var imageURL string
	if file != nil {
		url, err := s.media.Save(ctx, media.KindPhoto, file)
		if err != nil {
			if errors.Is(err, media.ErrNotImage) {
				return nil, Invalid("Uploaded file is not a supported image")
			}
			return nil, err
		}
		imageURL = url
	} else {
		imageURL = strings.TrimSpace(in.ImageURL)
		if imageURL == "" {
			return nil, Invalid("Image URL or file is required")
		}
	}

	owner := ownerID
	now := time.Now()
	photo := &models.Photo{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    imageURL,
		UserID:      &owner,
		Category:    category,
		Status:      models.StatusPrivate,
		IsDefault:   false,
		MediaOwned:  file != nil,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.store.MutateMany(ctx, []repo.Collection{repo.Photos, repo.Tags}, func(tx *gorm.DB) error {
		tags, err := s.tags.attachTx(ctx, tx, in.Tags)
		if err != nil {
			return err
		}
		photo.Tags = tags
		return s.photos.WithTx(tx).Create(ctx, photo)
	})
	if err != nil {
		if file != nil {
			if rerr := s.media.Remove(imageURL); rerr != nil {
				global.Logger.Warn().Err(rerr).Str("url", imageURL).Msg("remove orphaned upload")
			}
		}
		return nil, err
	}
	return photo, nil
}

// Update applies patch to a photo owned by userID. Unknown categories are
// rejected; a non-nil Tags slice replaces the tag list and bumps its tags.
func (s *PhotoService) Update(ctx context.Context, photoID, userID string, patch dto.PhotoPatch) (*models.Photo, error) {
	if err := dto.Validate(&patch); err != nil {
		return nil, Invalid("%s", err.Error())
	}
	var category models.Category
	if patch.Category != nil {
		category = models.Category(*patch.Category)
		if !category.Valid() {
			return nil, Invalid("Invalid category")
		}
	}

	var out *models.Photo
	err := s.store.MutateMany(ctx, []repo.Collection{repo.Photos, repo.Tags}, func(tx *gorm.DB) error {
		photos := s.photos.WithTx(tx)
		p, err := photos.FindByID(ctx, photoID)
		if err != nil {
			return err
		}
		if p == nil {
			return NotFound("Photo not found")
		}
		if !p.OwnedBy(userID) {
			return Forbidden("You do not have permission to modify this photo")
		}
		if patch.Title != nil {
			title := strings.TrimSpace(*patch.Title)
			if title == "" {
				return Invalid("Title is required")
			}
			p.Title = title
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Category != nil {
			p.Category = category
		}
		if patch.Tags != nil {
			tags, err := s.tags.attachTx(ctx, tx, patch.Tags)
			if err != nil {
				return err
			}
			p.Tags = tags
		}
		p.UpdatedAt = time.Now()
		if err := photos.Save(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MyPhotos lists every photo owned by userID, whatever its status.
func (s *PhotoService) MyPhotos(ctx context.Context, userID string) ([]dto.PhotoView, error) {
	photos, err := s.photos.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.social.Enrich(ctx, photos, userID, false)
}

// Get returns a single photo. Non-public photos are only visible to their
// owner and to admins.
func (s *PhotoService) Get(ctx context.Context, photoID string, viewer Actor) (*dto.PhotoView, error) {
	p, err := s.photos.FindByID(ctx, photoID)
	if err != nil {
		return nil, err
	}
	if p == nil || (!p.Public() && !p.OwnedBy(viewer.ID) && !viewer.IsAdmin) {
		return nil, NotFound("Photo not found")
	}
	views, err := s.social.Enrich(ctx, []models.Photo{*p}, viewer.ID, !viewer.IsAdmin && !p.OwnedBy(viewer.ID))
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}
