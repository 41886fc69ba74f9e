package repo

import (
	"context"
	"errors"
	"pupshare/backend/app/models"

	"gorm.io/gorm"
)

type PhotoRepository struct{ db *gorm.DB }

func NewPhotoRepository(db *gorm.DB) *PhotoRepository { return &PhotoRepository{db: db} }

func (r *PhotoRepository) WithTx(tx *gorm.DB) *PhotoRepository { return &PhotoRepository{db: tx} }

func (r *PhotoRepository) Create(ctx context.Context, p *models.Photo) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PhotoRepository) CreateBatch(ctx context.Context, photos []models.Photo) error {
	if len(photos) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&photos).Error
}

// FindByID returns nil, nil when the photo does not exist.
func (r *PhotoRepository) FindByID(ctx context.Context, id string) (*models.Photo, error) {
	var p models.Photo
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Save writes every column of p, zero values included.
func (r *PhotoRepository) Save(ctx context.Context, p *models.Photo) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete reports whether a row was removed.
func (r *PhotoRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Photo{})
	return res.RowsAffected > 0, res.Error
}

// ListPublic returns approved default photos in insertion order.
func (r *PhotoRepository) ListPublic(ctx context.Context) ([]models.Photo, error) {
	return r.list(ctx, "is_default = ? AND status = ?", true, models.StatusApproved)
}

func (r *PhotoRepository) ListPublicByCategory(ctx context.Context, c models.Category) ([]models.Photo, error) {
	return r.list(ctx, "is_default = ? AND status = ? AND category = ?", true, models.StatusApproved, c)
}

func (r *PhotoRepository) ListByStatus(ctx context.Context, status models.PhotoStatus) ([]models.Photo, error) {
	return r.list(ctx, "status = ?", status)
}

func (r *PhotoRepository) ListByUser(ctx context.Context, userID string) ([]models.Photo, error) {
	return r.list(ctx, "user_id = ?", userID)
}

func (r *PhotoRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Photo, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, "id IN ?", ids)
}

func (r *PhotoRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	return n, r.db.WithContext(ctx).Model(&models.Photo{}).Count(&n).Error
}

func (r *PhotoRepository) list(ctx context.Context, query string, args ...any) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.WithContext(ctx).Where(query, args...).Order("created_at ASC, id ASC").Find(&photos).Error
	return photos, err
}
