package repo

import (
	"context"
	"pupshare/backend/app/models"

	"gorm.io/gorm"
)

type TagRepository struct{ db *gorm.DB }

func NewTagRepository(db *gorm.DB) *TagRepository { return &TagRepository{db: db} }

func (r *TagRepository) WithTx(tx *gorm.DB) *TagRepository { return &TagRepository{db: tx} }

// Increment bumps the count of tag by one, inserting it with count 1 when it
// is new. Callers hold the tags writer lock, so the read and the write below
// cannot interleave with another bump.
func (r *TagRepository) Increment(ctx context.Context, tag string) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&models.Tag{}).Where("tag = ?", tag).
		UpdateColumn("use_count", gorm.Expr("use_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	return db.Create(&models.Tag{Tag: tag, Count: 1}).Error
}

func (r *TagRepository) Find(ctx context.Context, tag string) (*models.Tag, error) {
	var t models.Tag
	res := r.db.WithContext(ctx).Where("tag = ?", tag).Limit(1).Find(&t)
	if res.Error != nil || res.RowsAffected == 0 {
		return nil, res.Error
	}
	return &t, nil
}

// ListPopular orders by count, then first use, then name. limit <= 0 means all.
func (r *TagRepository) ListPopular(ctx context.Context, limit int) ([]models.Tag, error) {
	var tags []models.Tag
	q := r.db.WithContext(ctx).Order("use_count DESC, created_at ASC, tag ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return tags, q.Find(&tags).Error
}
