package repo

import (
	"context"
	"errors"
	"pupshare/backend/app/models"

	"gorm.io/gorm"
)

type CommentRepository struct{ db *gorm.DB }

func NewCommentRepository(db *gorm.DB) *CommentRepository { return &CommentRepository{db: db} }

func (r *CommentRepository) WithTx(tx *gorm.DB) *CommentRepository {
	return &CommentRepository{db: tx}
}

func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// FindByID returns nil, nil when the comment does not exist.
func (r *CommentRepository) FindByID(ctx context.Context, id string) (*models.Comment, error) {
	var c models.Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) Save(ctx context.Context, c *models.Comment) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CommentRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Comment{})
	return res.RowsAffected > 0, res.Error
}

// ListByPhoto returns comments newest first.
func (r *CommentRepository) ListByPhoto(ctx context.Context, photoID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).Where("photo_id = ?", photoID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) CountByPhoto(ctx context.Context, photoID string) (int64, error) {
	var n int64
	return n, r.db.WithContext(ctx).Model(&models.Comment{}).Where("photo_id = ?", photoID).Count(&n).Error
}

func (r *CommentRepository) CountsByPhotos(ctx context.Context, photoIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(photoIDs))
	if len(photoIDs) == 0 {
		return out, nil
	}
	var rows []photoCount
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Select("photo_id, COUNT(*) AS n").
		Where("photo_id IN ?", photoIDs).
		Group("photo_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.PhotoID] = row.N
	}
	return out, nil
}
