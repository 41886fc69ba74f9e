package repo

import (
	"context"
	"pupshare/backend/app/models"

	"gorm.io/gorm"
)

type LikeRepository struct{ db *gorm.DB }

func NewLikeRepository(db *gorm.DB) *LikeRepository { return &LikeRepository{db: db} }

func (r *LikeRepository) WithTx(tx *gorm.DB) *LikeRepository { return &LikeRepository{db: tx} }

func (r *LikeRepository) Exists(ctx context.Context, userID, photoID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND photo_id = ?", userID, photoID).
		Count(&n).Error
	return n > 0, err
}

func (r *LikeRepository) Create(ctx context.Context, l *models.Like) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// Delete reports whether a like was removed.
func (r *LikeRepository) Delete(ctx context.Context, userID, photoID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND photo_id = ?", userID, photoID).
		Delete(&models.Like{})
	return res.RowsAffected > 0, res.Error
}

func (r *LikeRepository) CountByPhoto(ctx context.Context, photoID string) (int64, error) {
	var n int64
	return n, r.db.WithContext(ctx).Model(&models.Like{}).Where("photo_id = ?", photoID).Count(&n).Error
}

type photoCount struct {
	PhotoID string
	N       int64
}

// CountsByPhotos returns like counts keyed by photo id; photos without likes are absent.
func (r *LikeRepository) CountsByPhotos(ctx context.Context, photoIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(photoIDs))
	if len(photoIDs) == 0 {
		return out, nil
	}
	var rows []photoCount
	err := r.db.WithContext(ctx).Model(&models.Like{}).
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

// LikedSet returns the subset of photoIDs liked by userID.
func (r *LikeRepository) LikedSet(ctx context.Context, userID string, photoIDs []string) (map[string]bool, error) {
	out := make(map[string]bool)
	if userID == "" || len(photoIDs) == 0 {
		return out, nil
	}
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND photo_id IN ?", userID, photoIDs).
		Pluck("photo_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// ListByUser returns the user's likes oldest first.
func (r *LikeRepository) ListByUser(ctx context.Context, userID string) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&likes).Error
	return likes, err
}
