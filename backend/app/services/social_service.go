package services

import (
	"context"
	"pupshare/backend/app/dto"
	"pupshare/backend/app/models"
	"pupshare/backend/app/repo"
	"sort"
	"time"

	"gorm.io/gorm"
)

// SocialService derives like and comment counts at read time from the raw
// collections. Nothing here is cached or denormalized.
type SocialService struct {
	store    *repo.Store
	photos   *repo.PhotoRepository
	likes    *repo.LikeRepository
	comments *repo.CommentRepository
	users    *repo.UserRepository
}

func NewSocialService(store *repo.Store, photos *repo.PhotoRepository, likes *repo.LikeRepository, comments *repo.CommentRepository, users *repo.UserRepository) *SocialService {
	return &SocialService{store: store, photos: photos, likes: likes, comments: comments, users: users}
}

func (s *SocialService) LikeCount(ctx context.Context, photoID string) (int64, error) {
	return s.likes.CountByPhoto(ctx, photoID)
}

func (s *SocialService) CommentCount(ctx context.Context, photoID string) (int64, error) {
	return s.comments.CountByPhoto(ctx, photoID)
}

// IsLikedBy is false for an anonymous viewer.
func (s *SocialService) IsLikedBy(ctx context.Context, photoID, viewerID string) (bool, error) {
	if viewerID == "" {
		return false, nil
	}
	return s.likes.Exists(ctx, viewerID, photoID)
}

// Like records a like of photoID by userID and returns the new count. The
// duplicate check and the insert run under the likes writer lock.
func (s *SocialService) Like(ctx context.Context, userID, photoID string) (int64, error) {
	var count int64
	err := s.store.Mutate(ctx, repo.Likes, func(tx *gorm.DB) error {
		p, err := s.photos.WithTx(tx).FindByID(ctx, photoID)
		if err != nil {
			return err
		}
		if p == nil {
			return NotFound("Photo not found")
		}
		likes := s.likes.WithTx(tx)
		exists, err := likes.Exists(ctx, userID, photoID)
		if err != nil {
			return err
		}
		if exists {
			return Conflict("Photo already liked")
		}
		if err := likes.Create(ctx, &models.Like{UserID: userID, PhotoID: photoID, CreatedAt: time.Now()}); err != nil {
			return err
		}
		count, err = likes.CountByPhoto(ctx, photoID)
		return err
	})
	if err != nil {
		return 0, err
	}
	likeEvents.WithLabelValues("like").Inc()
	return count, nil
}

func (s *SocialService) Unlike(ctx context.Context, userID, photoID string) (int64, error) {
	var count int64
	err := s.store.Mutate(ctx, repo.Likes, func(tx *gorm.DB) error {
		likes := s.likes.WithTx(tx)
		removed, err := likes.Delete(ctx, userID, photoID)
		if err != nil {
			return err
		}
		if !removed {
			return NotFound("Like not found")
		}
		count, err = likes.CountByPhoto(ctx, photoID)
		return err
	})
	if err != nil {
		return 0, err
	}
	likeEvents.WithLabelValues("unlike").Inc()
	return count, nil
}

// Enrich joins photos with their counts, the viewer's like flag and the
// owner's public projection. Public views drop the raw owner id; the admin
// queue keeps it.
func (s *SocialService) Enrich(ctx context.Context, photos []models.Photo, viewerID string, public bool) ([]dto.PhotoView, error) {
	ids := make([]string, 0, len(photos))
	ownerIDs := make([]string, 0, len(photos))
	for _, p := range photos {
		ids = append(ids, p.ID)
		if p.UserID != nil {
			ownerIDs = append(ownerIDs, *p.UserID)
		}
	}
	likeCounts, err := s.likes.CountsByPhotos(ctx, ids)
	if err != nil {
		return nil, err
	}
	commentCounts, err := s.comments.CountsByPhotos(ctx, ids)
	if err != nil {
		return nil, err
	}
	liked, err := s.likes.LikedSet(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}
	owners, err := s.users.FindByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	views := make([]dto.PhotoView, 0, len(photos))
	for _, p := range photos {
		v := photoToView(p)
		v.LikeCount = likeCounts[p.ID]
		v.CommentCount = commentCounts[p.ID]
		v.IsLiked = liked[p.ID]
		if p.UserID != nil {
			if u, ok := owners[*p.UserID]; ok {
				v.User = publicUser(&u)
			}
		}
		if public {
			v.UserID = nil
		}
		views = append(views, v)
	}
	return views, nil
}

// Gallery lists the public photos, most liked first. Ties keep insertion order.
func (s *SocialService) Gallery(ctx context.Context, viewerID string) ([]dto.PhotoView, error) {
	photos, err := s.photos.ListPublic(ctx)
	if err != nil {
		return nil, err
	}
	views, err := s.Enrich(ctx, photos, viewerID, true)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(views, func(i, j int) bool { return views[i].LikeCount > views[j].LikeCount })
	return views, nil
}

// LikedPhotos lists the public photos liked by userID in the order they were
// liked. Likes pointing at deleted or unpublished photos are skipped.
func (s *SocialService) LikedPhotos(ctx context.Context, userID string) ([]dto.PhotoView, error) {
	likes, err := s.likes.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(likes))
	for _, l := range likes {
		ids = append(ids, l.PhotoID)
	}
	found, err := s.photos.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Photo, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	ordered := make([]models.Photo, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok && p.Public() {
			ordered = append(ordered, p)
		}
	}
	return s.Enrich(ctx, ordered, userID, true)
}

func photoToView(p models.Photo) dto.PhotoView {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.PhotoView{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		ImageURL:        p.ImageURL,
		UserID:          p.UserID,
		Category:        string(p.Category),
		Tags:            tags,
		Status:          string(p.Status),
		IsDefault:       p.IsDefault,
		ReviewedBy:      p.ReviewedBy,
		ReviewedAt:      p.ReviewedAt,
		RejectionReason: p.RejectionReason,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func publicUser(u *models.User) *dto.PublicUser {
	return &dto.PublicUser{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.Name(),
		AvatarURL:   u.AvatarURL,
	}
}
