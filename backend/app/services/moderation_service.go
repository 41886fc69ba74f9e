package services

import (
	"context"
	"pupshare/backend/app/dto"
	"pupshare/backend/app/models"
	"pupshare/backend/app/repo"
)

// ModerationService is the admin surface. Authorization happens in the
// middleware; every method here assumes an admin caller.
type ModerationService struct {
	store      *repo.Store
	photos     *repo.PhotoRepository
	users      *UserService
	social     *SocialService
	visibility *VisibilityService
	comments   *CommentService
}

func NewModerationService(store *repo.Store, photos *repo.PhotoRepository, users *UserService, social *SocialService, visibility *VisibilityService, comments *CommentService) *ModerationService {
	return &ModerationService{
		store:      store,
		photos:     photos,
		users:      users,
		social:     social,
		visibility: visibility,
		comments:   comments,
	}
}

// ListPending returns the review queue oldest first, owner id included.
func (s *ModerationService) ListPending(ctx context.Context, adminID string) ([]dto.PhotoView, error) {
	photos, err := s.photos.ListByStatus(ctx, models.StatusPending)
	if err != nil {
		return nil, err
	}
	return s.social.Enrich(ctx, photos, adminID, false)
}

func (s *ModerationService) Approve(ctx context.Context, photoID, adminID string) (*models.Photo, error) {
	return s.visibility.Approve(ctx, photoID, adminID)
}

func (s *ModerationService) Reject(ctx context.Context, photoID, adminID, reason string) (*models.Photo, error) {
	return s.visibility.Reject(ctx, photoID, adminID, reason)
}

func (s *ModerationService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.ListUsers(ctx)
}

func (s *ModerationService) SetUserRole(ctx context.Context, userID string, isAdmin bool) (*models.User, error) {
	return s.users.SetRole(ctx, userID, isAdmin)
}

func (s *ModerationService) DeletePhoto(ctx context.Context, photoID string) error {
	return s.visibility.ForceDelete(ctx, photoID)
}

func (s *ModerationService) DeleteComment(ctx context.Context, commentID string) error {
	return s.comments.ForceDelete(ctx, commentID)
}

func (s *ModerationService) Stats(ctx context.Context) (*dto.Stats, error) {
	var (
		st  dto.Stats
		err error
	)
	if st.TotalUsers, err = s.store.Count(ctx, repo.Users, nil); err != nil {
		return nil, err
	}
	if st.TotalPhotos, err = s.store.Count(ctx, repo.Photos, nil); err != nil {
		return nil, err
	}
	if st.PendingPhotos, err = s.store.Count(ctx, repo.Photos, "status = ?", models.StatusPending); err != nil {
		return nil, err
	}
	if st.ApprovedPhotos, err = s.store.Count(ctx, repo.Photos, "status = ? AND is_default = ?", models.StatusApproved, true); err != nil {
		return nil, err
	}
	if st.TotalComments, err = s.store.Count(ctx, repo.Comments, nil); err != nil {
		return nil, err
	}
	return &st, nil
}
