package services

import (
	"context"
	"pupshare/backend/app/media"
	"pupshare/backend/app/models"
	"pupshare/backend/app/repo"
	"pupshare/backend/app/socket"
	"pupshare/backend/global"
	"time"

	"gorm.io/gorm"
)

const DefaultRejectionReason = "No reason provided"

// VisibilityService owns the photo publication lifecycle:
//
//	private -> pending          (owner asks for public listing)
//	pending -> approved         (admin; the only way isDefault becomes true)
//	pending -> rejected         (admin)
//	any     -> private|pending  (owner)
//
// There is no rejected -> approved transition; the owner has to resubmit.
type VisibilityService struct {
	store    *repo.Store
	photos   *repo.PhotoRepository
	media    media.Store
	notifier Notifier
	now      func() time.Time
}

func NewVisibilityService(store *repo.Store, photos *repo.PhotoRepository, m media.Store, n Notifier) *VisibilityService {
	if n == nil {
		n = nopNotifier{}
	}
	return &VisibilityService{store: store, photos: photos, media: m, notifier: n, now: time.Now}
}

// RequestVisibilityChange moves an owned photo to pending (makePublic) or
// private. Either way the photo leaves the public gallery until reviewed.
func (s *VisibilityService) RequestVisibilityChange(ctx context.Context, photoID, requesterID string, makePublic bool) (*models.Photo, error) {
	target := models.StatusPrivate
	if makePublic {
		target = models.StatusPending
	}
	return s.transition(ctx, photoID, func(p *models.Photo) error {
		if !p.OwnedBy(requesterID) {
			return Forbidden("You do not have permission to modify this photo")
		}
		p.Status = target
		p.IsDefault = false
		p.UpdatedAt = s.now()
		return nil
	})
}

func (s *VisibilityService) Approve(ctx context.Context, photoID, adminID string) (*models.Photo, error) {
	p, err := s.transition(ctx, photoID, func(p *models.Photo) error {
		if p.Status != models.StatusPending {
			return InvalidState("Photo is not pending approval")
		}
		now := s.now()
		p.Status = models.StatusApproved
		p.IsDefault = true
		p.ReviewedBy = &adminID
		p.ReviewedAt = &now
		p.RejectionReason = nil
		p.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	global.Logger.Info().Str("photo", p.ID).Str("admin", adminID).Msg("photo approved")
	s.notifyOwner(p, socket.Event{Type: socket.EventPhotoApproved, PhotoID: p.ID, Message: "Photo approved and made public"})
	return p, nil
}

func (s *VisibilityService) Reject(ctx context.Context, photoID, adminID, reason string) (*models.Photo, error) {
	if reason == "" {
		reason = DefaultRejectionReason
	}
	p, err := s.transition(ctx, photoID, func(p *models.Photo) error {
		if p.Status != models.StatusPending {
			return InvalidState("Photo is not pending approval")
		}
		now := s.now()
		p.Status = models.StatusRejected
		p.IsDefault = false
		p.ReviewedBy = &adminID
		p.ReviewedAt = &now
		p.RejectionReason = &reason
		p.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	global.Logger.Info().Str("photo", p.ID).Str("admin", adminID).Str("reason", reason).Msg("photo rejected")
	s.notifyOwner(p, socket.Event{Type: socket.EventPhotoRejected, PhotoID: p.ID, Message: reason})
	return p, nil
}

// DeletePhoto removes a photo on behalf of its owner. Default photos are
// never deletable here, whoever asks.
func (s *VisibilityService) DeletePhoto(ctx context.Context, photoID string, requester Actor) error {
	var removed *models.Photo
	err := s.store.Mutate(ctx, repo.Photos, func(tx *gorm.DB) error {
		photos := s.photos.WithTx(tx)
		p, err := photos.FindByID(ctx, photoID)
		if err != nil {
			return err
		}
		if p == nil {
			return NotFound("Photo not found")
		}
		if p.IsDefault {
			return Forbidden("Cannot delete default photos")
		}
		if !p.OwnedBy(requester.ID) && !requester.IsAdmin {
			return Forbidden("You do not have permission to delete this photo")
		}
		if _, err := photos.Delete(ctx, photoID); err != nil {
			return err
		}
		removed = p
		return nil
	})
	if err != nil {
		return err
	}
	s.removeMedia(removed)
	return nil
}

// ForceDelete removes a photo without any ownership or default check.
func (s *VisibilityService) ForceDelete(ctx context.Context, photoID string) error {
	var removed *models.Photo
	err := s.store.Mutate(ctx, repo.Photos, func(tx *gorm.DB) error {
		photos := s.photos.WithTx(tx)
		p, err := photos.FindByID(ctx, photoID)
		if err != nil {
			return err
		}
		if p == nil {
			return NotFound("Photo not found")
		}
		if _, err := photos.Delete(ctx, photoID); err != nil {
			return err
		}
		removed = p
		return nil
	})
	if err != nil {
		return err
	}
	s.removeMedia(removed)
	if removed.UserID != nil {
		s.notifier.Notify(*removed.UserID, socket.Event{Type: socket.EventPhotoDeleted, PhotoID: removed.ID, Message: "Photo removed by a moderator"})
	}
	return nil
}

// transition loads the photo, applies mutate and saves it under the photos
// writer lock. A mutate error leaves the stored photo untouched.
func (s *VisibilityService) transition(ctx context.Context, photoID string, mutate func(p *models.Photo) error) (*models.Photo, error) {
	var out *models.Photo
	err := s.store.Mutate(ctx, repo.Photos, func(tx *gorm.DB) error {
		photos := s.photos.WithTx(tx)
		p, err := photos.FindByID(ctx, photoID)
		if err != nil {
			return err
		}
		if p == nil {
			return NotFound("Photo not found")
		}
		if err := mutate(p); err != nil {
			return err
		}
		if err := photos.Save(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	photoTransitions.WithLabelValues(string(out.Status)).Inc()
	return out, nil
}

// removeMedia is best effort: the record is already gone. Only files the
// media store wrote for this photo are removed.
func (s *VisibilityService) removeMedia(p *models.Photo) {
	if s.media == nil || p == nil || !p.MediaOwned || p.ImageURL == "" {
		return
	}
	if err := s.media.Remove(p.ImageURL); err != nil {
		mediaCleanupFailures.Inc()
		global.Logger.Warn().Err(err).Str("photo", p.ID).Str("url", p.ImageURL).Msg("remove photo media")
	}
}

func (s *VisibilityService) notifyOwner(p *models.Photo, ev socket.Event) {
	if p.UserID == nil {
		return
	}
	s.notifier.Notify(*p.UserID, ev)
}
