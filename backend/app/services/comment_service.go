package services

import (
	"context"
	"pupshare/backend/app/dto"
	"pupshare/backend/app/models"
	"pupshare/backend/app/repo"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MaxCommentLength = 500

type CommentService struct {
	store    *repo.Store
	comments *repo.CommentRepository
	photos   *repo.PhotoRepository
	users    *repo.UserRepository
}

func NewCommentService(store *repo.Store, comments *repo.CommentRepository, photos *repo.PhotoRepository, users *repo.UserRepository) *CommentService {
	return &CommentService{store: store, comments: comments, photos: photos, users: users}
}

func cleanContent(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	if content == "" {
		return "", Invalid("Comment cannot be empty")
	}
	if utf8.RuneCountInString(raw) > MaxCommentLength {
		return "", Invalid("Comment too long (max %d chars)", MaxCommentLength)
	}
	return content, nil
}

// List returns the comments of a photo newest first with author projections.
func (s *CommentService) List(ctx context.Context, photoID string) ([]dto.CommentView, error) {
	comments, err := s.comments.ListByPhoto(ctx, photoID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, comments)
}

func (s *CommentService) Add(ctx context.Context, photoID, userID, raw string) (*dto.CommentView, error) {
	content, err := cleanContent(raw)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	c := &models.Comment{
		ID:        uuid.NewString(),
		PhotoID:   photoID,
		UserID:    userID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = s.store.Mutate(ctx, repo.Comments, func(tx *gorm.DB) error {
		p, err := s.photos.WithTx(tx).FindByID(ctx, photoID)
		if err != nil {
			return err
		}
		if p == nil {
			return NotFound("Photo not found")
		}
		return s.comments.WithTx(tx).Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, c)
}

// Update rewrites the content of a comment; only its author may do so.
func (s *CommentService) Update(ctx context.Context, commentID, userID, raw string) (*dto.CommentView, error) {
	content, err := cleanContent(raw)
	if err != nil {
		return nil, err
	}
	var out *models.Comment
	err = s.store.Mutate(ctx, repo.Comments, func(tx *gorm.DB) error {
		comments := s.comments.WithTx(tx)
		c, err := comments.FindByID(ctx, commentID)
		if err != nil {
			return err
		}
		if c == nil {
			return NotFound("Comment not found")
		}
		if c.UserID != userID {
			return Forbidden("Not authorized")
		}
		c.Content = content
		c.UpdatedAt = time.Now()
		if err := comments.Save(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, out)
}

// Delete removes a comment for its author, or for an admin.
func (s *CommentService) Delete(ctx context.Context, commentID string, requester Actor) error {
	return s.store.Mutate(ctx, repo.Comments, func(tx *gorm.DB) error {
		comments := s.comments.WithTx(tx)
		c, err := comments.FindByID(ctx, commentID)
		if err != nil {
			return err
		}
		if c == nil {
			return NotFound("Comment not found")
		}
		if c.UserID != requester.ID && !requester.IsAdmin {
			return Forbidden("Not authorized")
		}
		_, err = comments.Delete(ctx, commentID)
		return err
	})
}

// ForceDelete removes a comment without an ownership check.
func (s *CommentService) ForceDelete(ctx context.Context, commentID string) error {
	return s.store.Mutate(ctx, repo.Comments, func(tx *gorm.DB) error {
		removed, err := s.comments.WithTx(tx).Delete(ctx, commentID)
		if err != nil {
			return err
		}
		if !removed {
			return NotFound("Comment not found")
		}
		return nil
	})
}

func (s *CommentService) view(ctx context.Context, c *models.Comment) (*dto.CommentView, error) {
	views, err := s.views(ctx, []models.Comment{*c})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *CommentService) views(ctx context.Context, comments []models.Comment) ([]dto.CommentView, error) {
	ids := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.UserID)
	}
	authors, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommentView, 0, len(comments))
	for _, c := range comments {
		v := dto.CommentView{
			ID:        c.ID,
			PhotoID:   c.PhotoID,
			UserID:    c.UserID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		}
		if u, ok := authors[c.UserID]; ok {
			v.User = publicUser(&u)
		}
		out = append(out, v)
	}
	return out, nil
}
