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
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const MaxBioLength = 500

type UserService struct {
	store *repo.Store
	users *repo.UserRepository
	media media.Store
}

func NewUserService(store *repo.Store, users *repo.UserRepository, m media.Store) *UserService {
	return &UserService{store: store, users: users, media: m}
}

// EnsureAdmin creates the bootstrap admin account unless the username is taken.
func (s *UserService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	count, err := s.users.CountByUsername(ctx, username)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if password == "" {
		return errors.New("admin password not configured")
	}
	u, err := s.Register(ctx, dto.RegisterRequest{Username: username, Email: email, Password: password})
	if err != nil {
		return err
	}
	_, err = s.SetRole(ctx, u.ID, true)
	return err
}

// Register creates a user. Username and email uniqueness is checked under the
// users writer lock.
func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := dto.Validate(&req); err != nil {
		return nil, Invalid("%s", err.Error())
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		DisplayName:  req.Username,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = s.store.Mutate(ctx, repo.Users, func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		if existing, err := users.FindByEmail(ctx, req.Email); err != nil {
			return err
		} else if existing != nil {
			return Conflict("Email already registered")
		}
		if existing, err := users.FindByUsername(ctx, req.Username); err != nil {
			return err
		} else if existing != nil {
			return Conflict("Username already taken")
		}
		return users.Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ValidateCredentials resolves a login by email or username.
func (s *UserService) ValidateCredentials(ctx context.Context, req dto.LoginRequest) (*models.User, error) {
	if err := dto.Validate(&req); err != nil {
		return nil, Invalid("%s", err.Error())
	}
	var (
		u   *models.User
		err error
	)
	if req.Email != "" {
		u, err = s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	} else {
		u, err = s.users.FindByUsername(ctx, req.Username)
	}
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NotFound("User not found")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, Unauthorized("Invalid password")
	}
	return u, nil
}

func (s *UserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NotFound("User not found")
	}
	return u, nil
}

// PublicProfile is what other users may see of id.
func (s *UserService) PublicProfile(ctx context.Context, id string) (map[string]any, error) {
	u, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"id":          u.ID,
		"username":    u.Username,
		"displayName": u.Name(),
		"bio":         u.Bio,
		"avatarUrl":   u.AvatarURL,
		"createdAt":   u.CreatedAt,
	}, nil
}

// UpdateProfile applies the recognized profile fields only; bio is cut to
// MaxBioLength characters.
func (s *UserService) UpdateProfile(ctx context.Context, id string, patch dto.ProfilePatch) (*models.User, error) {
	if err := dto.Validate(&patch); err != nil {
		return nil, Invalid("%s", err.Error())
	}
	updates := map[string]any{}
	if patch.DisplayName != nil {
		updates["display_name"] = strings.TrimSpace(*patch.DisplayName)
	}
	if patch.Bio != nil {
		updates["bio"] = truncateRunes(*patch.Bio, MaxBioLength)
	}
	return s.update(ctx, id, updates)
}

// UpdateAvatar stores a new avatar and removes the previous upload.
func (s *UserService) UpdateAvatar(ctx context.Context, id string, file io.Reader) (*models.User, error) {
	current, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	url, err := s.media.Save(ctx, media.KindAvatar, file)
	if err != nil {
		if errors.Is(err, media.ErrNotImage) {
			return nil, Invalid("Uploaded file is not a supported image")
		}
		return nil, err
	}
	u, err := s.update(ctx, id, map[string]any{"avatar_url": url})
	if err != nil {
		_ = s.media.Remove(url)
		return nil, err
	}
	if current.AvatarURL != nil {
		if err := s.media.Remove(*current.AvatarURL); err != nil {
			global.Logger.Warn().Err(err).Str("user", id).Msg("remove old avatar")
		}
	}
	return u, nil
}

func (s *UserService) SetRole(ctx context.Context, id string, isAdmin bool) (*models.User, error) {
	return s.update(ctx, id, map[string]any{"is_admin": isAdmin})
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.ListAll(ctx)
}

func (s *UserService) update(ctx context.Context, id string, updates map[string]any) (*models.User, error) {
	var out *models.User
	err := s.store.Mutate(ctx, repo.Users, func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		u, err := users.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return NotFound("User not found")
		}
		if len(updates) > 0 {
			if err := users.Update(ctx, id, updates); err != nil {
				return err
			}
		}
		out, err = users.FindByID(ctx, id)
		return err
	})
	return out, err
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
