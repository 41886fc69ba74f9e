package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"pupshare/backend/app/db"
	"pupshare/backend/app/dto"
	"pupshare/backend/app/media"
	"pupshare/backend/app/models"
	"pupshare/backend/app/repo"
	"pupshare/backend/app/socket"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeMedia struct {
	mu        sync.Mutex
	saved     []string
	removed   []string
	removeErr error
}

func (f *fakeMedia) Save(_ context.Context, kind media.Kind, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if len(b) == 0 {
		return "", media.ErrNotImage
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	url := fmt.Sprintf("/uploads/%s/%d.jpg", kind, len(f.saved)+1)
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeMedia) Remove(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, url)
	return nil
}

type sentEvent struct {
	user string
	ev   socket.Event
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []sentEvent
}

func (n *recordingNotifier) Notify(userID string, ev socket.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, sentEvent{user: userID, ev: ev})
}

func (n *recordingNotifier) sent() []sentEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentEvent(nil), n.events...)
}

type testEnv struct {
	store    *repo.Store
	photos   *repo.PhotoRepository
	tagRepo  *repo.TagRepository
	media    *fakeMedia
	notifier *recordingNotifier

	users      *UserService
	tags       *TagService
	social     *SocialService
	visibility *VisibilityService
	photoSvc   *PhotoService
	comments   *CommentService
	moderation *ModerationService
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := db.OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(models.All()...))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store := repo.NewStore(gdb)
	userRepo := repo.NewUserRepository(gdb)
	photoRepo := repo.NewPhotoRepository(gdb)
	likeRepo := repo.NewLikeRepository(gdb)
	commentRepo := repo.NewCommentRepository(gdb)
	tagRepo := repo.NewTagRepository(gdb)

	e := &testEnv{store: store, photos: photoRepo, tagRepo: tagRepo, media: &fakeMedia{}, notifier: &recordingNotifier{}}
	e.users = NewUserService(store, userRepo, e.media)
	e.tags = NewTagService(store, tagRepo, photoRepo)
	e.social = NewSocialService(store, photoRepo, likeRepo, commentRepo, userRepo)
	e.visibility = NewVisibilityService(store, photoRepo, e.media, e.notifier)
	e.photoSvc = NewPhotoService(store, photoRepo, e.tags, e.social, e.media)
	e.comments = NewCommentService(store, commentRepo, photoRepo, userRepo)
	e.moderation = NewModerationService(store, photoRepo, e.users, e.social, e.visibility, e.comments)
	return e
}

func (e *testEnv) user(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := e.users.Register(context.Background(), dto.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return u
}

// photo inserts a photo directly; owner "" makes a system-owned photo.
func (e *testEnv) photo(t *testing.T, owner string, status models.PhotoStatus, tags ...string) *models.Photo {
	t.Helper()
	now := time.Now()
	p := &models.Photo{
		ID:        uuid.NewString(),
		Title:     "photo " + now.Format(time.RFC3339Nano),
		ImageURL:  "/uploads/photos/" + uuid.NewString() + ".jpg",
		Category:  models.CategoryPuppies,
		Tags:      tags,
		Status:    status,
		IsDefault: status == models.StatusApproved,
		// system photos point at external URLs
		MediaOwned: owner != "",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if owner != "" {
		p.UserID = &owner
	}
	require.NoError(t, e.photos.Create(context.Background(), p))
	return p
}

func (e *testEnv) reload(t *testing.T, id string) *models.Photo {
	t.Helper()
	p, err := e.photos.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

func requireKind(t *testing.T, err error, want *Error) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, errors.Is(err, want), "want %s, got %v", want.Kind, err)
}
