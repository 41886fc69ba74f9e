package services

import (
	"context"
	"pupshare/backend/app/dto"
	"pupshare/backend/app/models"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"mixed case and punctuation", "  Cute!! Puppy_123", "cutepuppy123"},
		{"hyphen kept", "Golden-Retriever", "golden-retriever"},
		{"only symbols", "!!!", ""},
		{"empty", "", ""},
		{"truncated", strings.Repeat("ab", 20), strings.Repeat("ab", 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTag(tt.in))
		})
	}
}

func TestNormalizeTagsCapsAtTen(t *testing.T) {
	raw := []string{"#!", "a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	got := NormalizeTags(raw)
	assert.Len(t, got, MaxTagsPerPhoto)
	assert.Equal(t, "a", got[0])
	assert.Equal(t, "j", got[9])
}

func tagCounts(t *testing.T, tags []models.Tag) map[string]int64 {
	t.Helper()
	out := make(map[string]int64, len(tags))
	for _, tag := range tags {
		out[tag.Tag] = tag.Count
	}
	return out
}

func TestPopularTags(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	for _, tags := range [][]string{{"a"}, {"b"}, {"B!"}} {
		_, err := e.photoSvc.Upload(ctx, owner.ID, dto.UploadPhoto{Title: "t", Tags: tags, ImageURL: "https://example.com/x.jpg"}, nil)
		require.NoError(t, err)
	}

	popular, err := e.tags.PopularTags(ctx, 0)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, "b", popular[0].Tag)
	assert.EqualValues(t, 2, popular[0].Count)
	assert.Equal(t, "a", popular[1].Tag)

	top, err := e.tags.PopularTags(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestReattachingTagsBumpsAgain(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	p, err := e.photoSvc.Upload(ctx, owner.ID, dto.UploadPhoto{Title: "t", Tags: []string{"corgi", "corgi"}, ImageURL: "https://example.com/x.jpg"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"corgi", "corgi"}, p.Tags)

	_, err = e.tags.AttachTags(ctx, p.ID, []string{"corgi"})
	require.NoError(t, err)

	all, err := e.tags.AllTags(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, tagCounts(t, all)["corgi"])

	_, err = e.tags.AttachTags(ctx, "missing", []string{"corgi"})
	requireKind(t, err, ErrNotFound)
}

func TestPhotosByTagAndCategory(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	public := e.photo(t, owner.ID, models.StatusApproved, "corgi")
	e.photo(t, owner.ID, models.StatusPrivate, "corgi")
	e.photo(t, owner.ID, models.StatusApproved, "pug")

	photos, err := e.tags.PhotosByTag(ctx, "  CORGI ")
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, public.ID, photos[0].ID)

	_, err = e.tags.PhotosByTag(ctx, "***")
	requireKind(t, err, ErrInvalidInput)

	photos, err = e.tags.PhotosByCategory(ctx, "puppies")
	require.NoError(t, err)
	assert.Len(t, photos, 2)

	_, err = e.tags.PhotosByCategory(ctx, "kittens")
	requireKind(t, err, ErrInvalidInput)

	requireKind(t, e.tags.BumpTag(ctx, ""), ErrInvalidInput)
}
