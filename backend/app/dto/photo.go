package dto

import "time"

// PublicUser is the only projection of a user that appears next to content.
type PublicUser struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	DisplayName string  `json:"displayName"`
	AvatarURL   *string `json:"avatarUrl"`
}

// PhotoView is a photo joined with its derived counts. UserID is left empty
// on public feeds.
type PhotoView struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	ImageURL        string      `json:"imageUrl"`
	UserID          *string     `json:"userId,omitempty"`
	Category        string      `json:"category"`
	Tags            []string    `json:"tags"`
	Status          string      `json:"status"`
	IsDefault       bool        `json:"isDefault"`
	ReviewedBy      *string     `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time  `json:"reviewedAt,omitempty"`
	RejectionReason *string     `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
	LikeCount       int64       `json:"likeCount"`
	CommentCount    int64       `json:"commentCount"`
	IsLiked         bool        `json:"isLiked"`
	User            *PublicUser `json:"user"`
}

type VisibilityRequest struct {
	MakePublic bool `json:"makePublic"`
}

// PhotoPatch carries the editable photo fields; nil means unchanged.
type PhotoPatch struct {
	Title       *string  `json:"title" validate:"omitempty,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Category    *string  `json:"category"`
	Tags        []string `json:"tags"`
}

type UploadPhoto struct {
	Title       string `validate:"required,max=100"`
	Description string `validate:"max=500"`
	Category    string
	Tags        []string
	ImageURL    string
}
