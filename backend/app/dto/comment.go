package dto

import "time"

type CommentRequest struct {
	Content string `json:"content"`
}

type CommentView struct {
	ID        string      `json:"id"`
	PhotoID   string      `json:"photoId"`
	UserID    string      `json:"userId"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	User      *PublicUser `json:"user"`
}
