package models

import "time"

type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	PhotoID   string    `gorm:"index;size:36;not null" json:"photoId"`
	UserID    string    `gorm:"index;size:36;not null" json:"userId"`
	Content   string    `gorm:"size:500;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
