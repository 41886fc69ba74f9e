package models

import "time"

type Like struct {
	UserID    string    `gorm:"primaryKey;size:36" json:"userId"`
	PhotoID   string    `gorm:"primaryKey;size:36;index" json:"photoId"`
	CreatedAt time.Time `json:"createdAt"`
}
