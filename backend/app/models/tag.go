package models

import "time"

type Tag struct {
	Tag       string    `gorm:"primaryKey;size:30" json:"tag"`
	Count     int64     `gorm:"column:use_count;not null;default:0" json:"count"`
	CreatedAt time.Time `json:"createdAt"`
}
