package models

import "time"

type PhotoStatus string

const (
	StatusPrivate  PhotoStatus = "private"
	StatusPending  PhotoStatus = "pending"
	StatusApproved PhotoStatus = "approved"
	StatusRejected PhotoStatus = "rejected"
)

type Category string

const (
	CategoryPuppies   Category = "puppies"
	CategoryPortraits Category = "portraits"
	CategoryAction    Category = "action"
	CategorySleeping  Category = "sleeping"
	CategoryPlaying   Category = "playing"
	CategoryNature    Category = "nature"
	CategoryGroup     Category = "group"
	CategoryOther     Category = "other"
)

var Categories = []Category{
	CategoryPuppies, CategoryPortraits, CategoryAction, CategorySleeping,
	CategoryPlaying, CategoryNature, CategoryGroup, CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Photo.UserID is nil for seed photos owned by the system.
// IsDefault is only ever true while Status is StatusApproved.
// MediaOwned marks an ImageURL written by the media store for this photo.
type Photo struct {
	ID              string      `gorm:"primaryKey;size:36" json:"id"`
	Title           string      `gorm:"size:100;not null" json:"title"`
	Description     string      `gorm:"size:500" json:"description"`
	ImageURL        string      `gorm:"size:1024;not null" json:"imageUrl"`
	UserID          *string     `gorm:"index;size:36" json:"userId"`
	Category        Category    `gorm:"size:32;index;not null" json:"category"`
	Tags            []string    `gorm:"type:text;serializer:json" json:"tags"`
	Status          PhotoStatus `gorm:"size:16;index;not null" json:"status"`
	IsDefault       bool        `gorm:"index;not null;default:false" json:"isDefault"`
	MediaOwned      bool        `gorm:"not null;default:false" json:"-"`
	ReviewedBy      *string     `gorm:"size:36" json:"reviewedBy"`
	ReviewedAt      *time.Time  `json:"reviewedAt"`
	RejectionReason *string     `gorm:"size:500" json:"rejectionReason"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

func (p *Photo) OwnedBy(userID string) bool {
	return userID != "" && p.UserID != nil && *p.UserID == userID
}

func (p *Photo) Public() bool {
	return p.IsDefault && p.Status == StatusApproved
}
