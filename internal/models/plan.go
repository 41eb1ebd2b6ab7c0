package models

import "time"

// Plan is a subscription offer managed by the super-admin console.
type Plan struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string  `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Price        float64 `json:"price"`
	DurationDays int     `json:"duration_days"`
	Features     string  `gorm:"size:500" json:"features"`
	Active       bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
