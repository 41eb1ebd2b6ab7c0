package models

import (
	"time"

	"github.com/salaoflow/salon-scheduler/internal/schedule"
)

// Salon is the tenant aggregate root. Every other tenant-scoped row carries
// SalonID as a plain partition key, never a structural parent pointer.
type Salon struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`
	LogoURL string `gorm:"size:255" json:"logo_url"`

	OpeningHours schedule.OpeningHours `gorm:"type:jsonb" json:"opening_hours"`

	SubscriptionStatus  string     `gorm:"size:20;default:'trial'" json:"subscription_status"`
	SubscriptionPlan    string     `gorm:"size:50" json:"subscription_plan"`
	SubscriptionEndDate *time.Time `json:"subscription_end_date"`
	IsLifetimeFree      bool       `gorm:"default:false" json:"is_lifetime_free"`

	OwnerEmail string     `gorm:"size:100" json:"owner_email"`
	LastLogin  *time.Time `json:"last_login"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
