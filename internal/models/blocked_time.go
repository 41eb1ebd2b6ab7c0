package models

import "time"

// BlockedTime is an ad-hoc closed window (vacation, maintenance). It always
// removes availability, independent of any status.
type BlockedTime struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Reason    string    `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
