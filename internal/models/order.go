package models

import "time"

type OrderItem struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Order is a storefront purchase intent. There is no checkout: the order is
// handed off to the salon through a WhatsApp message link.
type Order struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Code    string `gorm:"size:36;uniqueIndex" json:"code"`
	SalonID uint   `gorm:"index" json:"salon_id"`

	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string `gorm:"size:20" json:"client_phone"`

	Items []OrderItem `gorm:"type:jsonb;serializer:json" json:"items"`
	Total float64     `json:"total"`

	Status string `gorm:"size:20;default:'new'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
