package model

import "time"

const (
	EventUpcoming = "UPCOMING"
	EventOnSale   = "ON_SALE"
	EventClosed   = "CLOSED"
)

type Event struct {
	DTO
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Venue       string    `json:"venue"`
	StartTime   time.Time `gorm:"not null" json:"startTime"`
	EndTime     time.Time `gorm:"not null" json:"endTime"`
	Status      string    `gorm:"default:'UPCOMING';not null" json:"status"`

	Tiers []PriceTier `gorm:"foreignKey:EventId" json:"tiers,omitempty"`
}

type Events []Event

// PriceTier là một hạng vé của sự kiện với bộ đếm tồn kho riêng
type PriceTier struct {
	DTO
	Name           string  `gorm:"not null" json:"name"`
	Price          float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	InitialStock   int     `gorm:"not null" json:"initialStock"`
	RemainingStock int     `gorm:"not null" json:"remainingStock"`
	Active         bool    `gorm:"default:true" json:"active"`

	EventId uint  `gorm:"not null;index" json:"eventId"`
	Event   Event `gorm:"foreignKey:EventId" json:"-"`
}

type CreateEventInput struct {
	Name        string    `validate:"required" json:"name"`
	Description string    `json:"description"`
	Venue       string    `validate:"required" json:"venue"`
	StartTime   time.Time `validate:"required" json:"startTime"`
	EndTime     time.Time `validate:"required,gtfield=StartTime" json:"endTime"`
}

type EditEventInput struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Venue       *string    `json:"venue"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Status      *string    `json:"status" validate:"omitempty,oneof=UPCOMING ON_SALE CLOSED"`
}

type CreateTierInput struct {
	Name  string  `validate:"required" json:"name"`
	Price float64 `validate:"required,gt=0" json:"price"`
	Stock int     `validate:"required,gt=0" json:"stock"`
}

type FilterEventInput struct {
	Pagination
	SearchKey string `json:"searchKey"`
	Status    string `json:"status" validate:"omitempty,oneof=UPCOMING ON_SALE CLOSED"`
}
