package model

import "time"

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

type DiscountCode struct {
	DTO
	Code          string    `gorm:"unique;not null" json:"code"`
	Name          string    `gorm:"not null" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	DiscountType  string    `gorm:"not null" json:"discountType"` // percentage | fixed
	DiscountValue float64   `gorm:"type:decimal(10,2);not null" json:"discountValue"`
	StartDate     time.Time `gorm:"not null" json:"startDate"`
	EndDate       time.Time `gorm:"not null" json:"endDate"`
	Active        bool      `gorm:"default:true;not null" json:"active"`

	// Nil = áp dụng cho mọi sự kiện
	EventId *uint  `gorm:"index" json:"eventId,omitempty"`
	Event   *Event `gorm:"foreignKey:EventId" json:"-"`
}

type DiscountCodes []DiscountCode

type CreateDiscountInput struct {
	Code          string    `validate:"required,alphanum" json:"code"`
	Name          string    `validate:"required" json:"name"`
	Description   string    `json:"description"`
	DiscountType  string    `validate:"required,oneof=percentage fixed" json:"discountType"`
	DiscountValue float64   `validate:"required,gt=0" json:"discountValue"`
	StartDate     time.Time `validate:"required" json:"startDate"`
	EndDate       time.Time `validate:"required,gtfield=StartDate" json:"endDate"`
	EventId       *uint     `json:"eventId"`
}

type EditDiscountInput struct {
	Name          *string    `json:"name"`
	Description   *string    `json:"description"`
	DiscountValue *float64   `json:"discountValue" validate:"omitempty,gt=0"`
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
	Active        *bool      `json:"active"`
}
