package model

import "time"

type Ticket struct {
	DTO
	TicketNumber    string  `gorm:"size:20;uniqueIndex" json:"ticketNumber"`
	TicketCode      string  `gorm:"size:40;uniqueIndex" json:"ticketCode"`
	Quantity        int     `gorm:"not null" json:"quantity"`
	TotalAmount     float64 `gorm:"not null" json:"totalAmount"`
	DiscountApplied float64 `json:"discountApplied"`
	IsPaid          bool    `gorm:"default:false" json:"isPaid"`
	PointsEarned    int     `gorm:"default:0" json:"pointsEarned"`
	PointsRedeemed  int     `gorm:"default:0" json:"pointsRedeemed"`
	QrUrl           *string `json:"qrUrl,omitempty"`

	PaidAt *time.Time `json:"paidAt,omitempty"`
	UsedAt *time.Time `json:"usedAt,omitempty"`

	CustomerId uint `gorm:"not null;index" json:"customerId"`
	EventId    uint `gorm:"not null;index" json:"eventId"`
	TierId     uint `gorm:"not null;index" json:"tierId"`

	// Relationship – không expose vào JSON mặc định
	Customer Customer  `gorm:"foreignKey:CustomerId" json:"-"`
	Event    Event     `gorm:"foreignKey:EventId" json:"-"`
	Tier     PriceTier `gorm:"foreignKey:TierId" json:"-"`
}

type BookTicketInput struct {
	EventId          uint   `json:"eventId" validate:"required,gt=0"`
	TierId           uint   `json:"tierId" validate:"required,gt=0"`
	Quantity         int    `json:"quantity" validate:"required,gt=0"`
	DiscountCode     string `json:"discountCode" validate:"omitempty,alphanum"`
	UseLoyaltyPoints bool   `json:"useLoyaltyPoints"`
	PointsToRedeem   int    `json:"pointsToRedeem" validate:"omitempty,gte=0"`
}

type FilterTicketInput struct {
	Pagination
	EventId   uint       `json:"eventId" validate:"omitempty,gt=0"`
	IsPaid    *bool      `json:"isPaid"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}
