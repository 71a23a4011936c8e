package model

import "time"

// LoyaltyLedgerEntry là một giao dịch điểm có dấu; số dư = tổng các entry.
// Entry không bao giờ bị sửa hay xoá (audit trail).
type LoyaltyLedgerEntry struct {
	DTO
	CustomerId  uint      `gorm:"not null;index" json:"customerId"`
	Points      int       `gorm:"not null" json:"points"` // dương = earn, âm = redeem
	Description string    `gorm:"not null" json:"description"`
	RecordedAt  time.Time `gorm:"not null" json:"recordedAt"`

	Customer Customer `gorm:"foreignKey:CustomerId" json:"-"`
}

// PointReservation giữ tạm điểm cho một vé chưa thanh toán, có hạn dùng.
// Mỗi vé chỉ có tối đa một reservation đang mở.
type PointReservation struct {
	DTO
	TicketId       uint      `gorm:"not null;uniqueIndex" json:"ticketId"`
	CustomerId     uint      `gorm:"not null;index" json:"customerId"`
	ReservedPoints int       `gorm:"not null" json:"reservedPoints"`
	ReservedAt     time.Time `gorm:"not null" json:"reservedAt"`
	ExpiresAt      time.Time `gorm:"not null" json:"expiresAt"`
	Confirmed      bool      `gorm:"default:false" json:"confirmed"`

	Ticket Ticket `gorm:"foreignKey:TicketId;constraint:OnDelete:CASCADE" json:"-"`
}

type ReservePointsInput struct {
	TicketId uint `json:"ticketId" validate:"required,gt=0"`
	Points   int  `json:"points" validate:"required,gt=0"`
}
