package model

type Payment struct {
	DTO
	TicketId    uint    `gorm:"not null" json:"ticketId"`
	Amount      float64 `gorm:"not null" json:"amount"`
	PaymentCode string  `gorm:"unique" json:"paymentCode"`
	Status      string  `gorm:"default:PENDING" json:"status"`
	Method      string  `json:"method"` // VNPAY, MOMO

	Ticket Ticket `gorm:"foreignKey:TicketId" json:"-"`
}

type CreatePaymentInput struct {
	TicketId uint   `json:"ticketId" validate:"required,gt=0"`
	Method   string `json:"method" validate:"required,oneof=VNPAY MOMO"`
}
