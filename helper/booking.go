package helper

import (
	"errors"
	"fmt"

	"event_ticketing/model"

	"gorm.io/gorm"
)

type BookingInput struct {
	CustomerId       uint
	EventId          uint
	TierId           uint
	Quantity         int
	DiscountCode     string
	UseLoyaltyPoints bool
	PointsToRedeem   int
}

// BookTicket đặt vé: kiểm tra tồn kho, tính giá, tạo vé chưa thanh toán
// và giữ điểm nếu khách dùng điểm. Tất cả commit trong một transaction.
func BookTicket(db *gorm.DB, in BookingInput) (*model.Ticket, error) {
	if in.Quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var tier model.PriceTier
	if err := tx.Where("id = ? AND event_id = ? AND active = ?", in.TierId, in.EventId, true).
		First(&tier).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tier %d for event %d", ErrNotFound, in.TierId, in.EventId)
		}
		return nil, err
	}

	// Trừ kho có điều kiện để hai booking song song không thể oversell.
	result := tx.Model(&model.PriceTier{}).
		Where("id = ? AND remaining_stock >= ?", tier.ID, in.Quantity).
		Update("remaining_stock", gorm.Expr("remaining_stock - ?", in.Quantity))
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, fmt.Errorf("%w: tier %d has %d left, requested %d",
			ErrInsufficientStock, tier.ID, tier.RemainingStock, in.Quantity)
	}

	available := 0
	if in.UseLoyaltyPoints {
		var err error
		available, err = AvailableBalance(tx, in.CustomerId)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	pricing := ResolvePricing(PricingInput{
		TierPrice:        tier.Price,
		Quantity:         in.Quantity,
		Discount:         FindDiscountByCode(tx, in.DiscountCode),
		EventId:          in.EventId,
		UseLoyaltyPoints: in.UseLoyaltyPoints,
		RequestedPoints:  in.PointsToRedeem,
		AvailableBalance: available,
		Now:              Clock.Now(),
	})

	ticket := model.Ticket{
		TicketNumber:    NewTicketNumber(),
		TicketCode:      NewTicketCode(),
		Quantity:        in.Quantity,
		TotalAmount:     pricing.Total,
		DiscountApplied: pricing.DiscountApplied,
		IsPaid:          false,
		CustomerId:      in.CustomerId,
		EventId:         in.EventId,
		TierId:          in.TierId,
	}
	if err := tx.Create(&ticket).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if pricing.PointsToReserve > 0 {
		if _, err := ReservePoints(tx, ticket.ID, in.CustomerId, pricing.PointsToReserve); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}
