package helper

import (
	"errors"
	"fmt"

	"event_ticketing/model"

	"gorm.io/gorm"
)

// ConfirmPayment chốt một vé sau tín hiệu thanh toán thành công:
// redeem điểm đã giữ, cộng điểm thưởng, đánh dấu vé đã thanh toán —
// tất cả trong một transaction, fail thì rollback toàn bộ và vé vẫn
// có thể retry. Vé đã thanh toán rồi thì bỏ qua, không cộng lần hai.
func ConfirmPayment(db *gorm.DB, ticketId uint) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var ticket model.Ticket
	if err := tx.First(&ticket, ticketId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: ticket %d", ErrNotFound, ticketId)
		}
		return err
	}

	if ticket.IsPaid {
		tx.Rollback()
		return nil
	}

	now := Clock.Now()
	pointsEarned := PointsAtConfirmation(ticket.TotalAmount)

	reservation, err := OpenReservation(tx, ticket.ID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("%w: %v", ErrTransactionFailure, err)
	}
	// Reservation mở nhưng đã hết hạn được coi như không tồn tại.
	if reservation != nil && reservation.ExpiresAt.After(now) {
		desc := fmt.Sprintf("Redeemed for ticket %s", ticket.TicketNumber)
		if err := RedeemPoints(tx, ticket.CustomerId, reservation.ReservedPoints, desc); err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: %v", ErrTransactionFailure, err)
		}
		ticket.PointsRedeemed = reservation.ReservedPoints
		if err := tx.Model(reservation).Update("confirmed", true).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: %v", ErrTransactionFailure, err)
		}
	}

	if pointsEarned > 0 {
		desc := fmt.Sprintf("Earned from ticket %s", ticket.TicketNumber)
		if err := EarnPoints(tx, ticket.CustomerId, pointsEarned, desc); err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: %v", ErrTransactionFailure, err)
		}
		ticket.PointsEarned = pointsEarned
	}

	ticket.IsPaid = true
	ticket.PaidAt = &now
	if err := tx.Save(&ticket).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("%w: %v", ErrTransactionFailure, err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("%w: %v", ErrTransactionFailure, err)
	}
	return nil
}

// AwardLoyaltyPoints là đường cộng điểm riêng (chạy async sau thanh toán
// bằng phương thức không qua gateway). Không bao giờ cộng lần hai cho
// vé đã có điểm.
func AwardLoyaltyPoints(db *gorm.DB, ticketId uint) error {
	var ticket model.Ticket
	if err := db.First(&ticket, ticketId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: ticket %d", ErrNotFound, ticketId)
		}
		return err
	}

	if ticket.PointsEarned > 0 {
		return nil
	}

	points := EstimatedPoints(ticket.TotalAmount)
	if points <= 0 {
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	desc := fmt.Sprintf("Earned from ticket %s", ticket.TicketNumber)
	if err := EarnPoints(tx, ticket.CustomerId, points, desc); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Model(&ticket).Update("points_earned", points).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
