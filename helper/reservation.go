package helper

import (
	"errors"
	"fmt"

	"event_ticketing/model"

	"gorm.io/gorm"
)

// ReservePoints giữ điểm cho một vé trong ReservationTTL.
// Nếu vé đã có reservation đang mở thì ghi đè điểm và gia hạn expiry,
// không tạo bản ghi thứ hai.
func ReservePoints(db *gorm.DB, ticketId, customerId uint, points int) (*model.PointReservation, error) {
	if points <= 0 {
		return nil, fmt.Errorf("%w: reserve requires positive points, got %d", ErrInvalidPoints, points)
	}

	available, err := AvailableBalance(db, customerId)
	if err != nil {
		return nil, err
	}
	if points > available {
		return nil, fmt.Errorf("%w: available %d, requested %d", ErrInsufficientBalance, available, points)
	}

	now := Clock.Now()

	existing, err := OpenReservation(db, ticketId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.ReservedPoints = points
		existing.ExpiresAt = now.Add(ReservationTTL)
		if err := db.Model(existing).Updates(map[string]any{
			"reserved_points": points,
			"expires_at":      existing.ExpiresAt,
		}).Error; err != nil {
			return nil, err
		}
		return existing, nil
	}

	reservation := model.PointReservation{
		TicketId:       ticketId,
		CustomerId:     customerId,
		ReservedPoints: points,
		ReservedAt:     now,
		ExpiresAt:      now.Add(ReservationTTL),
		Confirmed:      false,
	}
	if err := db.Create(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// OpenReservation trả về reservation đang mở của vé, nil nếu không có.
// Không xét expiry ở đây — caller tự quyết định cách xử lý hết hạn.
func OpenReservation(db *gorm.DB, ticketId uint) (*model.PointReservation, error) {
	var reservation model.PointReservation
	err := db.Where("ticket_id = ? AND confirmed = ?", ticketId, false).First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reservation, nil
}

// RollbackReservation xoá reservation đang mở của vé.
// Idempotent: trả về false nếu không tìm thấy.
func RollbackReservation(db *gorm.DB, ticketId uint) (bool, error) {
	result := db.Where("ticket_id = ? AND confirmed = ?", ticketId, false).
		Delete(&model.PointReservation{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// PurgeExpiredReservations xoá mọi reservation mở đã quá hạn của khách hàng.
// Được gọi mỗi lần tính availableBalance (lazy cleanup).
func PurgeExpiredReservations(db *gorm.DB, customerId uint) error {
	return db.Where("customer_id = ? AND confirmed = ? AND expires_at <= ?", customerId, false, Clock.Now()).
		Delete(&model.PointReservation{}).Error
}
