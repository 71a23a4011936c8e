package helper

import (
	"fmt"
	"math"

	"event_ticketing/model"

	"gorm.io/gorm"
)

// Balance = tổng mọi entry của khách hàng.
func Balance(db *gorm.DB, customerId uint) (int, error) {
	var sum int64
	err := db.Model(&model.LoyaltyLedgerEntry{}).
		Where("customer_id = ?", customerId).
		Select("COALESCE(SUM(points), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	return int(sum), nil
}

// AvailableBalance = balance trừ điểm đang giữ trong các reservation
// còn mở, chưa hết hạn. Reservation hết hạn được dọn lười ngay tại đây.
func AvailableBalance(db *gorm.DB, customerId uint) (int, error) {
	if err := PurgeExpiredReservations(db, customerId); err != nil {
		return 0, err
	}

	balance, err := Balance(db, customerId)
	if err != nil {
		return 0, err
	}

	var reserved int64
	err = db.Model(&model.PointReservation{}).
		Where("customer_id = ? AND confirmed = ? AND expires_at > ?", customerId, false, Clock.Now()).
		Select("COALESCE(SUM(reserved_points), 0)").
		Scan(&reserved).Error
	if err != nil {
		return 0, err
	}

	available := balance - int(reserved)
	if available < 0 {
		available = 0
	}
	return available, nil
}

// EarnPoints ghi một entry dương vào sổ điểm.
func EarnPoints(db *gorm.DB, customerId uint, points int, description string) error {
	if points <= 0 {
		return fmt.Errorf("%w: earn requires positive points, got %d", ErrInvalidPoints, points)
	}
	entry := model.LoyaltyLedgerEntry{
		CustomerId:  customerId,
		Points:      points,
		Description: description,
		RecordedAt:  Clock.Now(),
	}
	return db.Create(&entry).Error
}

// RedeemPoints ghi một entry âm. Chỉ kiểm tra balance, không kiểm tra
// availableBalance — caller chịu trách nhiệm đã xét reservation trước.
func RedeemPoints(db *gorm.DB, customerId uint, points int, description string) error {
	if points <= 0 {
		return fmt.Errorf("%w: redeem requires positive points, got %d", ErrInvalidPoints, points)
	}

	balance, err := Balance(db, customerId)
	if err != nil {
		return err
	}
	if balance < points {
		return fmt.Errorf("%w: balance %d, requested %d", ErrInsufficientBalance, balance, points)
	}

	entry := model.LoyaltyLedgerEntry{
		CustomerId:  customerId,
		Points:      -points,
		Description: description,
		RecordedAt:  Clock.Now(),
	}
	return db.Create(&entry).Error
}

// EstimatedPoints: ước tính trước thanh toán, 10% số tiền.
func EstimatedPoints(amount float64) int {
	return int(math.Floor(amount * 0.10))
}

// PointsAtConfirmation: điểm thực cộng khi xác nhận, 1 điểm mỗi 10 đơn vị.
// Hai công thức khác nhau được giữ nguyên theo hành vi cũ.
func PointsAtConfirmation(amount float64) int {
	return int(math.Floor(amount / 10))
}

// LedgerHistory trả về các entry mới nhất của khách hàng.
func LedgerHistory(db *gorm.DB, customerId uint, limit, page *int) ([]model.LoyaltyLedgerEntry, int64, error) {
	var entries []model.LoyaltyLedgerEntry
	condition := db.Model(&model.LoyaltyLedgerEntry{}).Where("customer_id = ?", customerId)

	var totalCount int64
	if err := condition.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if limit != nil && *limit > 0 && page != nil && *page >= 1 {
		condition = condition.Limit(*limit).Offset(*limit * (*page - 1))
	}
	if err := condition.Order("recorded_at desc, id desc").Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, totalCount, nil
}
