package helper

import (
	"math"
	"time"

	"event_ticketing/model"

	"gorm.io/gorm"
)

type PricingInput struct {
	TierPrice        float64
	Quantity         int
	Discount         *model.DiscountCode
	EventId          uint
	UseLoyaltyPoints bool
	RequestedPoints  int
	AvailableBalance int
	Now              time.Time
}

type PricingResult struct {
	BaseAmount      float64
	DiscountApplied float64
	PointsToReserve int
	Total           float64
}

// EvaluateDiscount tính số tiền giảm cho một mã trên số tiền gốc.
// Mã không hợp lệ / hết hạn / sai sự kiện trả về 0, không báo lỗi.
func EvaluateDiscount(code *model.DiscountCode, base float64, eventId uint, now time.Time) float64 {
	if code == nil || !code.Active {
		return 0
	}
	if now.Before(code.StartDate) || now.After(code.EndDate) {
		return 0
	}
	if code.EventId != nil && *code.EventId != eventId {
		return 0
	}

	switch code.DiscountType {
	case model.DiscountPercentage:
		return base * code.DiscountValue / 100
	case model.DiscountFixed:
		return math.Min(code.DiscountValue, base)
	}
	return 0
}

// ResolvePricing: base → discount → điểm quy đổi → tổng cuối.
// Hàm thuần, 1 điểm = 1 đơn vị tiền.
func ResolvePricing(in PricingInput) PricingResult {
	base := in.TierPrice * float64(in.Quantity)
	discount := EvaluateDiscount(in.Discount, base, in.EventId, in.Now)

	points := 0
	if in.UseLoyaltyPoints && in.RequestedPoints > 0 {
		limit := in.AvailableBalance
		if floorBase := int(math.Floor(base)); floorBase < limit {
			limit = floorBase
		}
		points = in.RequestedPoints
		if points > limit {
			points = limit
		}
		if points < 0 {
			points = 0
		}
	}

	total := base - discount - float64(points)
	if total < 0 {
		total = 0
	}

	return PricingResult{
		BaseAmount:      base,
		DiscountApplied: discount,
		PointsToReserve: points,
		Total:           total,
	}
}

// FindDiscountByCode trả về nil nếu mã không tồn tại; tính hợp lệ
// được quyết định ở EvaluateDiscount.
func FindDiscountByCode(db *gorm.DB, code string) *model.DiscountCode {
	if code == "" {
		return nil
	}
	var discount model.DiscountCode
	if err := db.Where("code = ?", code).First(&discount).Error; err != nil {
		return nil
	}
	return &discount
}
