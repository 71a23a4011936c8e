package helper

import (
	"testing"
	"time"

	"event_ticketing/model"
)

func TestEvaluateDiscount(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	window := func(code model.DiscountCode) model.DiscountCode {
		code.StartDate = now.Add(-24 * time.Hour)
		code.EndDate = now.Add(24 * time.Hour)
		code.Active = true
		return code
	}

	t.Run("percentage of base", func(t *testing.T) {
		code := window(model.DiscountCode{DiscountType: model.DiscountPercentage, DiscountValue: 10})
		got := EvaluateDiscount(&code, 200, 1, now)
		if got != 20 {
			t.Fatalf("expected discount 20, got %v", got)
		}
	})

	t.Run("fixed capped at base", func(t *testing.T) {
		code := window(model.DiscountCode{DiscountType: model.DiscountFixed, DiscountValue: 50})
		if got := EvaluateDiscount(&code, 200, 1, now); got != 50 {
			t.Fatalf("expected discount 50, got %v", got)
		}
		if got := EvaluateDiscount(&code, 30, 1, now); got != 30 {
			t.Fatalf("expected discount capped at 30, got %v", got)
		}
	})

	t.Run("nil code gives zero", func(t *testing.T) {
		if got := EvaluateDiscount(nil, 200, 1, now); got != 0 {
			t.Fatalf("expected 0, got %v", got)
		}
	})

	t.Run("inactive code gives zero", func(t *testing.T) {
		code := window(model.DiscountCode{DiscountType: model.DiscountPercentage, DiscountValue: 10})
		code.Active = false
		if got := EvaluateDiscount(&code, 200, 1, now); got != 0 {
			t.Fatalf("expected 0, got %v", got)
		}
	})

	t.Run("outside validity window gives zero", func(t *testing.T) {
		code := window(model.DiscountCode{DiscountType: model.DiscountPercentage, DiscountValue: 10})
		code.EndDate = now.Add(-time.Hour)
		if got := EvaluateDiscount(&code, 200, 1, now); got != 0 {
			t.Fatalf("expected 0 for expired code, got %v", got)
		}

		code = window(model.DiscountCode{DiscountType: model.DiscountPercentage, DiscountValue: 10})
		code.StartDate = now.Add(time.Hour)
		if got := EvaluateDiscount(&code, 200, 1, now); got != 0 {
			t.Fatalf("expected 0 for not-yet-started code, got %v", got)
		}
	})

	t.Run("event-scoped code only applies to its event", func(t *testing.T) {
		eventId := uint(7)
		code := window(model.DiscountCode{DiscountType: model.DiscountPercentage, DiscountValue: 10, EventId: &eventId})
		if got := EvaluateDiscount(&code, 200, 7, now); got != 20 {
			t.Fatalf("expected 20 for matching event, got %v", got)
		}
		if got := EvaluateDiscount(&code, 200, 8, now); got != 0 {
			t.Fatalf("expected 0 for other event, got %v", got)
		}
	})
}

func TestResolvePricing(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tenPercent := model.DiscountCode{
		DiscountType:  model.DiscountPercentage,
		DiscountValue: 10,
		StartDate:     now.Add(-time.Hour),
		EndDate:       now.Add(time.Hour),
		Active:        true,
	}

	t.Run("base and percentage discount", func(t *testing.T) {
		result := ResolvePricing(PricingInput{
			TierPrice: 100,
			Quantity:  2,
			Discount:  &tenPercent,
			EventId:   1,
			Now:       now,
		})
		if result.BaseAmount != 200 {
			t.Fatalf("expected base 200, got %v", result.BaseAmount)
		}
		if result.DiscountApplied != 20 {
			t.Fatalf("expected discount 20, got %v", result.DiscountApplied)
		}
		if result.Total != 180 {
			t.Fatalf("expected total 180, got %v", result.Total)
		}
	})

	t.Run("points clamped to available balance", func(t *testing.T) {
		result := ResolvePricing(PricingInput{
			TierPrice:        100,
			Quantity:         1,
			UseLoyaltyPoints: true,
			RequestedPoints:  80,
			AvailableBalance: 30,
			Now:              now,
		})
		if result.PointsToReserve != 30 {
			t.Fatalf("expected 30 points reserved, got %d", result.PointsToReserve)
		}
		if result.Total != 70 {
			t.Fatalf("expected total 70, got %v", result.Total)
		}
	})

	t.Run("points clamped to base amount", func(t *testing.T) {
		result := ResolvePricing(PricingInput{
			TierPrice:        50,
			Quantity:         1,
			UseLoyaltyPoints: true,
			RequestedPoints:  200,
			AvailableBalance: 200,
			Now:              now,
		})
		if result.PointsToReserve != 50 {
			t.Fatalf("expected points clamped to 50, got %d", result.PointsToReserve)
		}
		if result.Total != 0 {
			t.Fatalf("expected total 0, got %v", result.Total)
		}
	})

	t.Run("points ignored when flag off", func(t *testing.T) {
		result := ResolvePricing(PricingInput{
			TierPrice:        100,
			Quantity:         1,
			UseLoyaltyPoints: false,
			RequestedPoints:  80,
			AvailableBalance: 80,
			Now:              now,
		})
		if result.PointsToReserve != 0 {
			t.Fatalf("expected no points reserved, got %d", result.PointsToReserve)
		}
		if result.Total != 100 {
			t.Fatalf("expected total 100, got %v", result.Total)
		}
	})

	t.Run("total never negative", func(t *testing.T) {
		fixed := tenPercent
		fixed.DiscountType = model.DiscountFixed
		fixed.DiscountValue = 500
		result := ResolvePricing(PricingInput{
			TierPrice: 100,
			Quantity:  1,
			Discount:  &fixed,
			EventId:   1,
			Now:       now,
		})
		if result.Total != 0 {
			t.Fatalf("expected total floored at 0, got %v", result.Total)
		}
	})

	t.Run("same input same output", func(t *testing.T) {
		in := PricingInput{
			TierPrice:        100,
			Quantity:         3,
			Discount:         &tenPercent,
			EventId:          1,
			UseLoyaltyPoints: true,
			RequestedPoints:  25,
			AvailableBalance: 100,
			Now:              now,
		}
		first := ResolvePricing(in)
		for i := 0; i < 5; i++ {
			if got := ResolvePricing(in); got != first {
				t.Fatalf("expected identical result, got %+v vs %+v", got, first)
			}
		}
	})
}
