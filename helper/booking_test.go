package helper

import (
	"errors"
	"testing"
	"time"

	"event_ticketing/model"
)

func TestBookTicket(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	db := newTestDB(t)
	withFakeClock(t, now)

	customer := seedCustomer(t, db)
	event, tier := seedEventWithTier(t, db, 100, 5)

	t.Run("books and decrements stock", func(t *testing.T) {
		ticket, err := BookTicket(db, BookingInput{
			CustomerId: customer.ID,
			EventId:    event.ID,
			TierId:     tier.ID,
			Quantity:   2,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ticket.IsPaid {
			t.Fatalf("expected ticket unpaid")
		}
		if ticket.TotalAmount != 200 {
			t.Fatalf("expected total 200, got %v", ticket.TotalAmount)
		}
		if ticket.TicketNumber == "" || ticket.TicketCode == "" {
			t.Fatalf("expected generated codes, got %q %q", ticket.TicketNumber, ticket.TicketCode)
		}

		var reloaded model.PriceTier
		db.First(&reloaded, tier.ID)
		if reloaded.RemainingStock != 3 {
			t.Fatalf("expected remaining stock 3, got %d", reloaded.RemainingStock)
		}
	})

	t.Run("unknown tier", func(t *testing.T) {
		_, err := BookTicket(db, BookingInput{
			CustomerId: customer.ID,
			EventId:    event.ID,
			TierId:     9999,
			Quantity:   1,
		})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("tier of another event", func(t *testing.T) {
		otherEvent, _ := seedEventWithTier(t, db, 80, 5)
		_, err := BookTicket(db, BookingInput{
			CustomerId: customer.ID,
			EventId:    otherEvent.ID,
			TierId:     tier.ID,
			Quantity:   1,
		})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("insufficient stock leaves counter untouched", func(t *testing.T) {
		_, err := BookTicket(db, BookingInput{
			CustomerId: customer.ID,
			EventId:    event.ID,
			TierId:     tier.ID,
			Quantity:   4, // còn 3
		})
		if !errors.Is(err, ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}

		var reloaded model.PriceTier
		db.First(&reloaded, tier.ID)
		if reloaded.RemainingStock != 3 {
			t.Fatalf("expected remaining stock still 3, got %d", reloaded.RemainingStock)
		}
	})

	t.Run("stock can reach exactly zero", func(t *testing.T) {
		_, err := BookTicket(db, BookingInput{
			CustomerId: customer.ID,
			EventId:    event.ID,
			TierId:     tier.ID,
			Quantity:   3,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var reloaded model.PriceTier
		db.First(&reloaded, tier.ID)
		if reloaded.RemainingStock != 0 {
			t.Fatalf("expected remaining stock 0, got %d", reloaded.RemainingStock)
		}

		_, err = BookTicket(db, BookingInput{
			CustomerId: customer.ID,
			EventId:    event.ID,
			TierId:     tier.ID,
			Quantity:   1,
		})
		if !errors.Is(err, ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock when sold out, got %v", err)
		}
	})
}

func TestBookTicketWithDiscount(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	db := newTestDB(t)
	withFakeClock(t, now)

	customer := seedCustomer(t, db)
	event, tier := seedEventWithTier(t, db, 100, 10)

	discount := model.DiscountCode{
		Code:          "10OFF",
		Name:          "Ten percent off",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: 10,
		StartDate:     now.Add(-time.Hour),
		EndDate:       now.Add(time.Hour),
		Active:        true,
	}
	if err := db.Create(&discount).Error; err != nil {
		t.Fatalf("seed discount: %v", err)
	}

	t.Run("valid code reduces total", func(t *testing.T) {
		ticket, err := BookTicket(db, BookingInput{
			CustomerId:   customer.ID,
			EventId:      event.ID,
			TierId:       tier.ID,
			Quantity:     2,
			DiscountCode: "10OFF",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ticket.DiscountApplied != 20 {
			t.Fatalf("expected discount 20, got %v", ticket.DiscountApplied)
		}
		if ticket.TotalAmount != 180 {
			t.Fatalf("expected total 180, got %v", ticket.TotalAmount)
		}
	})

	t.Run("unknown code books at full price", func(t *testing.T) {
		ticket, err := BookTicket(db, BookingInput{
			CustomerId:   customer.ID,
			EventId:      event.ID,
			TierId:       tier.ID,
			Quantity:     1,
			DiscountCode: "NOSUCHCODE",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ticket.DiscountApplied != 0 {
			t.Fatalf("expected no discount, got %v", ticket.DiscountApplied)
		}
		if ticket.TotalAmount != 100 {
			t.Fatalf("expected total 100, got %v", ticket.TotalAmount)
		}
	})
}

func TestBookTicketWithPoints(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	db := newTestDB(t)
	withFakeClock(t, now)

	customer := seedCustomer(t, db)
	event, tier := seedEventWithTier(t, db, 100, 10)
	seedLedger(t, db, customer.ID, 50)

	t.Run("reserves clamped points and discounts total", func(t *testing.T) {
		ticket, err := BookTicket(db, BookingInput{
			CustomerId:       customer.ID,
			EventId:          event.ID,
			TierId:           tier.ID,
			Quantity:         2,
			UseLoyaltyPoints: true,
			PointsToRedeem:   80, // chỉ có 50
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ticket.TotalAmount != 150 {
			t.Fatalf("expected total 150, got %v", ticket.TotalAmount)
		}

		reservation, err := OpenReservation(db, ticket.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if reservation == nil || reservation.ReservedPoints != 50 {
			t.Fatalf("expected reservation of 50 points, got %+v", reservation)
		}

		available, _ := AvailableBalance(db, customer.ID)
		if available != 0 {
			t.Fatalf("expected available 0 while reserved, got %d", available)
		}

		balance, _ := Balance(db, customer.ID)
		if balance != 50 {
			t.Fatalf("expected ledger untouched at 50, got %d", balance)
		}
	})

	t.Run("no reservation without points", func(t *testing.T) {
		ticket, err := BookTicket(db, BookingInput{
			CustomerId: customer.ID,
			EventId:    event.ID,
			TierId:     tier.ID,
			Quantity:   1,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		reservation, _ := OpenReservation(db, ticket.ID)
		if reservation != nil {
			t.Fatalf("expected no reservation, got %+v", reservation)
		}
	})
}
