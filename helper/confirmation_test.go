package helper

import (
	"errors"
	"testing"
	"time"

	"event_ticketing/model"
)

func TestConfirmPayment(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	db := newTestDB(t)
	withFakeClock(t, now)

	customer := seedCustomer(t, db)
	event, tier := seedEventWithTier(t, db, 100, 10)

	t.Run("marks paid and awards points", func(t *testing.T) {
		ticket := seedTicket(t, db, customer.ID, event.ID, tier.ID, 100)

		if err := ConfirmPayment(db, ticket.ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var reloaded model.Ticket
		db.First(&reloaded, ticket.ID)
		if !reloaded.IsPaid {
			t.Fatalf("expected ticket paid")
		}
		if reloaded.PaidAt == nil || !reloaded.PaidAt.Equal(now) {
			t.Fatalf("expected PaidAt %v, got %v", now, reloaded.PaidAt)
		}
		if reloaded.PointsEarned != 10 {
			t.Fatalf("expected 10 points earned, got %d", reloaded.PointsEarned)
		}

		balance, _ := Balance(db, customer.ID)
		if balance != 10 {
			t.Fatalf("expected balance 10, got %d", balance)
		}
	})

	t.Run("second confirm is a no-op", func(t *testing.T) {
		ticket := seedTicket(t, db, customer.ID, event.ID, tier.ID, 200)

		if err := ConfirmPayment(db, ticket.ID); err != nil {
			t.Fatalf("first confirm: %v", err)
		}
		before, _ := Balance(db, customer.ID)

		if err := ConfirmPayment(db, ticket.ID); err != nil {
			t.Fatalf("expected nil on repeat confirm, got %v", err)
		}
		after, _ := Balance(db, customer.ID)
		if after != before {
			t.Fatalf("expected balance unchanged at %d, got %d", before, after)
		}

		var count int64
		db.Model(&model.LoyaltyLedgerEntry{}).
			Where("customer_id = ? AND description LIKE ?", customer.ID, "Earned from ticket "+ticket.TicketNumber).
			Count(&count)
		if count != 1 {
			t.Fatalf("expected exactly 1 earn entry for ticket, got %d", count)
		}
	})

	t.Run("unknown ticket", func(t *testing.T) {
		if err := ConfirmPayment(db, 99999); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestConfirmPaymentWithReservation(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("redeems open reservation", func(t *testing.T) {
		db := newTestDB(t)
		withFakeClock(t, now)

		customer := seedCustomer(t, db)
		event, tier := seedEventWithTier(t, db, 100, 10)
		seedLedger(t, db, customer.ID, 50)

		ticket := seedTicket(t, db, customer.ID, event.ID, tier.ID, 170)
		if _, err := ReservePoints(db, ticket.ID, customer.ID, 30); err != nil {
			t.Fatalf("reserve: %v", err)
		}

		if err := ConfirmPayment(db, ticket.ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var reloaded model.Ticket
		db.First(&reloaded, ticket.ID)
		if reloaded.PointsRedeemed != 30 {
			t.Fatalf("expected 30 points redeemed, got %d", reloaded.PointsRedeemed)
		}
		if reloaded.PointsEarned != 17 {
			t.Fatalf("expected 17 points earned on 170, got %d", reloaded.PointsEarned)
		}

		// 50 - 30 redeemed + 17 earned
		balance, _ := Balance(db, customer.ID)
		if balance != 37 {
			t.Fatalf("expected balance 37, got %d", balance)
		}

		var reservation model.PointReservation
		if err := db.Where("ticket_id = ?", ticket.ID).First(&reservation).Error; err != nil {
			t.Fatalf("load reservation: %v", err)
		}
		if !reservation.Confirmed {
			t.Fatalf("expected reservation confirmed")
		}
	})

	t.Run("expired reservation is not redeemed", func(t *testing.T) {
		db := newTestDB(t)
		fc := withFakeClock(t, now)

		customer := seedCustomer(t, db)
		event, tier := seedEventWithTier(t, db, 100, 10)
		seedLedger(t, db, customer.ID, 50)

		ticket := seedTicket(t, db, customer.ID, event.ID, tier.ID, 100)
		if _, err := ReservePoints(db, ticket.ID, customer.ID, 30); err != nil {
			t.Fatalf("reserve: %v", err)
		}

		fc.Advance(ReservationTTL + time.Minute)

		if err := ConfirmPayment(db, ticket.ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var reloaded model.Ticket
		db.First(&reloaded, ticket.ID)
		if reloaded.PointsRedeemed != 0 {
			t.Fatalf("expected no points redeemed on expired reservation, got %d", reloaded.PointsRedeemed)
		}

		// 50 + 10 earned, không trừ gì
		balance, _ := Balance(db, customer.ID)
		if balance != 60 {
			t.Fatalf("expected balance 60, got %d", balance)
		}
	})
}

func TestAwardLoyaltyPoints(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	db := newTestDB(t)
	withFakeClock(t, now)

	customer := seedCustomer(t, db)
	event, tier := seedEventWithTier(t, db, 100, 10)

	t.Run("awards estimate once", func(t *testing.T) {
		ticket := seedTicket(t, db, customer.ID, event.ID, tier.ID, 180)

		if err := AwardLoyaltyPoints(db, ticket.ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var reloaded model.Ticket
		db.First(&reloaded, ticket.ID)
		if reloaded.PointsEarned != 18 {
			t.Fatalf("expected 18 points on 180, got %d", reloaded.PointsEarned)
		}

		if err := AwardLoyaltyPoints(db, ticket.ID); err != nil {
			t.Fatalf("expected nil on repeat award, got %v", err)
		}
		balance, _ := Balance(db, customer.ID)
		if balance != 18 {
			t.Fatalf("expected balance still 18, got %d", balance)
		}
	})

	t.Run("skips zero-point amounts", func(t *testing.T) {
		ticket := seedTicket(t, db, customer.ID, event.ID, tier.ID, 5)
		if err := AwardLoyaltyPoints(db, ticket.ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		var reloaded model.Ticket
		db.First(&reloaded, ticket.ID)
		if reloaded.PointsEarned != 0 {
			t.Fatalf("expected no points on amount 5, got %d", reloaded.PointsEarned)
		}
	})

	t.Run("unknown ticket", func(t *testing.T) {
		if err := AwardLoyaltyPoints(db, 99999); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
