package helper

import (
	"errors"
	"testing"
	"time"
)

func TestBalance(t *testing.T) {
	db := newTestDB(t)
	withFakeClock(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	customer := seedCustomer(t, db)

	t.Run("empty ledger is zero", func(t *testing.T) {
		balance, err := Balance(db, customer.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if balance != 0 {
			t.Fatalf("expected balance 0, got %d", balance)
		}
	})

	t.Run("balance is signed sum of entries", func(t *testing.T) {
		seedLedger(t, db, customer.ID, 100)
		seedLedger(t, db, customer.ID, 50)
		seedLedger(t, db, customer.ID, -30)

		balance, err := Balance(db, customer.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if balance != 120 {
			t.Fatalf("expected balance 120, got %d", balance)
		}
	})

	t.Run("other customers do not leak in", func(t *testing.T) {
		other := seedCustomer(t, db)
		seedLedger(t, db, other.ID, 999)

		balance, err := Balance(db, customer.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if balance != 120 {
			t.Fatalf("expected balance 120, got %d", balance)
		}
	})
}

func TestEarnPoints(t *testing.T) {
	db := newTestDB(t)
	withFakeClock(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	customer := seedCustomer(t, db)

	t.Run("rejects zero and negative", func(t *testing.T) {
		if err := EarnPoints(db, customer.ID, 0, "noop"); !errors.Is(err, ErrInvalidPoints) {
			t.Fatalf("expected ErrInvalidPoints, got %v", err)
		}
		if err := EarnPoints(db, customer.ID, -5, "noop"); !errors.Is(err, ErrInvalidPoints) {
			t.Fatalf("expected ErrInvalidPoints, got %v", err)
		}
	})

	t.Run("records positive entry", func(t *testing.T) {
		if err := EarnPoints(db, customer.ID, 40, "promo"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		balance, _ := Balance(db, customer.ID)
		if balance != 40 {
			t.Fatalf("expected balance 40, got %d", balance)
		}
	})
}

func TestRedeemPoints(t *testing.T) {
	db := newTestDB(t)
	withFakeClock(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	customer := seedCustomer(t, db)
	seedLedger(t, db, customer.ID, 50)

	t.Run("rejects more than balance", func(t *testing.T) {
		err := RedeemPoints(db, customer.ID, 60, "too much")
		if !errors.Is(err, ErrInsufficientBalance) {
			t.Fatalf("expected ErrInsufficientBalance, got %v", err)
		}
		balance, _ := Balance(db, customer.ID)
		if balance != 50 {
			t.Fatalf("expected balance unchanged at 50, got %d", balance)
		}
	})

	t.Run("records negative entry", func(t *testing.T) {
		if err := RedeemPoints(db, customer.ID, 30, "ticket"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		balance, _ := Balance(db, customer.ID)
		if balance != 20 {
			t.Fatalf("expected balance 20, got %d", balance)
		}
	})

	t.Run("rejects zero and negative", func(t *testing.T) {
		if err := RedeemPoints(db, customer.ID, 0, "noop"); !errors.Is(err, ErrInvalidPoints) {
			t.Fatalf("expected ErrInvalidPoints, got %v", err)
		}
	})
}

func TestAvailableBalance(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	db := newTestDB(t)
	fc := withFakeClock(t, now)

	customer := seedCustomer(t, db)
	event, tier := seedEventWithTier(t, db, 100, 10)
	seedLedger(t, db, customer.ID, 50)

	ticket := seedTicket(t, db, customer.ID, event.ID, tier.ID, 100)

	t.Run("open reservation reduces available", func(t *testing.T) {
		if _, err := ReservePoints(db, ticket.ID, customer.ID, 30); err != nil {
			t.Fatalf("reserve: %v", err)
		}

		balance, _ := Balance(db, customer.ID)
		if balance != 50 {
			t.Fatalf("expected balance still 50, got %d", balance)
		}

		available, err := AvailableBalance(db, customer.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if available != 20 {
			t.Fatalf("expected available 20, got %d", available)
		}
	})

	t.Run("expired reservation releases points", func(t *testing.T) {
		fc.Advance(ReservationTTL + time.Minute)

		available, err := AvailableBalance(db, customer.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if available != 50 {
			t.Fatalf("expected available back to 50, got %d", available)
		}

		// Lazy purge đã xoá reservation hết hạn
		reservation, err := OpenReservation(db, ticket.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if reservation != nil {
			t.Fatalf("expected expired reservation purged, got %+v", reservation)
		}
	})
}

func TestPointsFormulas(t *testing.T) {
	t.Parallel()

	t.Run("estimate is ten percent floored", func(t *testing.T) {
		cases := []struct {
			amount float64
			want   int
		}{
			{0, 0},
			{9, 0},
			{100, 10},
			{159, 15},
			{180, 18},
		}
		for _, c := range cases {
			if got := EstimatedPoints(c.amount); got != c.want {
				t.Fatalf("EstimatedPoints(%v) = %d, want %d", c.amount, got, c.want)
			}
		}
	})

	t.Run("confirmation is one per ten units floored", func(t *testing.T) {
		cases := []struct {
			amount float64
			want   int
		}{
			{0, 0},
			{9, 0},
			{100, 10},
			{159, 15},
			{185, 18},
		}
		for _, c := range cases {
			if got := PointsAtConfirmation(c.amount); got != c.want {
				t.Fatalf("PointsAtConfirmation(%v) = %d, want %d", c.amount, got, c.want)
			}
		}
	})
}

func TestLedgerHistory(t *testing.T) {
	db := newTestDB(t)
	fc := withFakeClock(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	customer := seedCustomer(t, db)

	for i := 0; i < 5; i++ {
		seedLedger(t, db, customer.ID, 10+i)
		fc.Advance(time.Minute)
	}

	limit, page := 2, 1
	entries, total, err := LedgerHistory(db, customer.ID, &limit, &page)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if total != 5 {
		t.Fatalf("expected total 5, got %d", total)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Points != 14 {
		t.Fatalf("expected newest entry first (14 points), got %d", entries[0].Points)
	}
}
