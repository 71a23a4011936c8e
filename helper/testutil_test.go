package helper

import (
	"fmt"
	"testing"
	"time"

	"event_ticketing/model"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB mở một database SQLite in-memory riêng cho mỗi test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&model.Customer{},
		&model.Event{},
		&model.PriceTier{},
		&model.DiscountCode{},
		&model.Ticket{},
		&model.LoyaltyLedgerEntry{},
		&model.PointReservation{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// withFakeClock thay Clock bằng fake clock cố định, tự restore sau test.
func withFakeClock(t *testing.T, at time.Time) *clockwork.FakeClock {
	t.Helper()

	fc := clockwork.NewFakeClockAt(at)
	prev := Clock
	Clock = fc
	t.Cleanup(func() { Clock = prev })
	return fc
}

func seedCustomer(t *testing.T, db *gorm.DB) model.Customer {
	t.Helper()

	customer := model.Customer{
		UserName: "testcustomer",
		Email:    uuid.NewString() + "@example.com",
		Phone:    "0900000000",
		Password: "hashed",
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return customer
}

func seedEventWithTier(t *testing.T, db *gorm.DB, price float64, stock int) (model.Event, model.PriceTier) {
	t.Helper()

	start := Clock.Now().Add(24 * time.Hour)
	event := model.Event{
		Name:      "Test Event",
		Slug:      "test-event-" + uuid.NewString()[:8],
		Venue:     "Test Hall",
		StartTime: start,
		EndTime:   start.Add(3 * time.Hour),
		Status:    model.EventOnSale,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}

	tier := model.PriceTier{
		Name:           "Standard",
		Price:          price,
		InitialStock:   stock,
		RemainingStock: stock,
		Active:         true,
		EventId:        event.ID,
	}
	if err := db.Create(&tier).Error; err != nil {
		t.Fatalf("seed tier: %v", err)
	}
	return event, tier
}

func seedLedger(t *testing.T, db *gorm.DB, customerId uint, points int) {
	t.Helper()

	entry := model.LoyaltyLedgerEntry{
		CustomerId:  customerId,
		Points:      points,
		Description: "seed",
		RecordedAt:  Clock.Now(),
	}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("seed ledger entry: %v", err)
	}
}

func seedTicket(t *testing.T, db *gorm.DB, customerId, eventId, tierId uint, total float64) model.Ticket {
	t.Helper()

	ticket := model.Ticket{
		TicketNumber: NewTicketNumber(),
		TicketCode:   NewTicketCode(),
		Quantity:     1,
		TotalAmount:  total,
		CustomerId:   customerId,
		EventId:      eventId,
		TierId:       tierId,
	}
	if err := db.Create(&ticket).Error; err != nil {
		t.Fatalf("seed ticket: %v", err)
	}
	return ticket
}
