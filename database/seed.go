package database

import (
	"log"
	"time"

	"event_ticketing/constants"
	"event_ticketing/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func parseDate(dateStr string) time.Time {
	t, _ := time.Parse("2006-01-02", dateStr)
	return t
}

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("changeme123"), 10)
	hashPassword := string(bytes)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}

	accounts := []model.Account{
		{Username: "Administration", Password: hashPassword, Active: true, Role: constants.ROLE_ADMIN},
		{Username: "GateStaff", Password: hashPassword, Active: true, Role: constants.ROLE_STAFF},
	}
	for _, account := range accounts {
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Println("failed to seed account:", account.Username, "error:", err)
		}
	}

	events := []model.Event{
		{
			Name:      "City Music Festival 2026",
			Slug:      "city-music-festival-2026",
			Venue:     "Riverside Park",
			StartTime: parseDate("2026-10-17"),
			EndTime:   parseDate("2026-10-18"),
			Status:    model.EventOnSale,
		},
		{
			Name:      "Stand-up Comedy Night",
			Slug:      "stand-up-comedy-night",
			Venue:     "Grand Theater",
			StartTime: parseDate("2026-11-02"),
			EndTime:   parseDate("2026-11-02"),
			Status:    model.EventOnSale,
		},
	}
	for i := range events {
		if err := db.Where(model.Event{Slug: events[i].Slug}).FirstOrCreate(&events[i]).Error; err != nil {
			log.Println("failed to seed event:", events[i].Slug, "error:", err)
		}
	}

	tiers := []model.PriceTier{
		{Name: "Standard", Price: 100, InitialStock: 500, RemainingStock: 500, Active: true, EventId: events[0].ID},
		{Name: "VIP", Price: 250, InitialStock: 100, RemainingStock: 100, Active: true, EventId: events[0].ID},
		{Name: "Standard", Price: 50, InitialStock: 200, RemainingStock: 200, Active: true, EventId: events[1].ID},
	}
	for _, tier := range tiers {
		if err := db.Where(model.PriceTier{Name: tier.Name, EventId: tier.EventId}).FirstOrCreate(&tier).Error; err != nil {
			log.Println("failed to seed tier:", tier.Name, "error:", err)
		}
	}

	discounts := []model.DiscountCode{
		{
			Code:          "10OFF",
			Name:          "10% off launch promo",
			DiscountType:  model.DiscountPercentage,
			DiscountValue: 10,
			StartDate:     parseDate("2026-01-01"),
			EndDate:       parseDate("2026-12-31"),
			Active:        true,
		},
		{
			Code:          "WELCOME20",
			Name:          "20 off first booking",
			DiscountType:  model.DiscountFixed,
			DiscountValue: 20,
			StartDate:     parseDate("2026-01-01"),
			EndDate:       parseDate("2026-12-31"),
			Active:        true,
		},
	}
	for _, discount := range discounts {
		if err := db.Where(model.DiscountCode{Code: discount.Code}).FirstOrCreate(&discount).Error; err != nil {
			log.Println("failed to seed discount:", discount.Code, "error:", err)
		}
	}
}
