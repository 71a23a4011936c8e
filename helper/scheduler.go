package helper

import (
	"log"
	"time"

	"event_ticketing/database"
	"event_ticketing/model"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
)

var reservationSweeper *cron.Cron

// StartReservationSweeper dọn định kỳ các reservation mở đã quá hạn.
// Chỉ là vệ sinh dữ liệu: lazy purge lúc tính availableBalance vẫn là
// cơ chế đảm bảo đúng đắn.
func StartReservationSweeper() {
	reservationSweeper = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	// Chạy mỗi 10 phút
	_, err := reservationSweeper.AddFunc("*/10 * * * *", sweepExpiredReservations)
	if err != nil {
		log.Printf("Failed to start reservation sweeper: %v", err)
		return
	}

	reservationSweeper.Start()
	log.Println("Reservation sweeper started (every 10 minutes)")
}

func StopReservationSweeper() {
	if reservationSweeper != nil {
		reservationSweeper.Stop()
	}
}

func sweepExpiredReservations() {
	result := database.DB.
		Where("confirmed = ? AND expires_at <= ?", false, Clock.Now()).
		Delete(&model.PointReservation{})

	if result.Error != nil {
		log.Printf("Failed to sweep expired reservations: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Swept %d expired point reservations", result.RowsAffected)
	}
}

var discountScheduler gocron.Scheduler

// AutoExpireDiscountCodes tắt các mã giảm giá đã qua hạn.
func AutoExpireDiscountCodes() {
	result := database.DB.Model(&model.DiscountCode{}).
		Where("active = ? AND end_date < ?", true, Clock.Now()).
		Update("active", false)

	if result.Error != nil {
		log.Printf("Failed to expire discount codes: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Deactivated %d expired discount codes", result.RowsAffected)
	}
}

func StartDiscountStatusScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	discountScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(AutoExpireDiscountCodes),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("Discount status scheduler started (00:05 daily)")
}

func StopDiscountStatusScheduler() {
	if discountScheduler != nil {
		_ = discountScheduler.Shutdown()
	}
}

// ExpireUnpaidTickets huỷ reservation của vé chưa thanh toán sau khi
// sự kiện đã bắt đầu quá 30 phút (vé tự hết giá trị, điểm được nhả).
func ExpireUnpaidTickets() {
	db := database.DB
	now := Clock.Now()

	var stale []model.Ticket
	err := db.
		Joins("JOIN events ON events.id = tickets.event_id").
		Where("tickets.is_paid = ? AND events.start_time < ?", false, now.Add(-30*time.Minute)).
		Find(&stale).Error
	if err != nil {
		log.Printf("Failed to find stale unpaid tickets: %v", err)
		return
	}

	for _, ticket := range stale {
		if _, err := RollbackReservation(db, ticket.ID); err != nil {
			log.Printf("Failed to release reservation for ticket %s: %v", ticket.TicketNumber, err)
		}
	}
}
