package main

import (
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/router"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})

	helper.StartReservationSweeper()
	defer helper.StopReservationSweeper()
	helper.StartDiscountStatusScheduler()
	defer helper.StopDiscountStatusScheduler()

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			<-ticker.C
			helper.ExpireUnpaidTickets()
		}
	}()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173/",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()
	if _, err := helper.InitCloudinary(); err != nil {
		log.Printf("Cloudinary init failed, QR upload disabled: %v", err)
	}

	router.SetupRoutes(app)
	log.Fatal(app.Listen(":8002"))
}
