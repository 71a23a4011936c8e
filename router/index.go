package router

import (
	"event_ticketing/handler"
	"event_ticketing/middleware"
	"event_ticketing/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)

	customer := v1.Group("/customer", logger.New())
	customer.Post("/register", validate.RegisterCustomer(), handler.RegisterCustomer)
	customer.Post("/login", handler.LoginCustomer)
	customer.Get("/me", middleware.Protected(), handler.Me)
	customer.Get("/", middleware.Protected(), handler.GetCustomers)
	customer.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	customer.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)

	event := v1.Group("/event", logger.New())
	event.Get("/", middleware.OptionalJWT(), handler.GetEvents)
	event.Get("/:slug", middleware.OptionalJWT(), handler.GetEventBySlug)
	event.Post("/", middleware.Protected(), validate.CreateEvent(), handler.CreateEvent)
	event.Put("/:eventId", middleware.Protected(), validate.EditEvent("eventId"), handler.EditEvent)
	event.Post("/:eventId/tier", middleware.Protected(), validate.CreateTier("eventId"), handler.CreateTier)

	discount := v1.Group("/discount", logger.New())
	discount.Get("/", middleware.Protected(), handler.GetDiscounts)
	discount.Post("/", middleware.Protected(), validate.CreateDiscount(), handler.CreateDiscount)
	discount.Put("/:discountId", middleware.Protected(), validate.EditDiscount("discountId"), handler.EditDiscount)
	discount.Post("/preview", middleware.OptionalJWT(), handler.PreviewDiscount)

	booking := v1.Group("/booking", logger.New())
	booking.Post("/", middleware.Protected(), validate.BookTicket(), handler.BookTicket)
	booking.Post("/:ticketId/cancel", middleware.Protected(), handler.CancelBooking)

	ticket := v1.Group("/ticket", logger.New())
	ticket.Get("/", middleware.Protected(), handler.GetMyTickets)
	ticket.Get("/admin", middleware.Protected(), handler.GetTicketsAdmin)
	ticket.Get("/:ticketCode", middleware.Protected(), handler.GetTicketByCode)
	ticket.Post("/:ticketCode/check-in", middleware.Protected(), handler.CheckInTicket)

	loyalty := v1.Group("/loyalty", logger.New())
	loyalty.Get("/balance", middleware.Protected(), handler.GetLoyaltyBalance)
	loyalty.Get("/history", middleware.Protected(), handler.GetLoyaltyHistory)
	loyalty.Post("/reserve", middleware.Protected(), validate.ReservePoints(), handler.ReservePoints)
	loyalty.Post("/:ticketId/release", middleware.Protected(), handler.ReleasePoints)

	// Realtime tồn kho vé theo sự kiện
	v1.Get("/event/:eventId/stock", middleware.OptionalJWT(), websocket.New(handler.StockWebsocket))

	// Payment gateway
	app.Post("/payments", middleware.Protected(), validate.CreatePayment(), handler.CreatePayment)
	app.Get("/vnpay/return", handler.GatewayCallback) // Callback từ VNPay
	app.Post("/vnpay/ipn", handler.GatewayIPN)        // Server-to-Server
}
