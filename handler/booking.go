package handler

import (
	"errors"

	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

// BookTicket đặt vé: trừ kho, chốt giá (mã giảm + điểm), tạo vé chưa
// thanh toán và giữ điểm trong 30 phút chờ thanh toán.
func BookTicket(c *fiber.Ctx) error {
	input := c.Locals("input").(model.BookTicketInput)

	customerInfo, err := helper.GetInfoCustomerFromToken(c)
	if err != nil || customerInfo.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Please login", err)
	}

	db := database.DB
	ticket, err := helper.BookTicket(db, helper.BookingInput{
		CustomerId:       customerInfo.CustomerId,
		EventId:          input.EventId,
		TierId:           input.TierId,
		Quantity:         input.Quantity,
		DiscountCode:     input.DiscountCode,
		UseLoyaltyPoints: input.UseLoyaltyPoints,
		PointsToRedeem:   input.PointsToRedeem,
	})
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TIER_NOT_FOUND, err)
		case errors.Is(err, helper.ErrInsufficientStock):
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.OUT_OF_STOCK, err)
		case errors.Is(err, helper.ErrInsufficientBalance):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.NOT_ENOUGH_POINTS, err)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	// QR best-effort, không rollback booking nếu fail
	helper.AttachTicketQR(db, ticket)

	// Realtime tồn kho
	BroadcastEventStock(ticket.EventId)

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"ticket":          ticket,
		"estimatedPoints": helper.EstimatedPoints(ticket.TotalAmount),
		"nextStep":        "Create a payment to confirm the booking",
	})
}

// CancelBooking nhả điểm đã giữ của một vé chưa thanh toán.
func CancelBooking(c *fiber.Ctx) error {
	ticketId, err := c.ParamsInt("ticketId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	customerInfo, err := helper.GetInfoCustomerFromToken(c)
	if err != nil || customerInfo.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Please login", err)
	}

	db := database.DB
	var ticket model.Ticket
	if err := db.Where("id = ? AND customer_id = ?", ticketId, customerInfo.CustomerId).
		First(&ticket).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TICKET_NOT_FOUND, err)
	}
	if ticket.IsPaid {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Paid tickets cannot be cancelled here", nil)
	}

	released, err := helper.RollbackReservation(db, ticket.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"ticketNumber":   ticket.TicketNumber,
		"pointsReleased": released,
	})
}
