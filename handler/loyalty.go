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

func GetLoyaltyBalance(c *fiber.Ctx) error {
	customerInfo, err := helper.GetInfoCustomerFromToken(c)
	if err != nil || customerInfo.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Please login", err)
	}

	db := database.DB
	balance, err := helper.Balance(db, customerInfo.CustomerId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	available, err := helper.AvailableBalance(db, customerInfo.CustomerId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"balance":          balance,
		"availableBalance": available,
	})
}

func GetLoyaltyHistory(c *fiber.Ctx) error {
	customerInfo, err := helper.GetInfoCustomerFromToken(c)
	if err != nil || customerInfo.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Please login", err)
	}

	pagination := new(model.Pagination)
	if err := c.QueryParser(pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	entries, totalCount, err := helper.LedgerHistory(database.DB, customerInfo.CustomerId, pagination.Limit, pagination.Page)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       entries,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// ReservePoints cho khách chủ động giữ (hoặc đổi lại số) điểm cho một vé
// chưa thanh toán. Gọi lần hai sẽ ghi đè và gia hạn.
func ReservePoints(c *fiber.Ctx) error {
	input := c.Locals("input").(model.ReservePointsInput)

	customerInfo, err := helper.GetInfoCustomerFromToken(c)
	if err != nil || customerInfo.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Please login", err)
	}

	db := database.DB
	var ticket model.Ticket
	if err := db.Where("id = ? AND customer_id = ?", input.TicketId, customerInfo.CustomerId).
		First(&ticket).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TICKET_NOT_FOUND, err)
	}
	if ticket.IsPaid {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Ticket already paid", nil)
	}

	reservation, err := helper.ReservePoints(db, ticket.ID, customerInfo.CustomerId, input.Points)
	if err != nil {
		if errors.Is(err, helper.ErrInsufficientBalance) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.NOT_ENOUGH_POINTS, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, reservation)
}

// ReleasePoints nhả điểm đang giữ của một vé. Idempotent.
func ReleasePoints(c *fiber.Ctx) error {
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

	released, err := helper.RollbackReservation(db, ticket.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"released": released,
	})
}
