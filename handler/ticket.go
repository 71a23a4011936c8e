package handler

import (
	"encoding/base64"
	"errors"
	"log"
	"time"

	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

func GetMyTickets(c *fiber.Ctx) error {
	customerInfo, err := helper.GetInfoCustomerFromToken(c)
	if err != nil || customerInfo.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Please login", err)
	}

	var tickets []model.Ticket
	if err := database.DB.Preload("Event").Preload("Tier").
		Where("customer_id = ?", customerInfo.CustomerId).
		Order("created_at desc").Find(&tickets).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"tickets": tickets,
		"total":   len(tickets),
	})
}

func GetTicketByCode(c *fiber.Ctx) error {
	ticketCode := c.Params("ticketCode")

	var ticket model.Ticket
	if err := database.DB.Preload("Event").Preload("Tier").
		Where("ticket_code = ?", ticketCode).First(&ticket).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TICKET_NOT_FOUND, err)
	}

	// QR nhúng trực tiếp để client hiển thị không cần gọi storage
	qrBytes, err := utils.GenerateQRCode(ticket.TicketCode, 400)
	qrBase64 := ""
	if err != nil {
		log.Printf("Failed to generate QR for ticket %s: %v", ticket.TicketNumber, err)
	} else {
		qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
	}

	response := fiber.Map{
		"ticketNumber":    ticket.TicketNumber,
		"eventName":       ticket.Event.Name,
		"venue":           ticket.Event.Venue,
		"startTime":       ticket.Event.StartTime.Format("02/01/2006 15:04"),
		"tierName":        ticket.Tier.Name,
		"quantity":        ticket.Quantity,
		"totalAmount":     ticket.TotalAmount,
		"discountApplied": ticket.DiscountApplied,
		"pointsRedeemed":  ticket.PointsRedeemed,
		"pointsEarned":    ticket.PointsEarned,
		"isPaid":          ticket.IsPaid,
		"qrCode":          qrBase64,
	}

	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// CheckInTicket soát vé tại cổng bằng ticket code.
func CheckInTicket(c *fiber.Ctx) error {
	_, isAdmin, isStaff := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isStaff {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	ticketCode := c.Params("ticketCode")

	var ticket model.Ticket
	if err := database.DB.Preload("Event").
		Where("ticket_code = ?", ticketCode).First(&ticket).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TICKET_NOT_FOUND, err)
	}

	if !ticket.IsPaid {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Ticket has not been paid", nil)
	}
	if ticket.UsedAt != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Ticket already used", nil)
	}
	// Không check-in sau khi sự kiện kết thúc
	if helper.Clock.Now().After(ticket.Event.EndTime) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Event already ended", nil)
	}

	now := time.Now()
	ticket.UsedAt = &now
	if err := database.DB.Save(&ticket).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message":      "Check-in success",
		"ticketNumber": ticket.TicketNumber,
		"quantity":     ticket.Quantity,
		"usedAt":       now.Format("02/01/2006 15:04"),
	})
}

func GetTicketsAdmin(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	filterInput := new(model.FilterTicketInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	var tickets []model.Ticket
	condition := db.Model(&model.Ticket{}).Preload("Event").Preload("Tier").Preload("Customer")

	if filterInput.EventId > 0 {
		condition = condition.Where("event_id = ?", filterInput.EventId)
	}
	if filterInput.IsPaid != nil {
		condition = condition.Where("is_paid = ?", *filterInput.IsPaid)
	}
	if filterInput.StartDate != nil {
		condition = condition.Where("created_at >= ?", filterInput.StartDate)
	}
	if filterInput.EndDate != nil {
		condition = condition.Where("created_at <= ?", filterInput.EndDate)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	if err := condition.Order("created_at desc").Find(&tickets).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       tickets,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}
