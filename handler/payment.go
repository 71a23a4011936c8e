package handler

import (
	"log"
	"net/url"
	"os"

	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

// CreatePayment khởi tạo thanh toán cho vé chưa trả tiền
func CreatePayment(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.CreatePaymentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	claim, err := helper.GetInfoCustomerFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_INPUT, err)
	}

	db := database.DB
	var ticket model.Ticket
	if err := db.Preload("Event").Preload("Tier").Preload("Customer").
		First(&ticket, "id = ? AND customer_id = ?", input.TicketId, claim.CustomerId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TICKET_NOT_FOUND, err)
	}
	if ticket.IsPaid {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.PAYMENT_INVALID, nil)
	}

	payment := model.Payment{
		TicketId:    ticket.ID,
		Amount:      ticket.TotalAmount,
		PaymentCode: helper.NewPaymentCode(),
		Method:      input.Method,
	}
	if err := db.Create(&payment).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	vnpay := NewVNPay()
	paymentUrl, err := vnpay.BuildPaymentUrl(model.PaymentRequest{
		Amount:    int64(ticket.TotalAmount),
		OrderInfo: "Thanh toan ve " + ticket.TicketNumber,
		TxnRef:    payment.PaymentCode,
		IPAddr:    c.IP(),
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"paymentCode": payment.PaymentCode,
		"paymentUrl":  paymentUrl,
	})
}

// GatewayCallback xử lý return URL từ cổng thanh toán (browser redirect)
func GatewayCallback(c *fiber.Ctx) error {
	query := url.Values{}
	c.Context().QueryArgs().VisitAll(func(k, v []byte) {
		query.Add(string(k), string(v))
	})

	vnpay := NewVNPay()
	result := vnpay.VerifyReturnUrl(query)

	appUrl := os.Getenv("APP_URL")
	if !result.IsSuccess {
		return c.Redirect(appUrl + "/payment/failed")
	}

	if err := settlePayment(result.TxnRef); err != nil {
		log.Printf("Settle payment %s failed: %v", result.TxnRef, err)
		return c.Redirect(appUrl + "/payment/failed")
	}

	return c.Redirect(appUrl + "/payment/success?code=" + result.TxnRef)
}

// GatewayIPN xử lý thông báo server-to-server từ cổng thanh toán
func GatewayIPN(c *fiber.Ctx) error {
	query := url.Values{}
	c.Context().QueryArgs().VisitAll(func(k, v []byte) {
		query.Add(string(k), string(v))
	})

	vnpay := NewVNPay()
	result := vnpay.VerifyIPN(query)
	if !result.IsSuccess {
		return c.JSON(fiber.Map{"RspCode": "97", "Message": "Invalid signature"})
	}

	if err := settlePayment(result.TxnRef); err != nil {
		return c.JSON(fiber.Map{"RspCode": "01", "Message": "Order not found or already confirmed"})
	}

	return c.JSON(fiber.Map{"RspCode": "00", "Message": "Confirm success"})
}

// settlePayment đánh dấu payment PAID, chốt vé và gửi email xác nhận.
// Idempotent: gọi lại với payment đã PAID trả về nil.
func settlePayment(paymentCode string) error {
	db := database.DB

	var payment model.Payment
	if err := db.First(&payment, "payment_code = ?", paymentCode).Error; err != nil {
		return err
	}
	if payment.Status == "PAID" {
		return nil
	}

	if err := helper.ConfirmPayment(db, payment.TicketId); err != nil {
		return err
	}
	if err := db.Model(&payment).Update("status", "PAID").Error; err != nil {
		return err
	}

	var ticket model.Ticket
	if err := db.Preload("Event").Preload("Tier").Preload("Customer").
		First(&ticket, payment.TicketId).Error; err != nil {
		return err
	}

	qrBytes, err := utils.GenerateQRCode(ticket.TicketCode, 256)
	if err != nil {
		log.Printf("Generate QR for email failed: %v", err)
		qrBytes = nil
	}

	utils.SendTicketConfirmationEmail(ticket.Customer.Email, utils.TicketConfirmationData{
		TicketNumber: ticket.TicketNumber,
		EventName:    ticket.Event.Name,
		Venue:        ticket.Event.Venue,
		StartTime:    ticket.Event.StartTime.Format("15:04 02/01/2006"),
		TierName:     ticket.Tier.Name,
		Quantity:     ticket.Quantity,
		TotalAmount:  ticket.TotalAmount,
		PointsEarned: ticket.PointsEarned,
		DetailLink:   os.Getenv("APP_URL") + "/tickets/" + ticket.TicketCode,
	}, qrBytes)

	BroadcastEventStock(ticket.EventId)
	return nil
}
