package handler

import (
	"errors"

	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func CreateDiscount(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateDiscountInput)
	db := database.DB

	var existing model.DiscountCode
	if err := db.Where("code = ?", input.Code).First(&existing).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Discount code already exists", nil)
	}

	var discount model.DiscountCode
	if err := copier.Copy(&discount, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	discount.Active = true

	if err := db.Create(&discount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, discount)
}

func EditDiscount(c *fiber.Ctx) error {
	discountId := c.Locals("discountId").(int)
	input := c.Locals("input").(model.EditDiscountInput)
	db := database.DB

	var discount model.DiscountCode
	if err := db.First(&discount, discountId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Discount not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if input.Name != nil {
		discount.Name = *input.Name
	}
	if input.Description != nil {
		discount.Description = *input.Description
	}
	if input.DiscountValue != nil {
		discount.DiscountValue = *input.DiscountValue
	}
	if input.StartDate != nil {
		discount.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		discount.EndDate = *input.EndDate
	}
	if input.Active != nil {
		discount.Active = *input.Active
	}

	if err := db.Save(&discount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, discount)
}

func GetDiscounts(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	pagination := new(model.Pagination)
	if err := c.QueryParser(pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	var discounts model.DiscountCodes
	condition := db.Model(&model.DiscountCode{})

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, pagination.Limit, pagination.Page)
	if err := condition.Order("created_at desc").Find(&discounts).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       discounts,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// PreviewDiscount cho client xem trước mức giảm của một mã trên số tiền.
// Mã không hợp lệ trả về discount 0 thay vì lỗi.
func PreviewDiscount(c *fiber.Ctx) error {
	type PreviewInput struct {
		Code    string  `json:"code"`
		Amount  float64 `json:"amount"`
		EventId uint    `json:"eventId"`
	}

	var input PreviewInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	discount := helper.FindDiscountByCode(database.DB, input.Code)
	applied := helper.EvaluateDiscount(discount, input.Amount, input.EventId, helper.Clock.Now())

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"code":            input.Code,
		"discountApplied": applied,
		"finalAmount":     input.Amount - applied,
	})
}
