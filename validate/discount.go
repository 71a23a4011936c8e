package validate

import (
	"strconv"

	"event_ticketing/constants"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateDiscount() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := requireAdmin(c); err != nil {
			return err
		}
		var input model.CreateDiscountInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Invalid input", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}
		if input.DiscountType == model.DiscountPercentage && input.DiscountValue > 100 {
			return utils.ErrorResponse(c, 400, "percentage discount cannot exceed 100", nil)
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func EditDiscount(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := requireAdmin(c); err != nil {
			return err
		}
		discountId, err := strconv.Atoi(c.Params(key))
		if err != nil {
			return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, err)
		}
		var input model.EditDiscountInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Invalid input", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}
		c.Locals("discountId", discountId)
		c.Locals("input", input)
		return c.Next()
	}
}
