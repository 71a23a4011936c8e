package validate

import (
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

func BookTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.BookTicketInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Invalid input", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}
		if input.UseLoyaltyPoints && input.PointsToRedeem <= 0 {
			return utils.ErrorResponse(c, 400, "pointsToRedeem must be positive when using loyalty points", nil)
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func ReservePoints() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ReservePointsInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Invalid input", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}
		c.Locals("input", input)
		return c.Next()
	}
}
