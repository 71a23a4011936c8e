package validate

import (
	"errors"
	"strconv"

	"event_ticketing/constants"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

func requireAdmin(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}
	return nil
}

func CreateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := requireAdmin(c); err != nil {
			return err
		}
		var input model.CreateEventInput
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

func EditEvent(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := requireAdmin(c); err != nil {
			return err
		}
		eventId, err := strconv.Atoi(c.Params(key))
		if err != nil {
			return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, err)
		}
		var input model.EditEventInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Invalid input", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}
		c.Locals("eventId", eventId)
		c.Locals("input", input)
		return c.Next()
	}
}

func CreateTier(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := requireAdmin(c); err != nil {
			return err
		}
		eventId, err := strconv.Atoi(c.Params(key))
		if err != nil {
			return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, err)
		}
		var input model.CreateTierInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Invalid input", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}
		c.Locals("eventId", eventId)
		c.Locals("input", input)
		return c.Next()
	}
}
