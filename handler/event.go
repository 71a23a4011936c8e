package handler

import (
	"errors"

	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func CreateEvent(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateEventInput)
	db := database.DB

	var event model.Event
	if err := copier.Copy(&event, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	event.Slug = slug.Make(input.Name)
	event.Status = model.EventUpcoming

	var existing model.Event
	if err := db.Where("slug = ?", event.Slug).First(&existing).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Event with the same name already exists", nil)
	}

	if err := db.Create(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, event)
}

func EditEvent(c *fiber.Ctx) error {
	eventId := c.Locals("eventId").(int)
	input := c.Locals("input").(model.EditEventInput)
	db := database.DB

	var event model.Event
	if err := db.First(&event, eventId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if input.Name != nil {
		event.Name = *input.Name
		event.Slug = slug.Make(*input.Name)
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Venue != nil {
		event.Venue = *input.Venue
	}
	if input.StartTime != nil {
		event.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		event.EndTime = *input.EndTime
	}
	if input.Status != nil {
		event.Status = *input.Status
	}

	if err := db.Save(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func GetEvents(c *fiber.Ctx) error {
	filterInput := new(model.FilterEventInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	var events model.Events
	condition := db.Model(&model.Event{}).Preload("Tiers")

	if filterInput.SearchKey != "" {
		key := "%" + filterInput.SearchKey + "%"
		condition = condition.Where("name LIKE ? OR venue LIKE ?", key, key)
	}
	if filterInput.Status != "" {
		condition = condition.Where("status = ?", filterInput.Status)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	if err := condition.Order("start_time asc").Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       events,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetEventBySlug(c *fiber.Ctx) error {
	eventSlug := c.Params("slug")

	var event model.Event
	if err := database.DB.Preload("Tiers", "active = ?", true).
		Where("slug = ?", eventSlug).First(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func CreateTier(c *fiber.Ctx) error {
	eventId := c.Locals("eventId").(int)
	input := c.Locals("input").(model.CreateTierInput)
	db := database.DB

	var event model.Event
	if err := db.First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
	}

	tier := model.PriceTier{
		Name:           input.Name,
		Price:          input.Price,
		InitialStock:   input.Stock,
		RemainingStock: input.Stock,
		Active:         true,
		EventId:        event.ID,
	}
	if err := db.Create(&tier).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, tier)
}
