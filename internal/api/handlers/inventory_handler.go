package handlers

import (
	"strconv"

	"fridge-assistant-backend/domain"
	"fridge-assistant-backend/internal/api/presenters"
	"fridge-assistant-backend/pkg/inventory"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	InventoryHandler interface {
		AddProducts(c *fiber.Ctx) error
		GetFridge(c *fiber.Ctx) error
		DeleteEntry(c *fiber.Ctx) error
		ConsumeEntry(c *fiber.Ctx) error
		GetExpiring(c *fiber.Ctx) error
	}

	inventoryHandler struct {
		inventoryService inventory.InventoryService
		validator        *validator.Validate
	}
)

func NewInventoryHandler(inventoryService inventory.InventoryService, validator *validator.Validate) InventoryHandler {
	return &inventoryHandler{
		inventoryService: inventoryService,
		validator:        validator,
	}
}

func (h *inventoryHandler) AddProducts(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddProductsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddProducts, err)
	}

	res, err := h.inventoryService.ParseAndStore(c.Context(), userID, req.Text)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddProducts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddProducts)
}

func (h *inventoryHandler) GetFridge(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	items, err := h.inventoryService.GetFridge(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFridge, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"items": items}, fiber.StatusOK, domain.MessageSuccessGetFridge)
}

func (h *inventoryHandler) DeleteEntry(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	entryID := c.Params("id")

	if err := h.inventoryService.DeleteEntry(c.Context(), entryID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteEntry, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteEntry)
}

func (h *inventoryHandler) ConsumeEntry(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	entryID := c.Params("id")
	req := new(domain.ConsumeEntryRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedConsumeEntry, err)
	}

	res, err := h.inventoryService.ConsumeEntry(c.Context(), entryID, userID, req.Amount)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedConsumeEntry, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessConsumeEntry)
}

func (h *inventoryHandler) GetExpiring(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	days, err := strconv.Atoi(c.Query("days", strconv.Itoa(inventory.DefaultExpiringDays)))
	if err != nil || days < 0 {
		days = inventory.DefaultExpiringDays
	}

	items, err := h.inventoryService.GetExpiring(c.Context(), userID, days)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetExpiring, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"items": items}, fiber.StatusOK, domain.MessageSuccessGetExpiring)
}
