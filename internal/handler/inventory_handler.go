package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/storeroom-go-api/internal/dto"
	"github.com/noah-isme/storeroom-go-api/internal/service"
	"github.com/noah-isme/storeroom-go-api/internal/utils"
)

// InventoryHandler exposes the manual stock mutation endpoints and the per-item
// audit trail.
type InventoryHandler struct {
	service service.InventoryService
	logger  zerolog.Logger
}

// NewInventoryHandler constructs an inventory handler.
func NewInventoryHandler(service service.InventoryService, logger zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: service,
		logger:  logger.With().Str("component", "inventory_handler").Logger(),
	}
}

// Register wires inventory routes.
func (h *InventoryHandler) Register(router fiber.Router) {
	router.Post("/restock", h.restock)
	router.Post("/adjust", h.adjust)
	router.Get("/items/:id/history", h.history)
}

func (h *InventoryHandler) restock(c *fiber.Ctx) error {
	var payload dto.RestockRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	item, err := h.service.Restock(c.Context(), payload.ItemID, payload.Qty, payload.Note, userIDFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "item not found")
		case errors.Is(err, service.ErrInvalidQuantity):
			return utils.SendError(c, fiber.StatusUnprocessableEntity, "quantity must be positive")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to restock item")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to restock item")
		}
	}

	return utils.SendSuccess(c, "item restocked", item)
}

func (h *InventoryHandler) adjust(c *fiber.Ctx) error {
	var payload dto.AdjustmentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	item, err := h.service.Adjust(c.Context(), payload.ItemID, payload.Delta, payload.Note, userIDFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "item not found")
		case errors.Is(err, service.ErrInvalidQuantity):
			return utils.SendError(c, fiber.StatusUnprocessableEntity, "delta must be non-zero")
		case errors.Is(err, service.ErrInsufficientStock):
			return utils.SendError(c, fiber.StatusConflict, "adjustment would make stock negative")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to adjust stock")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to adjust stock")
		}
	}

	return utils.SendSuccess(c, "stock adjusted", item)
}

func (h *InventoryHandler) history(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid item id")
	}

	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	entries, err := h.service.History(c.Context(), id, limit)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "item not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load item history")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load item history")
	}

	return utils.SendSuccess(c, "history retrieved", entries)
}
