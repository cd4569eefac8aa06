package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/storeroom-go-api/internal/dto"
	"github.com/noah-isme/storeroom-go-api/internal/service"
	"github.com/noah-isme/storeroom-go-api/internal/utils"
)

// ItemHandler exposes the catalog endpoints.
type ItemHandler struct {
	service service.ItemService
	logger  zerolog.Logger
}

// NewItemHandler constructs an item handler.
func NewItemHandler(service service.ItemService, logger zerolog.Logger) *ItemHandler {
	return &ItemHandler{
		service: service,
		logger:  logger.With().Str("component", "item_handler").Logger(),
	}
}

// Register wires catalog routes.
func (h *ItemHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/search", h.search)
	router.Get("/:id", h.get)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
}

func (h *ItemHandler) list(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active_only", true)

	items, err := h.service.List(c.Context(), activeOnly)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list items")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list items")
	}

	return utils.SendSuccess(c, "items retrieved", items)
}

func (h *ItemHandler) search(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	items, err := h.service.Search(c.Context(), c.Query("q"), limit)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to search items")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to search items")
	}

	return utils.SendSuccess(c, "items retrieved", items)
}

func (h *ItemHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid item id")
	}

	item, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "item not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load item")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load item")
	}

	return utils.SendSuccess(c, "item retrieved", item)
}

func (h *ItemHandler) create(c *fiber.Ctx) error {
	var payload dto.ItemCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	item, err := h.service.Create(c.Context(), payload, userIDFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusUnprocessableEntity, "validation failed")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create item")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create item")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "item created", item)
}

func (h *ItemHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid item id")
	}

	var payload dto.ItemUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	item, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "item not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusUnprocessableEntity, "validation failed")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update item")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update item")
		}
	}

	return utils.SendSuccess(c, "item updated", item)
}
