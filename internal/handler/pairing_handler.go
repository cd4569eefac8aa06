package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/storeroom-go-api/internal/dto"
	"github.com/noah-isme/storeroom-go-api/internal/service"
	"github.com/noah-isme/storeroom-go-api/internal/utils"
)

// PairingHandler exposes the signature device pairing endpoints.
type PairingHandler struct {
	service service.PairingService
	logger  zerolog.Logger
}

// NewPairingHandler constructs a pairing handler.
func NewPairingHandler(service service.PairingService, logger zerolog.Logger) *PairingHandler {
	return &PairingHandler{
		service: service,
		logger:  logger.With().Str("component", "pairing_handler").Logger(),
	}
}

// Register wires pairing routes.
func (h *PairingHandler) Register(router fiber.Router) {
	router.Post("/codes", h.createCode)
	router.Post("/register", h.register)
	router.Get("/:code", h.resolve)
}

func (h *PairingHandler) createCode(c *fiber.Ctx) error {
	code, err := h.service.CreateCode(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to issue pairing code")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to issue pairing code")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "pairing code issued", code)
}

func (h *PairingHandler) register(c *fiber.Ctx) error {
	var payload dto.PairingRegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.service.Register(c.Context(), payload.Code, payload.SessionID); err != nil {
		if errors.Is(err, service.ErrPairingNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "pairing code not found or expired")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to register pairing")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to register pairing")
	}

	return utils.SendSuccess(c, "pairing registered", nil)
}

func (h *PairingHandler) resolve(c *fiber.Ctx) error {
	resolved, err := h.service.Resolve(c.Context(), c.Params("code"))
	if err != nil {
		if errors.Is(err, service.ErrPairingNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "pairing code not found or expired")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to resolve pairing")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to resolve pairing")
	}

	return utils.SendSuccess(c, "pairing resolved", resolved)
}
