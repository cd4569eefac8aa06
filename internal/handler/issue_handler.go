package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/storeroom-go-api/internal/dto"
	"github.com/noah-isme/storeroom-go-api/internal/service"
	"github.com/noah-isme/storeroom-go-api/internal/utils"
)

// IssueHandler exposes the checkout completion endpoint and issue lookups.
type IssueHandler struct {
	service service.IssueService
	logger  zerolog.Logger
}

// NewIssueHandler constructs an issue handler.
func NewIssueHandler(service service.IssueService, logger zerolog.Logger) *IssueHandler {
	return &IssueHandler{
		service: service,
		logger:  logger.With().Str("component", "issue_handler").Logger(),
	}
}

// Register wires issue routes.
func (h *IssueHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

func (h *IssueHandler) create(c *fiber.Ctx) error {
	var payload dto.IssueCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.ProcessIssue(c.Context(), service.ProcessIssueInput{
		ActorID:     userIDFromContext(c),
		TeacherID:   payload.TeacherID,
		Lines:       payload.Items,
		Signature:   payload.Signature,
		PairingCode: payload.PairingCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			return utils.SendError(c, fiber.StatusBadRequest, "no items in request")
		case errors.Is(err, service.ErrSignatureRequired):
			return utils.SendError(c, fiber.StatusBadRequest, "signature required")
		case errors.Is(err, service.ErrInvalidQuantity):
			return utils.SendError(c, fiber.StatusUnprocessableEntity, "invalid quantity")
		case errors.Is(err, service.ErrSignatureInvalid):
			return utils.SendError(c, fiber.StatusUnprocessableEntity, "signature could not be stored")
		case errors.Is(err, service.ErrTeacherNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "teacher not found")
		case errors.Is(err, service.ErrInsufficientStock):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to process issue")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to process issue")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "issue recorded", response)
}

func (h *IssueHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	issues, err := h.service.List(c.Context(), page, pageSize)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list issues")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list issues")
	}

	return utils.SendSuccess(c, "issues retrieved", issues)
}

func (h *IssueHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid issue id")
	}

	issue, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrIssueNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "issue not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load issue")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load issue")
	}

	return utils.SendSuccess(c, "issue retrieved", issue)
}
