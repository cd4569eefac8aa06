package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/storeroom-go-api/internal/dto"
	"github.com/noah-isme/storeroom-go-api/internal/service"
	"github.com/noah-isme/storeroom-go-api/internal/utils"
)

// TeacherHandler exposes the recipient directory endpoints.
type TeacherHandler struct {
	service service.TeacherService
	logger  zerolog.Logger
}

// NewTeacherHandler constructs a teacher handler.
func NewTeacherHandler(service service.TeacherService, logger zerolog.Logger) *TeacherHandler {
	return &TeacherHandler{
		service: service,
		logger:  logger.With().Str("component", "teacher_handler").Logger(),
	}
}

// Register wires teacher routes.
func (h *TeacherHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/search", h.search)
	router.Get("/:id", h.get)
	router.Post("", h.create)
}

// RegisterDepartments wires department routes.
func (h *TeacherHandler) RegisterDepartments(router fiber.Router) {
	router.Get("", h.listDepartments)
	router.Post("", h.createDepartment)
}

func (h *TeacherHandler) list(c *fiber.Ctx) error {
	teachers, err := h.service.List(c.Context(), c.QueryBool("active_only", true))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list teachers")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list teachers")
	}
	return utils.SendSuccess(c, "teachers retrieved", teachers)
}

func (h *TeacherHandler) search(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	teachers, err := h.service.Search(c.Context(), c.Query("q"), limit)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to search teachers")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to search teachers")
	}
	return utils.SendSuccess(c, "teachers retrieved", teachers)
}

func (h *TeacherHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid teacher id")
	}

	teacher, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTeacherNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "teacher not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load teacher")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load teacher")
	}
	return utils.SendSuccess(c, "teacher retrieved", teacher)
}

func (h *TeacherHandler) create(c *fiber.Ctx) error {
	var payload dto.TeacherCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	teacher, err := h.service.Create(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDepartmentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "department not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusUnprocessableEntity, "validation failed")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to create teacher")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create teacher")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "teacher created", teacher)
}

func (h *TeacherHandler) listDepartments(c *fiber.Ctx) error {
	departments, err := h.service.ListDepartments(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list departments")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list departments")
	}
	return utils.SendSuccess(c, "departments retrieved", departments)
}

func (h *TeacherHandler) createDepartment(c *fiber.Ctx) error {
	var payload dto.DepartmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	department, err := h.service.CreateDepartment(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusUnprocessableEntity, "validation failed")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create department")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create department")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "department created", department)
}
