package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/storeroom-go-api/internal/service"
	"github.com/noah-isme/storeroom-go-api/internal/utils"
)

// ReportHandler exposes the read-only reporting endpoints.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler constructs a report handler.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register wires report routes.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Get("/stats", h.stats)
	router.Get("/overview", h.overview)
}

func (h *ReportHandler) stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to compute stats")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute stats")
	}
	return utils.SendSuccess(c, "stats retrieved", stats)
}

func (h *ReportHandler) overview(c *fiber.Ctx) error {
	days, err := parseQueryInt(c, "days")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid days")
	}

	report, err := h.service.Overview(c.Context(), days)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to compute report")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute report")
	}
	return utils.SendSuccess(c, "report retrieved", report)
}
