package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/storeroom-go-api/internal/service"
	"github.com/noah-isme/storeroom-go-api/internal/utils"
)

// SeedHandler exposes the one-shot database seeding endpoint.
type SeedHandler struct {
	seeder *service.Seeder
	logger zerolog.Logger
}

// NewSeedHandler constructs a seed handler.
func NewSeedHandler(seeder *service.Seeder, logger zerolog.Logger) *SeedHandler {
	return &SeedHandler{
		seeder: seeder,
		logger: logger.With().Str("component", "seed_handler").Logger(),
	}
}

// Register wires the seed route.
func (h *SeedHandler) Register(router fiber.Router) {
	router.Post("", h.seed)
}

func (h *SeedHandler) seed(c *fiber.Ctx) error {
	if err := h.seeder.Run(c.Context()); err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to seed database")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to seed database")
	}
	return utils.SendSuccess(c, "database seeded", nil)
}
