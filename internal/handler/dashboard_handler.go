package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/service"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/utils"
)

// DashboardHandler exposes the admin overview endpoint.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(svc service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: svc,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register attaches the dashboard route to the router group.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("", h.overview)
}

func (h *DashboardHandler) overview(c *fiber.Ctx) error {
	response, err := h.service.Overview(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build dashboard overview")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build dashboard overview")
	}

	return utils.SendSuccess(c, "dashboard", response)
}
