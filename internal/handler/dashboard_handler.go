package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/service"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/utils"
)

// DashboardHandler exposes the admin dashboard aggregate endpoint.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register wires dashboard routes.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/", h.dashboard)
}

func (h *DashboardHandler) dashboard(c *fiber.Ctx) error {
	result, err := h.service.GetDashboard(c.Context())
	if err != nil {
		return handleError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "dashboard retrieved", result)
}
