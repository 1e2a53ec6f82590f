package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/dto"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/middleware"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/service"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/utils"
)

// DepartmentHandler exposes department endpoints.
type DepartmentHandler struct {
	service service.DepartmentService
	logger  zerolog.Logger
}

// NewDepartmentHandler constructs a department handler.
func NewDepartmentHandler(service service.DepartmentService, logger zerolog.Logger) *DepartmentHandler {
	return &DepartmentHandler{
		service: service,
		logger:  logger.With().Str("component", "department_handler").Logger(),
	}
}

// Register wires department routes.
func (h *DepartmentHandler) Register(router fiber.Router) {
	router.Post("/", middleware.RequireRole(models.RoleAdmin, models.RolePrincipal), h.create)
	router.Get("/", h.list)
	router.Get("/:id", h.get)
}

func (h *DepartmentHandler) create(c *fiber.Ctx) error {
	var payload dto.DepartmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Create(c.Context(), actorFromContext(c), payload)
	if err != nil {
		return handleError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "department created", result)
}

func (h *DepartmentHandler) list(c *fiber.Ctx) error {
	result, err := h.service.List(c.Context())
	if err != nil {
		return handleError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "departments retrieved", result)
}

func (h *DepartmentHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid department id")
	}

	result, err := h.service.Get(c.Context(), id)
	if err != nil {
		return handleError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "department retrieved", result)
}
