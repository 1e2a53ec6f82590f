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

// AchievementHandler exposes the achievement lifecycle endpoints.
type AchievementHandler struct {
	service service.AchievementService
	logger  zerolog.Logger
}

// NewAchievementHandler constructs an achievement handler.
func NewAchievementHandler(service service.AchievementService, logger zerolog.Logger) *AchievementHandler {
	return &AchievementHandler{
		service: service,
		logger:  logger.With().Str("component", "achievement_handler").Logger(),
	}
}

// Register wires achievement routes. All routes assume an authenticated
// session; role checks beyond the reviewer gate live in the service layer.
func (h *AchievementHandler) Register(router fiber.Router) {
	router.Post("/", middleware.RequireRole(models.RoleFaculty), h.submit)
	router.Get("/", h.list)
	router.Get("/:id", h.get)
	router.Put("/:id", middleware.RequireRole(models.RoleFaculty), h.edit)
	router.Delete("/:id", h.remove)
	router.Post("/:id/decision", middleware.RequireReviewer(), h.decide)
}

func (h *AchievementHandler) submit(c *fiber.Ctx) error {
	var payload dto.AchievementCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Submit(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return handleError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "achievement submitted", result)
}

func (h *AchievementHandler) list(c *fiber.Ctx) error {
	req, err := achievementListRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	result, err := h.service.List(c.Context(), actorFromContext(c), req)
	if err != nil {
		return handleError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "achievements retrieved", result)
}

func (h *AchievementHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid achievement id")
	}

	result, err := h.service.Get(c.Context(), id, actorFromContext(c))
	if err != nil {
		return handleError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "achievement retrieved", result)
}

func (h *AchievementHandler) edit(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid achievement id")
	}

	var payload dto.AchievementUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Edit(c.Context(), id, userIDFromContext(c), payload)
	if err != nil {
		return handleError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "achievement updated", result)
}

func (h *AchievementHandler) remove(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid achievement id")
	}

	if err := h.service.Delete(c.Context(), id, actorFromContext(c)); err != nil {
		return handleError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "achievement deleted", nil)
}

func (h *AchievementHandler) decide(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid achievement id")
	}

	var payload dto.DecisionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Decide(c.Context(), id, actorFromContext(c), payload)
	if err != nil {
		return handleError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "decision recorded", result)
}

func achievementListRequest(c *fiber.Ctx) (dto.AchievementListRequest, error) {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return dto.AchievementListRequest{}, err
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return dto.AchievementListRequest{}, err
	}
	departmentID, err := parseQueryUintPtr(c, "department_id")
	if err != nil {
		return dto.AchievementListRequest{}, err
	}
	facultyID, err := parseQueryUintPtr(c, "faculty_id")
	if err != nil {
		return dto.AchievementListRequest{}, err
	}

	return dto.AchievementListRequest{
		Page:         page,
		PageSize:     pageSize,
		Category:     c.Query("category"),
		Status:       c.Query("status"),
		DepartmentID: departmentID,
		FacultyID:    facultyID,
		From:         c.Query("from"),
		To:           c.Query("to"),
	}, nil
}
