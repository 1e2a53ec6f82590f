package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/authz"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/dto"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/service"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/utils"
)

// AuditHandler exposes the audit trail endpoints.
type AuditHandler struct {
	service service.AuditService
	logger  zerolog.Logger
}

// NewAuditHandler constructs an audit handler.
func NewAuditHandler(service service.AuditService, logger zerolog.Logger) *AuditHandler {
	return &AuditHandler{
		service: service,
		logger:  logger.With().Str("component", "audit_handler").Logger(),
	}
}

// Register wires audit routes.
func (h *AuditHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
}

func (h *AuditHandler) list(c *fiber.Ctx) error {
	if err := authz.CanViewAudit(actorFromContext(c)); err != nil {
		return handleError(c, *requestLogger(h.logger, c), err)
	}

	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	actorID, err := parseQueryUintPtr(c, "actor_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid actor id")
	}

	req := dto.AuditListRequest{
		Page:   page,
		Action: c.Query("action"),
	}
	if actorID != nil {
		req.ActorID = *actorID
	}

	result, err := h.service.List(c.Context(), req)
	if err != nil {
		return handleError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "audit entries retrieved", result)
}
