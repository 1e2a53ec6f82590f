package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/dto"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/service"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/utils"
)

// AuthHandler exposes session and credential endpoints.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// RegisterPublic wires unauthenticated auth routes.
func (h *AuthHandler) RegisterPublic(router fiber.Router) {
	router.Post("/signin", h.signIn)
	router.Post("/request-reset", h.requestReset)
	router.Post("/reset-password", h.resetPassword)
}

// RegisterProtected wires auth routes that require a valid session.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	router.Post("/signout", h.signOut)
}

func (h *AuthHandler) signIn(c *fiber.Ctx) error {
	var payload dto.SignInRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.SignIn(c.Context(), payload, clientMetaFromContext(c))
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "signed in", result)
}

func (h *AuthHandler) signOut(c *fiber.Ctx) error {
	h.service.SignOut(c.Context(), userIDFromContext(c), clientMetaFromContext(c))
	return utils.SendSuccess(c, "signed out", nil)
}

func (h *AuthHandler) requestReset(c *fiber.Ctx) error {
	var payload dto.RequestResetRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.service.RequestReset(c.Context(), payload); err != nil {
		return handleError(c, h.logger, err)
	}

	// Same answer whether or not the email exists.
	return utils.SendSuccess(c, "if the account exists, a reset token has been sent", nil)
}

func (h *AuthHandler) resetPassword(c *fiber.Ctx) error {
	var payload dto.ResetPasswordRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.service.ResetPassword(c.Context(), payload); err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "password updated", nil)
}
