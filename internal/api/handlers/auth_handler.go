package handlers

import (
	"errors"

	"lob-summary/internal/dto"
	"lob-summary/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Token godoc
// @Summary Issue an admin token
// @Description Exchange the admin password for an access token used on uploads
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "Admin password"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/auth/token [post]
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		return h.authError(c, "Token issue", err)
	}
	return c.JSON(resp)
}

// RefreshToken godoc
// @Summary Refresh an admin token
// @Description Trade a refresh token for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token request"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.authService.RefreshToken(req.RefreshToken)
	if err != nil {
		return h.authError(c, "Token refresh", err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) authError(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, service.ErrAuthDisabled):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Admin authentication is not enabled",
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}
	h.logger.Error(action+" failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": action + " failed",
	})
}
