package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/repfit/repfit-api/internal/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginOrRegister handles POST /v1/auth/login
func (h *AuthHandler) LoginOrRegister(c *fiber.Ctx) error {
	// Get Firebase token from Authorization header
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Missing Authorization header",
		})
	}

	// Extract token (format: "Bearer <token>")
	token := authHeader
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		token = authHeader[7:]
	}

	// Call auth service to login/register
	resp, err := h.authService.LoginOrRegister(c.Context(), service.LoginOrRegisterRequest{
		FirebaseToken: token,
	})
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"token":       resp.Token,
		"expires_in":  resp.ExpiresIn,
		"is_new_user": resp.IsNewUser,
		"message":     h.getWelcomeMessage(resp),
		"user": fiber.Map{
			"id":    resp.User.ID,
			"name":  resp.User.Name,
			"roles": resp.User.Roles,
		},
	})
}

func (h *AuthHandler) getWelcomeMessage(resp *service.LoginOrRegisterResponse) string {
	if resp.IsNewUser {
		return "Welcome! Your account has been created."
	}
	return "Welcome back!"
}
