package handlers

import (
	"recipebox/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AccountHandler handles HTTP requests for the caller's own account.
type AccountHandler struct {
	service  *services.AccountService
	validate *validator.Validate
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service *services.AccountService) *AccountHandler {
	return &AccountHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the account routes. router must be authenticated.
func (h *AccountHandler) RegisterRoutes(router fiber.Router) {
	accountRoutes := router.Group("/account")
	accountRoutes.Get("/", h.HandleGetAccount)
	accountRoutes.Patch("/", h.HandleUpdateProfile)
	accountRoutes.Put("/password", h.HandleChangePassword)
	accountRoutes.Delete("/", h.HandleDeleteAccount)
}

// HandleGetAccount returns the caller's account and recipes.
func (h *AccountHandler) HandleGetAccount(c *fiber.Ctx) error {
	user, err := h.service.GetAccount(currentUserID(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve account")
	}
	return c.JSON(user.View())
}

// UpdateProfileRequest represents the request body for a profile PATCH.
type UpdateProfileRequest struct {
	ImageURL *string `json:"image_url"`
	Bio      *string `json:"bio"`
}

// HandleUpdateProfile changes the caller's image URL and bio.
func (h *AccountHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	user, err := h.service.UpdateProfile(currentUserID(c), services.ProfileUpdate{
		ImageURL: req.ImageURL,
		Bio:      req.Bio,
	})
	if err != nil {
		return respondError(c, err, "Could not update profile")
	}
	return c.JSON(user.View())
}

// ChangePasswordRequest represents the request body for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// HandleChangePassword replaces the caller's password.
func (h *AccountHandler) HandleChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	if err := h.service.ChangePassword(currentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, err, "Could not change password")
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}

// HandleDeleteAccount deletes the caller's account together with its recipes.
func (h *AccountHandler) HandleDeleteAccount(c *fiber.Ctx) error {
	removed, err := h.service.DeleteAccount(currentUserID(c))
	if err != nil {
		return respondError(c, err, "Could not delete account")
	}
	return c.JSON(fiber.Map{
		"message":         "Account deleted",
		"recipes_deleted": removed,
	})
}
