package handlers

import (
	"recipebox/internal/middleware"
	"recipebox/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the public authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/signup", h.HandleSignup)
	authRoutes.Post("/login", h.HandleLogin)
}

// RegisterSessionRoutes registers the routes that need a token. router must
// be guarded by middleware.AuthRequired.
func (h *AuthHandler) RegisterSessionRoutes(router fiber.Router) {
	router.Get("/auth/me", h.HandleMe)
}

// SignupRequest represents the request body for signup.
type SignupRequest struct {
	Username string `json:"username" validate:"required,notblank,max=100"`
	Password string `json:"password" validate:"required"`
	ImageURL string `json:"image_url"`
	Bio      string `json:"bio"`
}

// HandleSignup handles new user registration.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	user, err := h.authService.Signup(services.SignupInput{
		Username: req.Username,
		Password: req.Password,
		ImageURL: req.ImageURL,
		Bio:      req.Bio,
	})
	if err != nil {
		return respondError(c, err, "Registration failed")
	}

	token, err := h.authService.IssueToken(user)
	if err != nil {
		return respondError(c, err, "Could not issue token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user.View(),
		"token":   token,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	token, user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		return respondError(c, err, "Authentication failed")
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user.View(),
	})
}

// HandleMe returns the account behind the bearer token.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	claims, _ := c.Locals(middleware.LocalClaims).(jwt.MapClaims)
	user, err := h.authService.CurrentUser(claims)
	if err != nil {
		return respondError(c, err, "Could not load current user")
	}
	return c.JSON(user.View())
}
