package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"recipebox/internal/middleware"
	"recipebox/internal/models"
	"recipebox/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// newValidator returns a validator with the notblank tag registered.
func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register notblank validation: %v", err))
	}
	return v
}

// parseAndValidate decodes the body into req and checks its struct tags.
// It writes the 400 response itself and reports whether the handler may go on.
func parseAndValidate(c *fiber.Ctx, v *validator.Validate, req interface{}) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		log.Printf("Error parsing request body: %v", err)
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := v.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"error":   err.Error(),
			})
		}
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}
	return true, nil
}

// respondError translates a domain error into a status code and JSON body.
func respondError(c *fiber.Ctx, err error, message string) error {
	log.Printf("%s: %v", message, err)

	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": message,
			"errors":  fiber.Map{ve.Field: ve.Message},
		})
	case errors.Is(err, models.ErrUniquenessViolation):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": message, "error": err.Error()})
	case errors.Is(err, models.ErrReferentialIntegrity):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": message, "error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": message, "error": err.Error()})
	case errors.Is(err, models.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": message, "error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": message, "error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   "internal server error",
	})
}

func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.LocalUserID).(string)
	return id
}

func recipeViews(recipes []models.Recipe) []models.RecipeView {
	views := make([]models.RecipeView, 0, len(recipes))
	for i := range recipes {
		views = append(views, recipes[i].View(nil))
	}
	return views
}
