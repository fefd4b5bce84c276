package handlers

import (
	"recipebox/internal/models"
	"recipebox/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RecipeHandler handles HTTP requests for recipes.
type RecipeHandler struct {
	service  *services.RecipeService
	validate *validator.Validate
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(service *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the recipe routes. router must be authenticated.
func (h *RecipeHandler) RegisterRoutes(router fiber.Router) {
	recipeRoutes := router.Group("/recipes")
	recipeRoutes.Get("/", h.HandleGetRecipes)
	recipeRoutes.Post("/", h.HandleCreateRecipe)
	recipeRoutes.Get("/:id", h.HandleGetRecipeByID)
	recipeRoutes.Patch("/:id", h.HandleUpdateRecipe)
	recipeRoutes.Put("/:id/owner", h.HandleTransferRecipe)
	recipeRoutes.Delete("/:id", h.HandleDeleteRecipe)
}

// HandleGetRecipes lists every recipe, or one account's with ?user_id=.
func (h *RecipeHandler) HandleGetRecipes(c *fiber.Ctx) error {
	var (
		recipes []models.Recipe
		err     error
	)
	if userID := c.Query("user_id"); userID != "" {
		recipes, err = h.service.ListRecipesByOwner(userID)
	} else {
		recipes, err = h.service.ListRecipes()
	}
	if err != nil {
		return respondError(c, err, "Could not retrieve recipes")
	}
	return c.JSON(recipeViews(recipes))
}

// HandleGetRecipeByID retrieves a single recipe by its ID.
func (h *RecipeHandler) HandleGetRecipeByID(c *fiber.Ctx) error {
	recipe, err := h.service.GetRecipe(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve recipe")
	}
	return c.JSON(recipe.View(nil))
}

// CreateRecipeRequest represents the request body for a new recipe.
type CreateRecipeRequest struct {
	Title             *string `json:"title"`
	Instructions      string  `json:"instructions"`
	MinutesToComplete *int    `json:"minutes_to_complete"`
}

// HandleCreateRecipe creates a recipe owned by the caller.
func (h *RecipeHandler) HandleCreateRecipe(c *fiber.Ctx) error {
	var req CreateRecipeRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	recipe, err := h.service.CreateRecipe(currentUserID(c), services.RecipeInput{
		Title:             req.Title,
		Instructions:      req.Instructions,
		MinutesToComplete: req.MinutesToComplete,
	})
	if err != nil {
		return respondError(c, err, "Could not create recipe")
	}
	return c.Status(fiber.StatusCreated).JSON(recipe.View(nil))
}

// UpdateRecipeRequest represents the request body for a recipe PATCH.
type UpdateRecipeRequest struct {
	Title             *string `json:"title"`
	Instructions      *string `json:"instructions"`
	MinutesToComplete *int    `json:"minutes_to_complete"`
}

// HandleUpdateRecipe changes fields of a recipe owned by the caller.
func (h *RecipeHandler) HandleUpdateRecipe(c *fiber.Ctx) error {
	var req UpdateRecipeRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	recipe, err := h.service.UpdateRecipe(currentUserID(c), c.Params("id"), services.RecipeUpdate{
		Title:             req.Title,
		Instructions:      req.Instructions,
		MinutesToComplete: req.MinutesToComplete,
	})
	if err != nil {
		return respondError(c, err, "Could not update recipe")
	}
	return c.JSON(recipe.View(nil))
}

// TransferRecipeRequest represents the request body for an ownership change.
type TransferRecipeRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// HandleTransferRecipe hands a recipe owned by the caller to another account.
func (h *RecipeHandler) HandleTransferRecipe(c *fiber.Ctx) error {
	var req TransferRecipeRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	recipe, err := h.service.TransferRecipe(currentUserID(c), c.Params("id"), req.UserID)
	if err != nil {
		return respondError(c, err, "Could not transfer recipe")
	}
	return c.JSON(recipe.View(nil))
}

// HandleDeleteRecipe deletes a recipe owned by the caller.
func (h *RecipeHandler) HandleDeleteRecipe(c *fiber.Ctx) error {
	if err := h.service.DeleteRecipe(currentUserID(c), c.Params("id")); err != nil {
		return respondError(c, err, "Could not delete recipe")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
