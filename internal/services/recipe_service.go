package services

import (
	"errors"
	"fmt"

	"recipebox/internal/models"
	"recipebox/internal/repositories"
)

// RecipeInput carries the fields of a new recipe.
type RecipeInput struct {
	Title             *string
	Instructions      string
	MinutesToComplete *int
}

// RecipeUpdate holds the optional fields of a PATCH. Nil means unchanged.
type RecipeUpdate struct {
	Title             *string
	Instructions      *string
	MinutesToComplete *int
}

// RecipeService handles business logic related to recipes.
type RecipeService struct {
	recipeRepo repositories.RecipeRepository
	userRepo   repositories.UserRepository
	publisher  EventPublisher
}

// NewRecipeService creates a new RecipeService. publisher may be nil.
func NewRecipeService(recipeRepo repositories.RecipeRepository, userRepo repositories.UserRepository, publisher EventPublisher) *RecipeService {
	return &RecipeService{
		recipeRepo: recipeRepo,
		userRepo:   userRepo,
		publisher:  publisher,
	}
}

// ListRecipes retrieves all recipes.
func (s *RecipeService) ListRecipes() ([]models.Recipe, error) {
	return s.recipeRepo.GetAll()
}

// ListRecipesByOwner retrieves the recipes of one account.
func (s *RecipeService) ListRecipesByOwner(userID string) ([]models.Recipe, error) {
	return s.recipeRepo.GetByUserID(userID)
}

// GetRecipe retrieves a single recipe by its ID.
func (s *RecipeService) GetRecipe(id string) (*models.Recipe, error) {
	return s.recipeRepo.GetByID(id)
}

// CreateRecipe validates input and stores a recipe owned by userID.
func (s *RecipeService) CreateRecipe(userID string, input RecipeInput) (*models.Recipe, error) {
	owner, err := s.owner(userID)
	if err != nil {
		return nil, err
	}

	recipe, err := models.NewRecipe(input.Title, input.Instructions, input.MinutesToComplete, owner.ID)
	if err != nil {
		return nil, err
	}
	if err := s.recipeRepo.Create(recipe); err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	recipe.User = owner

	publishEvent(s.publisher, EventRecipeCreated, map[string]interface{}{
		"recipe_id": recipe.ID,
		"user_id":   owner.ID,
	})
	return recipe, nil
}

// UpdateRecipe applies update to a recipe owned by userID. Every field goes
// through its validating setter, so nothing is written if any field is invalid.
func (s *RecipeService) UpdateRecipe(userID, id string, update RecipeUpdate) (*models.Recipe, error) {
	recipe, err := s.ownedRecipe(userID, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		if err := recipe.SetTitle(update.Title); err != nil {
			return nil, err
		}
	}
	if update.Instructions != nil {
		if err := recipe.SetInstructions(*update.Instructions); err != nil {
			return nil, err
		}
	}
	if update.MinutesToComplete != nil {
		recipe.MinutesToComplete = update.MinutesToComplete
	}

	if err := s.recipeRepo.Update(recipe); err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	return recipe, nil
}

// TransferRecipe re-points a recipe owned by userID at newOwnerID.
func (s *RecipeService) TransferRecipe(userID, id, newOwnerID string) (*models.Recipe, error) {
	recipe, err := s.ownedRecipe(userID, id)
	if err != nil {
		return nil, err
	}
	newOwner, err := s.owner(newOwnerID)
	if err != nil {
		return nil, err
	}

	recipe.UserID = newOwner.ID
	recipe.User = nil
	if err := s.recipeRepo.Update(recipe); err != nil {
		return nil, fmt.Errorf("failed to transfer recipe: %w", err)
	}
	recipe.User = newOwner
	return recipe, nil
}

// DeleteRecipe deletes a recipe owned by userID.
func (s *RecipeService) DeleteRecipe(userID, id string) error {
	if _, err := s.ownedRecipe(userID, id); err != nil {
		return err
	}
	if err := s.recipeRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	publishEvent(s.publisher, EventRecipeDeleted, map[string]interface{}{
		"recipe_id": id,
		"user_id":   userID,
	})
	return nil
}

// owner loads the account a recipe is about to reference.
func (s *RecipeService) owner(userID string) (*models.User, error) {
	owner, err := s.userRepo.GetByID(userID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("account %s: %w", userID, models.ErrReferentialIntegrity)
	}
	if err != nil {
		return nil, err
	}
	owner.Recipes = nil
	return owner, nil
}

func (s *RecipeService) ownedRecipe(userID, id string) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != userID {
		return nil, models.ErrForbidden
	}
	return recipe, nil
}
