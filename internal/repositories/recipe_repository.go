package repositories

import "recipebox/internal/models"

// RecipeRepository defines the interface for recipe data access.
type RecipeRepository interface {
	GetAll() ([]models.Recipe, error)
	GetByUserID(userID string) ([]models.Recipe, error)
	GetByID(id string) (*models.Recipe, error)
	Create(recipe *models.Recipe) error
	Update(recipe *models.Recipe) error
	Delete(id string) error
	DeleteByUserID(userID string) (int64, error)
}
