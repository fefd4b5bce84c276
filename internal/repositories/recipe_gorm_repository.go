package repositories

import (
	"fmt"

	"recipebox/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMRecipeRepository is a GORM implementation of RecipeRepository.
type GORMRecipeRepository struct {
	db *gorm.DB
}

// NewGORMRecipeRepository creates a new instance of GORMRecipeRepository.
func NewGORMRecipeRepository(db *gorm.DB) *GORMRecipeRepository {
	return &GORMRecipeRepository{
		db: db,
	}
}

// GetAll retrieves every recipe with its owner.
func (r *GORMRecipeRepository) GetAll() ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := r.db.Preload("User").Order("created_at").Find(&recipes).Error; err != nil {
		return nil, translateError(err, "failed to get all recipes")
	}
	return recipes, nil
}

// GetByUserID retrieves the recipes owned by userID.
func (r *GORMRecipeRepository) GetByUserID(userID string) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.db.Preload("User").Where("user_id = ?", userID).Order("created_at").Find(&recipes).Error
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("failed to get recipes for user %s", userID))
	}
	return recipes, nil
}

// GetByID retrieves a single recipe with its owner.
func (r *GORMRecipeRepository) GetByID(id string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.Preload("User").First(&recipe, "id = ?", id).Error; err != nil {
		return nil, translateError(err, fmt.Sprintf("failed to get recipe by ID %s", id))
	}
	return &recipe, nil
}

// Create validates and inserts a recipe. The owner must already exist.
func (r *GORMRecipeRepository) Create(recipe *models.Recipe) error {
	if err := recipe.Validate(); err != nil {
		return err
	}
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	if err := r.db.Omit(clause.Associations).Create(recipe).Error; err != nil {
		return translateError(err, "failed to create recipe")
	}
	return nil
}

// Update validates and writes the recipe's columns.
func (r *GORMRecipeRepository) Update(recipe *models.Recipe) error {
	if err := recipe.Validate(); err != nil {
		return err
	}
	res := r.db.Model(recipe).
		Omit(clause.Associations).
		Select("title", "instructions", "minutes_to_complete", "user_id", "updated_at").
		Updates(recipe)
	if res.Error != nil {
		return translateError(res.Error, "failed to update recipe")
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes a recipe by its ID.
func (r *GORMRecipeRepository) Delete(id string) error {
	res := r.db.Delete(&models.Recipe{}, "id = ?", id)
	if res.Error != nil {
		return translateError(res.Error, "failed to delete recipe")
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteByUserID removes every recipe owned by userID and returns how many went.
func (r *GORMRecipeRepository) DeleteByUserID(userID string) (int64, error) {
	res := r.db.Where("user_id = ?", userID).Delete(&models.Recipe{})
	if res.Error != nil {
		return 0, translateError(res.Error, fmt.Sprintf("failed to delete recipes for user %s", userID))
	}
	return res.RowsAffected, nil
}
