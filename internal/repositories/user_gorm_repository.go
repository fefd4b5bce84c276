package repositories

import (
	"fmt"

	"recipebox/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create validates and inserts a new user. Recipes attached to it are not written.
func (r *GORMUserRepository) Create(user *models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Omit(clause.Associations).Create(user).Error; err != nil {
		return translateError(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user and its recipes.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Recipes", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at")
	}).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("failed to get user by ID %s", id))
	}
	return &user, nil
}

// GetByUsername retrieves a user by username without its recipes.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		return nil, translateError(err, fmt.Sprintf("failed to get user by username %s", username))
	}
	return &user, nil
}

// Update writes the user's own columns, including the credential.
func (r *GORMUserRepository) Update(user *models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	res := r.db.Model(user).
		Omit(clause.Associations).
		Select("username", "password_hash", "image_url", "bio", "updated_at").
		Updates(user)
	if res.Error != nil {
		return translateError(res.Error, "failed to update user")
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes a user. The foreign key cascades to its recipes.
func (r *GORMUserRepository) Delete(id string) error {
	res := r.db.Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return translateError(res.Error, "failed to delete user")
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
