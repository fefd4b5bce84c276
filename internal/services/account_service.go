package services

import (
	"fmt"
	"log"

	"recipebox/internal/models"
	"recipebox/internal/repositories"
)

// ProfileUpdate holds the optional profile fields of a PATCH. Nil means unchanged.
type ProfileUpdate struct {
	ImageURL *string
	Bio      *string
}

// AccountService handles business logic related to an existing account.
type AccountService struct {
	userRepo   repositories.UserRepository
	tx         repositories.TxManager
	publisher  EventPublisher
	bcryptCost int
}

// NewAccountService creates a new AccountService. publisher may be nil.
func NewAccountService(userRepo repositories.UserRepository, tx repositories.TxManager, publisher EventPublisher, bcryptCost int) *AccountService {
	return &AccountService{
		userRepo:   userRepo,
		tx:         tx,
		publisher:  publisher,
		bcryptCost: bcryptCost,
	}
}

// GetAccount retrieves an account with its recipes.
func (s *AccountService) GetAccount(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// UpdateProfile changes the image URL and bio of an account.
func (s *AccountService) UpdateProfile(id string, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if update.ImageURL != nil {
		user.ImageURL = *update.ImageURL
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// ChangePassword replaces the credential after checking the current password.
func (s *AccountService) ChangePassword(id, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	ok, err := user.Authenticate(currentPassword)
	if err != nil {
		log.Printf("Credential check failed for user %s: %v", id, err)
		return ErrInvalidCredentials
	}
	if !ok {
		return ErrInvalidCredentials
	}
	if err := user.SetPassword(newPassword, s.bcryptCost); err != nil {
		return err
	}
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	return nil
}

// DeleteAccount deletes the account's recipes and then the account in one
// transaction, returning how many recipes were removed.
func (s *AccountService) DeleteAccount(id string) (int64, error) {
	var removed int64
	err := s.tx.WithinTransaction(func(users repositories.UserRepository, recipes repositories.RecipeRepository) error {
		if _, err := users.GetByID(id); err != nil {
			return err
		}
		n, err := recipes.DeleteByUserID(id)
		if err != nil {
			return err
		}
		if err := users.Delete(id); err != nil {
			return err
		}
		removed = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete account %s: %w", id, err)
	}

	log.Printf("Deleted account %s and %d recipes", id, removed)
	publishEvent(s.publisher, EventAccountDeleted, map[string]interface{}{
		"user_id":         id,
		"recipes_deleted": removed,
	})
	return removed, nil
}
