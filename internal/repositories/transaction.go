package repositories

import (
	"gorm.io/gorm"
)

// TxManager runs a unit of work against repositories bound to one transaction.
type TxManager interface {
	WithinTransaction(fn func(users UserRepository, recipes RecipeRepository) error) error
}

// GORMTxManager is a GORM implementation of TxManager.
type GORMTxManager struct {
	db *gorm.DB
}

// NewGORMTxManager creates a new instance of GORMTxManager.
func NewGORMTxManager(db *gorm.DB) *GORMTxManager {
	return &GORMTxManager{db: db}
}

// WithinTransaction commits when fn returns nil and rolls back on an error or panic.
func (m *GORMTxManager) WithinTransaction(fn func(users UserRepository, recipes RecipeRepository) error) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMUserRepository(tx), NewGORMRecipeRepository(tx))
	})
}
