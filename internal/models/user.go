package models

import (
	"strings"
	"time"
)

// User is an account that owns recipes. Deleting it deletes its recipes.
type User struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string     `json:"username" gorm:"uniqueIndex;not null;type:varchar(100)"`
	Password  Credential `json:"-" gorm:"column:password_hash;type:varchar(255)"`
	ImageURL  string     `json:"image_url"`
	Bio       string     `json:"bio"`
	Recipes   []Recipe   `json:"recipes,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// SetPassword replaces the stored credential with a hash of password.
func (u *User) SetPassword(password string, cost int) error {
	return u.Password.Set(password, cost)
}

// Authenticate reports whether password matches the stored credential.
func (u *User) Authenticate(password string) (bool, error) {
	return u.Password.Verify(password)
}

// Validate checks the fields the store cannot default.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return NewValidationError("username", "Username is required")
	}
	return nil
}

func (u *User) String() string {
	return "User " + u.Username + ", ID: " + u.ID
}
