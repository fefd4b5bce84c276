package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MinInstructionsLength is enforced here and by the recipes table check constraint.
const MinInstructionsLength = 50

const (
	TitleRequiredMessage      = "Title is required"
	InstructionsLengthMessage = "Instructions must be at least 50 characters"
)

// Recipe is owned by exactly one User.
//
// Title is a pointer so an absent title can be told apart from a blank one:
// only a blank title is rejected here, the NOT NULL column rejects nil.
type Recipe struct {
	ID                string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title             *string   `json:"title" gorm:"not null"`
	Instructions      string    `json:"instructions" gorm:"not null;check:check_instructions_length,LENGTH(instructions) >= 50"`
	MinutesToComplete *int      `json:"minutes_to_complete"`
	UserID            string    `json:"user_id" gorm:"type:varchar(36);not null;index"`
	User              *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewRecipe builds a recipe owned by userID, validating every field.
func NewRecipe(title *string, instructions string, minutes *int, userID string) (*Recipe, error) {
	r := &Recipe{MinutesToComplete: minutes, UserID: userID}
	if err := r.SetTitle(title); err != nil {
		return nil, err
	}
	if err := r.SetInstructions(instructions); err != nil {
		return nil, err
	}
	return r, nil
}

// ValidateTitle rejects a title that is present but blank. A nil title passes.
func ValidateTitle(title *string) error {
	if title != nil && strings.TrimSpace(*title) == "" {
		return NewValidationError("title", TitleRequiredMessage)
	}
	return nil
}

// ValidateInstructions rejects instructions shorter than MinInstructionsLength characters.
func ValidateInstructions(instructions string) error {
	if utf8.RuneCountInString(instructions) < MinInstructionsLength {
		return NewValidationError("instructions", InstructionsLengthMessage)
	}
	return nil
}

// SetTitle assigns title if it is valid and leaves the recipe unchanged otherwise.
func (r *Recipe) SetTitle(title *string) error {
	if err := ValidateTitle(title); err != nil {
		return err
	}
	r.Title = title
	return nil
}

// SetInstructions assigns instructions if they are valid and leaves the recipe unchanged otherwise.
func (r *Recipe) SetInstructions(instructions string) error {
	if err := ValidateInstructions(instructions); err != nil {
		return err
	}
	r.Instructions = instructions
	return nil
}

// Validate re-runs every field rule. Call it before any write.
func (r *Recipe) Validate() error {
	if err := ValidateTitle(r.Title); err != nil {
		return err
	}
	return ValidateInstructions(r.Instructions)
}

// TitleValue returns the title or "" when it is unset.
func (r *Recipe) TitleValue() string {
	if r.Title == nil {
		return ""
	}
	return *r.Title
}
