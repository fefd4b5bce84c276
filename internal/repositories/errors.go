package repositories

import (
	"strings"

	"recipebox/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// translateError maps driver and GORM errors onto the domain error kinds.
// TranslateError covers most cases; the message checks catch what the
// dialect translators leave untouched (SQLite check and not-null failures).
func translateError(err error, action string) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), strings.Contains(msg, "unique constraint"):
		return errors.Wrap(models.ErrUniquenessViolation, action)
	case errors.Is(err, gorm.ErrForeignKeyViolated), strings.Contains(msg, "foreign key constraint"):
		return errors.Wrap(models.ErrReferentialIntegrity, action)
	case errors.Is(err, gorm.ErrCheckConstraintViolated), strings.Contains(msg, "check constraint"):
		return models.NewValidationError("instructions", models.InstructionsLengthMessage)
	case strings.Contains(msg, "not null constraint"), strings.Contains(msg, "not-null constraint"):
		return notNullError(msg)
	}
	return errors.Wrap(err, action)
}

func notNullError(msg string) error {
	switch {
	case strings.Contains(msg, "title"):
		return models.NewValidationError("title", models.TitleRequiredMessage)
	case strings.Contains(msg, "instructions"):
		return models.NewValidationError("instructions", models.InstructionsLengthMessage)
	case strings.Contains(msg, "username"):
		return models.NewValidationError("username", "Username is required")
	case strings.Contains(msg, "user_id"):
		return models.ErrReferentialIntegrity
	}
	return errors.Errorf("unexpected not-null violation: %s", msg)
}
