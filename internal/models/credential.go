package models

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrCredentialNotSet is returned by Verify when no hash has been stored yet.
var ErrCredentialNotSet = errors.New("credential has not been set")

// MaxPasswordBytes is the longest input bcrypt accepts, measured in bytes.
const MaxPasswordBytes = 72

const PasswordTooLongMessage = "Password must be at most 72 bytes"

// Credential holds a bcrypt hash of a password. It can be set and verified
// but never read back: there is no accessor, and serialization fails.
type Credential struct {
	hash string
}

// Set hashes plaintext with a fresh salt and replaces any previous hash.
// A zero cost means bcrypt.DefaultCost. Passwords over MaxPasswordBytes
// are rejected with a ValidationError on the password field.
func (c *Credential) Set(plaintext string, cost int) error {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if len(plaintext) > MaxPasswordBytes {
		return NewValidationError("password", PasswordTooLongMessage)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return NewValidationError("password", PasswordTooLongMessage)
	}
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	c.hash = string(hashed)
	return nil
}

// Verify reports whether plaintext matches the stored hash. A mismatch is not
// an error; only an unset or malformed hash is.
func (c Credential) Verify(plaintext string) (bool, error) {
	if c.hash == "" {
		return false, ErrCredentialNotSet
	}
	err := bcrypt.CompareHashAndPassword([]byte(c.hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("stored credential is invalid: %w", err)
}

// IsSet reports whether a hash is present.
func (c Credential) IsSet() bool {
	return c.hash != ""
}

// Value stores the hash in the database.
func (c Credential) Value() (driver.Value, error) {
	if c.hash == "" {
		return nil, nil
	}
	return c.hash, nil
}

// Scan loads the hash from the database.
func (c *Credential) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		c.hash = ""
	case string:
		c.hash = v
	case []byte:
		c.hash = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Credential", src)
	}
	return nil
}

func (c Credential) MarshalJSON() ([]byte, error) {
	return nil, ErrCredentialAccess
}

func (c Credential) MarshalText() ([]byte, error) {
	return nil, ErrCredentialAccess
}

func (c Credential) String() string {
	return "[REDACTED]"
}

func (c Credential) GoString() string {
	return "models.Credential{[REDACTED]}"
}

// GormDataType makes the hash a plain string column.
func (Credential) GormDataType() string {
	return "string"
}
