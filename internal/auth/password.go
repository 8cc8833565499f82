package auth

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores input past 72 bytes; longer passwords are refused rather
// than silently truncated.
const maxPasswordBytes = 72

// ErrPasswordTooLong is returned by HashPassword for inputs bcrypt would truncate.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// HashPassword hashes an account password at the configured bcrypt cost.
func HashPassword(password string, cost int) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword reports a non-nil error unless plain matches hashed.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// DecoyHash returns a hash of a random secret at cost. Comparing against it
// costs the same as checking a real account and never succeeds.
func DecoyHash(cost int) (string, error) {
	return HashPassword(uuid.NewString(), cost)
}
