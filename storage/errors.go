package storage

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("item not found in storage")
var ErrDuplicateVote = errors.New("vote already recorded for this user and question")
var ErrUsernameTaken = errors.New("username already exists")
var ErrChoiceLimit = errors.New("question already has the maximum number of choices")

// isUniqueViolation matches duplicate-key failures across the supported drivers.
// gorm only translates them to ErrDuplicatedKey when the dialector implements it.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
