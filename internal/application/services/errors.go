package services

import "errors"

var (
	ErrEmptyName    = errors.New("name and surname cannot be empty")
	ErrInvalidID    = errors.New("invalid ID")
	ErrInvalidEdit  = errors.New("invalid ID or name/surname cannot be empty")
	ErrUserNotFound = errors.New("user not found")
	ErrDuplicateID  = errors.New("duplicate ID")
)

// IsValidation reports whether err is one of the input validation errors.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidEdit)
}
