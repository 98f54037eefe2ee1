package user

import "errors"

var (
	ErrAlreadyExists = errors.New("user already exists")
	ErrInvalidUser   = errors.New("invalid user data")
)
