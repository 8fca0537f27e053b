package service

import "errors"

var (
	// ErrNotFound is returned when a requested recipe does not exist.
	ErrNotFound = errors.New("recipe not found")

	// ErrForbidden is returned when a caller tries to mutate a recipe they
	// do not own.
	ErrForbidden = errors.New("not the recipe author")

	// ErrInvalidCredentials is returned on failed login attempts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserExists is returned when registering an email or username that
	// is already taken.
	ErrUserExists = errors.New("user already exists")
)
