package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to register a user
	// with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when the login password does not
	// match the stored hash.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidVerificationCode is returned when the supplied code does not
	// match the stored verification code.
	ErrInvalidVerificationCode = errors.New("invalid verification code")

	// ErrPlantAlreadyAttached is returned when the plant is already in the
	// user's plant list.
	ErrPlantAlreadyAttached = errors.New("plant already attached")
)
