// Package usecase implements the business logic for the plant feature.
package usecase

import "errors"

var (
	// ErrPlantNotFound is returned when a plant cannot be found by ID or code.
	ErrPlantNotFound = errors.New("plant not found")

	// ErrCodeAlreadyTaken is returned when persisting a plant whose code is
	// already in use. The create loop retries with a fresh code.
	ErrCodeAlreadyTaken = errors.New("plant code already taken")

	// ErrCodeExhausted is returned when a unique plant code could not be
	// allocated after the maximum number of attempts.
	ErrCodeExhausted = errors.New("could not allocate a unique plant code")
)
