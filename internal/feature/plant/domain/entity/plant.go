// Package entity defines the domain entities for the plant feature.
package entity

import "time"

// Plant represents a plant game-object owned by the garden, not by a user.
// Users reference plants through their plant list; the plant itself only
// carries game state.
type Plant struct {
	// ID is the unique identifier for the plant.
	ID uint `gorm:"primaryKey"`

	// Code is the short uppercase alphanumeric code printed on the physical
	// plant pot. It must be unique across all plants.
	Code string `gorm:"uniqueIndex;size:8;not null"`

	// Name is the display name chosen by the player. It is nil until the
	// game client sets one.
	Name *string `gorm:"size:255"`

	// Points, Level and Money are raw game state written by the client.
	Points int `gorm:"not null;default:0"`
	Level  int `gorm:"not null;default:0"`
	Money  int `gorm:"not null;default:0"`

	// LastWateredAt is the last time the plant was watered, if ever.
	LastWateredAt *time.Time

	// CreatedAt is the timestamp when the plant was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the plant was last updated.
	UpdatedAt time.Time
}
