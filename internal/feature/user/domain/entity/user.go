// Package entity defines the domain entities for the user feature.
package entity

import (
	"strconv"
	"time"
)

// User represents a registered player in the system.
// It contains authentication credentials and the ordered list of plants the
// player has claimed.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Name is the player's display name.
	Name string `gorm:"size:255;not null"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// This must never store plaintext passwords and never leave the server.
	Password string `gorm:"size:255;not null"`

	// VerificationCode is the 5-digit code mailed to the user at
	// registration. Stored as a string so leading zeros survive.
	// It is never exposed in any outward representation.
	VerificationCode string `gorm:"size:8;not null"`

	// IsVerified reports whether the user has confirmed the code.
	IsVerified bool `gorm:"not null;default:false"`

	// Plants holds the user's plant references in claim order.
	Plants []UserPlant `gorm:"foreignKey:UserID;references:ID"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// UserPlant links a user to a plant it has claimed.
// The composite primary key makes a duplicate claim a constraint violation
// rather than an application-level race.
type UserPlant struct {
	UserID  uint `gorm:"primaryKey;autoIncrement:false"`
	PlantID uint `gorm:"primaryKey;autoIncrement:false"`

	// Position preserves the order in which plants were claimed.
	Position int `gorm:"not null"`

	CreatedAt time.Time
}

// PlantIDs returns the user's plant references as decimal strings in claim
// order. This is the shape used by the public projection and token claims.
func (u *User) PlantIDs() []string {
	ids := make([]string, 0, len(u.Plants))
	for _, p := range u.Plants {
		ids = append(ids, strconv.FormatUint(uint64(p.PlantID), 10))
	}
	return ids
}
