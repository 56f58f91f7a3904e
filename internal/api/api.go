// Package api defines the request and response types shared by the HTTP
// transport layer. Response types are the public projections: they never
// carry password hashes or verification codes.
package api

import (
	"strconv"
	"time"

	plantentity "plant_backend/internal/feature/plant/domain/entity"
	userentity "plant_backend/internal/feature/user/domain/entity"
)

// RegisterRequest represents the request body for POST /user/register.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for POST /user/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyRequest represents the request body for POST /user/verify.
type VerifyRequest struct {
	VerificationCode string `json:"verification_code" binding:"required"`
}

// AttachPlantRequest represents the request body for PUT /user/plant.
type AttachPlantRequest struct {
	PlantCode string `json:"plant_code" binding:"required"`
}

// UpdatePlantRequest represents the request body for PUT /plant/:id.
// The update is a full replace: fields left out of the request reset the
// stored value to zero or null.
type UpdatePlantRequest struct {
	Name          *string `json:"name"`
	Points        int     `json:"points"`
	Level         int     `json:"level"`
	Money         int     `json:"money"`
	LastWateredAt *int64  `json:"last_watered_at"`
}

// ErrorResponse is the uniform error body returned by all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a simple informational body.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries the bearer token issued on login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// UserResponse is the public projection of a user.
type UserResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"is_verified"`
	Plants     []string  `json:"plants"`
	CreatedAt  time.Time `json:"created_at"`
}

// PlantResponse is the public projection of a plant.
type PlantResponse struct {
	ID            string     `json:"id"`
	Code          string     `json:"code"`
	Name          *string    `json:"name"`
	Points        int        `json:"points"`
	Level         int        `json:"level"`
	Money         int        `json:"money"`
	LastWateredAt *time.Time `json:"last_watered_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// NewUserResponse builds the public projection of a user.
// Password and VerificationCode are deliberately absent from the type, so
// they cannot leak on any code path.
func NewUserResponse(u *userentity.User) UserResponse {
	return UserResponse{
		ID:         strconv.FormatUint(uint64(u.ID), 10),
		Name:       u.Name,
		Email:      u.Email,
		IsVerified: u.IsVerified,
		Plants:     u.PlantIDs(),
		CreatedAt:  u.CreatedAt,
	}
}

// NewPlantResponse builds the public projection of a plant.
func NewPlantResponse(p *plantentity.Plant) PlantResponse {
	return PlantResponse{
		ID:            strconv.FormatUint(uint64(p.ID), 10),
		Code:          p.Code,
		Name:          p.Name,
		Points:        p.Points,
		Level:         p.Level,
		Money:         p.Money,
		LastWateredAt: p.LastWateredAt,
		CreatedAt:     p.CreatedAt,
	}
}

// NewPlantResponses builds public projections for a list of plants,
// preserving order.
func NewPlantResponses(plants []*plantentity.Plant) []PlantResponse {
	out := make([]PlantResponse, 0, len(plants))
	for _, p := range plants {
		out = append(out, NewPlantResponse(p))
	}
	return out
}
