package customers

import (
	"time"

	"github.com/google/uuid"

	"github.com/ateliernoir/ateliernoir-backend/pkg/db/models"
)

// RegisterRequest captures the sign-up payload.
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the expired access token and its refresh token.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// CustomerDTO is the public projection of an account.
type CustomerDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AuthResponse contains the token pair and customer returned by register,
// login, and refresh.
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	Customer     *CustomerDTO `json:"customer"`
}

// FromModel converts the persistence model into its public projection.
func FromModel(customer *models.Customer) *CustomerDTO {
	if customer == nil {
		return nil
	}
	return &CustomerDTO{
		ID:          customer.ID,
		Email:       customer.Email,
		FirstName:   customer.FirstName,
		LastName:    customer.LastName,
		LastLoginAt: customer.LastLoginAt,
		CreatedAt:   customer.CreatedAt,
	}
}
