package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultUserRole = "customer"

type User struct {
	ID        uuid.UUID `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role"`
	Addresses []string  `json:"addresses"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Challenge is a pending one-time code bound to a phone number. The code is
// stored as a bcrypt hash; ExpiresAt is authoritative for staleness.
type Challenge struct {
	Phone     string    `json:"phone"`
	CodeHash  string    `json:"code_hash"`
	ExpiresAt time.Time `json:"expires_at"`
	IssuedAt  time.Time `json:"issued_at"`
}

type RequestCodeRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
}

type RequestCodeResponse struct {
	Success    bool      `json:"success"`
	Message    string    `json:"message,omitempty"`
	ExpiresAt  time.Time `json:"expires_at,omitempty"`
	RetryAfter int       `json:"retry_after,omitempty"`
}

type VerifyCodeRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
	Name  string `json:"name,omitempty" validate:"omitempty,max=100"`
}

type VerifyCodeResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token,omitempty"`
	ExpiresIn int    `json:"expires_in,omitempty"`
	User      *User  `json:"user,omitempty"`
}

type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Phone  string    `json:"phone"`
	jwt.RegisteredClaims
}
