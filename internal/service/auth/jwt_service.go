package auth

import (
	"context"
	"time"

	"taskdesk/internal/domain"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token carrying the
	// employee's ID and role. Returns the token string or an error if
	// token generation fails.
	GenerateToken(ctx context.Context, employee *domain.Employee) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns the claims if the token is valid, or an error if
	// validation fails (expired, invalid signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the custom claims structure for the JWT tokens.
// The role travels in the token so middleware can reject obviously
// unauthorized requests early; services still re-check against the stored
// employee, since a token outlives a role change or deactivation.
type Claims struct {
	// EmployeeID is the unique identifier of the employee the token was
	// issued for.
	EmployeeID int64 `json:"uid"`

	// Role is the employee's role at the time of issue.
	Role domain.Role `json:"role"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
