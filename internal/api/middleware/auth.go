package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"taskdesk/internal/api/shared"
	"taskdesk/internal/domain"
	"taskdesk/internal/service/auth"
	"taskdesk/internal/store"
)

// AuthMiddleware provides JWT authentication for routes.
//
// The token only identifies the employee; the stored row is reloaded on every
// request so a role change or deactivation takes effect before the token
// expires.
type AuthMiddleware struct {
	jwtService auth.JWTService
	employees  store.EmployeeStore
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, employees store.EmployeeStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		employees:  employees,
	}
}

// Authenticate validates the bearer token, loads the employee it identifies
// and adds them to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				slog.Error("failed to validate token", "error", err)
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		employee, err := m.employees.GetByID(r.Context(), claims.EmployeeID)
		if err != nil || !employee.IsActive {
			// A valid token for a missing or deactivated account.
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Account is not active")
			return
		}

		ctx := context.WithValue(r.Context(), shared.EmployeeContextKey, employee)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetEmployee extracts the authenticated employee from the request context.
func GetEmployee(r *http.Request) (*domain.Employee, bool) {
	employee, ok := r.Context().Value(shared.EmployeeContextKey).(*domain.Employee)
	return employee, ok
}
