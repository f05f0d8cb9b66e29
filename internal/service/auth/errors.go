package auth

import "errors"

var (
	// ErrInvalidToken covers malformed tokens and signature mismatches.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken is returned once a token's exp claim has passed.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid is returned for a token whose nbf claim lies in
	// the future.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken is returned when a request carries no token at all.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidCredentials indicates the login/password pair did not match
	// an active employee. Deliberately indistinguishable from an unknown
	// login so the response does not leak which part was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
