package auth

import "errors"

// Sentinel errors for token validation. The auth middleware matches on these
// with errors.Is to pick the client-facing message.
var (
	// ErrInvalidToken covers malformed tokens, signature mismatches, and
	// wrong issuer or audience.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken is returned when the token's expiry has passed.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid is returned when the nbf claim lies in the future.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken is returned when a token was expected but not supplied.
	ErrMissingToken = errors.New("authentication token is missing")
)
