package auth

import "errors"

// Token validation errors. The auth middleware maps each to a 401 with a
// matching message.
var (
	ErrInvalidToken     = errors.New("invalid authentication token")
	ErrExpiredToken     = errors.New("authentication token has expired")
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")
	ErrMissingToken     = errors.New("authentication token is missing")

	// ErrWrongTokenType is returned for a validly signed token that was not
	// issued as an API client token.
	ErrWrongTokenType = errors.New("authentication token has the wrong type")

	// ErrInvalidClientID is returned when asked to issue a token for an
	// empty client.
	ErrInvalidClientID = errors.New("client id cannot be empty")
)
