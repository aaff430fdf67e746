// Package common defines sentinel errors shared across client layers.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Auth errors.
	ErrorUnauthorized    = errors.New("unauthorized")
	ErrorEmailTaken      = errors.New("email already registered")
	ErrorSessionExpired  = errors.New("session expired")
	ErrorNotLoggedIn     = errors.New("must be logged in")
	ErrorNoCachedSession = errors.New("no cached session")
	ErrorInvalidToken    = errors.New("invalid token")
)
