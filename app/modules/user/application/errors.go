package userservice

import "errors"

// Domain errors for the user service. Conflict and not-found are distinct,
// typed outcomes; anything else reaching the caller is an infrastructure
// failure.
var (
	// ErrUsernameTaken indicates the username uniqueness invariant would be
	// violated.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
)
