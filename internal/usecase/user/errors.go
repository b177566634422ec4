// Package user provides use cases for account registration and login.
package user

import "errors"

// Sentinel errors for user use case operations.
var (
	// ErrPasswordMismatch indicates that the two signup passwords differ.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrUsernameTaken indicates that the requested username already exists.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials indicates a failed login attempt.
	// Unknown username and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
