// Package services defines the business logic for accounts and messages.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

// Account-related errors.
var (
	// ErrUsernameRequired is returned when a registration request carries
	// an empty username.
	ErrUsernameRequired = errors.New("username is empty")

	// ErrPasswordTooShort is returned when a registration password is
	// shorter than the configured minimum.
	ErrPasswordTooShort = errors.New("password too short")

	// ErrUsernameTaken is returned when an account is already registered
	// under the requested username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned when no account matches the given
	// username/password pair exactly.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Message-related errors.
var (
	// ErrEmptyMessage is returned when a message body is empty.
	ErrEmptyMessage = errors.New("message text is empty")

	// ErrMessageTooLong is returned when a message body exceeds the
	// maximum configured length limit.
	ErrMessageTooLong = errors.New("message text too long")

	// ErrUnknownAuthor is returned when a message references an account
	// that does not exist.
	ErrUnknownAuthor = errors.New("posting account does not exist")

	// ErrMessageNotFound indicates that the requested message does not exist.
	ErrMessageNotFound = errors.New("message not found")
)
