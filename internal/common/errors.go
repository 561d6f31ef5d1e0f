package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Auth errors
	ErrUnauthorized    = errors.New("unauthorized")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("expired token")

	// Messaging errors
	ErrUserNotFound         = errors.New("user not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")
	ErrInboxDisabled        = errors.New("recipient inbox disabled")
	ErrBlocked              = errors.New("blocked by recipient")
	ErrRateLimitedHourly    = errors.New("hourly message limit exceeded")
	ErrRateLimitedDaily     = errors.New("daily message limit exceeded")

	// Block errors
	ErrAlreadyBlocked = errors.New("already blocked")
	ErrNotBlocked     = errors.New("not blocked")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)
