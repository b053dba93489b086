package domain

import "errors"

var (
	ErrNotFound       = errors.New("watchlist entry not found")
	ErrAlreadyExists  = errors.New("anime already in watchlist")
	ErrInvalidInput   = errors.New("invalid input")
	ErrAuthRequired   = errors.New("authentication required")
	ErrEntryCompleted = errors.New("watchlist entry is completed")

	ErrInvalidTransition = errors.New("invalid status transition")
)
