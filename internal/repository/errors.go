package repository

import "errors"

// Common repository errors
var (
	// ErrCardNotFound is returned when a card is not found
	ErrCardNotFound = errors.New("card not found")
)
