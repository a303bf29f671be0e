package models

import "errors"

// Common errors used throughout the application
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrTicketNotFound   = errors.New("ticket not found")
	ErrCartLineNotFound = errors.New("cart line not found")

	ErrDuplicateItem  = errors.New("event is already in the cart")
	ErrDuplicateCode  = errors.New("ticket code already exists")
	ErrDuplicateEntry = errors.New("duplicate entry")

	ErrInsufficientInventory   = errors.New("insufficient ticket inventory")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrCodeGenerationExhausted = errors.New("ticket code generation attempts exhausted")

	ErrAuthFailure  = errors.New("invalid credentials")
	ErrUnauthorized = errors.New("unauthorized access")
	ErrInvalidInput = errors.New("invalid input")
)
