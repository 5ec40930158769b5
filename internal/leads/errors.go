package leads

import "errors"

var (
	// ErrInvalidName is returned when the name is missing or blank
	ErrInvalidName = errors.New("name is required")

	// ErrInvalidEmail is returned when the email is not a valid address
	ErrInvalidEmail = errors.New("a valid email is required")

	// ErrEmailTaken is returned when the email is already registered
	ErrEmailTaken = errors.New("email is already registered")

	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")

	// ErrSaveFailed hides the underlying persistence failure from callers
	ErrSaveFailed = errors.New("could not process the registration")
)
