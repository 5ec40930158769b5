package cep

import "errors"

var (
	// ErrMalformed is returned when the input is not an 8-digit postal code
	ErrMalformed = errors.New("CEP must have exactly 8 digits")

	// ErrNotFound is returned when the directory does not know the code
	ErrNotFound = errors.New("CEP not found")

	// ErrInvalid is the validator's single rejection: the code is either
	// unknown to the directory or the lookup itself failed
	ErrInvalid = errors.New("CEP is invalid or could not be found")
)
