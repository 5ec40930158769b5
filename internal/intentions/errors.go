package intentions

import "errors"

var (
	// ErrInvalidZipcode is returned when a postal code is not 8 digits
	ErrInvalidZipcode = errors.New("zipcode must have exactly 8 digits")

	// ErrIntentionNotFound is returned when an intention is not found
	ErrIntentionNotFound = errors.New("freight intention not found")

	// ErrLeadNotFound is returned when the lead to associate does not exist
	ErrLeadNotFound = errors.New("lead not found for association")

	// ErrSaveFailed hides the underlying persistence failure from callers
	ErrSaveFailed = errors.New("could not process the freight intention")
)
