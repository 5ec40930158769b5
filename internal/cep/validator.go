package cep

import (
	"context"
	"errors"
	"fmt"

	"github.com/fretehub/fretehub/pkg/logging"
)

// Lookuper resolves a postal code against the directory.
type Lookuper interface {
	Lookup(ctx context.Context, code string) (*Address, error)
}

// Validator checks that a postal code is well-formed and known to the
// directory. Every call performs one outbound lookup; there is no retry
// and no caching.
type Validator struct {
	client Lookuper
	logger *logging.Logger
}

// NewValidator creates a validator backed by the given directory client.
func NewValidator(client Lookuper, logger *logging.Logger) *Validator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Validator{client: client, logger: logger}
}

// Validate rejects the code unless the directory resolves it. A directory
// "not found" and a failed lookup (network error, bad status, malformed
// response) are indistinguishable to the caller: both return ErrInvalid.
func (v *Validator) Validate(ctx context.Context, code string) error {
	normalized := Normalize(code)
	if len(normalized) != 8 {
		return fmt.Errorf("%w: %q", ErrMalformed, code)
	}

	if _, err := v.client.Lookup(ctx, normalized); err != nil {
		if !errors.Is(err, ErrNotFound) {
			v.logger.Error("CEP lookup failed", "cep", normalized, "error", err)
		}
		return fmt.Errorf("CEP %s: %w", normalized, ErrInvalid)
	}

	return nil
}
