package intentions

import (
	"time"

	"github.com/fretehub/fretehub/internal/cep"
)

// Intention represents a shipping request (origin/destination pair) that a
// lead may later be associated with.
type Intention struct {
	ID           string    `json:"id"`
	ZipcodeStart string    `json:"zipcode_start"`
	ZipcodeEnd   string    `json:"zipcode_end"`
	LeadID       *string   `json:"lead_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateIntentionRequest represents the request body for creating an intention
type CreateIntentionRequest struct {
	ZipcodeStart string `json:"zipcode_start"`
	ZipcodeEnd   string `json:"zipcode_end"`
}

// Validate checks the shape of both postal codes and normalizes them to
// bare digits. Directory resolution happens later in the service.
func (r *CreateIntentionRequest) Validate() error {
	start := cep.Normalize(r.ZipcodeStart)
	if len(start) != 8 {
		return ErrInvalidZipcode
	}
	end := cep.Normalize(r.ZipcodeEnd)
	if len(end) != 8 {
		return ErrInvalidZipcode
	}
	r.ZipcodeStart = start
	r.ZipcodeEnd = end
	return nil
}

// AssociateLeadRequest represents the request body for associating a lead
type AssociateLeadRequest struct {
	LeadID string `json:"lead_id"`
}
