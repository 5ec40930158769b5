package pricing

import (
	"time"

	"github.com/google/uuid"

	"github.com/fretehub/fretehub/internal/cep"
)

// Quote is a client-held freight estimate for a resolved origin/destination
// pair. A new calculation always supersedes the previous Quote.
type Quote struct {
	ID          string      `json:"id"`
	OriginCEP   string      `json:"origin_cep"`
	DestCEP     string      `json:"dest_cep"`
	OriginCity  string      `json:"origin_city"`
	OriginState string      `json:"origin_state"`
	DestCity    string      `json:"dest_city"`
	DestState   string      `json:"dest_state"`
	Value       float64     `json:"value"`
	Dimensions  *Dimensions `json:"dimensions,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// NewQuote prices the route and wraps the result with identity and timestamp.
func (e *Estimator) NewQuote(origin, dest *cep.Address, dims *Dimensions) *Quote {
	return &Quote{
		ID:          uuid.NewString(),
		OriginCEP:   cep.Normalize(origin.CEP),
		DestCEP:     cep.Normalize(dest.CEP),
		OriginCity:  origin.City,
		OriginState: origin.State,
		DestCity:    dest.City,
		DestState:   dest.State,
		Value:       e.Estimate(origin, dest, dims),
		Dimensions:  dims,
		CreatedAt:   time.Now().UTC(),
	}
}
