package client

import (
	"context"
	"fmt"

	"github.com/fretehub/fretehub/internal/cep"
	"github.com/fretehub/fretehub/internal/pricing"
	"github.com/fretehub/fretehub/pkg/logging"
)

// State is the position of the quote form flow.
type State string

const (
	StateIdle              State = "idle"
	StateResolvingCEPs     State = "resolving_postal_codes"
	StateCreatingIntention State = "creating_intention"
	StateQuoted            State = "quoted"
	StateSavingLead        State = "saving_lead"
	StateSaved             State = "saved"
)

// Lookuper resolves a postal code against the directory.
type Lookuper interface {
	Lookup(ctx context.Context, code string) (*cep.Address, error)
}

// Backend is the subset of the API client the flow needs.
type Backend interface {
	CreateIntention(ctx context.Context, zipcodeStart, zipcodeEnd string) (*Intention, error)
	CreateLead(ctx context.Context, name, email string) (*Lead, error)
	AssociateLead(ctx context.Context, intentionID, leadID string) error
}

// SaveResult reports the outcome of SaveLead.
type SaveResult struct {
	Lead *Lead
	// Associated is false on the tolerated degraded path where the lead was
	// saved but no intention id was available to link it to.
	Associated bool
}

// QuoteFlow drives the freight quote form: resolve both postal codes,
// register the intention with the backend, price the route locally, then
// capture the lead and link it to the intention. The flow is sequential
// after the two concurrent lookups and short-circuits to idle on any error.
type QuoteFlow struct {
	backend   Backend
	lookup    Lookuper
	estimator *pricing.Estimator
	logger    *logging.Logger

	state       State
	intentionID string
	quote       *pricing.Quote
}

// NewQuoteFlow creates a flow in the idle state.
func NewQuoteFlow(backend Backend, lookup Lookuper, estimator *pricing.Estimator, logger *logging.Logger) *QuoteFlow {
	if estimator == nil {
		estimator = pricing.NewEstimator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &QuoteFlow{
		backend:   backend,
		lookup:    lookup,
		estimator: estimator,
		logger:    logger,
		state:     StateIdle,
	}
}

// State returns the current flow state.
func (f *QuoteFlow) State() State {
	return f.state
}

// Quote returns the latest computed quote, if any.
func (f *QuoteFlow) Quote() *pricing.Quote {
	return f.quote
}

type lookupResult struct {
	addr *cep.Address
	err  error
}

// Calculate resolves both postal codes concurrently, creates the intention
// on the backend and prices the route. The backend intention must be
// created before any quote is produced: if that step fails, no quote
// exists even though both codes resolved.
func (f *QuoteFlow) Calculate(ctx context.Context, originCEP, destCEP string, dims *pricing.Dimensions) (*pricing.Quote, error) {
	f.state = StateResolvingCEPs
	f.quote = nil
	f.intentionID = ""

	// Dispatch both lookups before awaiting either.
	originCh := make(chan lookupResult, 1)
	destCh := make(chan lookupResult, 1)
	go func() {
		addr, err := f.lookup.Lookup(ctx, cep.Normalize(originCEP))
		originCh <- lookupResult{addr, err}
	}()
	go func() {
		addr, err := f.lookup.Lookup(ctx, cep.Normalize(destCEP))
		destCh <- lookupResult{addr, err}
	}()

	origin := <-originCh
	dest := <-destCh
	if origin.err != nil {
		return nil, f.fail(fmt.Errorf("resolve origin CEP: %w", origin.err))
	}
	if dest.err != nil {
		return nil, f.fail(fmt.Errorf("resolve destination CEP: %w", dest.err))
	}

	f.state = StateCreatingIntention
	intention, err := f.backend.CreateIntention(ctx, originCEP, destCEP)
	if err != nil {
		return nil, f.fail(fmt.Errorf("create intention: %w", err))
	}
	f.intentionID = intention.ID

	f.quote = f.estimator.NewQuote(origin.addr, dest.addr, dims)
	f.state = StateQuoted
	f.logger.Info("freight quoted",
		"origin", f.quote.OriginCity,
		"dest", f.quote.DestCity,
		"value", f.quote.Value,
	)
	return f.quote, nil
}

// SaveLead captures the lead and associates it with the quoted intention.
// If the intention id is unavailable the lead is still saved and the flow
// completes unassociated; that is a tolerated degraded path, not an error.
func (f *QuoteFlow) SaveLead(ctx context.Context, name, email string) (*SaveResult, error) {
	f.state = StateSavingLead

	lead, err := f.backend.CreateLead(ctx, name, email)
	if err != nil {
		return nil, f.fail(fmt.Errorf("create lead: %w", err))
	}

	if f.intentionID == "" {
		f.logger.Warn("no intention to associate, lead saved unlinked", "lead_id", lead.ID)
		f.state = StateSaved
		return &SaveResult{Lead: lead}, nil
	}

	if err := f.backend.AssociateLead(ctx, f.intentionID, lead.ID); err != nil {
		return nil, f.fail(fmt.Errorf("associate lead: %w", err))
	}

	f.state = StateSaved
	return &SaveResult{Lead: lead, Associated: true}, nil
}

func (f *QuoteFlow) fail(err error) error {
	f.logger.Error("quote flow failed", "state", string(f.state), "error", err)
	f.state = StateIdle
	return err
}
